// Package cli holds the state shared by every ledger command.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/ledger/internal/ai"
	"github.com/julianstephens/ledger/internal/backup"
	"github.com/julianstephens/ledger/internal/config"
	"github.com/julianstephens/ledger/internal/keyring"
	"github.com/julianstephens/ledger/internal/ledger"
	"github.com/julianstephens/ledger/internal/logger"
	"github.com/julianstephens/ledger/internal/models"
	"github.com/julianstephens/ledger/internal/render"
	"github.com/julianstephens/ledger/internal/storage"
	"github.com/julianstephens/ledger/internal/storage/postgres"
	"github.com/julianstephens/ledger/internal/validation"
)

type Context struct {
	Store    storage.Provider
	Service  *ledger.Service
	Config   *config.Config
	Enricher ai.Enricher

	// Out and In default to the process's stdout and stdin
	Out io.Writer
	In  io.Reader
}

// NewContext wires a service over store using the limits in cfg. A nil cfg
// uses the defaults.
func NewContext(store storage.Provider, cfg *config.Config, opts ...ledger.Option) *Context {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Context{
		Store:   store,
		Service: ledger.NewService(store, validation.New(cfg.Limits), opts...),
		Config:  cfg,
	}
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Settings returns the stored preferences
func (c *Context) Settings() (models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// AI returns the enricher, building it from settings and the configured key
// on first use. Failures fall back to a Noop enricher.
func (c *Context) AI(ctx context.Context) ai.Enricher {
	if c.Enricher != nil {
		return c.Enricher
	}

	opts := ai.Options{APIKey: keyring.ResolveAPIKey(), Timeout: c.Config.AI.Timeout}
	if settings, err := c.Store.GetSettings(); err == nil {
		opts.Enabled = settings.AIEnabled
		opts.Model = settings.AIModel
	}
	if c.Config.AI.Model != "" {
		opts.Model = c.Config.AI.Model
	}

	enricher, err := ai.New(ctx, opts)
	if err != nil {
		logger.Warn("AI enrichment disabled", "error", err)
		enricher = ai.Noop{}
	}
	c.Enricher = enricher
	return enricher
}

// Renderer builds a markdown renderer for the stored theme
func (c *Context) Renderer() (*render.Renderer, error) {
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}
	return render.New(settings.Theme, 0)
}

// IsFileBacked reports whether the store lives in a local file that can be
// backed up.
func (c *Context) IsFileBacked() bool {
	_, remote := c.Store.(*postgres.Store)
	return !remote
}

// PerformAutomaticBackup creates an automatic backup when the auto_backup
// preference is on. Errors are logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	if !c.IsFileBacked() {
		return
	}
	settings, err := c.Store.GetSettings()
	if err != nil || !settings.AutoBackup {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
