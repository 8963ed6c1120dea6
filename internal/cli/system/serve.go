package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/ledger/internal/cli"
	"github.com/julianstephens/ledger/internal/server"
)

type ServeCmd struct {
	Addr            string        `help:"Address to listen on. Defaults to the settings file value."`
	ShutdownTimeout time.Duration `help:"Time allowed for in-flight requests on shutdown."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	addr := c.Addr
	if addr == "" {
		addr = ctx.Config.Server.Addr
	}
	timeout := c.ShutdownTimeout
	if timeout <= 0 {
		timeout = ctx.Config.Server.ShutdownTimeout
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(ctx.Service, ctx.AI(runCtx))
	ctx.Printf("Serving the ledger API on http://%s (Ctrl+C to stop)\n", addr)
	return srv.ListenAndServe(runCtx, addr, timeout)
}
