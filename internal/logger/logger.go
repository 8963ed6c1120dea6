// Package logger holds the process-wide structured logger. Nothing is
// logged until Init is called.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/ledger/internal/config"
	"github.com/julianstephens/ledger/internal/constants"
)

// Logger is the global logger instance
var Logger *log.Logger

// Options selects where ledger logs and how much
type Options struct {
	// Dir is the configuration directory; the log file lives in Dir/logs
	Dir string
	// Debug forces debug level and tees the log to stderr
	Debug bool
	File  config.LogConfig
}

// Init points the global logger at a rotating file under opts.Dir
func Init(opts Options) error {
	level, err := levelFor(opts)
	if err != nil {
		return err
	}

	logDir := filepath.Join(opts.Dir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	var writer io.Writer = rotating(filepath.Join(logDir, constants.LogFileName), opts.File)
	if opts.Debug {
		writer = io.MultiWriter(os.Stderr, writer)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    opts.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

func levelFor(opts Options) (log.Level, error) {
	if opts.Debug {
		return log.DebugLevel, nil
	}
	if opts.File.Level == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(opts.File.Level)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", opts.File.Level, err)
	}
	return level, nil
}

// rotating falls back to the stock rotation policy for unset fields
func rotating(path string, cfg config.LogConfig) *lumberjack.Logger {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compressed(),
	}
	if w.MaxSize <= 0 {
		w.MaxSize = constants.DefaultLogMaxSizeMB
	}
	return w
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs msg and exits with status 1
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
