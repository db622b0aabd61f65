package app

import (
	"io"
	"log/slog"

	"github.com/debarchito/time-table-generator/internal/artifacts"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	writer *artifacts.Writer
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and artifact writer.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		writer: artifacts.NewWriter(cfg.OutDir, cfg.SQLite, outW),
	}
}
