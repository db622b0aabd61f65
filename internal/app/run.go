package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/debarchito/time-table-generator/internal/ctxlog"
	"github.com/debarchito/time-table-generator/internal/model"
	"github.com/debarchito/time-table-generator/internal/solver"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	files, err := model.Discover(ctx, cfg.ModelPath)
	if err != nil {
		return fmt.Errorf("failed to discover model files: %w", err)
	}
	a.logger.Debug("Model files discovered.", "count", len(files))

	for _, file := range files {
		if err := a.generate(ctx, file); err != nil {
			return fmt.Errorf("failed to generate timetable for %s: %w", file, err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// generate runs the full pipeline for a single model file: load, validate,
// solve, and write the artifact tree.
func (a *App) generate(ctx context.Context, file string) error {
	name := modelName(file)
	a.logger.Info("Generating timetable.", "model", name, "file", file)

	m, err := model.Load(ctx, file)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("invalid model: %w", err)
	}

	sol := solver.New(m).Solve(ctx)
	a.logger.Info("Timetable solved.",
		"model", name,
		"classes", len(sol.Classes),
		"unassigned", len(sol.Unassigned),
	)

	if err := a.writer.Write(ctx, name, m, sol); err != nil {
		return err
	}

	a.logger.Info("Solution artifacts written.", "model", name)
	return nil
}

// modelName is the artifact directory name for a model file: the base name
// without its extension.
func modelName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
