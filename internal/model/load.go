package model

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/debarchito/time-table-generator/internal/ctxlog"
	"github.com/debarchito/time-table-generator/internal/fsutil"
)

// Model file extensions the loader recognizes.
const (
	ExtJSON = ".json"
	ExtHCL  = ".hcl"
)

// Load reads a single model file, picking the decoder by extension.
func Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading model file.", "path", path)

	var m *Model
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtJSON:
		m, err = FromJSON(path)
	case ExtHCL:
		m, err = FromHCL(path)
	default:
		return nil, fmt.Errorf("unsupported model file extension: %s", path)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("Model loaded.",
		"rooms", len(m.Rooms),
		"teachers", len(m.Teachers),
		"subjects", len(m.Subjects),
		"groups", len(m.Groups),
	)
	return m, nil
}

// Discover resolves a path into the model files to process. A file path
// yields itself; a directory is searched recursively for model files.
func Discover(ctx context.Context, path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat model path %s: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := fsutil.FindFilesByExtensions(path, ExtJSON, ExtHCL)
	if err != nil {
		return nil, fmt.Errorf("failed to find model files in %s: %w", path, err)
	}
	if len(files) == 0 {
		ctxlog.FromContext(ctx).Warn("No model files found in path.", "path", path)
	}
	return files, nil
}
