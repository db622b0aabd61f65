package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("positional model path", func(t *testing.T) {
		cfg, shouldExit, err := Parse([]string{"examples/one.json"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.False(t, shouldExit)
		assert.Equal(t, "examples/one.json", cfg.ModelPath)
		assert.Equal(t, "solutions", cfg.OutDir)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.False(t, cfg.SQLite)
	})

	t.Run("model flag wins over positional", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-model", "a.json", "b.json"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "a.json", cfg.ModelPath)
	})

	t.Run("shorthand flag", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-m", "a.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "a.hcl", cfg.ModelPath)
	})

	t.Run("out and sqlite flags", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-out", "build", "-sqlite", "a.json"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "build", cfg.OutDir)
		assert.True(t, cfg.SQLite)
	})

	t.Run("no path prints usage and exits cleanly", func(t *testing.T) {
		out := &bytes.Buffer{}
		cfg, shouldExit, err := Parse(nil, out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("help flag exits cleanly", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, shouldExit, err := Parse([]string{"-h"}, out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("invalid log-format", func(t *testing.T) {
		_, _, err := Parse([]string{"-log-format", "xml", "a.json"}, &bytes.Buffer{})
		require.Error(t, err)
		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
		assert.Contains(t, exitErr.Message, "invalid log-format")
	})

	t.Run("invalid log-level", func(t *testing.T) {
		_, _, err := Parse([]string{"-log-level", "loud", "a.json"}, &bytes.Buffer{})
		require.Error(t, err)
		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("unknown flag is an ExitError", func(t *testing.T) {
		_, _, err := Parse([]string{"-frobnicate"}, &bytes.Buffer{})
		require.Error(t, err)
		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("log levels are case-insensitive", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-log-level", "DEBUG", "a.json"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
	})
}
