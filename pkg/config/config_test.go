package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("loads full config", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, "fltsd.yaml", `
listen: ":9090"
logLevel: debug
logFormat: json
documentDir: `+dir+`
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Listen)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, dir, cfg.DocumentDir)
	})

	t.Run("missing values fall back to defaults", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "fltsd.yaml", `logLevel: warn`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, Default().Listen, cfg.Listen)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("missing file returns sentinel error", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("empty file returns sentinel error", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "empty.yaml", "")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("invalid yaml returns sentinel error", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "bad.yaml", "listen: [unterminated")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidYAML)
	})

	t.Run("directory path rejected", func(t *testing.T) {
		t.Parallel()
		_, err := Load(t.TempDir())
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("rejects unknown log level", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{LogLevel: "verbose"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects unknown log format", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{LogFormat: "xml"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects missing document dir", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{DocumentDir: filepath.Join(t.TempDir(), "absent")}
		assert.Error(t, cfg.Validate())
	})

	t.Run("fills empty listen address", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, ":8130", cfg.Listen)
	})
}
