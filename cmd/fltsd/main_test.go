package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkahiu/fltsd/pkg/config"
	"github.com/gkahiu/fltsd/pkg/registry"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fltsd")
}

func TestValidateCommand(t *testing.T) {
	t.Parallel()

	t.Run("valid manifest", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		reg, err := registry.Sample(dir)
		require.NoError(t, err)
		person, _ := reg.Lookup(registry.SamplePersonID)

		manifest := filepath.Join(dir, "templates.yaml")
		require.NoError(t, os.WriteFile(manifest, []byte(`
templates:
  - id: D4F9A1A4
    path: `+person.Path+`
    records:
      - key: "190865"
        values:
          lbl_first_name: Alex
`), 0o600))

		cfgPath := filepath.Join(dir, "fltsd.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("templatesFile: "+manifest), 0o600))

		out, err := runCommand(t, "validate", "--config", cfgPath)
		require.NoError(t, err)
		assert.Contains(t, out, "OK   D4F9A1A4")
		assert.Contains(t, out, "1 templates validated")
	})

	t.Run("manifest referencing missing project fails", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		manifest := filepath.Join(dir, "templates.yaml")
		require.NoError(t, os.WriteFile(manifest, []byte(`
templates:
  - id: GONE
    path: `+filepath.Join(dir, "absent.xml")+`
`), 0o600))

		cfgPath := filepath.Join(dir, "fltsd.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("templatesFile: "+manifest), 0o600))

		out, err := runCommand(t, "validate", "--config", cfgPath)
		assert.Error(t, err)
		assert.Contains(t, out, "FAIL GONE")
	})

	t.Run("no manifest configured", func(t *testing.T) {
		t.Parallel()
		out, err := runCommand(t, "validate")
		require.NoError(t, err)
		assert.Contains(t, out, "built-in samples")
	})
}

func TestBuildRegistry(t *testing.T) {
	t.Parallel()

	t.Run("falls back to samples", func(t *testing.T) {
		t.Parallel()
		cfg := config.Default()
		cfg.DocumentDir = t.TempDir()

		reg, err := buildRegistry(cfg)
		require.NoError(t, err)
		assert.Equal(t, 2, reg.Len())
	})
}
