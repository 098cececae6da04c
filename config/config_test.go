package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Mereenie", "Palm Valley", "BECGS/Dingo"}, cfg.Fields)
	assert.Equal(t, "HSE", cfg.Markers.Section)
	assert.Equal(t, "Production", cfg.Markers.Terminator)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "hsereport.db", cfg.Database)
}

func TestLoad_FileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hsereport.yaml")
	content := `
fields:
  - Mereenie
  - Dingo
markers:
  section: Safety
  terminator: Output
server:
  addr: ":9999"
  password: secret
database: /tmp/test.db
concurrency: 8
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Mereenie", "Dingo"}, cfg.Fields)
	assert.Equal(t, "Safety", cfg.Markers.Section)
	assert.Equal(t, "Output", cfg.Markers.Terminator)
	assert.Equal(t, "Nil", cfg.Markers.Nil) // default survives partial overlay
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "secret", cfg.Server.Password)
	assert.Equal(t, 8, cfg.Concurrency)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HSEREPORT_ADDR", ":7777")
	t.Setenv("HSEREPORT_PASSWORD", "fromenv")
	t.Setenv("HSEREPORT_DB", "env.db")
	t.Setenv("HSEREPORT_CONCURRENCY", "2")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":7777", cfg.Server.Addr)
	assert.Equal(t, "fromenv", cfg.Server.Password)
	assert.Equal(t, "env.db", cfg.Database)
	assert.Equal(t, 2, cfg.Concurrency)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fields: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidFieldConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fields: [A, A]"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate field")
}

func TestConfig_FieldSet(t *testing.T) {
	cfg := DefaultConfig()
	fs := cfg.FieldSet()

	require.NoError(t, fs.Validate())
	assert.Equal(t, cfg.Fields, fs.Fields)

	// The field set is a copy, not a view.
	fs.Fields[0] = "mutated"
	assert.Equal(t, "Mereenie", cfg.Fields[0])
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Addr = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Server.MaxUploadBytes = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Database = ""
	assert.Error(t, cfg.Validate())
}
