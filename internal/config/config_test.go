package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
log:
  level: debug
  development: true
write: true
document: model/insurance.cml
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
	assert.True(t, cfg.Write)
	assert.Equal(t, "model/insurance.cml", cfg.Document)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("write: false\n"))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Write)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("log: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config YAML")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, &Config{Log: cfg.Log}, cfg)
	assert.Equal(t, "warn", cfg.Log.Level)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("document: a.cml\n"), 0o644))

	cfg, err = Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "a.cml", cfg.Document)
}
