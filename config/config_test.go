package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/ged/gedcom"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
	assert.Equal(t, gedcom.Lenient, Default().Level())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
line_length: 80
line_ending: crlf
validation_level: strict
server:
  addr: ":9000"
lsp:
  cache_ttl: 5m
`), 0o644))

	v, err := NewViper(file)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 80, cfg.LineLength)
	assert.Equal(t, gedcom.Strict, cfg.Level())
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, int64(32<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 5*time.Minute, cfg.LSP.CacheTTL)
	eol, err := cfg.EOL()
	require.NoError(t, err)
	assert.Equal(t, "\r\n", eol)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("GED_LINE_LENGTH", "120")
	t.Setenv("GED_SERVER_ADDR", "0.0.0.0:1234")

	v, err := NewViper(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err, "an explicit config file must exist")
	assert.Nil(t, v)

	v = viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer())
	v.AutomaticEnv()
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.LineLength)
	assert.Equal(t, "0.0.0.0:1234", cfg.Server.Addr)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative line length", func(c *Config) { c.LineLength = -1 }},
		{"line ending", func(c *Config) { c.LineEnding = "lfcr" }},
		{"level", func(c *Config) { c.ValidationLevel = "pedantic" }},
		{"upload limit", func(c *Config) { c.Server.MaxUploadBytes = 0 }},
		{"ttl", func(c *Config) { c.LSP.CacheTTL = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWriteOptions(t *testing.T) {
	cfg := Default()
	cfg.LineLength = 10
	cfg.LineEnding = "crlf"
	doc := gedcom.NewDocument(&gedcom.Note{Text: "0123456789abc"})
	out, err := gedcom.Marshal(doc, cfg.WriteOptions()...)
	require.NoError(t, err)
	assert.Equal(t, "0 NOTE 0123456789\r\n1 CONC abc\r\n", string(out))
}
