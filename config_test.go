package logd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pooriaaskarim/logd/sink"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logd.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
width = 120
level = "warn"
formatter = "boxed"
encoder = "json"
border = "rounded"
color = "never"

[fields]
timestamp = true
logger_name = false
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Width)
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "boxed", cfg.Formatter)
	assert.Equal(t, "json", cfg.Encoder)
	assert.Equal(t, "rounded", cfg.Border)
	assert.Equal(t, "never", cfg.Color)
	assert.True(t, cfg.Fields.Timestamp)
	assert.False(t, cfg.Fields.LoggerName)
}

func TestLoadConfigRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("width = ["), 0o644))
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero_width", func(c *Config) { c.Width = 0 }},
		{"negative_width", func(c *Config) { c.Width = -4 }},
		{"bad_level", func(c *Config) { c.Level = "loud" }},
		{"bad_formatter", func(c *Config) { c.Formatter = "fancy" }},
		{"bad_encoder", func(c *Config) { c.Encoder = "yaml" }},
		{"bad_border", func(c *Config) { c.Border = "wavy" }},
		{"bad_color", func(c *Config) { c.Color = "sometimes" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNewFromConfigBuildsWorkingLogger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Encoder = "plain"
	cfg.Color = "never"
	mem := sink.NewMemory()
	l, err := NewFromConfig(cfg, mem)
	require.NoError(t, err)
	defer l.Close()
	l.Info("configured")
	require.Len(t, mem.Events(), 1)
	assert.Zero(t, l.Arena().Outstanding())
}
