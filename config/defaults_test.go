package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfigDefaults(t *testing.T) {
	cfg, err := ReadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestReadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
variant: legacy
field_width: 4
legacy:
  width: 640
  truncate: true
locale: en
`), 0o644))
	t.Setenv("PIXELDUMP_LOG_LEVEL", "debug")
	t.Setenv("PIXELDUMP_LEGACY_WIDTH", "800")

	cfg, err := ReadConfig(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, VariantLegacy, cfg.Variant)
	assert.Equal(t, 4, cfg.FieldWidth)
	assert.Equal(t, 800, cfg.Legacy.Width)
	assert.True(t, cfg.Legacy.Truncate)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DefaultOutputName, cfg.OutputName)
}

func TestReadConfigMissingExplicitFile(t *testing.T) {
	_, err := ReadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixeldump.yaml")
	want := DefaultConfig()
	want.Variant = VariantLegacy
	want.Legacy.Width = 320
	require.NoError(t, SaveConfig(path, want))

	got, err := ReadConfig(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidate(t *testing.T) {
	tests := map[string]func(*Config){
		"variant":       func(c *Config) { c.Variant = "sideways" },
		"field width":   func(c *Config) { c.FieldWidth = 2 },
		"legacy width":  func(c *Config) { c.Legacy.Width = 0 },
		"max dimension": func(c *Config) { c.MaxDimension = -1 },
		"output name":   func(c *Config) { c.OutputName = "a/b.png" },
		"dump name":     func(c *Config) { c.DumpName = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
	require.NoError(t, DefaultConfig().Validate())
}

func TestDumpOptions(t *testing.T) {
	cfg := DefaultConfig()
	opts, err := cfg.DumpOptions()
	require.NoError(t, err)
	assert.True(t, opts.Layout.HasHeader())
	assert.Equal(t, 1, opts.FieldWidth)

	cfg.Variant = VariantLegacy
	cfg.Legacy.Truncate = true
	opts, err = cfg.DumpOptions()
	require.NoError(t, err)
	assert.False(t, opts.Layout.HasHeader())
	assert.True(t, opts.Truncate)

	cfg.LayoutFile = filepath.Join(t.TempDir(), "missing.yml")
	_, err = cfg.DumpOptions()
	require.Error(t, err)
}
