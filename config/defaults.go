package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"PixelDump/dump"
	"PixelDump/layout"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// Variants of the dump layout.
const (
	VariantHeader = "header"
	VariantLegacy = "legacy"
)

const (
	DefaultOutputName = "output_image.png"
	DefaultDumpName   = "binary_output.txt"
	EnvPrefix         = "PIXELDUMP"
)

type LegacyConfig struct {
	Width    int  `mapstructure:"width" yaml:"width"`
	Truncate bool `mapstructure:"truncate" yaml:"truncate"`
}

type LogConfig struct {
	Format string `mapstructure:"format" yaml:"format"` // text or json
	Level  string `mapstructure:"level" yaml:"level"`
}

// Config holds every setting of the converter. Values come from the config
// file, PIXELDUMP_* environment variables and command-line flags, in
// increasing order of precedence.
type Config struct {
	Variant      string       `mapstructure:"variant" yaml:"variant"`
	FieldWidth   int          `mapstructure:"field_width" yaml:"field_width"`
	Legacy       LegacyConfig `mapstructure:"legacy" yaml:"legacy"`
	MaxDimension int          `mapstructure:"max_dimension" yaml:"max_dimension"`
	OutputName   string       `mapstructure:"output_name" yaml:"output_name"` // image written by decode
	DumpName     string       `mapstructure:"dump_name" yaml:"dump_name"`     // dump written by encode into a directory
	LayoutFile   string       `mapstructure:"layout_file" yaml:"layout_file"`
	Locale       string       `mapstructure:"locale" yaml:"locale"`
	Log          LogConfig    `mapstructure:"log" yaml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Variant:    VariantHeader,
		FieldWidth: 1,
		Legacy: LegacyConfig{
			Width: dump.DefaultLegacyWidth,
		},
		MaxDimension: dump.DefaultMaxDimension,
		OutputName:   DefaultOutputName,
		DumpName:     DefaultDumpName,
		Locale:       "ru",
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// SetDefaults registers the defaults and environment lookup on v.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("variant", d.Variant)
	v.SetDefault("field_width", d.FieldWidth)
	v.SetDefault("legacy.width", d.Legacy.Width)
	v.SetDefault("legacy.truncate", d.Legacy.Truncate)
	v.SetDefault("max_dimension", d.MaxDimension)
	v.SetDefault("output_name", d.OutputName)
	v.SetDefault("dump_name", d.DumpName)
	v.SetDefault("layout_file", d.LayoutFile)
	v.SetDefault("locale", d.Locale)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.level", d.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// ReadConfig loads the configuration into a Config. An explicit configFile
// must exist; otherwise pixeldump.yaml is searched for in the working
// directory and $HOME/.pixeldump, and its absence is not an error.
func ReadConfig(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("pixeldump")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.pixeldump")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read configuration file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML to configPath.
func SaveConfig(configPath string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write configuration file '%s': %w", configPath, err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Variant {
	case VariantHeader, VariantLegacy:
	default:
		return fmt.Errorf("invalid variant %q, must be %q or %q", c.Variant, VariantHeader, VariantLegacy)
	}
	if c.FieldWidth != 1 && c.FieldWidth != 4 {
		return fmt.Errorf("invalid field_width %d, must be 1 or 4", c.FieldWidth)
	}
	if c.Legacy.Width <= 0 {
		return fmt.Errorf("invalid legacy.width %d, must be positive", c.Legacy.Width)
	}
	if c.MaxDimension <= 0 {
		return fmt.Errorf("invalid max_dimension %d, must be positive", c.MaxDimension)
	}
	if strings.TrimSpace(c.OutputName) == "" || strings.ContainsAny(c.OutputName, `/\`) {
		return fmt.Errorf("invalid output_name %q, must be a plain file name", c.OutputName)
	}
	if strings.TrimSpace(c.DumpName) == "" || strings.ContainsAny(c.DumpName, `/\`) {
		return fmt.Errorf("invalid dump_name %q, must be a plain file name", c.DumpName)
	}
	return nil
}

// DumpOptions resolves the layout and builds the codec options.
func (c *Config) DumpOptions() (dump.Options, error) {
	var (
		l   *layout.Layout
		err error
	)
	switch {
	case c.LayoutFile != "":
		l, err = layout.Load(c.LayoutFile)
	case c.Variant == VariantLegacy:
		l, err = layout.Builtin(layout.Legacy)
	default:
		l, err = layout.Builtin(layout.Headered)
	}
	if err != nil {
		return dump.Options{}, err
	}

	return dump.Options{
		Layout:       l,
		FieldWidth:   c.FieldWidth,
		LegacyWidth:  c.Legacy.Width,
		Truncate:     c.Legacy.Truncate,
		MaxDimension: c.MaxDimension,
	}, nil
}
