// Package config loads ged settings from flags, GED_* environment
// variables, a YAML config file and built-in defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dhamidi/ged/gedcom"
)

const EnvPrefix = "GED"

type Config struct {
	LineLength      int    `mapstructure:"line_length" yaml:"line_length"`
	LineEnding      string `mapstructure:"line_ending" yaml:"line_ending"`
	ValidationLevel string `mapstructure:"validation_level" yaml:"validation_level"`
	Format          string `mapstructure:"format" yaml:"format"`
	Server          Server `mapstructure:"server" yaml:"server"`
	LSP             LSP    `mapstructure:"lsp" yaml:"lsp"`
}

type Server struct {
	Addr           string `mapstructure:"addr" yaml:"addr"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
}

type LSP struct {
	// CacheTTL is how long a parsed document is kept after the editor closes it.
	CacheTTL time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

func Default() Config {
	return Config{
		LineLength:      gedcom.DefaultMaxLineLength,
		LineEnding:      "lf",
		ValidationLevel: "lenient",
		Format:          "json",
		Server: Server{
			Addr:           "127.0.0.1:8080",
			MaxUploadBytes: 32 << 20,
		},
		LSP: LSP{
			CacheTTL: 30 * time.Minute,
		},
	}
}

// NewViper returns a viper instance reading GED_* variables and, when
// present, the config file. An empty file searches $HOME/.ged/config.yaml.
func NewViper(file string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer())
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return v, nil
		}
		v.AddConfigPath(filepath.Join(home, ".ged"))
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func envReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("line_length", d.LineLength)
	v.SetDefault("line_ending", d.LineEnding)
	v.SetDefault("validation_level", d.ValidationLevel)
	v.SetDefault("format", d.Format)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.max_upload_bytes", d.Server.MaxUploadBytes)
	v.SetDefault("lsp.cache_ttl", d.LSP.CacheTTL)
}

// Load decodes the effective configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.LineLength < 0 {
		errs = append(errs, fmt.Errorf("line_length must not be negative, got %d", c.LineLength))
	}
	if _, err := c.EOL(); err != nil {
		errs = append(errs, err)
	}
	if _, err := gedcom.ParseLevel(c.ValidationLevel); err != nil {
		errs = append(errs, fmt.Errorf("validation_level: %w", err))
	}
	if c.Server.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_upload_bytes must be positive, got %d", c.Server.MaxUploadBytes))
	}
	if c.LSP.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("lsp.cache_ttl must not be negative, got %s", c.LSP.CacheTTL))
	}
	return errors.Join(errs...)
}

// EOL returns the line terminator named by LineEnding.
func (c Config) EOL() (string, error) {
	switch strings.ToLower(c.LineEnding) {
	case "", "lf":
		return "\n", nil
	case "crlf":
		return "\r\n", nil
	case "cr":
		return "\r", nil
	}
	return "", fmt.Errorf("line_ending must be lf, crlf or cr, got %q", c.LineEnding)
}

// Level returns the parsed validation level.
func (c Config) Level() gedcom.Level {
	level, _ := gedcom.ParseLevel(c.ValidationLevel)
	return level
}

// WriteOptions returns the writer options the configuration implies.
func (c Config) WriteOptions() []gedcom.WriteOption {
	eol, _ := c.EOL()
	return []gedcom.WriteOption{
		gedcom.WithMaxLineLength(c.LineLength),
		gedcom.WithLineEnding(eol),
	}
}
