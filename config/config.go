// Package config loads pdf2xlsx settings from defaults, an optional YAML
// file, PDF2XLSX_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/tsawler/pdf2xlsx"
	"github.com/tsawler/pdf2xlsx/logging"
	"github.com/tsawler/pdf2xlsx/tables"
)

// Name is the config file base name searched for without --config.
const Name = "pdf2xlsx"

// EnvPrefix prefixes environment variable overrides, e.g. PDF2XLSX_LOG_LEVEL.
const EnvPrefix = "PDF2XLSX"

// Config holds every setting of a run.
type Config struct {
	Input         string  `mapstructure:"input"`
	Output        string  `mapstructure:"output"`
	LogFile       string  `mapstructure:"log_file"`
	LogLevel      string  `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`
	Strategy      string  `mapstructure:"strategy" validate:"oneof=auto lines text"`
	MinRows       int     `mapstructure:"min_rows" validate:"min=1"`
	MinCols       int     `mapstructure:"min_cols" validate:"min=1"`
	SnapTolerance float64 `mapstructure:"snap_tolerance" validate:"gte=0"`
	Report        string  `mapstructure:"report"`
	Progress      bool    `mapstructure:"progress"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	d := tables.DefaultConfig()
	v.SetDefault("input", "")
	v.SetDefault("output", "")
	v.SetDefault("log_file", logging.DefaultFile)
	v.SetDefault("log_level", "info")
	v.SetDefault("strategy", tables.StrategyAuto)
	v.SetDefault("min_rows", d.MinRows)
	v.SetDefault("min_cols", d.MinCols)
	v.SetDefault("snap_tolerance", d.SnapTolerance)
	v.SetDefault("report", "")
	v.SetDefault("progress", true)
}

// NewViper creates a viper instance with defaults and environment overrides
// and reads the config file. With configFile empty, pdf2xlsx.yaml is looked
// up in the working directory and in ~/.config/pdf2xlsx, and its absence is
// not an error.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the settings against their constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Options converts the settings into converter options.
func (c *Config) Options() pdf2xlsx.Options {
	opts := pdf2xlsx.DefaultOptions()
	opts.Strategy = c.Strategy
	opts.Tables.MinRows = c.MinRows
	opts.Tables.MinCols = c.MinCols
	opts.Tables.SnapTolerance = c.SnapTolerance
	return opts
}
