// Package config loads fixshift configuration from file, environment, and
// defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete fixshift configuration
type Config struct {
	Shift   ShiftConfig   `mapstructure:"shift"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ShiftConfig contains defaults for the shift command
type ShiftConfig struct {
	OutputFile string `mapstructure:"output_file"`
}

// OutputConfig contains report formatting configuration
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Shift:   ShiftConfig{OutputFile: "output.json"},
		Output:  OutputConfig{Format: "text"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads configuration from $HOME/.fixshift/config.yaml (or the current
// directory), overlays FIXSHIFT_* environment variables, and falls back to
// defaults. A missing config file is not an error.
func Load() (*Config, error) {
	config := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".fixshift"))
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("FIXSHIFT")
	viper.AutomaticEnv()

	viper.BindEnv("logging.level", "FIXSHIFT_LOG_LEVEL")
	viper.BindEnv("output.no_color", "NO_COLOR")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format: %s", c.Output.Format)
	}

	if c.Shift.OutputFile == "" {
		return fmt.Errorf("shift output file is required")
	}

	return nil
}
