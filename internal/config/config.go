package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"weatherman/pkg/logging"
)

// EnvPrefix prefixes every environment variable read by LoadConfig
const EnvPrefix = "WEATHERMAN"

// Config represents the complete application configuration
type Config struct {
	Data    DataConfig    `envconfig:"DATA"`
	Logging LoggingConfig `envconfig:"LOGGING"`
	Metrics MetricsConfig `envconfig:"METRICS"`
	Report  ReportConfig  `envconfig:"REPORT"`
}

// DataConfig locates the per-city input files
type DataConfig struct {
	RootDir    string `envconfig:"ROOT_DIR" default:"."`
	DirPattern string `envconfig:"DIR_PATTERN" default:"%s_weather"`
	Extension  string `envconfig:"EXTENSION" default:".txt"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `envconfig:"LEVEL" default:"warn"`
}

// MetricsConfig controls the optional metrics export
type MetricsConfig struct {
	Textfile string `envconfig:"TEXTFILE"`
}

// ReportConfig controls console rendering
type ReportConfig struct {
	Color bool `envconfig:"COLOR" default:"true"`
}

// LoadConfig reads an optional .env file and then the environment
func LoadConfig() (*Config, error) {
	// A missing .env is the normal case
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for values the loader cannot work with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Data.RootDir) == "" {
		return fmt.Errorf("data root dir must not be empty")
	}

	if n := strings.Count(c.Data.DirPattern, "%s"); n != 1 || strings.Count(c.Data.DirPattern, "%") != 1 {
		return fmt.Errorf("data dir pattern %q must contain exactly one %%s verb", c.Data.DirPattern)
	}

	if !strings.HasPrefix(c.Data.Extension, ".") || len(c.Data.Extension) < 2 {
		return fmt.Errorf("data extension %q must start with a dot", c.Data.Extension)
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging level: %w", err)
	}

	return nil
}

// CityDir returns the directory holding a city's files, relative to RootDir
func (c *Config) CityDir(city string) string {
	return fmt.Sprintf(c.Data.DirPattern, city)
}

// CityPath returns the absolute-or-relative filesystem path of a city's directory
func (c *Config) CityPath(city string) string {
	return filepath.Join(c.Data.RootDir, c.CityDir(city))
}
