// Package config handles configuration loading for Jyotish.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Ephemeris   EphemerisConfig   `mapstructure:"ephemeris"   yaml:"ephemeris"`
	Dasha       DashaConfig       `mapstructure:"dasha"       yaml:"dasha"`
	Panchanga   PanchangaConfig   `mapstructure:"panchanga"   yaml:"panchanga"`
	Varga       VargaConfig       `mapstructure:"varga"       yaml:"varga"`
	Calibration CalibrationConfig `mapstructure:"calibration" yaml:"calibration"`
	API         APIConfig         `mapstructure:"api"         yaml:"api"`
	Logging     LoggingConfig     `mapstructure:"logging"     yaml:"logging"`
}

// EphemerisConfig selects and parameterizes the position provider.
type EphemerisConfig struct {
	Provider string `mapstructure:"provider" yaml:"provider"` // "file" or an externally registered name
	File     string `mapstructure:"file"     yaml:"file"`     // sample-table path for the file provider
	Ayanamsa string `mapstructure:"ayanamsa" yaml:"ayanamsa"` // "lahiri", "raman", "krishnamurti"
}

// DashaConfig holds vimshottari tree construction settings.
type DashaConfig struct {
	HorizonYears float64 `mapstructure:"horizon_years" yaml:"horizon_years"`
}

// PanchangaConfig bounds the boundary root-searches.
type PanchangaConfig struct {
	ToleranceSeconds float64 `mapstructure:"tolerance_seconds" yaml:"tolerance_seconds"`
	MaxIterations    int     `mapstructure:"max_iterations"    yaml:"max_iterations"`
}

// VargaConfig lists the divisional charts computed by default.
type VargaConfig struct {
	Divisions []int `mapstructure:"divisions" yaml:"divisions"`
}

// CalibrationConfig exposes the rule-table switches that classical sources
// disagree on. The D16–D60 tables and node treatment are not verified
// against an external reference; these switches keep them swappable.
type CalibrationConfig struct {
	ShadbalaIncludeNodes     bool `mapstructure:"shadbala_include_nodes"     yaml:"shadbala_include_nodes"`
	AshtakavargaIncludeNodes bool `mapstructure:"ashtakavarga_include_nodes" yaml:"ashtakavarga_include_nodes"`
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// Addr returns the host:port listen address.
func (a APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.jyotish/config.yaml (home directory)
//  3. /etc/jyotish/config.yaml (system)
//
// Environment variables override config file values.
// Format: JYOTISH_<SECTION>_<KEY>, e.g., JYOTISH_EPHEMERIS_FILE
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".jyotish"))
	v.AddConfigPath("/etc/jyotish")

	v.SetEnvPrefix("JYOTISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("JYOTISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("ephemeris.provider", "file")
	v.SetDefault("ephemeris.ayanamsa", "lahiri")

	v.SetDefault("dasha.horizon_years", 120.0)

	v.SetDefault("panchanga.tolerance_seconds", 1.0)
	v.SetDefault("panchanga.max_iterations", 64)

	v.SetDefault("varga.divisions", []int{2, 3, 4, 7, 9, 10, 12, 16, 20, 24, 27, 30, 40, 45, 60})

	v.SetDefault("calibration.shadbala_include_nodes", false)
	v.SetDefault("calibration.ashtakavarga_include_nodes", false)

	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// validate rejects values the engines cannot run with.
func (c *Config) validate() error {
	switch c.Ephemeris.Ayanamsa {
	case "lahiri", "raman", "krishnamurti":
	default:
		return fmt.Errorf("config: unknown ayanamsa %q", c.Ephemeris.Ayanamsa)
	}
	if c.Dasha.HorizonYears <= 0 {
		return fmt.Errorf("config: dasha.horizon_years must be positive, got %v", c.Dasha.HorizonYears)
	}
	if c.Panchanga.ToleranceSeconds <= 0 {
		return fmt.Errorf("config: panchanga.tolerance_seconds must be positive, got %v", c.Panchanga.ToleranceSeconds)
	}
	if c.Panchanga.MaxIterations <= 0 {
		return fmt.Errorf("config: panchanga.max_iterations must be positive, got %d", c.Panchanga.MaxIterations)
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
