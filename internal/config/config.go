// Package config loads runtime settings for chart builds from viper.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/viper"
)

// ErrInvalid indicates a configuration value is out of bounds.
var ErrInvalid = errors.New("invalid configuration")

// MaxTZOffset bounds the configured UTC offset in hours.
const MaxTZOffset = 14.0

// GeocodeConfig selects and tunes the city resolver.
type GeocodeConfig struct {
	Nominatim bool   `mapstructure:"nominatim"`
	Endpoint  string `mapstructure:"endpoint"`
	UserAgent string `mapstructure:"user_agent"`
}

// Config holds all runtime configuration for a chart session.
// Values are populated from .astralyogi.yaml, ASTRALYOGI_* env vars, and CLI flags.
type Config struct {
	TZOffset      float64       `mapstructure:"tz_offset"`
	AdjustDST     bool          `mapstructure:"adjust_dst"`
	Frame         string        `mapstructure:"frame"`
	Divisions     []int         `mapstructure:"divisions"`
	EphemerisPath string        `mapstructure:"ephemeris_path"`
	TelemetryPath string        `mapstructure:"telemetry_path"`
	Verbose       bool          `mapstructure:"verbose"`
	Geocode       GeocodeConfig `mapstructure:"geocode"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("tz_offset", 5.5)
	viper.SetDefault("adjust_dst", false)
	viper.SetDefault("frame", "lahiri")
	viper.SetDefault("divisions", []int{9, 10})
	viper.SetDefault("ephemeris_path", "ephemeris.toml")
	viper.SetDefault("telemetry_path", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("geocode.nominatim", false)
	viper.SetDefault("geocode.endpoint", "https://nominatim.openstreetmap.org/search")
	viper.SetDefault("geocode.user_agent", "astralyogi")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value bounds.
func (c Config) Validate() error {
	if math.IsNaN(c.TZOffset) || math.Abs(c.TZOffset) > MaxTZOffset {
		return fmt.Errorf("%w: tz_offset %v outside ±%v hours", ErrInvalid, c.TZOffset, MaxTZOffset)
	}
	for _, n := range c.Divisions {
		if n < 1 {
			return fmt.Errorf("%w: division %d must be at least 1", ErrInvalid, n)
		}
	}
	if c.Frame == "" {
		return fmt.Errorf("%w: frame must not be empty", ErrInvalid)
	}
	return nil
}
