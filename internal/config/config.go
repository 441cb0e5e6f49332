// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

// Supported assessment stores
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Defaults applied by MergeWithDefaults callers
const (
	DefaultStore       = StoreSQLite
	DefaultSQLitePath  = "rainwater.db"
	DefaultPort        = 8080
	DefaultWaterTariff = 50.0
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Storage
	Store       string `json:"store,omitempty"`        // "sqlite" or "postgres"
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	SQLitePath  string `json:"sqlite_path,omitempty"`  // SQLite file, ":memory:" for ephemeral

	// Estimation
	Seed          uint64  `json:"seed,omitempty"`           // Fixed seed for reproducible jitter (0 = time-seeded)
	DisableJitter bool    `json:"disable_jitter,omitempty"` // Use midpoint values instead of random variation
	WaterTariff   float64 `json:"water_tariff,omitempty"`   // Currency per kilolitre, used for payback

	// Geocoding. Empty keeps lookups offline against the region table.
	GeocoderURL string `json:"geocoder_url,omitempty"` // Nominatim-compatible base URL

	// Server
	Port int `json:"port,omitempty"`

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: empty fields are accepted; defaults are applied by MergeWithDefaults.
func (c *Config) Validate() error {
	switch c.Store {
	case "", StoreSQLite:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required when store is %q", StorePostgres)
		}
	default:
		return fmt.Errorf("config error: unknown store %q (want %q or %q)", c.Store, StoreSQLite, StorePostgres)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.WaterTariff < 0 {
		return fmt.Errorf("config error: 'water_tariff' must be non-negative")
	}
	if c.GeocoderURL != "" {
		u, err := url.Parse(c.GeocoderURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config error: 'geocoder_url' must be an http(s) URL")
		}
	}
	if c.Seed != 0 && c.DisableJitter {
		return fmt.Errorf("config error: 'seed' and 'disable_jitter' are mutually exclusive")
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SQLitePath == "" {
		result.SQLitePath = defaults.SQLitePath
	}
	if result.Seed == 0 {
		result.Seed = defaults.Seed
	}
	if result.GeocoderURL == "" {
		result.GeocoderURL = defaults.GeocoderURL
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.WaterTariff == 0 {
		if defaults.WaterTariff > 0 {
			result.WaterTariff = defaults.WaterTariff
		} else {
			result.WaterTariff = DefaultWaterTariff
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv overrides fields from RAINWATER_STORE, DATABASE_URL, SQLITE_PATH,
// GEOCODER_URL, RAINWATER_SEED and PORT when they are set. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("RAINWATER_STORE"); ok && v != "" {
		c.Store = v
	}
	if v, ok := lookup("DATABASE_URL"); ok && v != "" {
		c.DatabaseURL = v
	}
	if v, ok := lookup("SQLITE_PATH"); ok && v != "" {
		c.SQLitePath = v
	}
	if v, ok := lookup("GEOCODER_URL"); ok && v != "" {
		c.GeocoderURL = v
	}
	if v, ok := lookup("RAINWATER_SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid RAINWATER_SEED %q: %w", v, err)
		}
		c.Seed = seed
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	return nil
}
