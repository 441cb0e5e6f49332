package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"store": "postgres",
		"database_url": "postgres://localhost:5432/rainwater",
		"seed": 42,
		"water_tariff": 65.5,
		"port": 9090,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, "postgres://localhost:5432/rainwater", cfg.DatabaseURL)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 65.5, cfg.WaterTariff)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty is valid", Config{}, ""},
		{"sqlite", Config{Store: StoreSQLite, SQLitePath: ":memory:"}, ""},
		{"postgres with url", Config{Store: StorePostgres, DatabaseURL: "postgres://x"}, ""},
		{"postgres without url", Config{Store: StorePostgres}, "database_url"},
		{"unknown store", Config{Store: "mongo"}, "unknown store"},
		{"negative port", Config{Port: -1}, "port"},
		{"port too large", Config{Port: 70000}, "port"},
		{"negative tariff", Config{WaterTariff: -5}, "water_tariff"},
		{"geocoder url", Config{GeocoderURL: "https://nominatim.openstreetmap.org"}, ""},
		{"geocoder url without scheme", Config{GeocoderURL: "nominatim.local"}, "geocoder_url"},
		{"geocoder url wrong scheme", Config{GeocoderURL: "ftp://geo.local"}, "geocoder_url"},
		{"seed with jitter disabled", Config{Seed: 7, DisableJitter: true}, "mutually exclusive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		Store: StorePostgres,
		Port:  9000,
	}
	defaults := Config{
		Store:       StoreSQLite,
		SQLitePath:  DefaultSQLitePath,
		DatabaseURL: "postgres://default",
		Port:        DefaultPort,
		Seed:        3,
		WaterTariff: 40,
	}

	result := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, StorePostgres, result.Store) // Config value kept
	assert.Equal(t, 9000, result.Port)
	assert.Equal(t, DefaultSQLitePath, result.SQLitePath) // Default used
	assert.Equal(t, "postgres://default", result.DatabaseURL)
	assert.Equal(t, uint64(3), result.Seed)
	assert.Equal(t, 40.0, result.WaterTariff)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{}
	result := cfg.MergeWithDefaults(Config{})

	assert.Empty(t, result.Store)
	assert.Equal(t, DefaultWaterTariff, result.WaterTariff)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"RAINWATER_STORE": "postgres",
		"DATABASE_URL":    "postgres://env",
		"RAINWATER_SEED":  "99",
		"PORT":            "8181",
		"GEOCODER_URL":    "http://geo.local",
		"SQLITE_PATH":     "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := &Config{SQLitePath: "keep.db"}
	require.NoError(t, cfg.ApplyEnv(lookup))

	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.Equal(t, 8181, cfg.Port)
	assert.Equal(t, "http://geo.local", cfg.GeocoderURL)
	assert.Equal(t, "keep.db", cfg.SQLitePath)
}

func TestApplyEnv_InvalidNumbers(t *testing.T) {
	for _, key := range []string{"RAINWATER_SEED", "PORT"} {
		t.Run(key, func(t *testing.T) {
			lookup := func(k string) (string, bool) {
				if k == key {
					return "not-a-number", true
				}
				return "", false
			}
			err := (&Config{}).ApplyEnv(lookup)
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}
