package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rainwater-advisor/internal/config"
	"github.com/jonathan/rainwater-advisor/internal/geocode"
	"github.com/jonathan/rainwater-advisor/internal/schemas"
	"github.com/jonathan/rainwater-advisor/internal/types"
)

func noEnv(string) (string, bool) { return "", false }

func TestLoadSiteInput_File(t *testing.T) {
	in, err := loadSiteInput(writeSiteInput(t, siteInputJSON), nil)
	require.NoError(t, err)

	assert.Equal(t, 150.0, in.RoofAreaM2)
	assert.Equal(t, "Guntur", in.Location)
	assert.Equal(t, 4, in.NumDwellers)
}

func TestLoadSiteInput_Stdin(t *testing.T) {
	in, err := loadSiteInput("-", strings.NewReader(siteInputJSON))
	require.NoError(t, err)
	assert.Equal(t, "loam", in.SoilType)
}

func TestLoadSiteInput_SchemaViolation(t *testing.T) {
	path := writeSiteInput(t, `{"roof_area_m2": 150, "roof_type": "concrete", "soil_type": "loam", "available_space_m2": 25}`)

	_, err := loadSiteInput(path, nil)
	require.Error(t, err)

	var ve *schemas.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), "num_dwellers")
}

func TestLoadSiteInput_MissingFile(t *testing.T) {
	_, err := loadSiteInput(filepath.Join(t.TempDir(), "missing.json"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read site input")
}

func TestWriteJSON_CreatesDirectories(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "dir", "out.json")
	require.NoError(t, writeJSON(nil, out, map[string]int{"capacity": 42}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var got map[string]int
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 42, got["capacity"])
}

func TestWriteJSON_Writer(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, writeJSON(&sb, "", []string{"a"}))
	assert.Equal(t, "[\n  \"a\"\n]\n", sb.String())
}

func TestRandomSource(t *testing.T) {
	assert.Equal(t, 0.5, randomSource(config.Config{DisableJitter: true}).Float64())

	a := randomSource(config.Config{Seed: 7})
	b := randomSource(config.Config{Seed: 7})
	assert.Equal(t, a.Float64(), b.Float64())
}

func TestResolveConfig_Defaults(t *testing.T) {
	cfg, err := resolveConfig(&cobra.Command{}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultStore, cfg.Store)
	assert.Equal(t, config.DefaultSQLitePath, cfg.SQLitePath)
	assert.Equal(t, config.DefaultPort, cfg.Port)
	assert.Equal(t, float64(config.DefaultWaterTariff), cfg.WaterTariff)
}

func TestResolveConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"store": "sqlite", "sqlite_path": "file.db", "port": 9000}`), 0644))

	rootConfigPath = path
	defer func() { rootConfigPath = "" }()

	env := map[string]string{"SQLITE_PATH": "env.db"}
	cfg, err := resolveConfig(&cobra.Command{}, func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	require.NoError(t, err)

	assert.Equal(t, "env.db", cfg.SQLitePath)
	assert.Equal(t, 9000, cfg.Port)
}

func TestResolveConfig_InvalidStore(t *testing.T) {
	_, err := resolveConfig(&cobra.Command{}, func(k string) (string, bool) {
		if k == "RAINWATER_STORE" {
			return "postgres", true
		}
		return "", false
	})
	require.Error(t, err)
}

func TestNewAdvisor_UsesTariff(t *testing.T) {
	a, err := newAdvisor(config.Config{DisableJitter: true, WaterTariff: 100})
	require.NoError(t, err)
	got, err := a.Assess(t.Context(), types.SiteInput{
		RoofAreaM2:        150,
		RoofType:          "concrete",
		AnnualRainfallMm:  800,
		GroundwaterDepthM: 15,
		SoilType:          "loam",
		AvailableSpaceM2:  25,
		NumDwellers:       4,
	})
	require.NoError(t, err)
	assert.InDelta(t, 283.9, got.Harvest.PaybackYears, 0.001)
}

func TestNewGeocoder(t *testing.T) {
	g, err := newGeocoder(config.Config{})
	require.NoError(t, err)
	assert.IsType(t, &geocode.TableGeocoder{}, g)

	g, err = newGeocoder(config.Config{GeocoderURL: "https://nominatim.openstreetmap.org"})
	require.NoError(t, err)
	assert.IsType(t, &geocode.CachedGeocoder{}, g)

	_, err = newGeocoder(config.Config{GeocoderURL: "nominatim"})
	require.Error(t, err)
}
