package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/rainwater-advisor/internal/advisor"
	"github.com/jonathan/rainwater-advisor/internal/config"
	"github.com/jonathan/rainwater-advisor/internal/db"
	"github.com/jonathan/rainwater-advisor/internal/estimation"
	"github.com/jonathan/rainwater-advisor/internal/geocode"
	"github.com/jonathan/rainwater-advisor/internal/schemas"
	"github.com/jonathan/rainwater-advisor/internal/types"
	schemafiles "github.com/jonathan/rainwater-advisor/schemas"
)

// resolveConfig merges the config file, environment and flags, in that order
// of increasing priority.
func resolveConfig(cmd *cobra.Command, lookup func(string) (string, bool)) (config.Config, error) {
	var cfg config.Config
	if rootConfigPath != "" {
		loaded, err := config.LoadConfig(rootConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = rootVerbose
	}
	if flags.Changed("seed") {
		cfg.Seed = rootSeed
	}
	if flags.Changed("no-jitter") {
		cfg.DisableJitter = rootNoJitter
	}
	if flags.Changed("store") {
		cfg.Store = rootStore
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = rootDBURL
	}
	if flags.Changed("sqlite-path") {
		cfg.SQLitePath = rootSQLitePath
	}
	if flags.Changed("geocoder-url") {
		cfg.GeocoderURL = rootGeocoder
	}
	if flags.Changed("water-tariff") {
		cfg.WaterTariff = rootTariff
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		Store:      config.DefaultStore,
		SQLitePath: config.DefaultSQLitePath,
		Port:       config.DefaultPort,
	})
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// randomSource picks the estimator jitter source for cfg.
func randomSource(cfg config.Config) estimation.RandomSource {
	switch {
	case cfg.DisableJitter:
		return estimation.NoJitter()
	case cfg.Seed != 0:
		return estimation.NewSeededSource(cfg.Seed)
	default:
		return estimation.NewTimeSource()
	}
}

// newGeocoder returns the offline table geocoder, falling back to a cached
// remote service when one is configured.
func newGeocoder(cfg config.Config) (geocode.Geocoder, error) {
	table := geocode.NewTableGeocoder()
	if cfg.GeocoderURL == "" {
		return table, nil
	}
	remote, err := geocode.NewRemoteGeocoder(cfg.GeocoderURL, nil)
	if err != nil {
		return nil, err
	}
	return geocode.NewCachedGeocoder(geocode.Chain{table, remote}, geocode.DefaultCacheTTL), nil
}

func newAdvisor(cfg config.Config) (*advisor.Advisor, error) {
	g, err := newGeocoder(cfg)
	if err != nil {
		return nil, err
	}
	return advisor.New(
		advisor.WithRandomSource(randomSource(cfg)),
		advisor.WithGeocoder(g),
		advisor.WithWaterTariff(cfg.WaterTariff),
	), nil
}

func openStore(ctx context.Context, cfg config.Config) (db.Store, error) {
	store, err := db.Open(ctx, cfg.Store, cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	return store, nil
}

// loadSiteInput reads a SiteInput JSON document from path ("-" for stdin)
// and checks it against the site input schema.
func loadSiteInput(path string, stdin io.Reader) (types.SiteInput, error) {
	var in types.SiteInput

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return in, fmt.Errorf("failed to read site input %s: %w", path, err)
	}

	if err := schemas.ValidateDocument(schemafiles.SiteInput, data); err != nil {
		return in, fmt.Errorf("site input %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("failed to unmarshal site input JSON: %w", err)
	}
	return in, nil
}

// writeJSON writes v as indented JSON to outPath, or to w when outPath is empty.
func writeJSON(w io.Writer, outPath string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}
	data = append(data, '\n')

	if outPath == "" {
		_, err := w.Write(data)
		return err
	}

	outputDir := filepath.Dir(outPath)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outPath, err)
	}
	return nil
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
}
