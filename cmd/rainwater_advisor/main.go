// Package main provides the rainwater_advisor CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rainwater_advisor",
	Short: "Rainwater harvesting feasibility advisor",
	Long: `Rainwater Advisor estimates rainfall and groundwater for a site, scores harvesting feasibility,
recommends a system type and sizes and prices the structure.

Configuration can be loaded from a JSON file using --config. Environment variables
(DATABASE_URL, RAINWATER_STORE, SQLITE_PATH, GEOCODER_URL, RAINWATER_SEED, PORT) override the file,
and command-line flags override both.`,
	SilenceUsage: true,
}

var (
	rootConfigPath string
	rootVerbose    bool
	rootSeed       uint64
	rootNoJitter   bool
	rootStore      string
	rootDBURL      string
	rootSQLitePath string
	rootTariff     float64
	rootGeocoder   string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootConfigPath, "config", "", "Path to config.json file")
	flags.BoolVarP(&rootVerbose, "verbose", "v", false, "Print formatted report boxes")
	flags.Uint64Var(&rootSeed, "seed", 0, "Seed for reproducible estimates (0 = time-seeded)")
	flags.BoolVar(&rootNoJitter, "no-jitter", false, "Disable random variation in estimates")
	flags.StringVar(&rootStore, "store", "", "Assessment store: sqlite or postgres")
	flags.StringVar(&rootDBURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	flags.StringVar(&rootSQLitePath, "sqlite-path", "", "SQLite database file")
	flags.StringVar(&rootGeocoder, "geocoder-url", "", "Nominatim-compatible geocoder base URL (default offline table)")
	flags.Float64Var(&rootTariff, "water-tariff", 0, "Water price per kilolitre used for payback")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
