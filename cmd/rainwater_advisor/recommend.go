package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/rainwater-advisor/internal/advisor"
	"github.com/jonathan/rainwater-advisor/internal/observability"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Score a site and recommend a harvesting system",
	Long:  "Deterministically scores a site on five criteria and selects a system archetype with alternatives and reasoning. The input must already carry rainfall and groundwater depth.",
	RunE:  runRecommend,
}

var (
	recommendInput string
	recommendOut   string
)

func init() {
	recommendCmd.Flags().StringVarP(&recommendInput, "input", "i", "", "Path to SiteInput JSON file, or - for stdin (required)")
	recommendCmd.Flags().StringVarP(&recommendOut, "out", "o", "", "Path to write the recommendation JSON (default stdout)")
	markRequired(recommendCmd, "input")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, os.LookupEnv)
	if err != nil {
		return err
	}
	in, err := loadSiteInput(recommendInput, cmd.InOrStdin())
	if err != nil {
		return err
	}

	rec, err := advisor.AnalyzeAndRecommend(in)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintRecommendation(rec)
	}
	return writeJSON(cmd.OutOrStdout(), recommendOut, rec)
}
