package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/rainwater-advisor/internal/observability"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run a full feasibility assessment for a site",
	Long: `Estimates rainfall and groundwater (filling in any annual_rainfall_mm or groundwater_depth_m
left at zero), scores the site, recommends a system and sizes it. With --save the report is
stored and can be retrieved later with "history show".`,
	RunE: runAssess,
}

var (
	assessInput string
	assessOut   string
	assessSave  bool
)

func init() {
	assessCmd.Flags().StringVarP(&assessInput, "input", "i", "", "Path to SiteInput JSON file, or - for stdin (required)")
	assessCmd.Flags().StringVarP(&assessOut, "out", "o", "", "Path to write the assessment JSON (default stdout)")
	assessCmd.Flags().BoolVar(&assessSave, "save", false, "Store the assessment")
	markRequired(assessCmd, "input")

	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd, os.LookupEnv)
	if err != nil {
		return err
	}
	in, err := loadSiteInput(assessInput, cmd.InOrStdin())
	if err != nil {
		return err
	}

	adv, err := newAdvisor(cfg)
	if err != nil {
		return err
	}
	a, err := adv.Assess(ctx, in)
	if err != nil {
		return fmt.Errorf("assessment failed: %w", err)
	}

	if assessSave {
		store, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SaveAssessment(ctx, a); err != nil {
			return fmt.Errorf("failed to save assessment: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Saved assessment %s\n", a.ID)
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintAssessment(a)
	}
	return writeJSON(cmd.OutOrStdout(), assessOut, a)
}
