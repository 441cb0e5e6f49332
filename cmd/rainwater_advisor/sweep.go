package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/rainwater-advisor/internal/advisor"
	"github.com/jonathan/rainwater-advisor/internal/observability"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Re-evaluate a site across values of one parameter",
	Long: fmt.Sprintf(`Runs the recommendation and sizing for each value of one input parameter.
Parameters: %s, %s, %s, %s, %s.`,
		advisor.ParamRoofArea, advisor.ParamRainfall, advisor.ParamSpace, advisor.ParamDwellers, advisor.ParamGroundwaterDepth),
	RunE: runSweep,
}

var (
	sweepInput  string
	sweepParam  string
	sweepValues []float64
	sweepOut    string
)

func init() {
	sweepCmd.Flags().StringVarP(&sweepInput, "input", "i", "", "Path to SiteInput JSON file, or - for stdin (required)")
	sweepCmd.Flags().StringVarP(&sweepParam, "param", "p", "", "Parameter to vary (required)")
	sweepCmd.Flags().Float64SliceVar(&sweepValues, "values", nil, "Comma-separated values to try (required)")
	sweepCmd.Flags().StringVarP(&sweepOut, "out", "o", "", "Path to write the sweep JSON (default stdout)")
	markRequired(sweepCmd, "input", "param", "values")

	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, os.LookupEnv)
	if err != nil {
		return err
	}
	in, err := loadSiteInput(sweepInput, cmd.InOrStdin())
	if err != nil {
		return err
	}

	rows, err := advisor.Sweep(context.Background(), in, sweepParam, sweepValues)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintSweep(sweepParam, rows)
	}
	return writeJSON(cmd.OutOrStdout(), sweepOut, map[string]any{
		"param": sweepParam,
		"rows":  rows,
	})
}
