package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/rainwater-advisor/internal/advisor"
	"github.com/jonathan/rainwater-advisor/internal/observability"
	"github.com/jonathan/rainwater-advisor/internal/types"
)

var specsCmd = &cobra.Command{
	Use:   "specs",
	Short: "Size and price a structure for a system type",
	Long:  `Generates structure specifications (capacity, dimensions, materials, cost) for the given system type, e.g. --system-type injection_well_system or --system-type "Overhead Tank System".`,
	RunE:  runSpecs,
}

var (
	specsInput      string
	specsSystemType string
	specsOut        string
)

func init() {
	specsCmd.Flags().StringVarP(&specsInput, "input", "i", "", "Path to SiteInput JSON file, or - for stdin (required)")
	specsCmd.Flags().StringVarP(&specsSystemType, "system-type", "t", "", "System archetype ID or label (required)")
	specsCmd.Flags().StringVarP(&specsOut, "out", "o", "", "Path to write the specifications JSON (default stdout)")
	markRequired(specsCmd, "input", "system-type")

	rootCmd.AddCommand(specsCmd)
}

func runSpecs(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, os.LookupEnv)
	if err != nil {
		return err
	}

	archetype, ok := types.ParseArchetype(specsSystemType)
	if !ok {
		return fmt.Errorf("unknown system type %q", specsSystemType)
	}
	in, err := loadSiteInput(specsInput, cmd.InOrStdin())
	if err != nil {
		return err
	}

	specs, err := advisor.GenerateStructureSpecs(in, archetype)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintStructure(specs)
	}
	return writeJSON(cmd.OutOrStdout(), specsOut, specs)
}
