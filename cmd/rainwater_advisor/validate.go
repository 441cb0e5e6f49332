package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/rainwater-advisor/internal/schemas"
	schemafiles "github.com/jonathan/rainwater-advisor/schemas"
)

var validateKinds = map[string]string{
	"site":       schemafiles.SiteInput,
	"assessment": schemafiles.Assessment,
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check JSON files against the site input or assessment schema",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

var validateKind string

func init() {
	validateCmd.Flags().StringVarP(&validateKind, "kind", "k", "site", "Document kind: site or assessment")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	schemaName, ok := validateKinds[validateKind]
	if !ok {
		return fmt.Errorf("unknown kind %q (want site or assessment)", validateKind)
	}

	failed := 0
	for _, path := range args {
		if err := schemas.ValidateFile(schemaName, path); err != nil {
			failed++
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "✗ %v\n", err)
			continue
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(args))
	}
	return nil
}
