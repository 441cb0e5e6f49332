package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/rainwater-advisor/internal/db"
	"github.com/jonathan/rainwater-advisor/internal/observability"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, show and delete stored assessments",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored assessments, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored assessment",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored assessment",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var (
	historyLimit  int
	historyOffset int
)

func init() {
	historyListCmd.Flags().IntVar(&historyLimit, "limit", db.DefaultListLimit, "Maximum assessments to list")
	historyListCmd.Flags().IntVar(&historyOffset, "offset", 0, "Assessments to skip")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func withStore(cmd *cobra.Command, fn func(ctx context.Context, store db.Store, verbose bool) error) error {
	ctx := context.Background()
	cfg, err := resolveConfig(cmd, os.LookupEnv)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(ctx, store, cfg.Verbose)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, store db.Store, _ bool) error {
		summaries, err := store.ListAssessments(ctx, historyLimit, historyOffset)
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No stored assessments")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "ID\tCREATED\tLOCATION\tSYSTEM\tSCORE\tCOST")
		for _, s := range summaries {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n",
				s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.Location, s.SystemType.Label(), s.FeasibilityScore, s.EstimatedCost)
		}
		return tw.Flush()
	})
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid assessment ID format: %w", err)
	}
	return withStore(cmd, func(ctx context.Context, store db.Store, verbose bool) error {
		a, err := store.GetAssessment(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("assessment not found: %s", id)
		}
		if verbose {
			observability.NewPrinter(cmd.ErrOrStderr()).PrintAssessment(a)
		}
		return writeJSON(cmd.OutOrStdout(), "", a)
	})
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid assessment ID format: %w", err)
	}
	return withStore(cmd, func(ctx context.Context, store db.Store, _ bool) error {
		deleted, err := store.DeleteAssessment(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("assessment not found: %s", id)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted assessment %s\n", id)
		return nil
	})
}
