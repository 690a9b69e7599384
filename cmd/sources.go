package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/semestra/semestra/internal/records"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show stored rows per source",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return runSources(cmd.Context(), e)
	},
}

var sourcesDropCmd = &cobra.Command{
	Use:   "drop <batch>",
	Short: "Delete one import batch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		n, err := e.store.RowRepo().DeleteBatch(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("batch %s not found", args[0])
		}
		fmt.Fprintf(e.out, "Deleted %d rows.\n", n)
		return nil
	},
}

func runSources(ctx context.Context, e *env) error {
	summaries, err := e.store.RowRepo().Sources(ctx)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintln(e.out, "No rows imported yet.")
		return nil
	}

	fmt.Fprintf(e.out, "%-14s  %-32s  %8s  %8s  %7s\n", "Source", "Name", "Rows", "Students", "Batches")
	fmt.Fprintln(e.out, strings.Repeat("─", 77))
	for _, s := range summaries {
		name := "?"
		if p, err := records.Lookup(s.Source); err == nil {
			name = p.Name
		}
		fmt.Fprintf(e.out, "%-14s  %-32s  %8d  %8d  %7d\n", s.Source, name, s.Rows, s.Students, s.Batches)
	}
	return nil
}

func init() {
	sourcesCmd.AddCommand(sourcesDropCmd)
}
