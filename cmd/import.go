package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/semestra/semestra/internal/records"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import raw result rows exported by a source system",
	Long: `Import a JSON array of result rows. Rows are stored verbatim under a new
batch id and normalized with the source profile whenever they are read.
Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		data, err := readInput(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		return runImport(cmd.Context(), e, data)
	},
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func runImport(ctx context.Context, e *env, data []byte) error {
	profile, err := e.cfg.Profile()
	if err != nil {
		return err
	}

	rows, err := records.DecodeRows(data)
	if err != nil {
		return err
	}

	// Normalize once to report what the rows will yield.
	_, stats := records.Normalize(rows, profile)

	res, err := e.store.RowRepo().ImportRows(ctx, profile, rows)
	if err != nil {
		return fmt.Errorf("import rows: %w", err)
	}

	e.log.Info("rows imported",
		zap.String("source", profile.ID),
		zap.String("batch", res.Batch),
		zap.Int("rows", res.Rows),
		zap.Int("dropped", stats.Dropped()),
	)

	fmt.Fprintf(e.out, "Imported %d rows from %s (batch %s)\n", res.Rows, profile.Name, res.Batch)
	fmt.Fprintf(e.out, "  usable records: %d\n", stats.Kept)
	if stats.Dropped() > 0 {
		fmt.Fprintf(e.out, "  skipped: %d without student, %d with invalid semester, %d with unknown component\n",
			stats.MissingStudent, stats.BadSemester, stats.UnknownComponent)
	}
	return nil
}
