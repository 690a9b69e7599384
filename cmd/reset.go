package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the database with every imported row and LLM event",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("reset deletes all data; run again with --yes to confirm")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := cfg.DBPath()
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		removed, err := removeDatabase(dbPath)
		if err != nil {
			return err
		}
		if !removed {
			fmt.Fprintf(cmd.OutOrStdout(), "No database at %s.\n", dbPath)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", dbPath)
		return nil
	},
}

// removeDatabase deletes the SQLite file and its WAL side files. It
// reports whether the main file existed.
func removeDatabase(path string) (bool, error) {
	removed := false
	for i, p := range []string{path, path + "-wal", path + "-shm"} {
		err := os.Remove(p)
		switch {
		case err == nil:
			if i == 0 {
				removed = true
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return removed, fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return removed, nil
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
