package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "semestra",
	Short: "Assessment analytics for school recomposition programs",
	Long: "Semestra compares students' assessment results across two semesters, " +
		"ranks their weak skills by grade difficulty and builds remediation plans.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides SEMESTRA_DB env var)")
	pf.String("config", "", "Config file (default: ./semestra.yaml or $XDG_CONFIG_HOME/semestra/semestra.yaml)")
	pf.String("log", "", "Log mode: quiet, dev or prod")
	pf.String("source", "", "Source profile (prova-parana, parceiro)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
