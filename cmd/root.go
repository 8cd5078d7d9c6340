package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/examiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "examiz [questions.json]",
	Short: "Timed exams in your terminal",
	Long:  "Examiz runs a timed exam from a JSON question set, tracks answers and review marks, and keeps a history of results.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runTake(cmd, args[0])
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite results database (overrides EXAMIZ_DB env var)")
	rootCmd.PersistentFlags().String("log-file", "", "Append logs to this file (overrides EXAMIZ_LOG_FILE env var)")
	addTakeFlags(rootCmd)

	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then EXAMIZ_DB / the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
