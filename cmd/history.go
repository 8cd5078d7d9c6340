package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/examiz/internal/app"
	"github.com/abhisek/examiz/internal/config"
	"github.com/abhisek/examiz/internal/screens/history"
	"github.com/abhisek/examiz/internal/store"
	"github.com/abhisek/examiz/internal/ui/layout"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past exam results",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd, config.Load().DBPath)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			limit, _ := cmd.Flags().GetInt("limit")
			return printHistory(cmd, st.ResultRepo(), limit)
		}
		return app.Run(app.NewModel(history.New(st.ResultRepo()), nil, nil))
	},
}

func init() {
	historyCmd.Flags().Bool("plain", false, "Print a table instead of opening the browser")
	historyCmd.Flags().Int("limit", 20, "Maximum rows with --plain (0 for all)")
}

func printHistory(cmd *cobra.Command, repo store.ResultRepo, limit int) error {
	records, err := repo.Recent(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No results yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SUBMITTED\tTITLE\tSCORE\tANSWERED\tTIME\tLEVEL")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%.0f%%\t%d/%d\t%s\t%s\n",
			r.SubmittedAt.Local().Format("2006-01-02 15:04"),
			r.Title,
			r.Score,
			r.Answered, r.Total,
			layout.FormatClock(r.ElapsedSeconds),
			r.RecommendedTier.DisplayName(),
		)
	}
	return w.Flush()
}
