package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examiz/internal/exam"
	"github.com/abhisek/examiz/internal/questionset"
	"github.com/abhisek/examiz/internal/ui/layout"
)

var validateCmd = &cobra.Command{
	Use:   "validate <questions.json>",
	Short: "Check a question set without starting an exam",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := questionset.LoadFile(args[0])
		if err != nil {
			return err
		}
		printQuestionSet(cmd, loaded)
		return nil
	},
}

func printQuestionSet(cmd *cobra.Command, loaded *questionset.Loaded) {
	out := cmd.OutOrStdout()
	set := loaded.Set

	kinds := make(map[exam.Kind]int)
	for _, q := range set.Questions() {
		kinds[q.Kind]++
	}

	fmt.Fprintf(out, "%s: %d questions\n", set.Title, set.Len())
	if loaded.DurationSeconds > 0 {
		fmt.Fprintf(out, "  duration: %s\n", layout.FormatClock(loaded.DurationSeconds))
	}
	fmt.Fprintf(out, "  kinds: choice=%d true_false=%d free_text=%d\n",
		kinds[exam.KindChoice], kinds[exam.KindTrueFalse], kinds[exam.KindFreeText])

	tiers := set.Tiers()
	if len(tiers) > 0 {
		names := make([]string, len(tiers))
		for i, t := range tiers {
			names[i] = string(t)
		}
		fmt.Fprintf(out, "  tiers: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintln(out, "OK")
}
