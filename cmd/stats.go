package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizcard/internal/quiz"
	"github.com/abhisek/quizcard/internal/session"
	"github.com/abhisek/quizcard/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz progress and recorded activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		deps := e.sessionDeps()
		deps.Events = nil
		s, err := session.Start(ctx, deps)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printSummary(out, s.Controller.Summary())

		if e.events == nil {
			return nil
		}
		counts, err := e.events.Counts(ctx)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		printCounts(out, counts)
		return nil
	},
}

func printSummary(w io.Writer, sum quiz.Summary) {
	fmt.Fprintln(w, "Progress")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "%-12s %4d\n", "Questions", sum.Total)
	fmt.Fprintf(w, "%-12s %4d\n", "Answered", sum.Answered())
	fmt.Fprintf(w, "%-12s %4d\n", "Revealed", sum.Revealed)
	fmt.Fprintf(w, "%-12s %4d  %3.0f%%\n", "Correct", sum.Exact, sum.Fraction(sum.Exact)*100)
	fmt.Fprintf(w, "%-12s %4d  %3.0f%%\n", "Partial", sum.Partial, sum.Fraction(sum.Partial)*100)
	fmt.Fprintf(w, "%-12s %4d  %3.0f%%\n", "Incorrect", sum.None, sum.Fraction(sum.None)*100)
}

func printCounts(w io.Writer, c store.EventCounts) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Activity")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "%-12s %4d\n", "Sessions", c.Sessions)
	for _, k := range sortedKeys(c.ByAction) {
		fmt.Fprintf(w, "%-12s %4d\n", k, c.ByAction[k])
	}
	if len(c.ByStatus) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Toggles by resulting status")
		for _, k := range sortedKeys(c.ByStatus) {
			fmt.Fprintf(w, "  %-10s %4d\n", k, c.ByStatus[k])
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
