package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizcard/internal/catalog"
	"github.com/abhisek/quizcard/internal/llm"
)

var explainCmd = &cobra.Command{
	Use:   "explain <question-no>",
	Short: "Print an LLM explanation for one question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		no, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid question number %q: %w", args[0], err)
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		tut, err := e.tutor(ctx)
		if err != nil {
			return err
		}
		if !tut.Enabled() {
			return llm.ErrDisabled
		}

		cat, err := catalog.Load(ctx, e.cfg.Catalog)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		q, ok := cat.Lookup(no)
		if !ok {
			return fmt.Errorf("no question %d", no)
		}
		outline, err := catalog.LoadOutline(ctx, e.cfg.Outline)
		if err != nil {
			e.log.Warn("load outline", zap.Error(err))
			outline = nil
		}

		ex, err := tut.Explain(ctx, q, outline)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Question %d: %s\n\n", q.No, q.Question)
		fmt.Fprintln(out, ex.Summary)
		fmt.Fprintln(out)
		for _, key := range q.OptionKeys() {
			note, _ := ex.Note(key)
			fmt.Fprintf(out, "  %s) %s\n     %s\n", key, q.Options[key], note)
		}
		return nil
	},
}
