package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizcard/internal/catalog"
	"github.com/abhisek/quizcard/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz as a local JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cat, err := catalog.Load(ctx, e.cfg.Catalog)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		outline, err := catalog.LoadOutline(ctx, e.cfg.Outline)
		if err != nil {
			e.log.Warn("load outline", zap.Error(err))
			outline = nil
		}

		tut, err := e.tutor(ctx)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "LLM provider not configured:", err)
		}

		opts := server.Options{
			Catalog:  cat,
			Outline:  outline,
			Progress: e.progress(),
			Tutor:    tut,
			Origins:  e.cfg.Serve.Origins,
			Log:      e.log,
		}
		if deps := e.sessionDeps(); deps.Events != nil {
			opts.Observer = deps.Events.Observe
		}

		addr := e.cfg.Serve.Addr
		fmt.Fprintf(cmd.OutOrStdout(), "Serving %d questions on http://%s\n", cat.Len(), addr)
		return server.New(ctx, opts).ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default 127.0.0.1:8080)")
}
