package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizcard/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "quizcard",
	Short: "Multiple-choice quiz practice in the terminal",
	Long: "Quizcard walks through a catalog of multiple-choice questions, reveals the\n" +
		"answer once enough options are chosen, and remembers progress between runs.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/quizcard/config.yaml)")
	pf.String("catalog", "", "Question catalog file or URL (default: bundled sample)")
	pf.String("outline", "", "Syllabus outline file or URL (default: bundled sample)")
	pf.String("db", "", "Database DSN or SQLite path (overrides QUIZCARD_DB)")
	pf.String("db-driver", "", "Progress store: sqlite, postgres or memory")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-file", "", "Log file path")
	pf.String("provider", "", "LLM provider for explanations: anthropic, openai, openrouter, gemini, mock")
	pf.String("model", "", "LLM model name")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration with the command's flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	return config.Load(config.Options{ConfigFile: file, Flags: cmd.Flags()})
}
