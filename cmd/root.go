package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "eliteprep",
	Short: "A-Level maths revision in the terminal",
	Long: `ElitePrep is a terminal revision companion for Edexcel IAL Mathematics.

Practise topic questions, sit timed mock exams, browse past papers and keep
a ledger of every mistake. AI features need GEMINI_API_KEY, OPENAI_API_KEY,
ANTHROPIC_API_KEY or OPENROUTER_API_KEY.`,
	SilenceUsage: true,
	RunE:         runApp,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ELITEPREP_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/eliteprep/config.yaml)")
	rootCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9464")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(mistakesCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(papersCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
