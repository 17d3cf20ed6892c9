package cmd

import (
	"github.com/spf13/cobra"
)

// playCmd is the explicit form of running eliteprep with no subcommand.
var playCmd = &cobra.Command{
	Use:     "play",
	Aliases: []string{"start"},
	Short:   "Open the revision hub",
	Args:    cobra.NoArgs,
	RunE:    runApp,
}

func init() {
	playCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9464")
}
