package main

import (
	"journal-transporter/transporter/internal/logging"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "transporter",
	Short: "Import journal data exported by a migration client",
	Long: `Transporter feeds exported journal records into the host database
through the same import pipeline the HTTP API uses.

Examples:
  transporter put --file journal.json
  transporter token --subject migration-client --ttl 24h`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			return logging.Init("development")
		}
		logging.InitNop()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline activity to stderr")
	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(tokenCmd)
}
