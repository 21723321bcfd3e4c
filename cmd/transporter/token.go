package main

import (
	"fmt"
	"os"
	"time"

	"journal-transporter/transporter/internal/auth"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for a migration client",
	Long: `Sign a bearer token with TRANSPORTER_SECRET. The API accepts it in an
"Authorization: Bearer <token>" header in place of an API key.

Examples:
  transporter token --subject migration-client
  transporter token --subject nightly --ttl 2h`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		token, err := auth.IssueToken([]byte(os.Getenv("TRANSPORTER_SECRET")), tokenSubject, tokenTTL, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "", "Client the token is issued to")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "How long the token stays valid")
	_ = tokenCmd.MarkFlagRequired("subject")
}
