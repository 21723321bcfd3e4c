package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get [file]",
	Short: "Export a journal to a JSON file (not implemented)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.New("get is not implemented")
	},
}
