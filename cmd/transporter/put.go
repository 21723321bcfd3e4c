package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"journal-transporter/transporter/internal/api"
	"journal-transporter/transporter/internal/common"
	"journal-transporter/transporter/internal/config"
	"journal-transporter/transporter/internal/db"
	"journal-transporter/transporter/internal/nested"
	"journal-transporter/transporter/internal/transport"

	"github.com/spf13/cobra"
)

var putFile string

var putCmd = &cobra.Command{
	Use:   "put [file]",
	Short: "Import a journal from a JSON file",
	Long: `Read one journal record from a JSON file and import it.

The file is printed before it is imported. The database, file store and
install settings come from the same environment the server reads.

Examples:
  transporter put --file journal.json
  transporter put journal.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPut,
}

func init() {
	putCmd.Flags().StringVarP(&putFile, "file", "f", "", "JSON file holding the journal record")
}

func runPut(cmd *cobra.Command, args []string) error {
	path := putFile
	if path == "" && len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("a file is required: transporter put --file <path>")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	install, err := config.LoadInstall(cfg.InstallSettings)
	if err != nil {
		return err
	}
	orm, sqlDB, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	cache, err := common.NewCache(cfg)
	if err != nil {
		return err
	}
	defer cache.Close()

	deps := api.InitDependencies(cfg, install, orm, sqlDB, cache, nil)
	return importFile(cmd.Context(), cmd.OutOrStdout(), deps.Services.Importers.Journals, path)
}

// importFile prints the record held in path and imports it through journals.
func importFile(ctx context.Context, out io.Writer, journals transport.Endpoint, path string) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	payload, err := transport.DecodePayload(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	pretty, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(pretty))

	if _, _, err := journals.ImportRecord(ctx, transport.Request{Payload: payload, Lookups: nested.Lookups{}}); err != nil {
		return err
	}

	fmt.Fprintln(out, "Done!")
	return nil
}
