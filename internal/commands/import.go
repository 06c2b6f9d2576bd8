package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bookkeeping-app/bookkeeping_app/internal/importers"
)

func newImportLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ledger <file.csv>",
		Short: "Import transactions from a bookkeeping sheet",
		Long: `Reads a CSV in the bookkeeping sheet layout and records its
transactions. Transactions that already exist with identical content are
skipped. Transactions recorded before a failing row stay committed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, env, err := setupEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.cleanup()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			matrix, err := importers.ReadCSV(f)
			if err != nil {
				return err
			}

			importer := importers.NewImporter(env.services.Account, env.services.Contact, env.services.Ledger)
			result, err := importer.Import(ctx, matrix)
			if err != nil {
				return fmt.Errorf("import failed after %d transaction(s): %w", result.Imported, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transaction(s), skipped %d duplicate(s).\n", result.Imported, result.Skipped)
			return nil
		},
	}
	return cmd
}
