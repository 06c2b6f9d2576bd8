package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/bookkeeping-app/bookkeeping_app/internal/exporters"
)

// newEndBookYearCommand exports the year-end reports: the profit and
// loss statement for the year and the balance sheet as of December 31.
func newEndBookYearCommand() *cobra.Command {
	var year int
	var outDir string

	cmd := &cobra.Command{
		Use:   "end-book-year",
		Short: "Export the year-end profit and loss statement and balance sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, env, err := setupEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.cleanup()

			if year == 0 {
				year = time.Now().Year() - 1
			}
			if outDir == "" {
				outDir = env.cfg.ExportDir
			}

			report, err := env.services.Reporting.ProfitAndLoss(ctx, year)
			if err != nil {
				return fmt.Errorf("failed to compute profit and loss for %d: %w", year, err)
			}
			plPath := filepath.Join(outDir, fmt.Sprintf("finance_%d_pl.csv", year))
			if err := exporters.WriteCSVFile(plPath, exporters.ProfitLossMatrix(report)); err != nil {
				return err
			}

			asOf := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
			balance, err := env.services.Reporting.BalanceSheet(ctx, asOf)
			if err != nil {
				return fmt.Errorf("failed to compute balance sheet for %d: %w", year, err)
			}
			balancePath := filepath.Join(outDir, fmt.Sprintf("finance_%d_balance.csv", year))
			if err := exporters.WriteCSVFile(balancePath, exporters.BalanceMatrix(balance)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s.\n", plPath, balancePath)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "book year to close (defaults to last year)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (defaults to EXPORT_DIR)")
	return cmd
}
