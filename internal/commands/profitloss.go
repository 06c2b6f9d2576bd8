package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bookkeeping-app/bookkeeping_app/internal/exporters"
)

func newProfitLossCommand() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "profit-loss",
		Short: "Print the profit and loss statement for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, env, err := setupEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.cleanup()

			if year == 0 {
				year = time.Now().Year()
			}

			report, err := env.services.Reporting.ProfitAndLoss(ctx, year)
			if err != nil {
				return fmt.Errorf("failed to compute profit and loss for %d: %w", year, err)
			}

			return exporters.WriteCSV(cmd.OutOrStdout(), exporters.ProfitLossMatrix(report))
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "fiscal year (defaults to the current year)")
	return cmd
}
