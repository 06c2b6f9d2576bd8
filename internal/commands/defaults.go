package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddDefaultAccountsCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "add-default-accounts",
		Short: "Create the default chart of accounts",
		Long: `Creates the default chart of accounts based on the Dutch standard
scheme. With --force, all existing charts (including their ledgers and
transactions) are removed first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, env, err := setupEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.cleanup()

			if err := env.services.Account.SeedDefaultAccounts(ctx, force); err != nil {
				return fmt.Errorf("failed to create default accounts: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Default accounts created.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "delete all existing charts first")
	return cmd
}
