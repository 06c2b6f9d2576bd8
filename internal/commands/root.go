// Package commands implements the bookctl maintenance CLI: seeding the
// default chart of accounts, importing bookkeeping sheets and exporting
// the year-end reports.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	portssvc "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/services"
	"github.com/bookkeeping-app/bookkeeping_app/internal/core/services"
	"github.com/bookkeeping-app/bookkeeping_app/internal/middleware"
	"github.com/bookkeeping-app/bookkeeping_app/internal/repositories/database/pgsql"
	"github.com/bookkeeping-app/bookkeeping_app/pkg/config"
	"github.com/bookkeeping-app/bookkeeping_app/pkg/database"
)

// runEnv carries the wiring every subcommand needs.
type runEnv struct {
	cfg      *config.Config
	services *portssvc.ServiceContainer
	cleanup  func()
}

// setupEnv loads configuration, connects to the database and builds the
// service container. The returned context carries the CLI logger.
func setupEnv(ctx context.Context) (context.Context, *runEnv, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return ctx, nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx = middleware.WithLogger(ctx, logger)

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return ctx, nil, err
	}

	repos := pgsql.NewRepositoryProvider(pool)
	container := services.NewServiceContainer(repos)

	env := &runEnv{
		cfg:      cfg,
		services: container,
		cleanup:  func() { database.ClosePgxPool(pool) },
	}
	return ctx, env, nil
}

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bookctl",
		Short: "Bookkeeping maintenance commands",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newAddDefaultAccountsCommand())
	rootCmd.AddCommand(newImportLedgerCommand())
	rootCmd.AddCommand(newProfitLossCommand())
	rootCmd.AddCommand(newEndBookYearCommand())

	return rootCmd
}
