package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all Postgres repositories on one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ChartRepo:   newPgxChartRepository(dbPool),
		ContactRepo: newPgxContactRepository(dbPool),
		AccountRepo: newPgxAccountRepository(dbPool),
		LedgerRepo:  newPgxLedgerRepository(dbPool),
	}
}
