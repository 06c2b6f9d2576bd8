package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookkeeping-app/bookkeeping_app/internal/apperrors"
	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/repositories"
)

type PgxChartRepository struct {
	pool *pgxpool.Pool
}

func newPgxChartRepository(pool *pgxpool.Pool) portsrepo.ChartRepository {
	return &PgxChartRepository{pool: pool}
}

var _ portsrepo.ChartRepository = (*PgxChartRepository)(nil)

func (r *PgxChartRepository) SaveChart(ctx context.Context, chart domain.ChartOfAccounts) error {
	query := `
		INSERT INTO charts (chart_id, name, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.pool.Exec(ctx, query, chart.ChartID, chart.Name, chart.CreatedAt, chart.LastUpdatedAt)
	if err != nil {
		if translated := translatePgError(err); errors.Is(translated, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: chart %s already exists", apperrors.ErrDuplicate, chart.ChartID)
		}
		return fmt.Errorf("failed to save chart %s: %w", chart.ChartID, err)
	}
	return nil
}

// GetDefault returns the single chart. The schema does not enforce a
// singleton, so the oldest chart wins if more than one exists.
func (r *PgxChartRepository) GetDefault(ctx context.Context) (*domain.ChartOfAccounts, error) {
	query := `
		SELECT chart_id, name, created_at, last_updated_at
		FROM charts
		ORDER BY created_at
		LIMIT 1;
	`
	var chart domain.ChartOfAccounts
	err := r.pool.QueryRow(ctx, query).Scan(&chart.ChartID, &chart.Name, &chart.CreatedAt, &chart.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get default chart: %w", err)
	}
	return &chart, nil
}

// DeleteAll removes every chart; accounts, ledgers and transactions go
// with them through the schema's cascades.
func (r *PgxChartRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM charts;`); err != nil {
		return fmt.Errorf("failed to delete charts: %w", err)
	}
	return nil
}
