package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookkeeping-app/bookkeeping_app/internal/apperrors"
	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/repositories"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, chart_id, code, name, statement_type, debit_type, contact_id, created_at, last_updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	var contactID sql.NullString
	err := row.Scan(
		&account.AccountID,
		&account.ChartID,
		&account.Code,
		&account.Name,
		&account.StatementType,
		&account.DebitType,
		&contactID,
		&account.CreatedAt,
		&account.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if contactID.Valid {
		account.ContactID = contactID.String
	}
	return &account, nil
}

func nullableID(id string) sql.NullString {
	if id == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: id, Valid: true}
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (account_id, chart_id, code, name, statement_type, debit_type, contact_id, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		account.AccountID,
		account.ChartID,
		account.Code,
		account.Name,
		account.StatementType,
		account.DebitType,
		nullableID(account.ContactID),
		account.CreatedAt,
		account.LastUpdatedAt,
	)
	if err != nil {
		translated := translatePgError(err)
		if errors.Is(translated, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: account code %s already exists in chart", apperrors.ErrDuplicate, account.Code)
		}
		if errors.Is(translated, apperrors.ErrConflict) {
			return fmt.Errorf("%w: account %s references a missing chart or contact", apperrors.ErrConflict, account.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

// SaveAccounts bulk-inserts accounts in one transaction, so a partially
// seeded chart never survives a failure.
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO accounts (account_id, chart_id, code, name, statement_type, debit_type, contact_id, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, account := range accounts {
		_, err := tx.Exec(ctx, query,
			account.AccountID,
			account.ChartID,
			account.Code,
			account.Name,
			account.StatementType,
			account.DebitType,
			nullableID(account.ContactID),
			account.CreatedAt,
			account.LastUpdatedAt,
		)
		if err != nil {
			if translated := translatePgError(err); errors.Is(translated, apperrors.ErrDuplicate) {
				return fmt.Errorf("%w: account code %s already exists in chart", apperrors.ErrDuplicate, account.Code)
			}
			return fmt.Errorf("failed to save account %s: %w", account.Code, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit accounts: %w", err)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	account, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return account, nil
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, chartID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE chart_id = $1 AND code = $2;`
	account, err := scanAccount(r.pool.QueryRow(ctx, query, chartID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	return account, nil
}

// FindAccountByName returns the first account with the given name. Names
// are not unique; the synthetic report accounts rely on the fact that
// nothing else uses their reserved names.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, chartID, name string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE chart_id = $1 AND name = $2 ORDER BY code LIMIT 1;`
	account, err := scanAccount(r.pool.QueryRow(ctx, query, chartID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by name %q: %w", name, err)
	}
	return account, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, chartID string, statementType *domain.StatementType) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE chart_id = $1`
	args := []any{chartID}
	if statementType != nil {
		query += ` AND statement_type = $2`
		args = append(args, *statementType)
	}
	query += ` ORDER BY code;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, contact_id = $3, last_updated_at = $4
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		nullableID(account.ContactID),
		account.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		if translated := translatePgError(err); errors.Is(translated, apperrors.ErrConflict) {
			return fmt.Errorf("%w: account %s is still referenced by transactions", apperrors.ErrConflict, accountID)
		}
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
