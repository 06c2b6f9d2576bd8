package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookkeeping-app/bookkeeping_app/internal/apperrors"
	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/repositories"
)

type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{pool: pool}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

func (r *PgxLedgerRepository) SaveLedger(ctx context.Context, ledger domain.Ledger) error {
	query := `
		INSERT INTO ledgers (ledger_id, chart_id, year, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.pool.Exec(ctx, query, ledger.LedgerID, ledger.ChartID, ledger.Year, ledger.CreatedAt, ledger.LastUpdatedAt)
	if err != nil {
		if translated := translatePgError(err); errors.Is(translated, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: ledger for year %d already exists", apperrors.ErrDuplicate, ledger.Year)
		}
		return fmt.Errorf("failed to save ledger %s: %w", ledger.LedgerID, err)
	}
	return nil
}

func (r *PgxLedgerRepository) FindLedgerByYear(ctx context.Context, chartID string, year int) (*domain.Ledger, error) {
	query := `
		SELECT ledger_id, chart_id, year, created_at, last_updated_at
		FROM ledgers
		WHERE chart_id = $1 AND year = $2;
	`
	var ledger domain.Ledger
	err := r.pool.QueryRow(ctx, query, chartID, year).Scan(
		&ledger.LedgerID, &ledger.ChartID, &ledger.Year, &ledger.CreatedAt, &ledger.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger for year %d: %w", year, err)
	}
	return &ledger, nil
}

func (r *PgxLedgerRepository) ListLedgers(ctx context.Context, chartID string) ([]domain.Ledger, error) {
	query := `
		SELECT ledger_id, chart_id, year, created_at, last_updated_at
		FROM ledgers
		WHERE chart_id = $1
		ORDER BY year;
	`
	rows, err := r.pool.Query(ctx, query, chartID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledgers: %w", err)
	}
	defer rows.Close()

	var ledgers []domain.Ledger
	for rows.Next() {
		var ledger domain.Ledger
		if err := rows.Scan(&ledger.LedgerID, &ledger.ChartID, &ledger.Year, &ledger.CreatedAt, &ledger.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger: %w", err)
		}
		ledgers = append(ledgers, ledger)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledgers: %w", err)
	}
	return ledgers, nil
}

func (r *PgxLedgerRepository) DeleteLedger(ctx context.Context, ledgerID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ledgers WHERE ledger_id = $1;`, ledgerID)
	if err != nil {
		return fmt.Errorf("failed to delete ledger %s: %w", ledgerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const transactionColumns = `transaction_id, ledger_id, date, description, invoice_number, contact_id, debit_account_id, credit_account_id, amount, created_at, last_updated_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	var contactID sql.NullString
	err := row.Scan(
		&txn.TransactionID,
		&txn.LedgerID,
		&txn.Date,
		&txn.Description,
		&txn.InvoiceNumber,
		&contactID,
		&txn.DebitAccountID,
		&txn.CreditAccountID,
		&txn.Amount,
		&txn.CreatedAt,
		&txn.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if contactID.Valid {
		txn.ContactID = contactID.String
	}
	return &txn, nil
}

func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (transaction_id, ledger_id, date, description, invoice_number, contact_id, debit_account_id, credit_account_id, amount, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		txn.TransactionID,
		txn.LedgerID,
		txn.Date,
		txn.Description,
		txn.InvoiceNumber,
		nullableID(txn.ContactID),
		txn.DebitAccountID,
		txn.CreditAccountID,
		txn.Amount,
		txn.CreatedAt,
		txn.LastUpdatedAt,
	)
	if err != nil {
		if translated := translatePgError(err); errors.Is(translated, apperrors.ErrConflict) {
			return fmt.Errorf("%w: transaction %s references a missing ledger, account or contact", apperrors.ErrConflict, txn.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (r *PgxLedgerRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		UPDATE transactions
		SET ledger_id = $2, date = $3, description = $4, invoice_number = $5, contact_id = $6, amount = $7, last_updated_at = $8
		WHERE transaction_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		txn.TransactionID,
		txn.LedgerID,
		txn.Date,
		txn.Description,
		txn.InvoiceNumber,
		nullableID(txn.ContactID),
		txn.Amount,
		txn.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLedgerRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, chartID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	query := `
		SELECT t.transaction_id, t.ledger_id, t.date, t.description, t.invoice_number, t.contact_id, t.debit_account_id, t.credit_account_id, t.amount, t.created_at, t.last_updated_at
		FROM transactions t
		JOIN ledgers l ON l.ledger_id = t.ledger_id
		WHERE l.chart_id = $1`
	args := []any{chartID}

	if filter.Year != 0 {
		args = append(args, filter.Year)
		query += fmt.Sprintf(` AND l.year = $%d`, len(args))
	}
	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		query += fmt.Sprintf(` AND (t.debit_account_id = $%d OR t.credit_account_id = $%d)`, len(args), len(args))
	}
	if filter.DateLte != nil {
		args = append(args, *filter.DateLte)
		query += fmt.Sprintf(` AND t.date <= $%d`, len(args))
	}
	query += ` ORDER BY t.date, t.created_at;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txns, nil
}

// sumAccounts runs a per-account debit/credit aggregation. Accounts
// without matching transactions do not appear in the result.
func (r *PgxLedgerRepository) sumAccounts(ctx context.Context, query string, args ...any) (map[string]portsrepo.AccountSums, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account sums: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]portsrepo.AccountSums)
	for rows.Next() {
		var accountID string
		var accountSums portsrepo.AccountSums
		if err := rows.Scan(&accountID, &accountSums.DebitTotal, &accountSums.CreditTotal); err != nil {
			return nil, fmt.Errorf("failed to scan account sums: %w", err)
		}
		sums[accountID] = accountSums
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account sums: %w", err)
	}
	return sums, nil
}

func (r *PgxLedgerRepository) SumAccountsThrough(ctx context.Context, chartID string, statementType domain.StatementType, cutoff time.Time) (map[string]portsrepo.AccountSums, error) {
	query := `
		SELECT a.account_id,
			COALESCE(SUM(CASE WHEN t.debit_account_id = a.account_id THEN t.amount ELSE 0 END), 0) AS debit_total,
			COALESCE(SUM(CASE WHEN t.credit_account_id = a.account_id THEN t.amount ELSE 0 END), 0) AS credit_total
		FROM accounts a
		JOIN transactions t ON t.debit_account_id = a.account_id OR t.credit_account_id = a.account_id
		JOIN ledgers l ON l.ledger_id = t.ledger_id
		WHERE a.chart_id = $1 AND a.statement_type = $2 AND l.chart_id = $1 AND t.date <= $3
		GROUP BY a.account_id;
	`
	return r.sumAccounts(ctx, query, chartID, statementType, cutoff)
}

func (r *PgxLedgerRepository) SumAccountsByLedger(ctx context.Context, ledgerID string, statementType domain.StatementType) (map[string]portsrepo.AccountSums, error) {
	query := `
		SELECT a.account_id,
			COALESCE(SUM(CASE WHEN t.debit_account_id = a.account_id THEN t.amount ELSE 0 END), 0) AS debit_total,
			COALESCE(SUM(CASE WHEN t.credit_account_id = a.account_id THEN t.amount ELSE 0 END), 0) AS credit_total
		FROM accounts a
		JOIN transactions t ON t.debit_account_id = a.account_id OR t.credit_account_id = a.account_id
		WHERE t.ledger_id = $1 AND a.statement_type = $2
		GROUP BY a.account_id;
	`
	return r.sumAccounts(ctx, query, ledgerID, statementType)
}
