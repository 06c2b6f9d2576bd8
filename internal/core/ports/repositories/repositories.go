package repositories

import (
	"context"
	"time"

	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountSums holds the aggregated transaction totals of one account: the
// sum of amounts where the account is the debit leg and, separately, where
// it is the credit leg. Both default to zero when no transactions match.
type AccountSums struct {
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

// TransactionFilter selects transactions for listing.
// Zero-valued fields are ignored.
type TransactionFilter struct {
	Year      int        // Ledger year
	AccountID string     // Either leg references this account
	DateLte   *time.Time // Transaction date at or before
}

// RepositoryProvider bundles the repositories for service wiring.
type RepositoryProvider struct {
	ChartRepo   ChartRepository
	ContactRepo ContactRepository
	AccountRepo AccountRepository
	LedgerRepo  LedgerRepository
}

// ChartRepository persists the chart of accounts. The application assumes
// a single chart; GetDefault returns it.
type ChartRepository interface {
	SaveChart(ctx context.Context, chart domain.ChartOfAccounts) error
	GetDefault(ctx context.Context) (*domain.ChartOfAccounts, error)
	DeleteAll(ctx context.Context) error
}

// ContactRepository persists counterparties.
type ContactRepository interface {
	SaveContact(ctx context.Context, contact domain.Contact) error
	FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error)
	FindContactByName(ctx context.Context, name string) (*domain.Contact, error)
	ListContacts(ctx context.Context) ([]domain.Contact, error)
	DeleteContact(ctx context.Context, contactID string) error
}

// AccountRepository persists accounts within a chart.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	SaveAccounts(ctx context.Context, accounts []domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, chartID, code string) (*domain.Account, error)
	FindAccountByName(ctx context.Context, chartID, name string) (*domain.Account, error)
	// ListAccounts returns accounts ordered by code ascending, optionally
	// restricted to one statement type.
	ListAccounts(ctx context.Context, chartID string, statementType *domain.StatementType) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
	// DeleteAccount refuses to delete an account still referenced by
	// transactions and reports apperrors.ErrConflict in that case.
	DeleteAccount(ctx context.Context, accountID string) error
}

// LedgerRepository persists ledgers and their transactions, and serves the
// aggregated per-account sums the report engines are built on.
type LedgerRepository interface {
	SaveLedger(ctx context.Context, ledger domain.Ledger) error
	FindLedgerByYear(ctx context.Context, chartID string, year int) (*domain.Ledger, error)
	ListLedgers(ctx context.Context, chartID string) ([]domain.Ledger, error)
	// DeleteLedger removes the ledger and cascades to its transactions.
	DeleteLedger(ctx context.Context, ledgerID string) error

	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, transactionID string) error
	ListTransactions(ctx context.Context, chartID string, filter TransactionFilter) ([]domain.Transaction, error)

	// SumAccountsThrough aggregates per-account debit and credit totals over
	// all transactions dated at or before the cutoff, for accounts of the
	// given statement type.
	SumAccountsThrough(ctx context.Context, chartID string, statementType domain.StatementType, cutoff time.Time) (map[string]AccountSums, error)
	// SumAccountsByLedger aggregates per-account debit and credit totals
	// over one ledger's transactions, for accounts of the given statement
	// type.
	SumAccountsByLedger(ctx context.Context, ledgerID string, statementType domain.StatementType) (map[string]AccountSums, error)
}
