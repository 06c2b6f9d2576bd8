package services

import (
	"context"
	"time"

	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
	"github.com/bookkeeping-app/bookkeeping_app/internal/dto"
)

// AccountDefaults carries the classification used when a synthetic account
// is created on demand by the report engines.
type AccountDefaults struct {
	Code          string
	StatementType domain.StatementType
	DebitType     domain.DebitType
}

// AccountSvc manages the chart of accounts.
type AccountSvc interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context, statementType *domain.StatementType) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error

	// GetOrCreateAccountByName returns the account with the given name in
	// the default chart, creating it with the supplied defaults when
	// absent. Idempotent: repeated calls never create duplicates.
	GetOrCreateAccountByName(ctx context.Context, name string, defaults AccountDefaults) (*domain.Account, error)

	// SeedDefaultAccounts creates the default chart of accounts. With force
	// set, all existing charts (and, through cascades, ledgers and
	// transactions) are removed first.
	SeedDefaultAccounts(ctx context.Context, force bool) error
}

// ContactSvc manages counterparties.
type ContactSvc interface {
	CreateContact(ctx context.Context, req dto.CreateContactRequest) (*domain.Contact, error)
	GetContactByID(ctx context.Context, contactID string) (*domain.Contact, error)
	GetContactByName(ctx context.Context, name string) (*domain.Contact, error)
	ListContacts(ctx context.Context) ([]domain.Contact, error)
	DeleteContact(ctx context.Context, contactID string) error
}

// LedgerSvc records and maintains transactions. Ledgers are created lazily
// per fiscal year.
type LedgerSvc interface {
	RecordTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error)
	GetLedgerByYear(ctx context.Context, year int) (*domain.Ledger, error)
}

// ReportingSvc derives the financial reports from the transaction history.
type ReportingSvc interface {
	// BalanceSheet computes per-account net positions over all transactions
	// dated at or before asOf, plus the synthesized Equity item.
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.Balance, error)
	// ProfitAndLoss computes per-account net results for the given fiscal
	// year, plus the synthesized Profit or Loss total.
	ProfitAndLoss(ctx context.Context, year int) (*domain.ProfitLoss, error)
}

// ServiceContainer bundles the application services for route registration.
type ServiceContainer struct {
	Account   AccountSvc
	Contact   ContactSvc
	Ledger    LedgerSvc
	Reporting ReportingSvc
}
