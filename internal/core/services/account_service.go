package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bookkeeping-app/bookkeeping_app/internal/apperrors"
	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/services"
	"github.com/bookkeeping-app/bookkeeping_app/internal/dto"
)

// Default chart of accounts, a subset of the Dutch standard scheme.
// The keys of each map are account codes; codes sort lexically, so leading
// zeros are significant.
var defaultDebitProfitLossAccounts = map[string]string{
	"4720": "Rente bank",
	"4790": "Overige rentebaten",
	"4990": "Overige baten",
	"8000": "Omzet",
}

var defaultCreditProfitLossAccounts = map[string]string{
	"4000": "Lonen en salarissen",
	"4100": "Huur gebouwen en terreinen",
	"4300": "Contributies en abonnementen",
	"4310": "Kantoorbenodigdheden",
	"4600": "Accountantskosten",
	"4640": "Bankkosten",
	"4650": "Verzekeringen",
	"7000": "Inkoopwaarde van de omzet",
	"9900": "Vennootschapsbelasting",
}

var defaultDebitBalanceAccounts = map[string]string{
	"0070": "Inventaris",
	"1000": "Kas",
	"1100": "Bank",
	"1300": "Debiteuren",
	"1400": "Te vorderen",
	"1520": "Te vorderen BTW 21%",
	"3100": "Onderhanden werk",
}

var defaultCreditBalanceAccounts = map[string]string{
	"1500": "Af te dragen BTW 21%",
	"1540": "BTW te betalen",
	"1600": "Crediteuren",
	"1700": "Te betalen",
	"1800": "Rekening-courant",
	"2000": "Kruisposten",
}

// accountService manages the chart of accounts.
type accountService struct {
	BaseService
	chartRepo   portsrepo.ChartRepository
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new account service.
func NewAccountService(chartRepo portsrepo.ChartRepository, accountRepo portsrepo.AccountRepository) portssvc.AccountSvc {
	return &accountService{chartRepo: chartRepo, accountRepo: accountRepo}
}

var _ portssvc.AccountSvc = (*accountService)(nil)

// defaultChart returns the single chart of accounts, creating it on first
// use. Exactly one chart existing is a documented precondition of the
// whole application.
func (s *accountService) defaultChart(ctx context.Context) (*domain.ChartOfAccounts, error) {
	chart, err := s.chartRepo.GetDefault(ctx)
	if err == nil {
		return chart, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to get default chart: %w", err)
	}

	newChart := domain.ChartOfAccounts{
		ChartID:     uuid.NewString(),
		Name:        "Default",
		AuditFields: domain.NewAuditFields(time.Now().UTC()),
	}
	if err := s.chartRepo.SaveChart(ctx, newChart); err != nil {
		return nil, fmt.Errorf("failed to create default chart: %w", err)
	}
	s.LogInfo(ctx, "Default chart of accounts created", slog.String("chart_id", newChart.ChartID))
	return &newChart, nil
}

// CreateAccount creates a new account in the default chart.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	chart, err := s.defaultChart(ctx)
	if err != nil {
		return nil, err
	}

	account := domain.Account{
		AccountID:     uuid.NewString(),
		ChartID:       chart.ChartID,
		Code:          req.Code,
		Name:          req.Name,
		StatementType: req.StatementType,
		DebitType:     req.DebitType,
		ContactID:     req.ContactID,
		AuditFields:   domain.NewAuditFields(time.Now().UTC()),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByCode retrieves a single account by its code within the
// default chart.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	chart, err := s.defaultChart(ctx)
	if err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountByCode(ctx, chart.ChartID, code)
}

// ListAccounts returns accounts ordered by code, optionally restricted to
// one statement type.
func (s *accountService) ListAccounts(ctx context.Context, statementType *domain.StatementType) ([]domain.Account, error) {
	chart, err := s.defaultChart(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, chart.ChartID, statementType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}

// UpdateAccount changes an account's name or linked contact.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.ContactID != nil {
		account.ContactID = *req.ContactID
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.Touch(time.Now().UTC())
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes an account. Accounts still referenced by
// transactions are protected; the repository reports a conflict.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogDebug(ctx, "Refused to delete referenced account", slog.String("account_id", accountID))
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		}
		return err
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}

// GetOrCreateAccountByName implements the idempotent lookup the report
// engines use for their synthetic Equity/Profit/Loss accounts.
func (s *accountService) GetOrCreateAccountByName(ctx context.Context, name string, defaults portssvc.AccountDefaults) (*domain.Account, error) {
	chart, err := s.defaultChart(ctx)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByName(ctx, chart.ChartID, name)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up account %q: %w", name, err)
	}

	newAccount := domain.Account{
		AccountID:     uuid.NewString(),
		ChartID:       chart.ChartID,
		Code:          defaults.Code,
		Name:          name,
		StatementType: defaults.StatementType,
		DebitType:     defaults.DebitType,
		AuditFields:   domain.NewAuditFields(time.Now().UTC()),
	}
	if err := s.accountRepo.SaveAccount(ctx, newAccount); err != nil {
		return nil, fmt.Errorf("failed to create account %q: %w", name, err)
	}

	s.LogInfo(ctx, "Synthetic account created", slog.String("name", name), slog.String("code", defaults.Code))
	return &newAccount, nil
}

// SeedDefaultAccounts creates the default chart of accounts. With force
// set, all charts are deleted first, cascading to ledgers and
// transactions.
func (s *accountService) SeedDefaultAccounts(ctx context.Context, force bool) error {
	if force {
		if err := s.chartRepo.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to delete existing charts: %w", err)
		}
	}

	chart, err := s.defaultChart(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	var accounts []domain.Account
	appendDefaults := func(set map[string]string, statementType domain.StatementType, debitType domain.DebitType) {
		for code, name := range set {
			accounts = append(accounts, domain.Account{
				AccountID:     uuid.NewString(),
				ChartID:       chart.ChartID,
				Code:          code,
				Name:          name,
				StatementType: statementType,
				DebitType:     debitType,
				AuditFields:   domain.NewAuditFields(now),
			})
		}
	}
	appendDefaults(defaultDebitProfitLossAccounts, domain.StatementTypeProfitLoss, domain.Debit)
	appendDefaults(defaultCreditProfitLossAccounts, domain.StatementTypeProfitLoss, domain.Credit)
	appendDefaults(defaultDebitBalanceAccounts, domain.StatementTypeBalance, domain.Debit)
	appendDefaults(defaultCreditBalanceAccounts, domain.StatementTypeBalance, domain.Credit)

	if err := s.accountRepo.SaveAccounts(ctx, accounts); err != nil {
		return fmt.Errorf("failed to seed default accounts: %w", err)
	}

	s.LogInfo(ctx, "Default accounts created", slog.Int("count", len(accounts)))
	return nil
}
