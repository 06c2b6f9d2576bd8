package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/services"
)

// reportingService derives the balance sheet and profit and loss statement
// from the transaction history. Reports are computed on demand and never
// stored.
type reportingService struct {
	BaseService
	chartRepo   portsrepo.ChartRepository
	accountRepo portsrepo.AccountRepository
	ledgerRepo  portsrepo.LedgerRepository
	accountSvc  portssvc.AccountSvc
}

// NewReportingService creates a new reporting service. The account service
// is used to get-or-create the synthetic Equity, Profit and Loss accounts.
func NewReportingService(chartRepo portsrepo.ChartRepository, accountRepo portsrepo.AccountRepository, ledgerRepo portsrepo.LedgerRepository, accountSvc portssvc.AccountSvc) portssvc.ReportingSvc {
	return &reportingService{
		chartRepo:   chartRepo,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		accountSvc:  accountSvc,
	}
}

var _ portssvc.ReportingSvc = (*reportingService)(nil)

// BalanceSheet computes the balance sheet as of the given date.
//
// Every balance account's transactions up to and including asOf are netted
// onto the account's natural side. Zero positions are omitted; negative
// positions stay on the natural side. The Equity item, carrying whatever
// difference remains between the two columns, is appended to the credit
// side so both sides total the same.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.Balance, error) {
	chart, err := s.chartRepo.GetDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get default chart: %w", err)
	}

	statementType := domain.StatementTypeBalance
	accounts, err := s.accountRepo.ListAccounts(ctx, chart.ChartID, &statementType)
	if err != nil {
		return nil, fmt.Errorf("failed to list balance accounts: %w", err)
	}
	sums, err := s.ledgerRepo.SumAccountsThrough(ctx, chart.ChartID, statementType, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate balance sums: %w", err)
	}

	balance := &domain.Balance{Date: asOf}
	for i := range accounts {
		account := &accounts[i]
		accountSums, ok := sums[account.AccountID]
		if !ok {
			continue
		}
		result := domain.AccountResult(account.DebitType, accountSums.DebitTotal, accountSums.CreditTotal)
		if result.IsZero() {
			continue
		}
		item := domain.NewBalanceItem(account, result)
		if account.IsAssetSide() {
			balance.DebitItems = append(balance.DebitItems, item)
		} else {
			balance.CreditItems = append(balance.CreditItems, item)
		}
	}

	equityAccount, err := s.accountSvc.GetOrCreateAccountByName(ctx, domain.EquityAccountName, portssvc.AccountDefaults{
		Code:          domain.EquityAccountCode,
		StatementType: domain.StatementTypeBalance,
		DebitType:     domain.Credit,
	})
	if err != nil {
		return nil, err
	}
	equity := balance.DebitSum().Sub(balance.CreditSum())
	balance.CreditItems = append(balance.CreditItems, domain.NewBalanceItem(equityAccount, equity))

	s.LogDebug(ctx, "Balance sheet computed",
		slog.Time("as_of", asOf),
		slog.String("total", balance.DebitSum().StringFixed(2)),
	)
	return balance, nil
}

// ProfitAndLoss computes the profit and loss statement for one fiscal year.
//
// Every profit/loss account's results within the year's ledger are netted:
// a positive net (more credited than debited) is a revenue-side line in the
// debit column, a negative net a cost-side line in the credit column, and
// zero nets are omitted. The overall result, taken from the unrounded
// per-account sums, becomes the Profit or Loss total line; when revenues
// and losses cancel exactly there is no total line.
func (s *reportingService) ProfitAndLoss(ctx context.Context, year int) (*domain.ProfitLoss, error) {
	chart, err := s.chartRepo.GetDefault(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get default chart: %w", err)
	}
	ledger, err := s.ledgerRepo.FindLedgerByYear(ctx, chart.ChartID, year)
	if err != nil {
		return nil, fmt.Errorf("ledger for year %d: %w", year, err)
	}

	statementType := domain.StatementTypeProfitLoss
	accounts, err := s.accountRepo.ListAccounts(ctx, chart.ChartID, &statementType)
	if err != nil {
		return nil, fmt.Errorf("failed to list profit/loss accounts: %w", err)
	}
	sums, err := s.ledgerRepo.SumAccountsByLedger(ctx, ledger.LedgerID, statementType)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate profit/loss sums: %w", err)
	}

	report := &domain.ProfitLoss{Year: year}
	sumLosses := decimal.Zero
	sumRevenues := decimal.Zero
	for i := range accounts {
		account := &accounts[i]
		accountSums, ok := sums[account.AccountID]
		if !ok {
			continue
		}
		sumLosses = sumLosses.Add(accountSums.DebitTotal)
		sumRevenues = sumRevenues.Add(accountSums.CreditTotal)

		result := accountSums.CreditTotal.Sub(accountSums.DebitTotal)
		if result.IsZero() {
			continue
		}

		var line domain.ProfitLossLine
		if result.IsPositive() {
			line, err = domain.NewProfitLossLine(account, &result, nil)
		} else {
			negated := result.Neg()
			line, err = domain.NewProfitLossLine(account, nil, &negated)
		}
		if err != nil {
			return nil, err
		}
		report.Lines = append(report.Lines, line)
	}

	overall := sumRevenues.Sub(sumLosses)
	switch {
	case overall.IsPositive():
		profitAccount, err := s.accountSvc.GetOrCreateAccountByName(ctx, domain.ProfitAccountName, portssvc.AccountDefaults{
			Code:          domain.ProfitAccountCode,
			StatementType: domain.StatementTypeProfitLoss,
			DebitType:     domain.Debit,
		})
		if err != nil {
			return nil, err
		}
		line, err := domain.NewProfitLossLine(profitAccount, &overall, nil)
		if err != nil {
			return nil, err
		}
		report.Total = &line
	case overall.IsNegative():
		lossAccount, err := s.accountSvc.GetOrCreateAccountByName(ctx, domain.LossAccountName, portssvc.AccountDefaults{
			Code:          domain.LossAccountCode,
			StatementType: domain.StatementTypeProfitLoss,
			DebitType:     domain.Credit,
		})
		if err != nil {
			return nil, err
		}
		negated := overall.Neg()
		line, err := domain.NewProfitLossLine(lossAccount, nil, &negated)
		if err != nil {
			return nil, err
		}
		report.Total = &line
	}

	s.LogDebug(ctx, "Profit and loss computed",
		slog.Int("year", year),
		slog.String("overall", overall.StringFixed(2)),
	)
	return report, nil
}
