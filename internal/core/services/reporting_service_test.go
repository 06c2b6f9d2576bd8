package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bookkeeping-app/bookkeeping_app/internal/apperrors"
	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/services"
	"github.com/bookkeeping-app/bookkeeping_app/internal/core/services"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type ReportingServiceTestSuite struct {
	suite.Suite
	mockChartRepo   *MockChartRepository
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	service         portssvc.ReportingSvc

	chart  *domain.ChartOfAccounts
	ledger *domain.Ledger

	bank       domain.Account
	owner      domain.Account
	accountant domain.Account
	equity     domain.Account
	admin      domain.Account
	sales      domain.Account
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockChartRepo = new(MockChartRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	accountSvc := services.NewAccountService(suite.mockChartRepo, suite.mockAccountRepo)
	suite.service = services.NewReportingService(suite.mockChartRepo, suite.mockAccountRepo, suite.mockLedgerRepo, accountSvc)

	suite.chart = &domain.ChartOfAccounts{ChartID: uuid.NewString(), Name: "Default"}
	suite.ledger = &domain.Ledger{LedgerID: uuid.NewString(), ChartID: suite.chart.ChartID, Year: 2024}

	suite.bank = domain.Account{
		AccountID: uuid.NewString(), ChartID: suite.chart.ChartID, Code: "1100", Name: "Bank",
		StatementType: domain.StatementTypeBalance, DebitType: domain.Debit,
	}
	suite.owner = domain.Account{
		AccountID: uuid.NewString(), ChartID: suite.chart.ChartID, Code: "1600", Name: "Creditor owner",
		StatementType: domain.StatementTypeBalance, DebitType: domain.Credit,
	}
	suite.accountant = domain.Account{
		AccountID: uuid.NewString(), ChartID: suite.chart.ChartID, Code: "1610", Name: "Creditor accountant",
		StatementType: domain.StatementTypeBalance, DebitType: domain.Credit,
	}
	suite.equity = domain.Account{
		AccountID: uuid.NewString(), ChartID: suite.chart.ChartID, Code: domain.EquityAccountCode, Name: domain.EquityAccountName,
		StatementType: domain.StatementTypeBalance, DebitType: domain.Credit,
	}
	suite.admin = domain.Account{
		AccountID: uuid.NewString(), ChartID: suite.chart.ChartID, Code: "4300", Name: "Administration",
		StatementType: domain.StatementTypeProfitLoss, DebitType: domain.Credit,
	}
	suite.sales = domain.Account{
		AccountID: uuid.NewString(), ChartID: suite.chart.ChartID, Code: "8000", Name: "Sales",
		StatementType: domain.StatementTypeProfitLoss, DebitType: domain.Debit,
	}

	suite.mockChartRepo.On("GetDefault", mock.Anything).Return(suite.chart, nil)
}

func (suite *ReportingServiceTestSuite) expectBalanceAccounts(accounts ...domain.Account) {
	statementType := domain.StatementTypeBalance
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.chart.ChartID, &statementType).Return(accounts, nil).Once()
}

func (suite *ReportingServiceTestSuite) expectProfitLossAccounts(accounts ...domain.Account) {
	statementType := domain.StatementTypeProfitLoss
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.chart.ChartID, &statementType).Return(accounts, nil).Once()
}

func (suite *ReportingServiceTestSuite) expectEquityAccount() {
	suite.mockAccountRepo.On("FindAccountByName", mock.Anything, suite.chart.ChartID, domain.EquityAccountName).Return(&suite.equity, nil).Once()
}

// The book year under test: the owner lends 1000 and the accountant 100
// into the bank account, 400 of sales come in, and 300 of administration
// costs are paid out. Bank ends at 1200 debit; equity absorbs the 100
// profit on the credit side.
func (suite *ReportingServiceTestSuite) TestBalanceSheet_BookYearScenario() {
	ctx := context.Background()
	asOf := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	suite.expectBalanceAccounts(suite.bank, suite.owner, suite.accountant)
	suite.mockLedgerRepo.On("SumAccountsThrough", ctx, suite.chart.ChartID, domain.StatementTypeBalance, asOf).Return(map[string]portsrepo.AccountSums{
		suite.bank.AccountID:       {DebitTotal: dec("1500"), CreditTotal: dec("300")},
		suite.owner.AccountID:      {DebitTotal: dec("0"), CreditTotal: dec("1000")},
		suite.accountant.AccountID: {DebitTotal: dec("0"), CreditTotal: dec("100")},
	}, nil).Once()
	suite.expectEquityAccount()

	balance, err := suite.service.BalanceSheet(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(balance.DebitItems, 1)
	suite.Require().Len(balance.CreditItems, 3)

	suite.Equal("Bank", balance.DebitItems[0].AccountStr())
	suite.Equal("1200.00", balance.DebitItems[0].ValueStr())
	suite.Equal("Creditor owner", balance.CreditItems[0].AccountStr())
	suite.Equal("1000.00", balance.CreditItems[0].ValueStr())
	suite.Equal("Creditor accountant", balance.CreditItems[1].AccountStr())
	suite.Equal("100.00", balance.CreditItems[1].ValueStr())
	suite.Equal(domain.EquityAccountName, balance.CreditItems[2].AccountStr())
	suite.Equal("100.00", balance.CreditItems[2].ValueStr())

	suite.True(balance.DebitSum().Equal(balance.CreditSum()), "both sides must total the same")
	suite.Equal("1200.00", balance.DebitSum().StringFixed(2))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_OmitsZeroPositions() {
	ctx := context.Background()
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	suite.expectBalanceAccounts(suite.bank, suite.owner)
	suite.mockLedgerRepo.On("SumAccountsThrough", ctx, suite.chart.ChartID, domain.StatementTypeBalance, asOf).Return(map[string]portsrepo.AccountSums{
		suite.bank.AccountID:  {DebitTotal: dec("250"), CreditTotal: dec("250")},
		suite.owner.AccountID: {DebitTotal: dec("0"), CreditTotal: dec("50")},
	}, nil).Once()
	suite.expectEquityAccount()

	balance, err := suite.service.BalanceSheet(ctx, asOf)

	suite.Require().NoError(err)
	suite.Empty(balance.DebitItems)
	suite.Require().Len(balance.CreditItems, 2)
	suite.Equal("Creditor owner", balance.CreditItems[0].AccountStr())
	suite.Equal(domain.EquityAccountName, balance.CreditItems[1].AccountStr())
	suite.Equal("-50.00", balance.CreditItems[1].ValueStr())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_NegativeStaysOnNaturalSide() {
	ctx := context.Background()
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	// Overdrawn bank account: more credited than debited.
	suite.expectBalanceAccounts(suite.bank)
	suite.mockLedgerRepo.On("SumAccountsThrough", ctx, suite.chart.ChartID, domain.StatementTypeBalance, asOf).Return(map[string]portsrepo.AccountSums{
		suite.bank.AccountID: {DebitTotal: dec("100"), CreditTotal: dec("175")},
	}, nil).Once()
	suite.expectEquityAccount()

	balance, err := suite.service.BalanceSheet(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(balance.DebitItems, 1)
	suite.Equal("-75.00", balance.DebitItems[0].ValueStr())
	suite.True(balance.DebitSum().Equal(balance.CreditSum()))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_RoundsHalfToEven() {
	ctx := context.Background()
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	suite.expectBalanceAccounts(suite.bank, suite.owner)
	suite.mockLedgerRepo.On("SumAccountsThrough", ctx, suite.chart.ChartID, domain.StatementTypeBalance, asOf).Return(map[string]portsrepo.AccountSums{
		suite.bank.AccountID:  {DebitTotal: dec("2.345"), CreditTotal: dec("0")},
		suite.owner.AccountID: {DebitTotal: dec("0"), CreditTotal: dec("2.144")},
	}, nil).Once()
	suite.expectEquityAccount()

	balance, err := suite.service.BalanceSheet(ctx, asOf)

	suite.Require().NoError(err)
	suite.Equal("2.34", balance.DebitItems[0].ValueStr())
	suite.Equal("2.14", balance.CreditItems[0].ValueStr())
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_CreatesEquityAccountOnce() {
	ctx := context.Background()
	asOf := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	suite.expectBalanceAccounts(suite.bank)
	suite.mockLedgerRepo.On("SumAccountsThrough", ctx, suite.chart.ChartID, domain.StatementTypeBalance, asOf).Return(map[string]portsrepo.AccountSums{
		suite.bank.AccountID: {DebitTotal: dec("500"), CreditTotal: dec("0")},
	}, nil).Once()

	suite.mockAccountRepo.On("FindAccountByName", mock.Anything, suite.chart.ChartID, domain.EquityAccountName).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == domain.EquityAccountName && a.Code == domain.EquityAccountCode &&
			a.StatementType == domain.StatementTypeBalance && a.DebitType == domain.Credit
	})).Return(nil).Once()

	balance, err := suite.service.BalanceSheet(ctx, asOf)

	suite.Require().NoError(err)
	suite.Require().Len(balance.CreditItems, 1)
	suite.Equal("500.00", balance.CreditItems[0].ValueStr())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_BookYearScenario() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("FindLedgerByYear", ctx, suite.chart.ChartID, 2024).Return(suite.ledger, nil).Once()
	suite.expectProfitLossAccounts(suite.admin, suite.sales)
	suite.mockLedgerRepo.On("SumAccountsByLedger", ctx, suite.ledger.LedgerID, domain.StatementTypeProfitLoss).Return(map[string]portsrepo.AccountSums{
		suite.admin.AccountID: {DebitTotal: dec("300"), CreditTotal: dec("0")},
		suite.sales.AccountID: {DebitTotal: dec("0"), CreditTotal: dec("400")},
	}, nil).Once()

	profitAccount := domain.Account{
		AccountID: uuid.NewString(), ChartID: suite.chart.ChartID,
		Code: domain.ProfitAccountCode, Name: domain.ProfitAccountName,
		StatementType: domain.StatementTypeProfitLoss, DebitType: domain.Debit,
	}
	suite.mockAccountRepo.On("FindAccountByName", mock.Anything, suite.chart.ChartID, domain.ProfitAccountName).Return(&profitAccount, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, 2024)

	suite.Require().NoError(err)
	suite.Equal(2024, report.Year)
	suite.Require().Len(report.Lines, 2)

	// Accounts come back in code order: Administration (4300) then Sales (8000).
	suite.Equal("Administration", report.Lines[0].Account.Name)
	suite.False(report.Lines[0].Debit.Valid)
	suite.Equal("300.00", report.Lines[0].Credit.Decimal.StringFixed(2))

	suite.Equal("Sales", report.Lines[1].Account.Name)
	suite.True(report.Lines[1].Debit.Valid)
	suite.Equal("400.00", report.Lines[1].Debit.Decimal.StringFixed(2))
	suite.False(report.Lines[1].Credit.Valid)

	suite.Require().NotNil(report.Total)
	suite.Equal(domain.ProfitAccountName, report.Total.Account.Name)
	suite.Equal("100.00", report.Total.Debit.Decimal.StringFixed(2))
	suite.False(report.Total.Credit.Valid)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_LossYear() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("FindLedgerByYear", ctx, suite.chart.ChartID, 2024).Return(suite.ledger, nil).Once()
	suite.expectProfitLossAccounts(suite.admin, suite.sales)
	suite.mockLedgerRepo.On("SumAccountsByLedger", ctx, suite.ledger.LedgerID, domain.StatementTypeProfitLoss).Return(map[string]portsrepo.AccountSums{
		suite.admin.AccountID: {DebitTotal: dec("500"), CreditTotal: dec("0")},
		suite.sales.AccountID: {DebitTotal: dec("0"), CreditTotal: dec("200")},
	}, nil).Once()

	lossAccount := domain.Account{
		AccountID: uuid.NewString(), ChartID: suite.chart.ChartID,
		Code: domain.LossAccountCode, Name: domain.LossAccountName,
		StatementType: domain.StatementTypeProfitLoss, DebitType: domain.Credit,
	}
	suite.mockAccountRepo.On("FindAccountByName", mock.Anything, suite.chart.ChartID, domain.LossAccountName).Return(&lossAccount, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, 2024)

	suite.Require().NoError(err)
	suite.Require().NotNil(report.Total)
	suite.Equal(domain.LossAccountName, report.Total.Account.Name)
	suite.False(report.Total.Debit.Valid)
	suite.Equal("300.00", report.Total.Credit.Decimal.StringFixed(2))
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_ZeroNetHasNoTotal() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("FindLedgerByYear", ctx, suite.chart.ChartID, 2024).Return(suite.ledger, nil).Once()
	suite.expectProfitLossAccounts(suite.admin, suite.sales)
	suite.mockLedgerRepo.On("SumAccountsByLedger", ctx, suite.ledger.LedgerID, domain.StatementTypeProfitLoss).Return(map[string]portsrepo.AccountSums{
		suite.admin.AccountID: {DebitTotal: dec("250"), CreditTotal: dec("0")},
		suite.sales.AccountID: {DebitTotal: dec("0"), CreditTotal: dec("250")},
	}, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, 2024)

	suite.Require().NoError(err)
	suite.Len(report.Lines, 2)
	suite.Nil(report.Total)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByName", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_OmitsZeroResultLines() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("FindLedgerByYear", ctx, suite.chart.ChartID, 2024).Return(suite.ledger, nil).Once()
	suite.expectProfitLossAccounts(suite.admin, suite.sales)
	suite.mockLedgerRepo.On("SumAccountsByLedger", ctx, suite.ledger.LedgerID, domain.StatementTypeProfitLoss).Return(map[string]portsrepo.AccountSums{
		suite.admin.AccountID: {DebitTotal: dec("120"), CreditTotal: dec("120")},
		suite.sales.AccountID: {DebitTotal: dec("0"), CreditTotal: dec("80")},
	}, nil).Once()

	profitAccount := domain.Account{
		AccountID: uuid.NewString(), ChartID: suite.chart.ChartID,
		Code: domain.ProfitAccountCode, Name: domain.ProfitAccountName,
		StatementType: domain.StatementTypeProfitLoss, DebitType: domain.Debit,
	}
	suite.mockAccountRepo.On("FindAccountByName", mock.Anything, suite.chart.ChartID, domain.ProfitAccountName).Return(&profitAccount, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, 2024)

	suite.Require().NoError(err)
	suite.Require().Len(report.Lines, 1)
	suite.Equal("Sales", report.Lines[0].Account.Name)
	suite.Require().NotNil(report.Total)
	suite.Equal("80.00", report.Total.Debit.Decimal.StringFixed(2))
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_UnknownYear() {
	ctx := context.Background()

	suite.mockLedgerRepo.On("FindLedgerByYear", ctx, suite.chart.ChartID, 1999).Return(nil, apperrors.ErrNotFound).Once()

	report, err := suite.service.ProfitAndLoss(ctx, 1999)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
