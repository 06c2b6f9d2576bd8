package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bookkeeping-app/bookkeeping_app/internal/apperrors"
	"github.com/bookkeeping-app/bookkeeping_app/internal/core/domain"
	portssvc "github.com/bookkeeping-app/bookkeeping_app/internal/core/ports/services"
	"github.com/bookkeeping-app/bookkeeping_app/internal/core/services"
	"github.com/bookkeeping-app/bookkeeping_app/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockChartRepo   *MockChartRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvc
	chart           *domain.ChartOfAccounts
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockChartRepo = new(MockChartRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockChartRepo, suite.mockAccountRepo)
	suite.chart = &domain.ChartOfAccounts{ChartID: uuid.NewString(), Name: "Default"}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:          "1100",
		Name:          "Bank",
		StatementType: domain.StatementTypeBalance,
		DebitType:     domain.Debit,
	}

	suite.mockChartRepo.On("GetDefault", ctx).Return(suite.chart, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.ChartID == suite.chart.ChartID && a.Code == "1100" && a.Name == "Bank" &&
			a.StatementType == domain.StatementTypeBalance && a.DebitType == domain.Debit
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal("1100", account.Code)
	suite.NotEmpty(account.AccountID)
	suite.mockChartRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CreatesChartWhenMissing() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:          "8000",
		Name:          "Omzet",
		StatementType: domain.StatementTypeProfitLoss,
		DebitType:     domain.Credit,
	}

	suite.mockChartRepo.On("GetDefault", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockChartRepo.On("SaveChart", ctx, mock.AnythingOfType("domain.ChartOfAccounts")).Return(nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.mockChartRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:          "1100",
		Name:          "Bank",
		StatementType: domain.StatementTypeBalance,
		DebitType:     domain.Debit,
	}

	suite.mockChartRepo.On("GetDefault", ctx).Return(suite.chart, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, accountID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListAccounts_FiltersByStatementType() {
	ctx := context.Background()
	statementType := domain.StatementTypeBalance
	expected := []domain.Account{
		{AccountID: uuid.NewString(), Code: "1000", Name: "Kas"},
		{AccountID: uuid.NewString(), Code: "1100", Name: "Bank"},
	}

	suite.mockChartRepo.On("GetDefault", ctx).Return(suite.chart, nil).Once()
	suite.mockAccountRepo.On("ListAccounts", ctx, suite.chart.ChartID, &statementType).Return(expected, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, &statementType)

	suite.Require().NoError(err)
	suite.Equal(expected, accounts)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_OnlyProvidedFields() {
	ctx := context.Background()
	existing := &domain.Account{
		AccountID:     uuid.NewString(),
		ChartID:       suite.chart.ChartID,
		Code:          "1300",
		Name:          "Debiteuren",
		StatementType: domain.StatementTypeBalance,
		DebitType:     domain.Debit,
	}
	newName := "Debtors"

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountID == existing.AccountID && a.Name == newName && a.Code == "1300"
	})).Return(nil).Once()

	account, err := suite.service.UpdateAccount(ctx, existing.AccountID, dto.UpdateAccountRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, account.Name)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_ReferencedReportsConflict() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("DeleteAccount", ctx, accountID).Return(apperrors.ErrConflict).Once()

	err := suite.service.DeleteAccount(ctx, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *AccountServiceTestSuite) TestGetOrCreateAccountByName_Existing() {
	ctx := context.Background()
	existing := &domain.Account{
		AccountID:     uuid.NewString(),
		ChartID:       suite.chart.ChartID,
		Code:          domain.EquityAccountCode,
		Name:          domain.EquityAccountName,
		StatementType: domain.StatementTypeBalance,
		DebitType:     domain.Credit,
	}

	suite.mockChartRepo.On("GetDefault", ctx).Return(suite.chart, nil).Once()
	suite.mockAccountRepo.On("FindAccountByName", ctx, suite.chart.ChartID, domain.EquityAccountName).Return(existing, nil).Once()

	account, err := suite.service.GetOrCreateAccountByName(ctx, domain.EquityAccountName, portssvc.AccountDefaults{
		Code:          domain.EquityAccountCode,
		StatementType: domain.StatementTypeBalance,
		DebitType:     domain.Credit,
	})

	suite.Require().NoError(err)
	suite.Equal(existing, account)
	// No SaveAccount call; the existing account is reused.
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetOrCreateAccountByName_CreatesWithDefaults() {
	ctx := context.Background()

	suite.mockChartRepo.On("GetDefault", ctx).Return(suite.chart, nil).Once()
	suite.mockAccountRepo.On("FindAccountByName", ctx, suite.chart.ChartID, domain.ProfitAccountName).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == domain.ProfitAccountName && a.Code == domain.ProfitAccountCode &&
			a.StatementType == domain.StatementTypeProfitLoss && a.DebitType == domain.Debit
	})).Return(nil).Once()

	account, err := suite.service.GetOrCreateAccountByName(ctx, domain.ProfitAccountName, portssvc.AccountDefaults{
		Code:          domain.ProfitAccountCode,
		StatementType: domain.StatementTypeProfitLoss,
		DebitType:     domain.Debit,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.ProfitAccountCode, account.Code)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestSeedDefaultAccounts_Force() {
	ctx := context.Background()

	suite.mockChartRepo.On("DeleteAll", ctx).Return(nil).Once()
	suite.mockChartRepo.On("GetDefault", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockChartRepo.On("SaveChart", ctx, mock.AnythingOfType("domain.ChartOfAccounts")).Return(nil).Once()
	suite.mockAccountRepo.On("SaveAccounts", ctx, mock.MatchedBy(func(accounts []domain.Account) bool {
		codes := make(map[string]bool, len(accounts))
		for _, a := range accounts {
			if codes[a.Code] {
				return false
			}
			codes[a.Code] = true
		}
		return len(accounts) > 0 && codes["1100"] && codes["8000"] && codes["1600"]
	})).Return(nil).Once()

	err := suite.service.SeedDefaultAccounts(ctx, true)

	suite.Require().NoError(err)
	suite.mockChartRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestSeedDefaultAccounts_NoForceKeepsCharts() {
	ctx := context.Background()

	suite.mockChartRepo.On("GetDefault", ctx).Return(suite.chart, nil).Once()
	suite.mockAccountRepo.On("SaveAccounts", ctx, mock.AnythingOfType("[]domain.Account")).Return(nil).Once()

	err := suite.service.SeedDefaultAccounts(ctx, false)

	suite.Require().NoError(err)
	suite.mockChartRepo.AssertNotCalled(suite.T(), "DeleteAll", mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func TestAccountService_ListError(t *testing.T) {
	ctx := context.Background()
	mockChartRepo := new(MockChartRepository)
	mockAccountRepo := new(MockAccountRepository)
	service := services.NewAccountService(mockChartRepo, mockAccountRepo)

	chart := &domain.ChartOfAccounts{ChartID: uuid.NewString()}
	mockChartRepo.On("GetDefault", ctx).Return(chart, nil).Once()
	mockAccountRepo.On("ListAccounts", ctx, chart.ChartID, (*domain.StatementType)(nil)).Return(nil, assert.AnError).Once()

	accounts, err := service.ListAccounts(ctx, nil)

	assert.Error(t, err)
	assert.Nil(t, accounts)
}
