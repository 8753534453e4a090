package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tallybook/tallybook/internal/apperrors"
	"github.com/tallybook/tallybook/internal/core/domain"
	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
	"github.com/tallybook/tallybook/internal/core/services"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	mockBalanceRepo *MockBalanceRepository
	mockOrgRepo     *MockOrganizationRepository
	mockAccountRepo *MockAccountRepository
	service         *services.BalanceService

	orgID string
	org   *domain.Organization
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockBalanceRepo = new(MockBalanceRepository)
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewBalanceService(suite.mockBalanceRepo, suite.mockOrgRepo, suite.mockAccountRepo)

	suite.orgID = uuid.NewString()
	suite.org = &domain.Organization{
		OrganizationID:   suite.orgID,
		Name:             "Acme Ledger",
		BaseCurrencyCode: "USD",
		IsActive:         true,
	}
}

func (suite *BalanceServiceTestSuite) TestBalances_ComputesNet() {
	ctx := context.Background()
	cash := domain.Account{AccountID: uuid.NewString(), OrganizationID: suite.orgID, Code: "1000", Name: "Cash", AccountType: domain.Asset}
	revenue := domain.Account{AccountID: uuid.NewString(), OrganizationID: suite.orgID, Code: "4000", Name: "Revenue", AccountType: domain.Income}

	rows := []portsrepo.BalanceRow{
		{Account: cash, CurrencyCode: "USD", TotalDebits: mustMoney(suite.T(), "250.00"), TotalCredits: mustMoney(suite.T(), "100.00")},
		{Account: revenue, CurrencyCode: "USD", TotalDebits: mustMoney(suite.T(), "0.00"), TotalCredits: mustMoney(suite.T(), "150.00")},
	}

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).Return(suite.org, nil).Once()
	suite.mockBalanceRepo.On("SumPostedLines", ctx, suite.orgID, (*time.Time)(nil)).Return(rows, nil).Once()

	balances, err := suite.service.Balances(ctx, suite.orgID, nil)

	suite.Require().NoError(err)
	suite.Require().Len(balances, 2)

	suite.Equal("1000", balances[0].Code)
	suite.Equal("150.00", balances[0].NetBalance.String())
	suite.Equal("250.00", balances[0].TotalDebits.String())

	suite.Equal("4000", balances[1].Code)
	suite.Equal("-150.00", balances[1].NetBalance.String())
	suite.Equal(domain.Income, balances[1].AccountType)

	// Debits equal credits across the whole organization.
	total := balances[0].NetBalance.Add(balances[1].NetBalance)
	suite.True(total.IsZero())
}

func (suite *BalanceServiceTestSuite) TestBalances_AsOfPassedThrough() {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).Return(suite.org, nil).Once()
	suite.mockBalanceRepo.On("SumPostedLines", ctx, suite.orgID, &asOf).Return([]portsrepo.BalanceRow{}, nil).Once()

	balances, err := suite.service.Balances(ctx, suite.orgID, &asOf)

	suite.Require().NoError(err)
	suite.Empty(balances)
	suite.mockBalanceRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestBalances_UnknownOrganization() {
	ctx := context.Background()

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Balances(ctx, suite.orgID, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBalanceRepo.AssertNotCalled(suite.T(), "SumPostedLines", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestAccountBalance_PerCurrencyRows() {
	ctx := context.Background()
	cash := domain.Account{AccountID: uuid.NewString(), OrganizationID: suite.orgID, Code: "1000", Name: "Cash", AccountType: domain.Asset}

	rows := []portsrepo.BalanceRow{
		{Account: cash, CurrencyCode: "EUR", TotalDebits: mustMoney(suite.T(), "40.00"), TotalCredits: mustMoney(suite.T(), "0.00")},
		{Account: cash, CurrencyCode: "USD", TotalDebits: mustMoney(suite.T(), "100.00"), TotalCredits: mustMoney(suite.T(), "25.00")},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.orgID, cash.AccountID).Return(&cash, nil).Once()
	suite.mockBalanceRepo.On("SumPostedLinesForAccount", ctx, suite.orgID, cash.AccountID).Return(rows, nil).Once()

	balances, err := suite.service.AccountBalance(ctx, suite.orgID, cash.AccountID)

	suite.Require().NoError(err)
	suite.Require().Len(balances, 2)
	suite.Equal("EUR", balances[0].CurrencyCode)
	suite.Equal("40.00", balances[0].NetBalance.String())
	suite.Equal("USD", balances[1].CurrencyCode)
	suite.Equal("75.00", balances[1].NetBalance.String())
}

func (suite *BalanceServiceTestSuite) TestAccountBalance_NoPostedHistory() {
	ctx := context.Background()
	cash := domain.Account{AccountID: uuid.NewString(), OrganizationID: suite.orgID, Code: "1000"}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.orgID, cash.AccountID).Return(&cash, nil).Once()
	suite.mockBalanceRepo.On("SumPostedLinesForAccount", ctx, suite.orgID, cash.AccountID).Return([]portsrepo.BalanceRow{}, nil).Once()

	balances, err := suite.service.AccountBalance(ctx, suite.orgID, cash.AccountID)

	suite.Require().NoError(err)
	suite.Empty(balances)
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
