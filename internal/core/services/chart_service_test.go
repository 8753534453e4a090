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
	"github.com/tallybook/tallybook/internal/dto"
)

type ChartServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockOrgRepo     *MockOrganizationRepository
	mockBalanceRepo *MockBalanceRepository
	service         *services.ChartService

	orgID   string
	actorID string
	org     *domain.Organization
}

func (suite *ChartServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.mockBalanceRepo = new(MockBalanceRepository)
	suite.service = services.NewChartService(suite.mockAccountRepo, suite.mockOrgRepo, suite.mockBalanceRepo, &seqIDGen{prefix: "acc"})

	suite.orgID = uuid.NewString()
	suite.actorID = uuid.NewString()
	suite.org = &domain.Organization{
		OrganizationID:   suite.orgID,
		Name:             "Acme Ledger",
		BaseCurrencyCode: "USD",
		IsActive:         true,
	}
}

func (suite *ChartServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash",
		AccountType: "ASSET",
	}

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).Return(suite.org, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.orgID, "1000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.orgID, req, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal("acc-1", account.AccountID)
	suite.Equal(suite.orgID, account.OrganizationID)
	suite.Equal("1000", account.Code)
	suite.Equal(domain.Asset, account.AccountType)
	suite.Empty(account.CurrencyCode)
	suite.True(account.IsActive)
	suite.Equal(suite.actorID, account.CreatedBy)
	suite.WithinDuration(time.Now(), account.CreatedAt, time.Second)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockOrgRepo.AssertExpectations(suite.T())
}

func (suite *ChartServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: "ASSET"}
	existing := &domain.Account{AccountID: uuid.NewString(), OrganizationID: suite.orgID, Code: "1000"}

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).Return(suite.org, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.orgID, "1000").Return(existing, nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.orgID, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, services.ErrDuplicateCode)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *ChartServiceTestSuite) TestCreateAccount_DuplicateRaceOnSave() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: "ASSET"}

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).Return(suite.org, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.orgID, "1000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, suite.orgID, req, suite.actorID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDuplicateCode)
}

func (suite *ChartServiceTestSuite) TestCreateAccount_InvalidType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "9999", Name: "Bogus", AccountType: "CONTRA"}

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).Return(suite.org, nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.orgID, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, services.ErrInvalidAccountType)
}

func (suite *ChartServiceTestSuite) TestCreateAccount_UnknownOrganization() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: "ASSET"}

	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.CreateAccount(ctx, suite.orgID, req, suite.actorID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ChartServiceTestSuite) TestUpdateAccount_RenameOnly() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID:      accountID,
		OrganizationID: suite.orgID,
		Code:           "1000",
		Name:           "Cash",
		AccountType:    domain.Asset,
		Description:    "petty cash drawer",
		IsActive:       true,
	}
	newName := "Cash on Hand"

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.orgID, accountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccountDetails", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.orgID, accountID, dto.UpdateAccountRequest{Name: &newName}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal("Cash on Hand", updated.Name)
	suite.Equal("petty cash drawer", updated.Description)
	suite.Equal("1000", updated.Code)
	suite.Equal(suite.actorID, updated.LastUpdatedBy)
}

func (suite *ChartServiceTestSuite) TestDeactivateAccount_ZeroBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, OrganizationID: suite.orgID, Code: "1000", IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.orgID, accountID).Return(account, nil).Once()
	suite.mockBalanceRepo.On("SumPostedLinesForAccount", ctx, suite.orgID, accountID).Return([]portsrepo.BalanceRow{
		{Account: *account, CurrencyCode: "USD", TotalDebits: mustMoney(suite.T(), "150.00"), TotalCredits: mustMoney(suite.T(), "150.00")},
	}, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, suite.orgID, accountID, suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.DeactivateAccount(ctx, suite.orgID, accountID, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(accountID, result.AccountID)
	suite.False(result.NonZeroBalanceWarning)
}

func (suite *ChartServiceTestSuite) TestDeactivateAccount_NonZeroBalanceWarns() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, OrganizationID: suite.orgID, Code: "1000", IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.orgID, accountID).Return(account, nil).Once()
	suite.mockBalanceRepo.On("SumPostedLinesForAccount", ctx, suite.orgID, accountID).Return([]portsrepo.BalanceRow{
		{Account: *account, CurrencyCode: "USD", TotalDebits: mustMoney(suite.T(), "200.00"), TotalCredits: mustMoney(suite.T(), "150.00")},
	}, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, suite.orgID, accountID, suite.actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.DeactivateAccount(ctx, suite.orgID, accountID, suite.actorID)

	suite.Require().NoError(err)
	suite.True(result.NonZeroBalanceWarning)
}

func TestChartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ChartServiceTestSuite))
}
