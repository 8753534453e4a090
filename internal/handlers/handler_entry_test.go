package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tallybook/tallybook/internal/apperrors"
	"github.com/tallybook/tallybook/internal/core/domain"
	portssvc "github.com/tallybook/tallybook/internal/core/ports/services"
	"github.com/tallybook/tallybook/internal/dto"
	"github.com/tallybook/tallybook/internal/handlers"
	"github.com/tallybook/tallybook/internal/utils/accounting"
)

// --- Mock OrganizationService ---
type MockOrganizationService struct {
	mock.Mock
}

func (m *MockOrganizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationService) GetOrganizationByID(ctx context.Context, orgID string) (*domain.Organization, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationService) ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}
func (m *MockOrganizationService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockOrganizationService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockOrganizationService) AddMember(ctx context.Context, orgID string, req dto.AddMemberRequest, actorID string) error {
	return m.Called(ctx, orgID, req, actorID).Error(0)
}
func (m *MockOrganizationService) RemoveMember(ctx context.Context, orgID string, userID string, actorID string) error {
	return m.Called(ctx, orgID, userID, actorID).Error(0)
}
func (m *MockOrganizationService) ListMembers(ctx context.Context, orgID string) ([]domain.Membership, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

var _ portssvc.OrganizationSvcFacade = (*MockOrganizationService)(nil)

// --- Mock ChartService ---
type MockChartService struct {
	mock.Mock
}

func (m *MockChartService) GetAccountByID(ctx context.Context, orgID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockChartService) GetAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, orgID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}
func (m *MockChartService) ListAccounts(ctx context.Context, orgID string) ([]domain.Account, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockChartService) CreateAccount(ctx context.Context, orgID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockChartService) UpdateAccount(ctx context.Context, orgID string, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, accountID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockChartService) DeactivateAccount(ctx context.Context, orgID string, accountID string, actorID string) (*dto.DeactivateAccountResult, error) {
	args := m.Called(ctx, orgID, accountID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DeactivateAccountResult), args.Error(1)
}

var _ portssvc.ChartOfAccountsSvcFacade = (*MockChartService)(nil)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) GetEntryByID(ctx context.Context, orgID string, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) ListEntries(ctx context.Context, orgID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, orgID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}
func (m *MockPostingService) CreateDraftEntry(ctx context.Context, orgID string, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) UpdateDraftEntry(ctx context.Context, orgID string, entryID string, req dto.UpdateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, entryID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) AddLine(ctx context.Context, orgID string, entryID string, req dto.LineRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, entryID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) UpdateLine(ctx context.Context, orgID string, entryID string, lineID string, req dto.LineRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, entryID, lineID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) RemoveLine(ctx context.Context, orgID string, entryID string, lineID string, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, entryID, lineID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) PostEntry(ctx context.Context, orgID string, entryID string, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, entryID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockPostingService) VoidEntry(ctx context.Context, orgID string, entryID string, req dto.VoidEntryRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, entryID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.PostingSvcFacade = (*MockPostingService)(nil)

// --- Mock BalanceService ---
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) Balances(ctx context.Context, orgID string, asOf *time.Time) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, orgID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}
func (m *MockBalanceService) AccountBalance(ctx context.Context, orgID string, accountID string) ([]domain.AccountBalance, error) {
	args := m.Called(ctx, orgID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountBalance), args.Error(1)
}

var _ portssvc.BalanceSvcFacade = (*MockBalanceService)(nil)

// --- Test Suite Setup ---

type EntryHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockPosting *MockPostingService

	orgID   string
	actorID string
}

func (suite *EntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.mockPosting = new(MockPostingService)
	container := &portssvc.ServiceContainer{
		Organization: new(MockOrganizationService),
		Chart:        new(MockChartService),
		Posting:      suite.mockPosting,
		Balance:      new(MockBalanceService),
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, container)

	suite.orgID = uuid.NewString()
	suite.actorID = uuid.NewString()
}

func (suite *EntryHandlerTestSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", suite.actorID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *EntryHandlerTestSuite) postedEntry() *domain.JournalEntry {
	now := time.Now()
	return &domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.orgID,
		EntryDate:      now,
		Status:         domain.Posted,
		PostedAt:       &now,
	}
}

func (suite *EntryHandlerTestSuite) TestPostEntry_Success() {
	entry := suite.postedEntry()
	suite.mockPosting.On("PostEntry", mock.Anything, suite.orgID, entry.EntryID, suite.actorID).Return(entry, nil).Once()

	w := suite.request(http.MethodPost, fmt.Sprintf("/api/v1/organizations/%s/entries/%s/post", suite.orgID, entry.EntryID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entry.EntryID, resp.EntryID)
	suite.Equal("POSTED", resp.Status)
	suite.NotNil(resp.PostedAt)
	suite.mockPosting.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestPostEntry_Unbalanced() {
	entryID := uuid.NewString()
	suite.mockPosting.On("PostEntry", mock.Anything, suite.orgID, entryID, suite.actorID).
		Return(nil, fmt.Errorf("%w: currency USD is off by 10", accounting.ErrUnbalanced)).Once()

	w := suite.request(http.MethodPost, fmt.Sprintf("/api/v1/organizations/%s/entries/%s/post", suite.orgID, entryID), nil)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(w.Body.String(), "USD")
}

func (suite *EntryHandlerTestSuite) TestPostEntry_NotDraftConflict() {
	entryID := uuid.NewString()
	suite.mockPosting.On("PostEntry", mock.Anything, suite.orgID, entryID, suite.actorID).
		Return(nil, fmt.Errorf("%w: status is POSTED", domain.ErrEntryNotDraft)).Once()

	w := suite.request(http.MethodPost, fmt.Sprintf("/api/v1/organizations/%s/entries/%s/post", suite.orgID, entryID), nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *EntryHandlerTestSuite) TestPostEntry_MissingActorHeader() {
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/organizations/%s/entries/%s/post", suite.orgID, uuid.NewString()), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPosting.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestVoidEntry_Success() {
	entry := suite.postedEntry()
	now := time.Now()
	entry.Status = domain.Voided
	entry.VoidedAt = &now
	entry.VoidReason = "duplicate"

	suite.mockPosting.On("VoidEntry", mock.Anything, suite.orgID, entry.EntryID, dto.VoidEntryRequest{Reason: "duplicate"}, suite.actorID).Return(entry, nil).Once()

	w := suite.request(http.MethodPost, fmt.Sprintf("/api/v1/organizations/%s/entries/%s/void", suite.orgID, entry.EntryID), dto.VoidEntryRequest{Reason: "duplicate"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("VOIDED", resp.Status)
	suite.Equal("duplicate", resp.VoidReason)
}

func (suite *EntryHandlerTestSuite) TestGetEntry_NotFound() {
	entryID := uuid.NewString()
	suite.mockPosting.On("GetEntryByID", mock.Anything, suite.orgID, entryID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.request(http.MethodGet, fmt.Sprintf("/api/v1/organizations/%s/entries/%s", suite.orgID, entryID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *EntryHandlerTestSuite) TestListEntries_PassesParams() {
	token := "cursor"
	suite.mockPosting.On("ListEntries", mock.Anything, suite.orgID, dto.ListEntriesParams{Limit: 10, NextToken: &token, IncludeVoided: true}).
		Return(&dto.ListEntriesResponse{Entries: []dto.EntryResponse{}}, nil).Once()

	w := suite.request(http.MethodGet, fmt.Sprintf("/api/v1/organizations/%s/entries?limit=10&nextToken=cursor&includeVoided=true", suite.orgID), nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockPosting.AssertExpectations(suite.T())
}

func TestEntryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}
