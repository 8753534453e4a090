package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tallybook/tallybook/internal/core/domain"
	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
)

func mustMoney(t *testing.T, s string) domain.Money {
	t.Helper()
	m, err := domain.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

// MockOrganizationRepository is a mock type for the OrganizationRepository interface
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, orgID string) (*domain.Organization, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockOrganizationRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockOrganizationRepository) AddMember(ctx context.Context, membership domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockOrganizationRepository) RemoveMember(ctx context.Context, orgID string, userID string) error {
	args := m.Called(ctx, orgID, userID)
	return args.Error(0)
}

func (m *MockOrganizationRepository) ListMembers(ctx context.Context, orgID string) ([]domain.Membership, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

func (m *MockOrganizationRepository) ListOrganizationsByUser(ctx context.Context, userID string) ([]domain.Organization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

// MockAccountRepository is a mock type for the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, orgID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, orgID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, orgID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, orgID string) ([]domain.Account, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountDetails(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, orgID string, accountID string, actorID string, now time.Time) error {
	args := m.Called(ctx, orgID, accountID, actorID, now)
	return args.Error(0)
}

// MockEntryRepository is a mock type for the EntryRepository interface
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) SaveDraftEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, orgID string, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) UpdateEntryHeader(ctx context.Context, orgID string, entry domain.JournalEntry) error {
	args := m.Called(ctx, orgID, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) AddLine(ctx context.Context, orgID string, entryID string, line domain.JournalLine, actorID string, now time.Time) error {
	args := m.Called(ctx, orgID, entryID, line, actorID, now)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateLine(ctx context.Context, orgID string, entryID string, line domain.JournalLine, actorID string, now time.Time) error {
	args := m.Called(ctx, orgID, entryID, line, actorID, now)
	return args.Error(0)
}

func (m *MockEntryRepository) RemoveLine(ctx context.Context, orgID string, entryID string, lineID string, actorID string, now time.Time) error {
	args := m.Called(ctx, orgID, entryID, lineID, actorID, now)
	return args.Error(0)
}

func (m *MockEntryRepository) PostEntry(ctx context.Context, orgID string, entryID string, actorID string, postedAt time.Time) error {
	args := m.Called(ctx, orgID, entryID, actorID, postedAt)
	return args.Error(0)
}

func (m *MockEntryRepository) VoidEntry(ctx context.Context, orgID string, entryID string, reason string, actorID string, voidedAt time.Time) error {
	args := m.Called(ctx, orgID, entryID, reason, actorID, voidedAt)
	return args.Error(0)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, orgID string, limit int, nextToken *string, includeVoided bool) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, orgID, limit, nextToken, includeVoided)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

// MockBalanceRepository is a mock type for the BalanceRepository interface
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) SumPostedLines(ctx context.Context, orgID string, asOf *time.Time) ([]portsrepo.BalanceRow, error) {
	args := m.Called(ctx, orgID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.BalanceRow), args.Error(1)
}

func (m *MockBalanceRepository) SumPostedLinesForAccount(ctx context.Context, orgID string, accountID string) ([]portsrepo.BalanceRow, error) {
	args := m.Called(ctx, orgID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.BalanceRow), args.Error(1)
}

// seqIDGen yields deterministic ids so tests can assert on generated values.
type seqIDGen struct {
	prefix string
	n      int
}

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
