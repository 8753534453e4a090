package repositories

import (
	"context"
	"time"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// AccountRepository defines persistence operations for the chart of accounts.
// All lookups are tenant-scoped; a cross-tenant id behaves as not found.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, orgID string, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, orgID string, code string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, orgID string) ([]domain.Account, error)

	// UpdateAccountDetails persists rename/description changes only. Code and
	// type never change through this path.
	UpdateAccountDetails(ctx context.Context, account domain.Account) error
	DeactivateAccount(ctx context.Context, orgID string, accountID string, actorID string, now time.Time) error
}
