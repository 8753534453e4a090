package services

import (
	"context"
	"time"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// BalanceSvcFacade is the read path of the core: account balances derived by
// folding posted lines. It owns no mutable state and is safe to call
// concurrently with postings.
//
// Voided entries are excluded from the fold by contract; callers that need
// the pre-void picture must query entries directly.
type BalanceSvcFacade interface {
	// Balances derives per-account totals for the organization, optionally as
	// of a date (entry_date <= asOf). Results are ordered by account code and
	// deterministic for a fixed database state.
	Balances(ctx context.Context, orgID string, asOf *time.Time) ([]domain.AccountBalance, error)

	// AccountBalance derives the totals for a single account.
	AccountBalance(ctx context.Context, orgID string, accountID string) ([]domain.AccountBalance, error)
}
