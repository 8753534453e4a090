package repositories

import (
	"context"
	"time"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// BalanceRow is one aggregated (account, effective currency) partition of the
// posted history. Voided entries are excluded by contract.
type BalanceRow struct {
	Account      domain.Account
	CurrencyCode string
	TotalDebits  domain.Money
	TotalCredits domain.Money
}

// BalanceRepository is the read path of the core: aggregation over posted,
// non-voided lines. Queries run in a single statement (snapshot-consistent in
// PostgreSQL), so a concurrent posting is either fully visible or not at all.
type BalanceRepository interface {
	// SumPostedLines aggregates debits and credits per account and effective
	// currency for one organization, optionally bounded by entry date.
	SumPostedLines(ctx context.Context, orgID string, asOf *time.Time) ([]BalanceRow, error)

	// SumPostedLinesForAccount aggregates a single account. Returns rows per
	// effective currency; empty when the account has no posted lines.
	SumPostedLinesForAccount(ctx context.Context, orgID string, accountID string) ([]BalanceRow, error)
}
