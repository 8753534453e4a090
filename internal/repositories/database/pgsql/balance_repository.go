package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tallybook/tallybook/internal/apperrors"
	"github.com/tallybook/tallybook/internal/core/domain"
	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
	"github.com/tallybook/tallybook/internal/models"
	"github.com/tallybook/tallybook/internal/utils/mapping"
)

type PgxBalanceRepository struct {
	BaseRepository
}

func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepository {
	return &PgxBalanceRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepository = (*PgxBalanceRepository)(nil)

// balanceQuery aggregates debits and credits per account and effective
// currency over posted, non-voided entries. The whole fold runs as one
// statement, so it sees a single snapshot: a concurrent posting is either
// fully included or fully absent.
const balanceQuery = `
	SELECT a.account_id, a.organization_id, a.code, a.name, a.account_type,
	       a.currency_code, a.description, a.is_active,
	       a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
	       COALESCE(l.currency_code, a.currency_code, o.base_currency_code) AS effective_currency,
	       SUM(l.debit)  AS total_debits,
	       SUM(l.credit) AS total_credits
	FROM journal_lines l
	JOIN journal_entries e ON e.organization_id = l.organization_id AND e.entry_id = l.entry_id
	JOIN accounts a        ON a.organization_id = l.organization_id AND a.account_id = l.account_id
	JOIN organizations o   ON o.organization_id = l.organization_id
	WHERE l.organization_id = $1
	  AND e.status = 'POSTED'
`

const balanceGroupOrder = `
	GROUP BY a.account_id, a.organization_id, a.code, a.name, a.account_type,
	         a.currency_code, a.description, a.is_active,
	         a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
	         effective_currency
	ORDER BY a.code, effective_currency;
`

func (r *PgxBalanceRepository) queryBalanceRows(ctx context.Context, query string, args ...any) ([]portsrepo.BalanceRow, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate balances: %w", err)
	}
	defer rows.Close()

	var result []portsrepo.BalanceRow
	for rows.Next() {
		var m models.Account
		var accountCurrency sql.NullString
		var effectiveCurrency string
		var totalDebits, totalCredits decimal.Decimal
		if err := rows.Scan(
			&m.AccountID, &m.OrganizationID, &m.Code, &m.Name, &m.AccountType,
			&accountCurrency, &m.Description, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			&effectiveCurrency, &totalDebits, &totalCredits,
		); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		if accountCurrency.Valid {
			m.CurrencyCode = accountCurrency.String
		}

		debits, err := domain.NewMoney(totalDebits)
		if err != nil {
			return nil, fmt.Errorf("%w: total debits for account %s: %v", apperrors.ErrIntegrity, m.AccountID, err)
		}
		credits, err := domain.NewMoney(totalCredits)
		if err != nil {
			return nil, fmt.Errorf("%w: total credits for account %s: %v", apperrors.ErrIntegrity, m.AccountID, err)
		}

		result = append(result, portsrepo.BalanceRow{
			Account:      mapping.ToDomainAccount(m),
			CurrencyCode: effectiveCurrency,
			TotalDebits:  debits,
			TotalCredits: credits,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance rows: %w", err)
	}
	return result, nil
}

func (r *PgxBalanceRepository) SumPostedLines(ctx context.Context, orgID string, asOf *time.Time) ([]portsrepo.BalanceRow, error) {
	if asOf != nil {
		return r.queryBalanceRows(ctx, balanceQuery+` AND e.entry_date <= $2`+balanceGroupOrder, orgID, *asOf)
	}
	return r.queryBalanceRows(ctx, balanceQuery+balanceGroupOrder, orgID)
}

func (r *PgxBalanceRepository) SumPostedLinesForAccount(ctx context.Context, orgID string, accountID string) ([]portsrepo.BalanceRow, error) {
	return r.queryBalanceRows(ctx, balanceQuery+` AND l.account_id = $2`+balanceGroupOrder, orgID, accountID)
}
