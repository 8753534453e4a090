package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/tallybook/tallybook/internal/core/domain"
	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
	"github.com/tallybook/tallybook/internal/middleware"
)

// BalanceService derives account balances by folding posted lines. Balances
// are never stored; every call recomputes from the journal, so they are
// always consistent with the entries and there is no cache to invalidate.
type BalanceService struct {
	balanceRepo portsrepo.BalanceRepository
	orgRepo     portsrepo.OrganizationRepository
	accountRepo portsrepo.AccountRepository
}

func NewBalanceService(balanceRepo portsrepo.BalanceRepository, orgRepo portsrepo.OrganizationRepository, accountRepo portsrepo.AccountRepository) *BalanceService {
	return &BalanceService{
		balanceRepo: balanceRepo,
		orgRepo:     orgRepo,
		accountRepo: accountRepo,
	}
}

func toAccountBalance(row portsrepo.BalanceRow) domain.AccountBalance {
	net, _ := domain.NewMoney(row.TotalDebits.Decimal().Sub(row.TotalCredits.Decimal()))
	return domain.AccountBalance{
		AccountID:    row.Account.AccountID,
		Code:         row.Account.Code,
		Name:         row.Account.Name,
		AccountType:  row.Account.AccountType,
		CurrencyCode: row.CurrencyCode,
		TotalDebits:  row.TotalDebits,
		TotalCredits: row.TotalCredits,
		NetBalance:   net,
	}
}

// Balances derives per-account, per-currency totals for the organization,
// optionally bounded by entry date. Accounts with no posted lines in range
// are absent from the result.
func (s *BalanceService) Balances(ctx context.Context, orgID string, asOf *time.Time) ([]domain.AccountBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.orgRepo.FindOrganizationByID(ctx, orgID); err != nil {
		return nil, err
	}

	rows, err := s.balanceRepo.SumPostedLines(ctx, orgID, asOf)
	if err != nil {
		logger.Error("Failed to derive balances", slog.String("error", err.Error()), slog.String("organization_id", orgID))
		return nil, err
	}

	balances := make([]domain.AccountBalance, len(rows))
	for i, row := range rows {
		balances[i] = toAccountBalance(row)
	}
	return balances, nil
}

// AccountBalance derives the totals for one account, one row per effective
// currency. An account with no posted history returns an empty slice.
func (s *BalanceService) AccountBalance(ctx context.Context, orgID string, accountID string) ([]domain.AccountBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, orgID, accountID); err != nil {
		return nil, err
	}

	rows, err := s.balanceRepo.SumPostedLinesForAccount(ctx, orgID, accountID)
	if err != nil {
		logger.Error("Failed to derive account balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	balances := make([]domain.AccountBalance, len(rows))
	for i, row := range rows {
		balances[i] = toAccountBalance(row)
	}
	return balances, nil
}
