package services

import (
	"context"

	"github.com/tallybook/tallybook/internal/core/domain"
	"github.com/tallybook/tallybook/internal/dto"
)

// ChartReaderSvc defines read operations on the chart of accounts.
type ChartReaderSvc interface {
	GetAccountByID(ctx context.Context, orgID string, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, orgID string) ([]domain.Account, error)
}

// ChartWriterSvc defines write operations on the chart of accounts.
type ChartWriterSvc interface {
	CreateAccount(ctx context.Context, orgID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error)

	// UpdateAccount renames an account or changes its description. Code and
	// type are immutable through this interface.
	UpdateAccount(ctx context.Context, orgID string, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error)

	// DeactivateAccount marks the account inactive. Deactivating an account
	// with a nonzero net balance succeeds but is flagged in the result.
	DeactivateAccount(ctx context.Context, orgID string, accountID string, actorID string) (*dto.DeactivateAccountResult, error)
}

// ChartOfAccountsSvcFacade combines all chart-of-accounts service interfaces.
type ChartOfAccountsSvcFacade interface {
	ChartReaderSvc
	ChartWriterSvc
}
