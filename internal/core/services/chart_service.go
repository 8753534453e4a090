package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tallybook/tallybook/internal/apperrors"
	"github.com/tallybook/tallybook/internal/core/domain"
	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
	"github.com/tallybook/tallybook/internal/dto"
	"github.com/tallybook/tallybook/internal/middleware"
)

var (
	// ErrDuplicateCode is returned when an account code is already taken
	// within the organization.
	ErrDuplicateCode = errors.New("account code already exists in organization")
	// ErrInvalidAccountType is returned for a type outside the fixed set.
	ErrInvalidAccountType = errors.New("invalid account type")
)

// ChartService manages the chart of accounts for each organization.
// Deactivation checks the derived balance through the balance repository,
// which is why it hangs off this service rather than the account repo alone.
type ChartService struct {
	accountRepo portsrepo.AccountRepository
	orgRepo     portsrepo.OrganizationRepository
	balanceRepo portsrepo.BalanceRepository
	idGen       domain.IDGenerator
}

func NewChartService(accountRepo portsrepo.AccountRepository, orgRepo portsrepo.OrganizationRepository, balanceRepo portsrepo.BalanceRepository, idGen domain.IDGenerator) *ChartService {
	return &ChartService{
		accountRepo: accountRepo,
		orgRepo:     orgRepo,
		balanceRepo: balanceRepo,
		idGen:       idGen,
	}
}

// CreateAccount adds an account to the organization's chart. The code must be
// unique within the organization; the type must be one of the five fixed
// types.
func (s *ChartService) CreateAccount(ctx context.Context, orgID string, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.orgRepo.FindOrganizationByID(ctx, orgID); err != nil {
		return nil, err
	}

	accountType := domain.AccountType(req.AccountType)
	if !domain.ValidAccountType(accountType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAccountType, req.AccountType)
	}

	existing, err := s.accountRepo.FindAccountByCode(ctx, orgID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, req.Code)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:      s.idGen.NewID(),
		OrganizationID: orgID,
		Code:           req.Code,
		Name:           req.Name,
		AccountType:    accountType,
		CurrencyCode:   req.CurrencyCode,
		Description:    req.Description,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		// A concurrent create with the same code loses the unique constraint
		// race even though the pre-check above passed.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, req.Code)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *ChartService) GetAccountByID(ctx context.Context, orgID string, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, orgID, accountID)
}

func (s *ChartService) GetAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, orgID, accountIDs)
}

func (s *ChartService) ListAccounts(ctx context.Context, orgID string) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListAccounts(ctx, orgID)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()), slog.String("organization_id", orgID))
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount renames an account or changes its description. Code and type
// stay fixed so posted history keeps its meaning.
func (s *ChartService) UpdateAccount(ctx context.Context, orgID string, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, orgID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = actorID

	if err := s.accountRepo.UpdateAccountDetails(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	return account, nil
}

// DeactivateAccount marks the account inactive so new lines cannot reference
// it. Posted history stays intact. A nonzero net balance does not block the
// deactivation but is flagged in the result.
func (s *ChartService) DeactivateAccount(ctx context.Context, orgID string, accountID string, actorID string) (*dto.DeactivateAccountResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, orgID, accountID); err != nil {
		return nil, err
	}

	rows, err := s.balanceRepo.SumPostedLinesForAccount(ctx, orgID, accountID)
	if err != nil {
		logger.Error("Failed to derive balance before deactivation", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}
	nonZero := false
	for _, row := range rows {
		if !row.TotalDebits.Sub(row.TotalCredits).IsZero() {
			nonZero = true
			break
		}
	}

	if err := s.accountRepo.DeactivateAccount(ctx, orgID, accountID, actorID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	if nonZero {
		logger.Warn("Account deactivated with nonzero balance", slog.String("account_id", accountID))
	} else {
		logger.Info("Account deactivated", slog.String("account_id", accountID))
	}
	return &dto.DeactivateAccountResult{AccountID: accountID, NonZeroBalanceWarning: nonZero}, nil
}
