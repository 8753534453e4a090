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

// OrganizationService manages tenants, users and memberships.
type OrganizationService struct {
	orgRepo portsrepo.OrganizationRepository
	idGen   domain.IDGenerator
}

func NewOrganizationService(orgRepo portsrepo.OrganizationRepository, idGen domain.IDGenerator) *OrganizationService {
	return &OrganizationService{orgRepo: orgRepo, idGen: idGen}
}

// CreateOrganization creates a tenant and enrolls the creator as its admin.
func (s *OrganizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.orgRepo.FindUserByID(ctx, creatorUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("creator user %s: %w", creatorUserID, apperrors.ErrNotFound)
		}
		return nil, err
	}

	now := time.Now()
	org := domain.Organization{
		OrganizationID:   s.idGen.NewID(),
		Name:             req.Name,
		BaseCurrencyCode: req.BaseCurrencyCode,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		logger.Error("Failed to save organization", slog.String("error", err.Error()), slog.String("organization_id", org.OrganizationID))
		return nil, err
	}

	membership := domain.Membership{
		UserID:         creatorUserID,
		OrganizationID: org.OrganizationID,
		Role:           domain.RoleAdmin,
		JoinedAt:       now,
	}
	if err := s.orgRepo.AddMember(ctx, membership); err != nil {
		logger.Error("Failed to add creator as admin member", slog.String("error", err.Error()), slog.String("organization_id", org.OrganizationID))
		return nil, err
	}

	logger.Info("Organization created", slog.String("organization_id", org.OrganizationID))
	return &org, nil
}

func (s *OrganizationService) GetOrganizationByID(ctx context.Context, orgID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	org, err := s.orgRepo.FindOrganizationByID(ctx, orgID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find organization", slog.String("error", err.Error()), slog.String("organization_id", orgID))
		}
		return nil, err
	}
	return org, nil
}

func (s *OrganizationService) ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	orgs, err := s.orgRepo.ListOrganizationsByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list organizations for user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, err
	}
	if orgs == nil {
		return []domain.Organization{}, nil
	}
	return orgs, nil
}

func (s *OrganizationService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	user := domain.User{
		UserID: s.idGen.NewID(),
		Name:   req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.orgRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		return nil, err
	}

	logger.Info("User created", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *OrganizationService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.orgRepo.FindUserByID(ctx, userID)
}

// AddMember enrolls an existing user into the organization with a role.
func (s *OrganizationService) AddMember(ctx context.Context, orgID string, req dto.AddMemberRequest, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.orgRepo.FindOrganizationByID(ctx, orgID); err != nil {
		return err
	}
	if _, err := s.orgRepo.FindUserByID(ctx, req.UserID); err != nil {
		return err
	}

	membership := domain.Membership{
		UserID:         req.UserID,
		OrganizationID: orgID,
		Role:           domain.MemberRole(req.Role),
		JoinedAt:       time.Now(),
	}
	if err := s.orgRepo.AddMember(ctx, membership); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to add member", slog.String("error", err.Error()), slog.String("organization_id", orgID), slog.String("user_id", req.UserID))
		}
		return err
	}

	logger.Info("Member added", slog.String("organization_id", orgID), slog.String("user_id", req.UserID), slog.String("added_by", actorID))
	return nil
}

func (s *OrganizationService) RemoveMember(ctx context.Context, orgID string, userID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.orgRepo.RemoveMember(ctx, orgID, userID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to remove member", slog.String("error", err.Error()), slog.String("organization_id", orgID), slog.String("user_id", userID))
		}
		return err
	}
	logger.Info("Member removed", slog.String("organization_id", orgID), slog.String("user_id", userID), slog.String("removed_by", actorID))
	return nil
}

func (s *OrganizationService) ListMembers(ctx context.Context, orgID string) ([]domain.Membership, error) {
	if _, err := s.orgRepo.FindOrganizationByID(ctx, orgID); err != nil {
		return nil, err
	}
	members, err := s.orgRepo.ListMembers(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if members == nil {
		return []domain.Membership{}, nil
	}
	return members, nil
}
