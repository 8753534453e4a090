package services

import (
	"context"

	"github.com/tallybook/tallybook/internal/core/domain"
	"github.com/tallybook/tallybook/internal/dto"
)

// OrganizationSvcFacade is the collaborator contract for tenant, user and
// membership management. Authorization is the caller's responsibility; the
// core trusts an already-authorized (orgID, actorID) pair on every call.
type OrganizationSvcFacade interface {
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error)
	GetOrganizationByID(ctx context.Context, orgID string) (*domain.Organization, error)
	ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error)

	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	AddMember(ctx context.Context, orgID string, req dto.AddMemberRequest, actorID string) error
	RemoveMember(ctx context.Context, orgID string, userID string, actorID string) error
	ListMembers(ctx context.Context, orgID string) ([]domain.Membership, error)
}
