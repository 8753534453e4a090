package repositories

import (
	"context"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// OrganizationRepository defines persistence operations for tenants, users
// and memberships.
type OrganizationRepository interface {
	SaveOrganization(ctx context.Context, org domain.Organization) error
	FindOrganizationByID(ctx context.Context, orgID string) (*domain.Organization, error)

	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	AddMember(ctx context.Context, membership domain.Membership) error
	RemoveMember(ctx context.Context, orgID string, userID string) error
	ListMembers(ctx context.Context, orgID string) ([]domain.Membership, error)
	ListOrganizationsByUser(ctx context.Context, userID string) ([]domain.Organization, error)
}
