package dto

import (
	"time"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// CreateOrganizationRequest is the payload for creating a tenant.
type CreateOrganizationRequest struct {
	Name             string `json:"name" binding:"required,max=255"`
	BaseCurrencyCode string `json:"baseCurrencyCode" binding:"required,currencycode"`
}

// OrganizationResponse defines the data returned for an organization.
type OrganizationResponse struct {
	OrganizationID   string    `json:"organizationID"`
	Name             string    `json:"name"`
	BaseCurrencyCode string    `json:"baseCurrencyCode"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
}

// CreateUserRequest is the payload for creating a user identity.
type CreateUserRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddMemberRequest adds a user to an organization with a role.
type AddMemberRequest struct {
	UserID string `json:"userID" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// MemberResponse defines the data returned for one membership.
type MemberResponse struct {
	UserID   string    `json:"userID"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID:   o.OrganizationID,
		Name:             o.Name,
		BaseCurrencyCode: o.BaseCurrencyCode,
		IsActive:         o.IsActive,
		CreatedAt:        o.CreatedAt,
	}
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

func ToMemberResponses(members []domain.Membership) []MemberResponse {
	responses := make([]MemberResponse, len(members))
	for i, m := range members {
		responses[i] = MemberResponse{
			UserID:   m.UserID,
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
		}
	}
	return responses
}
