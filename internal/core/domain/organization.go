package domain

import "time"

// Organization is the tenant root. Every other entity is scoped by its
// organization ID; no entity may reference an entity from another organization.
type Organization struct {
	OrganizationID   string `json:"organizationID"` // Primary key (UUID)
	Name             string `json:"name"`
	BaseCurrencyCode string `json:"baseCurrencyCode"` // 3-letter code, inherited by accounts without an override
	IsActive         bool   `json:"isActive"`
	AuditFields
}

// MemberRole defines the possible roles a user can have within an organization.
// Authorization itself is the caller's responsibility; the role is recorded for
// the surrounding system's use.
type MemberRole string

const (
	RoleAdmin    MemberRole = "ADMIN"
	RoleMember   MemberRole = "MEMBER"
	RoleReadOnly MemberRole = "READONLY"
)

// User is a member of one or more organizations. The core keeps no credentials;
// it trusts an already-authorized (organizationID, actorID) pair on every call.
type User struct {
	UserID string `json:"userID"` // Primary key (UUID)
	Name   string `json:"name"`
	AuditFields
}

// Membership links a User to an Organization with a role.
type Membership struct {
	UserID         string     `json:"userID"`
	OrganizationID string     `json:"organizationID"`
	Role           MemberRole `json:"role"`
	JoinedAt       time.Time  `json:"joinedAt"`
}
