package models

import "time"

// Organization is the tenant root row.
type Organization struct {
	OrganizationID   string `db:"organization_id"`
	Name             string `db:"name"`
	BaseCurrencyCode string `db:"base_currency_code"`
	IsActive         bool   `db:"is_active"`
	AuditFields
}

// User is a member identity row. No credentials are stored; authentication is
// the surrounding system's concern.
type User struct {
	UserID string `db:"user_id"`
	Name   string `db:"name"`
	AuditFields
}

// Membership links users to organizations with a role.
type Membership struct {
	UserID         string    `db:"user_id"`
	OrganizationID string    `db:"organization_id"`
	Role           string    `db:"role"`
	JoinedAt       time.Time `db:"joined_at"`
}
