package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// IDGenerator produces unique identifiers for new entities.
// It is injected into constructors so identifier generation is an explicit
// dependency rather than ambient global state.
type IDGenerator interface {
	NewID() string
}
