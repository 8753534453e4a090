package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors the journal entry lifecycle at the storage layer.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
	Voided EntryStatus = "VOIDED"
)

// JournalEntry is a journal entry header row.
// PostedAt is NULL exactly when the entry has never been posted; the CHECK
// constraint in the schema enforces postedAt IS NOT NULL <=> status != DRAFT.
type JournalEntry struct {
	EntryID        string      `db:"entry_id"`
	OrganizationID string      `db:"organization_id"`
	EntryDate      time.Time   `db:"entry_date"`
	Reference      string      `db:"reference"`
	Memo           string      `db:"memo"`
	Status         EntryStatus `db:"status"`
	PostedAt       *time.Time  `db:"posted_at"`
	VoidedAt       *time.Time  `db:"voided_at"`
	VoidReason     string      `db:"void_reason"`
	AuditFields
}

// JournalLine is a single debit-or-credit row belonging to a journal entry.
// Exactly one of Debit/Credit is positive; both are non-negative (CHECKed).
type JournalLine struct {
	LineID         string          `db:"line_id"`
	EntryID        string          `db:"entry_id"`
	OrganizationID string          `db:"organization_id"`
	AccountID      string          `db:"account_id"`
	Description    string          `db:"description"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	CurrencyCode   string          `db:"currency_code"`
	AuditFields
}
