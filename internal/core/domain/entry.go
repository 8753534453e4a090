package domain

import (
	"errors"
	"fmt"
	"time"
)

// EntryStatus indicates the lifecycle state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
	Voided EntryStatus = "VOIDED"
)

var (
	// ErrEntryNotDraft guards every structural mutation: only draft entries change.
	ErrEntryNotDraft = errors.New("journal entry is not in draft status")
	// ErrCrossTenantReference is returned when a line references an account from
	// a different organization than its entry.
	ErrCrossTenantReference = errors.New("account belongs to a different organization")
	// ErrBothSidesSet is returned when a line carries both a debit and a credit.
	ErrBothSidesSet = errors.New("journal line cannot have both debit and credit set")
	// ErrZeroAmountLine is returned when a line carries neither a debit nor a credit.
	ErrZeroAmountLine = errors.New("journal line must have a debit or a credit amount")
	// ErrNegativeAmount is returned when a line amount is negative.
	ErrNegativeAmount = errors.New("journal line amounts must be non-negative")
	// ErrNotPosted guards voiding: only posted entries can be voided.
	ErrNotPosted = errors.New("journal entry is not posted")
	// ErrAlreadyVoided is returned when voiding a voided entry. Voided is terminal.
	ErrAlreadyVoided = errors.New("journal entry is already voided")
	// ErrLineNotFound is returned for update/remove of an unknown line.
	ErrLineNotFound = errors.New("journal line not found in entry")
)

// JournalLine is a single line item within a JournalEntry, affecting one
// account. Both amounts are non-negative and exactly one of them is positive.
// Lines are composed into their entry and cannot outlive it.
type JournalLine struct {
	LineID         string `json:"lineID"`         // Primary key (UUID)
	EntryID        string `json:"entryID"`        // FK -> journal_entries (NOT NULL)
	OrganizationID string `json:"organizationID"` // Always equals the parent entry's organization
	AccountID      string `json:"accountID"`      // FK -> accounts (NOT NULL)
	Description    string `json:"description"`
	Debit          Money  `json:"debit"`
	Credit         Money  `json:"credit"`
	CurrencyCode   string `json:"currencyCode"` // Optional override; resolution chain is line -> account -> organization
	AuditFields
}

// JournalEntry is the transactional unit of the ledger: a header plus an
// ordered set of lines. The entry is mutable while draft, becomes immutable on
// posting, and can only transition posted -> voided afterwards.
type JournalEntry struct {
	EntryID        string        `json:"entryID"`        // Primary key (UUID)
	OrganizationID string        `json:"organizationID"` // FK -> organizations (NOT NULL)
	EntryDate      time.Time     `json:"entryDate"`
	Reference      string        `json:"reference"` // Optional free-text reference
	Memo           string        `json:"memo"`
	Status         EntryStatus   `json:"status"`
	PostedAt       *time.Time    `json:"postedAt"` // Set if and only if Status == Posted or the entry was posted before voiding
	VoidedAt       *time.Time    `json:"voidedAt"`
	VoidReason     string        `json:"voidReason"`
	Lines          []JournalLine `json:"lines"`
	AuditFields
}

// NewDraftEntry creates a new draft journal entry with no lines.
func NewDraftEntry(gen IDGenerator, orgID string, entryDate time.Time, reference, memo, createdBy string, now time.Time) JournalEntry {
	return JournalEntry{
		EntryID:        gen.NewID(),
		OrganizationID: orgID,
		EntryDate:      entryDate,
		Reference:      reference,
		Memo:           memo,
		Status:         Draft,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}
}

// validateLineAmounts enforces the per-line amount invariant: both sides
// non-negative and exactly one of them strictly positive.
func validateLineAmounts(debit, credit Money) error {
	if debit.IsNegative() || credit.IsNegative() {
		return ErrNegativeAmount
	}
	if debit.IsPositive() && credit.IsPositive() {
		return ErrBothSidesSet
	}
	if debit.IsZero() && credit.IsZero() {
		return ErrZeroAmountLine
	}
	return nil
}

// AddLine appends a line referencing the given account to a draft entry.
func (e *JournalEntry) AddLine(gen IDGenerator, account Account, debit, credit Money, description, currencyCode, actorID string, now time.Time) (*JournalLine, error) {
	if e.Status != Draft {
		return nil, fmt.Errorf("%w: status is %s", ErrEntryNotDraft, e.Status)
	}
	if account.OrganizationID != e.OrganizationID {
		return nil, fmt.Errorf("%w: account %s", ErrCrossTenantReference, account.AccountID)
	}
	if err := validateLineAmounts(debit, credit); err != nil {
		return nil, err
	}

	line := JournalLine{
		LineID:         gen.NewID(),
		EntryID:        e.EntryID,
		OrganizationID: e.OrganizationID,
		AccountID:      account.AccountID,
		Description:    description,
		Debit:          debit,
		Credit:         credit,
		CurrencyCode:   currencyCode,
		AuditFields: AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	e.Lines = append(e.Lines, line)
	e.touch(actorID, now)
	return &e.Lines[len(e.Lines)-1], nil
}

// UpdateLine replaces the amounts and description of an existing draft line.
func (e *JournalEntry) UpdateLine(lineID string, account Account, debit, credit Money, description, currencyCode, actorID string, now time.Time) error {
	if e.Status != Draft {
		return fmt.Errorf("%w: status is %s", ErrEntryNotDraft, e.Status)
	}
	if account.OrganizationID != e.OrganizationID {
		return fmt.Errorf("%w: account %s", ErrCrossTenantReference, account.AccountID)
	}
	if err := validateLineAmounts(debit, credit); err != nil {
		return err
	}

	for i := range e.Lines {
		if e.Lines[i].LineID != lineID {
			continue
		}
		e.Lines[i].AccountID = account.AccountID
		e.Lines[i].Description = description
		e.Lines[i].Debit = debit
		e.Lines[i].Credit = credit
		e.Lines[i].CurrencyCode = currencyCode
		e.Lines[i].LastUpdatedAt = now
		e.Lines[i].LastUpdatedBy = actorID
		e.touch(actorID, now)
		return nil
	}
	return fmt.Errorf("%w: line %s", ErrLineNotFound, lineID)
}

// RemoveLine deletes a line from a draft entry.
func (e *JournalEntry) RemoveLine(lineID string, actorID string, now time.Time) error {
	if e.Status != Draft {
		return fmt.Errorf("%w: status is %s", ErrEntryNotDraft, e.Status)
	}
	for i := range e.Lines {
		if e.Lines[i].LineID == lineID {
			e.Lines = append(e.Lines[:i], e.Lines[i+1:]...)
			e.touch(actorID, now)
			return nil
		}
	}
	return fmt.Errorf("%w: line %s", ErrLineNotFound, lineID)
}

// MarkPosted performs the one-way draft -> posted transition on the in-memory
// aggregate. PostedAt is set together with the status so an entry is posted
// exactly when PostedAt is set.
func (e *JournalEntry) MarkPosted(actorID string, now time.Time) error {
	if e.Status != Draft {
		return fmt.Errorf("%w: status is %s", ErrEntryNotDraft, e.Status)
	}
	postedAt := now
	e.Status = Posted
	e.PostedAt = &postedAt
	e.touch(actorID, now)
	return nil
}

// MarkVoided performs the terminal posted -> voided transition. The lines are
// untouched: voiding never edits or deletes the audit trail.
func (e *JournalEntry) MarkVoided(reason, actorID string, now time.Time) error {
	switch e.Status {
	case Voided:
		return ErrAlreadyVoided
	case Posted:
		voidedAt := now
		e.Status = Voided
		e.VoidedAt = &voidedAt
		e.VoidReason = reason
		e.touch(actorID, now)
		return nil
	default:
		return fmt.Errorf("%w: status is %s", ErrNotPosted, e.Status)
	}
}

func (e *JournalEntry) touch(actorID string, now time.Time) {
	e.LastUpdatedAt = now
	e.LastUpdatedBy = actorID
}
