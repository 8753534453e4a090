package repositories

import (
	"context"
	"time"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// EntryRepository defines persistence operations for journal entries and
// their lines.
//
// Every mutating method runs in a single serializable transaction and
// revalidates the entry status under a row lock, so a concurrent transition
// can never interleave with a structural mutation. Serialization failures
// surface as apperrors.ErrConcurrencyConflict.
type EntryRepository interface {
	// SaveDraftEntry persists a new draft header together with its initial
	// lines atomically.
	SaveDraftEntry(ctx context.Context, entry domain.JournalEntry) error

	// FindEntryByID loads the entry with its lines, ordered by creation.
	// Cross-tenant ids behave as not found.
	FindEntryByID(ctx context.Context, orgID string, entryID string) (*domain.JournalEntry, error)

	// UpdateEntryHeader persists draft header edits (date, reference, memo).
	// The draft status is rechecked under the row lock.
	UpdateEntryHeader(ctx context.Context, orgID string, entry domain.JournalEntry) error

	AddLine(ctx context.Context, orgID string, entryID string, line domain.JournalLine, actorID string, now time.Time) error
	UpdateLine(ctx context.Context, orgID string, entryID string, line domain.JournalLine, actorID string, now time.Time) error
	RemoveLine(ctx context.Context, orgID string, entryID string, lineID string, actorID string, now time.Time) error

	// PostEntry performs the draft -> posted transition. Inside the
	// transaction it re-reads the lines, re-verifies the per-currency balance
	// and the active flag of every referenced account (locked FOR SHARE), and
	// sets status and posted_at together. No partial state is ever visible.
	PostEntry(ctx context.Context, orgID string, entryID string, actorID string, postedAt time.Time) error

	// VoidEntry performs the posted -> voided transition, leaving the lines
	// byte-for-byte untouched.
	VoidEntry(ctx context.Context, orgID string, entryID string, reason string, actorID string, voidedAt time.Time) error

	// ListEntries returns a page of entry headers ordered by entry date then
	// creation time, newest first, with an opaque cursor for the next page.
	ListEntries(ctx context.Context, orgID string, limit int, nextToken *string, includeVoided bool) ([]domain.JournalEntry, *string, error)
}
