package services

import (
	"context"

	"github.com/tallybook/tallybook/internal/core/domain"
	"github.com/tallybook/tallybook/internal/dto"
)

// EntryReaderSvc defines read operations for journal entries.
type EntryReaderSvc interface {
	GetEntryByID(ctx context.Context, orgID string, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, orgID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// EntryWriterSvc defines the draft-phase mutations of a journal entry.
type EntryWriterSvc interface {
	CreateDraftEntry(ctx context.Context, orgID string, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error)
	UpdateDraftEntry(ctx context.Context, orgID string, entryID string, req dto.UpdateEntryRequest, actorID string) (*domain.JournalEntry, error)
	AddLine(ctx context.Context, orgID string, entryID string, req dto.LineRequest, actorID string) (*domain.JournalEntry, error)
	UpdateLine(ctx context.Context, orgID string, entryID string, lineID string, req dto.LineRequest, actorID string) (*domain.JournalEntry, error)
	RemoveLine(ctx context.Context, orgID string, entryID string, lineID string, actorID string) (*domain.JournalEntry, error)
}

// EntryLifecycleSvc owns the draft -> posted -> voided state machine.
type EntryLifecycleSvc interface {
	// PostEntry validates the balance invariant per effective currency and
	// performs the atomic draft -> posted transition.
	PostEntry(ctx context.Context, orgID string, entryID string, actorID string) (*domain.JournalEntry, error)

	// VoidEntry performs the terminal posted -> voided transition, preserving
	// the original lines for audit.
	VoidEntry(ctx context.Context, orgID string, entryID string, req dto.VoidEntryRequest, actorID string) (*domain.JournalEntry, error)
}

// PostingSvcFacade combines all journal entry service interfaces.
type PostingSvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
	EntryLifecycleSvc
}
