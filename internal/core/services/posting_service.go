package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tallybook/tallybook/internal/core/domain"
	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
	"github.com/tallybook/tallybook/internal/dto"
	"github.com/tallybook/tallybook/internal/middleware"
	"github.com/tallybook/tallybook/internal/utils/accounting"
)

var (
	// ErrAccountNotFound is returned when a line references an account that
	// does not exist in the organization. Cross-tenant ids resolve to this
	// same error so nothing about other tenants leaks.
	ErrAccountNotFound = errors.New("account not found in organization")
	// ErrInactiveAccount is returned when a line references a deactivated
	// account. Existing posted lines keep referencing it; new ones cannot.
	ErrInactiveAccount = errors.New("account is inactive")
)

const (
	defaultEntryPageSize = 50
	maxEntryPageSize     = 200
)

// PostingService owns the journal entry lifecycle: draft creation and
// mutation, the balance-validated draft -> posted transition, and the
// terminal posted -> voided transition.
//
// Validation runs twice by design: once here against the loaded aggregate,
// and once more inside the repository's serializable transaction against
// re-read state. Both passes share the accounting package so the rules can
// never drift apart.
type PostingService struct {
	entryRepo   portsrepo.EntryRepository
	accountRepo portsrepo.AccountRepository
	orgRepo     portsrepo.OrganizationRepository
	idGen       domain.IDGenerator
}

func NewPostingService(entryRepo portsrepo.EntryRepository, accountRepo portsrepo.AccountRepository, orgRepo portsrepo.OrganizationRepository, idGen domain.IDGenerator) *PostingService {
	return &PostingService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		orgRepo:     orgRepo,
		idGen:       idGen,
	}
}

// lineAmounts converts the request decimals into Money, surfacing scale
// violations before the domain sees them.
func lineAmounts(req dto.LineRequest) (domain.Money, domain.Money, error) {
	debit, err := domain.NewMoney(req.Debit)
	if err != nil {
		return domain.Money{}, domain.Money{}, fmt.Errorf("debit: %w", err)
	}
	credit, err := domain.NewMoney(req.Credit)
	if err != nil {
		return domain.Money{}, domain.Money{}, fmt.Errorf("credit: %w", err)
	}
	return debit, credit, nil
}

// resolveLineAccount loads the account a line references and enforces the
// existence and active-flag rules for new or changed lines.
func (s *PostingService) resolveLineAccount(ctx context.Context, orgID string, accounts map[string]domain.Account, accountID string) (domain.Account, error) {
	if acc, ok := accounts[accountID]; ok {
		if !acc.IsActive {
			return domain.Account{}, fmt.Errorf("%w: %s", ErrInactiveAccount, accountID)
		}
		return acc, nil
	}
	acc, err := s.accountRepo.FindAccountByID(ctx, orgID, accountID)
	if err != nil {
		return domain.Account{}, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}
	if !acc.IsActive {
		return domain.Account{}, fmt.Errorf("%w: %s", ErrInactiveAccount, accountID)
	}
	accounts[accountID] = *acc
	return *acc, nil
}

// CreateDraftEntry creates a draft journal entry, optionally with initial
// lines. A draft may be empty or unbalanced; those rules bind only at
// posting time.
func (s *PostingService) CreateDraftEntry(ctx context.Context, orgID string, req dto.CreateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.orgRepo.FindOrganizationByID(ctx, orgID); err != nil {
		return nil, err
	}

	now := time.Now()
	entry := domain.NewDraftEntry(s.idGen, orgID, req.EntryDate, req.Reference, req.Memo, actorID, now)

	accounts := make(map[string]domain.Account, len(req.Lines))
	for i, lineReq := range req.Lines {
		account, err := s.resolveLineAccount(ctx, orgID, accounts, lineReq.AccountID)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		debit, credit, err := lineAmounts(lineReq)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		if _, err := entry.AddLine(s.idGen, account, debit, credit, lineReq.Description, lineReq.CurrencyCode, actorID, now); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
	}

	if err := s.entryRepo.SaveDraftEntry(ctx, entry); err != nil {
		logger.Error("Failed to save draft entry", slog.String("error", err.Error()), slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	logger.Info("Draft entry created", slog.String("entry_id", entry.EntryID), slog.Int("lines", len(entry.Lines)))
	return &entry, nil
}

func (s *PostingService) GetEntryByID(ctx context.Context, orgID string, entryID string) (*domain.JournalEntry, error) {
	return s.entryRepo.FindEntryByID(ctx, orgID, entryID)
}

// ListEntries returns a page of entries ordered by entry date then creation
// time, newest first.
func (s *PostingService) ListEntries(ctx context.Context, orgID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = defaultEntryPageSize
	}
	if limit > maxEntryPageSize {
		limit = maxEntryPageSize
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, orgID, limit, params.NextToken, params.IncludeVoided)
	if err != nil {
		logger.Error("Failed to list entries", slog.String("error", err.Error()), slog.String("organization_id", orgID))
		return nil, err
	}

	resp := &dto.ListEntriesResponse{
		Entries:   make([]dto.EntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToEntryResponse(&entries[i])
	}
	return resp, nil
}

// UpdateDraftEntry edits the header fields of a draft entry.
func (s *PostingService) UpdateDraftEntry(ctx context.Context, orgID string, entryID string, req dto.UpdateEntryRequest, actorID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, orgID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrEntryNotDraft, entry.Status)
	}

	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}
	if req.Memo != nil {
		entry.Memo = *req.Memo
	}
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = actorID

	if err := s.entryRepo.UpdateEntryHeader(ctx, orgID, *entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// AddLine appends a line to a draft entry.
func (s *PostingService) AddLine(ctx context.Context, orgID string, entryID string, req dto.LineRequest, actorID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, orgID, entryID)
	if err != nil {
		return nil, err
	}

	accounts := make(map[string]domain.Account, 1)
	account, err := s.resolveLineAccount(ctx, orgID, accounts, req.AccountID)
	if err != nil {
		return nil, err
	}
	debit, credit, err := lineAmounts(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	line, err := entry.AddLine(s.idGen, account, debit, credit, req.Description, req.CurrencyCode, actorID, now)
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.AddLine(ctx, orgID, entryID, *line, actorID, now); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateLine replaces the amounts, account or description of a draft line.
func (s *PostingService) UpdateLine(ctx context.Context, orgID string, entryID string, lineID string, req dto.LineRequest, actorID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, orgID, entryID)
	if err != nil {
		return nil, err
	}

	accounts := make(map[string]domain.Account, 1)
	account, err := s.resolveLineAccount(ctx, orgID, accounts, req.AccountID)
	if err != nil {
		return nil, err
	}
	debit, credit, err := lineAmounts(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := entry.UpdateLine(lineID, account, debit, credit, req.Description, req.CurrencyCode, actorID, now); err != nil {
		return nil, err
	}

	var updated domain.JournalLine
	for i := range entry.Lines {
		if entry.Lines[i].LineID == lineID {
			updated = entry.Lines[i]
			break
		}
	}
	if err := s.entryRepo.UpdateLine(ctx, orgID, entryID, updated, actorID, now); err != nil {
		return nil, err
	}
	return entry, nil
}

// RemoveLine deletes a line from a draft entry.
func (s *PostingService) RemoveLine(ctx context.Context, orgID string, entryID string, lineID string, actorID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, orgID, entryID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := entry.RemoveLine(lineID, actorID, now); err != nil {
		return nil, err
	}

	if err := s.entryRepo.RemoveLine(ctx, orgID, entryID, lineID, actorID, now); err != nil {
		return nil, err
	}
	return entry, nil
}

// PostEntry validates the balance invariant per effective currency and
// performs the atomic draft -> posted transition. The repository repeats the
// validation inside its serializable transaction; this pass exists to fail
// fast with precise errors before any locks are taken.
func (s *PostingService) PostEntry(ctx context.Context, orgID string, entryID string, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, orgID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrEntryNotDraft, entry.Status)
	}
	if len(entry.Lines) == 0 {
		return nil, accounting.ErrEmptyEntry
	}

	org, err := s.orgRepo.FindOrganizationByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	accountIDs := make([]string, 0, len(entry.Lines))
	seen := make(map[string]struct{}, len(entry.Lines))
	for _, line := range entry.Lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		accountIDs = append(accountIDs, line.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, orgID, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range accountIDs {
		acc, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrInactiveAccount, id)
		}
	}

	resolve := accounting.EffectiveCurrencyResolver(accounts, org.BaseCurrencyCode)
	totals := accounting.SumByCurrency(entry.Lines, resolve)
	if err := accounting.VerifyBalanced(totals); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.entryRepo.PostEntry(ctx, orgID, entryID, actorID, now); err != nil {
		logger.Error("Failed to post entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}
	if err := entry.MarkPosted(actorID, now); err != nil {
		return nil, err
	}

	logger.Info("Entry posted", slog.String("entry_id", entryID), slog.String("organization_id", orgID))
	return entry, nil
}

// VoidEntry performs the terminal posted -> voided transition. Lines are
// preserved untouched for audit; balances simply stop including them.
func (s *PostingService) VoidEntry(ctx context.Context, orgID string, entryID string, req dto.VoidEntryRequest, actorID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, orgID, entryID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := entry.MarkVoided(req.Reason, actorID, now); err != nil {
		return nil, err
	}

	if err := s.entryRepo.VoidEntry(ctx, orgID, entryID, req.Reason, actorID, now); err != nil {
		logger.Error("Failed to void entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	logger.Info("Entry voided", slog.String("entry_id", entryID), slog.String("organization_id", orgID))
	return entry, nil
}
