package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallybook/tallybook/internal/apperrors"
	"github.com/tallybook/tallybook/internal/core/domain"
	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
	"github.com/tallybook/tallybook/internal/models"
	"github.com/tallybook/tallybook/internal/utils/accounting"
	"github.com/tallybook/tallybook/internal/utils/mapping"
	"github.com/tallybook/tallybook/internal/utils/pagination"
)

type PgxEntryRepository struct {
	BaseRepository
}

func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepository {
	return &PgxEntryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepository = (*PgxEntryRepository)(nil)

const entryColumns = `entry_id, organization_id, entry_date, reference, memo, status, posted_at, voided_at, void_reason, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, organization_id, account_id, description, debit, credit, currency_code, created_at, created_by, last_updated_at, last_updated_by`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.OrganizationID, &m.EntryDate, &m.Reference, &m.Memo,
		&m.Status, &m.PostedAt, &m.VoidedAt, &m.VoidReason,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row rowScanner) (models.JournalLine, error) {
	var m models.JournalLine
	var currency sql.NullString
	err := row.Scan(
		&m.LineID, &m.EntryID, &m.OrganizationID, &m.AccountID, &m.Description,
		&m.Debit, &m.Credit, &currency,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if currency.Valid {
		m.CurrencyCode = currency.String
	}
	return m, err
}

// lockEntryForUpdate loads an entry header under FOR UPDATE so no concurrent
// transition or mutation can interleave within the transaction.
func (r *PgxEntryRepository) lockEntryForUpdate(ctx context.Context, tx pgx.Tx, orgID string, entryID string) (models.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE organization_id = $1 AND entry_id = $2
		FOR UPDATE;
	`
	m, err := scanEntry(tx.QueryRow(ctx, query, orgID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.JournalEntry{}, fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
		}
		return models.JournalEntry{}, fmt.Errorf("failed to lock entry %s: %w", entryID, translateTxError(err))
	}
	return m, nil
}

func insertLineBatch(batch *pgx.Batch, line models.JournalLine) {
	batch.Queue(`
		INSERT INTO journal_lines (`+lineColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`,
		line.LineID, line.EntryID, line.OrganizationID, line.AccountID, line.Description,
		line.Debit, line.Credit, nullableCurrency(line.CurrencyCode),
		line.CreatedAt, line.CreatedBy, line.LastUpdatedAt, line.LastUpdatedBy,
	)
}

// SaveDraftEntry persists a new draft header and its initial lines in one
// transaction.
func (r *PgxEntryRepository) SaveDraftEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO journal_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		m.EntryID, m.OrganizationID, m.EntryDate, m.Reference, m.Memo,
		m.Status, m.PostedAt, m.VoidedAt, m.VoidReason,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	for _, line := range entry.Lines {
		insertLineBatch(batch, mapping.ToModelJournalLine(line))
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: entry %s", apperrors.ErrDuplicate, m.EntryID)
			}
			return fmt.Errorf("failed to save draft entry %s: %w", m.EntryID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch for entry %s: %w", m.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID loads the entry with its lines, ordered by creation.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, orgID string, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE organization_id = $1 AND entry_id = $2;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, orgID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	lineQuery := `
		SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE organization_id = $1 AND entry_id = $2
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, lineQuery, orgID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	var modelLines []models.JournalLine
	for rows.Next() {
		lm, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		modelLines = append(modelLines, lm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows: %w", err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	lines, err := mapping.ToDomainJournalLines(modelLines)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrIntegrity, err)
	}
	entry.Lines = lines
	return &entry, nil
}

// UpdateEntryHeader persists draft header edits under a serializable
// transaction, rechecking the status under the row lock.
func (r *PgxEntryRepository) UpdateEntryHeader(ctx context.Context, orgID string, entry domain.JournalEntry) error {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.lockEntryForUpdate(ctx, tx, orgID, entry.EntryID)
	if err != nil {
		return err
	}
	if locked.Status != models.Draft {
		return fmt.Errorf("%w: status is %s", domain.ErrEntryNotDraft, locked.Status)
	}

	m := mapping.ToModelJournalEntry(entry)
	_, err = tx.Exec(ctx, `
		UPDATE journal_entries
		SET entry_date = $3, reference = $4, memo = $5, last_updated_at = $6, last_updated_by = $7
		WHERE organization_id = $1 AND entry_id = $2;
	`, orgID, m.EntryID, m.EntryDate, m.Reference, m.Memo, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update entry header %s: %w", m.EntryID, translateTxError(err))
	}

	return r.Commit(ctx, tx)
}

// touchEntry bumps the parent header's audit columns inside a transaction.
func touchEntry(ctx context.Context, tx pgx.Tx, orgID string, entryID string, actorID string, now time.Time) error {
	_, err := tx.Exec(ctx, `
		UPDATE journal_entries
		SET last_updated_at = $3, last_updated_by = $4
		WHERE organization_id = $1 AND entry_id = $2;
	`, orgID, entryID, now, actorID)
	return err
}

func (r *PgxEntryRepository) AddLine(ctx context.Context, orgID string, entryID string, line domain.JournalLine, actorID string, now time.Time) error {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.lockEntryForUpdate(ctx, tx, orgID, entryID)
	if err != nil {
		return err
	}
	if locked.Status != models.Draft {
		return fmt.Errorf("%w: status is %s", domain.ErrEntryNotDraft, locked.Status)
	}

	m := mapping.ToModelJournalLine(line)
	_, err = tx.Exec(ctx, `
		INSERT INTO journal_lines (`+lineColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`,
		m.LineID, m.EntryID, m.OrganizationID, m.AccountID, m.Description,
		m.Debit, m.Credit, nullableCurrency(m.CurrencyCode),
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to add line to entry %s: %w", entryID, translateTxError(err))
	}
	if err := touchEntry(ctx, tx, orgID, entryID, actorID, now); err != nil {
		return fmt.Errorf("failed to touch entry %s: %w", entryID, translateTxError(err))
	}

	return r.Commit(ctx, tx)
}

func (r *PgxEntryRepository) UpdateLine(ctx context.Context, orgID string, entryID string, line domain.JournalLine, actorID string, now time.Time) error {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.lockEntryForUpdate(ctx, tx, orgID, entryID)
	if err != nil {
		return err
	}
	if locked.Status != models.Draft {
		return fmt.Errorf("%w: status is %s", domain.ErrEntryNotDraft, locked.Status)
	}

	m := mapping.ToModelJournalLine(line)
	tag, err := tx.Exec(ctx, `
		UPDATE journal_lines
		SET account_id = $4, description = $5, debit = $6, credit = $7, currency_code = $8, last_updated_at = $9, last_updated_by = $10
		WHERE organization_id = $1 AND entry_id = $2 AND line_id = $3;
	`,
		orgID, entryID, m.LineID, m.AccountID, m.Description,
		m.Debit, m.Credit, nullableCurrency(m.CurrencyCode), m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update line %s: %w", m.LineID, translateTxError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: line %s", apperrors.ErrNotFound, m.LineID)
	}
	if err := touchEntry(ctx, tx, orgID, entryID, actorID, now); err != nil {
		return fmt.Errorf("failed to touch entry %s: %w", entryID, translateTxError(err))
	}

	return r.Commit(ctx, tx)
}

func (r *PgxEntryRepository) RemoveLine(ctx context.Context, orgID string, entryID string, lineID string, actorID string, now time.Time) error {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.lockEntryForUpdate(ctx, tx, orgID, entryID)
	if err != nil {
		return err
	}
	if locked.Status != models.Draft {
		return fmt.Errorf("%w: status is %s", domain.ErrEntryNotDraft, locked.Status)
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM journal_lines
		WHERE organization_id = $1 AND entry_id = $2 AND line_id = $3;
	`, orgID, entryID, lineID)
	if err != nil {
		return fmt.Errorf("failed to remove line %s: %w", lineID, translateTxError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: line %s", apperrors.ErrNotFound, lineID)
	}
	if err := touchEntry(ctx, tx, orgID, entryID, actorID, now); err != nil {
		return fmt.Errorf("failed to touch entry %s: %w", entryID, translateTxError(err))
	}

	return r.Commit(ctx, tx)
}

// PostEntry performs the draft -> posted transition. The per-currency balance
// and account active flags are revalidated against re-read state inside the
// serializable transaction; the pre-validation the service already ran cannot
// be trusted across the gap.
func (r *PgxEntryRepository) PostEntry(ctx context.Context, orgID string, entryID string, actorID string, postedAt time.Time) error {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.lockEntryForUpdate(ctx, tx, orgID, entryID)
	if err != nil {
		return err
	}
	if locked.Status != models.Draft {
		return fmt.Errorf("%w: status is %s", domain.ErrEntryNotDraft, locked.Status)
	}

	// Lock referenced accounts FOR SHARE: posting must not race a concurrent
	// deactivation.
	accountRows, err := tx.Query(ctx, `
		SELECT a.account_id, a.is_active
		FROM accounts a
		WHERE a.organization_id = $1
		  AND a.account_id IN (SELECT DISTINCT account_id FROM journal_lines WHERE organization_id = $1 AND entry_id = $2)
		FOR SHARE;
	`, orgID, entryID)
	if err != nil {
		return fmt.Errorf("failed to lock accounts for entry %s: %w", entryID, translateTxError(err))
	}
	for accountRows.Next() {
		var accountID string
		var isActive bool
		if err := accountRows.Scan(&accountID, &isActive); err != nil {
			accountRows.Close()
			return fmt.Errorf("failed to scan account lock row: %w", err)
		}
		if !isActive {
			accountRows.Close()
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrConflict, accountID)
		}
	}
	if err := accountRows.Err(); err != nil {
		return fmt.Errorf("error iterating account lock rows: %w", translateTxError(err))
	}

	// Re-read the lines with the effective currency resolved in SQL, the same
	// line -> account -> organization chain the service resolves in Go.
	lineRows, err := tx.Query(ctx, `
		SELECT l.line_id, l.debit, l.credit,
		       COALESCE(l.currency_code, a.currency_code, o.base_currency_code) AS effective_currency
		FROM journal_lines l
		JOIN accounts a ON a.organization_id = l.organization_id AND a.account_id = l.account_id
		JOIN organizations o ON o.organization_id = l.organization_id
		WHERE l.organization_id = $1 AND l.entry_id = $2;
	`, orgID, entryID)
	if err != nil {
		return fmt.Errorf("failed to re-read lines for entry %s: %w", entryID, translateTxError(err))
	}
	var lines []domain.JournalLine
	for lineRows.Next() {
		var lm models.JournalLine
		if err := lineRows.Scan(&lm.LineID, &lm.Debit, &lm.Credit, &lm.CurrencyCode); err != nil {
			lineRows.Close()
			return fmt.Errorf("failed to scan line row: %w", err)
		}
		line, err := mapping.ToDomainJournalLine(lm)
		if err != nil {
			lineRows.Close()
			return fmt.Errorf("%w: %v", apperrors.ErrIntegrity, err)
		}
		lines = append(lines, line)
	}
	if err := lineRows.Err(); err != nil {
		return fmt.Errorf("error iterating line rows: %w", translateTxError(err))
	}

	totals := accounting.SumByCurrency(lines, func(l domain.JournalLine) string {
		return l.CurrencyCode
	})
	if err := accounting.VerifyBalanced(totals); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = $3, posted_at = $4, last_updated_at = $4, last_updated_by = $5
		WHERE organization_id = $1 AND entry_id = $2;
	`, orgID, entryID, models.Posted, postedAt, actorID)
	if err != nil {
		return fmt.Errorf("failed to post entry %s: %w", entryID, translateTxError(err))
	}

	return r.Commit(ctx, tx)
}

// VoidEntry performs the posted -> voided transition, leaving the lines
// untouched.
func (r *PgxEntryRepository) VoidEntry(ctx context.Context, orgID string, entryID string, reason string, actorID string, voidedAt time.Time) error {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	locked, err := r.lockEntryForUpdate(ctx, tx, orgID, entryID)
	if err != nil {
		return err
	}
	switch locked.Status {
	case models.Voided:
		return domain.ErrAlreadyVoided
	case models.Posted:
	default:
		return fmt.Errorf("%w: status is %s", domain.ErrNotPosted, locked.Status)
	}

	_, err = tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = $3, voided_at = $4, void_reason = $5, last_updated_at = $4, last_updated_by = $6
		WHERE organization_id = $1 AND entry_id = $2;
	`, orgID, entryID, models.Voided, voidedAt, reason, actorID)
	if err != nil {
		return fmt.Errorf("failed to void entry %s: %w", entryID, translateTxError(err))
	}

	return r.Commit(ctx, tx)
}

// ListEntries returns a page of entry headers ordered by entry date then
// creation time, newest first.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, orgID string, limit int, nextToken *string, includeVoided bool) ([]domain.JournalEntry, *string, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE organization_id = $1
	`
	args := []any{orgID}

	if !includeVoided {
		query += ` AND status <> 'VOIDED'`
	}
	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += fmt.Sprintf(` AND (entry_date, created_at) < ($%d, $%d)`, len(args)+1, len(args)+2)
		args = append(args, entryDate, createdAt)
	}

	// Fetch one extra row to detect whether another page exists.
	query += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list entries for organization %s: %w", orgID, err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		token = &t
	}
	return entries, token, nil
}
