package mapping

import (
	"fmt"

	"github.com/tallybook/tallybook/internal/core/domain"
	"github.com/tallybook/tallybook/internal/models"
)

func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:        d.EntryID,
		OrganizationID: d.OrganizationID,
		EntryDate:      d.EntryDate,
		Reference:      d.Reference,
		Memo:           d.Memo,
		Status:         models.EntryStatus(d.Status),
		PostedAt:       d.PostedAt,
		VoidedAt:       d.VoidedAt,
		VoidReason:     d.VoidReason,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:        m.EntryID,
		OrganizationID: m.OrganizationID,
		EntryDate:      m.EntryDate,
		Reference:      m.Reference,
		Memo:           m.Memo,
		Status:         domain.EntryStatus(m.Status),
		PostedAt:       m.PostedAt,
		VoidedAt:       m.VoidedAt,
		VoidReason:     m.VoidReason,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:         d.LineID,
		EntryID:        d.EntryID,
		OrganizationID: d.OrganizationID,
		AccountID:      d.AccountID,
		Description:    d.Description,
		Debit:          d.Debit.Decimal(),
		Credit:         d.Credit.Decimal(),
		CurrencyCode:   d.CurrencyCode,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a stored line back to the domain form.
// The schema constrains amounts to NUMERIC(20,2), so a scale failure here
// means corrupted storage and surfaces as an error rather than a silent fixup.
func ToDomainJournalLine(m models.JournalLine) (domain.JournalLine, error) {
	debit, err := domain.NewMoney(m.Debit)
	if err != nil {
		return domain.JournalLine{}, fmt.Errorf("line %s debit: %w", m.LineID, err)
	}
	credit, err := domain.NewMoney(m.Credit)
	if err != nil {
		return domain.JournalLine{}, fmt.Errorf("line %s credit: %w", m.LineID, err)
	}
	return domain.JournalLine{
		LineID:         m.LineID,
		EntryID:        m.EntryID,
		OrganizationID: m.OrganizationID,
		AccountID:      m.AccountID,
		Description:    m.Description,
		Debit:          debit,
		Credit:         credit,
		CurrencyCode:   m.CurrencyCode,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToDomainJournalLines converts a slice of stored lines, failing on the first
// corrupted row.
func ToDomainJournalLines(ms []models.JournalLine) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		line, err := ToDomainJournalLine(m)
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}
	return lines, nil
}
