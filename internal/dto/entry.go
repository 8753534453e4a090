package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// LineRequest is the payload for one journal line. Amounts are decimal
// strings; exactly one of debit/credit must be positive, which the domain
// enforces (binding only guards the basic shape).
type LineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Description  string          `json:"description" binding:"max=1000"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CurrencyCode string          `json:"currencyCode" binding:"omitempty,currencycode"`
}

// CreateEntryRequest creates a draft journal entry, optionally with initial
// lines.
type CreateEntryRequest struct {
	EntryDate time.Time     `json:"entryDate" binding:"required"`
	Reference string        `json:"reference" binding:"max=255"`
	Memo      string        `json:"memo" binding:"max=1000"`
	Lines     []LineRequest `json:"lines" binding:"omitempty,dive"`
}

// UpdateEntryRequest edits the header of a draft entry.
type UpdateEntryRequest struct {
	EntryDate *time.Time `json:"entryDate"`
	Reference *string    `json:"reference" binding:"omitempty,max=255"`
	Memo      *string    `json:"memo" binding:"omitempty,max=1000"`
}

// VoidEntryRequest voids a posted entry with an optional reason.
type VoidEntryRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}

// LineResponse defines the data returned for a journal line.
type LineResponse struct {
	LineID       string       `json:"lineID"`
	AccountID    string       `json:"accountID"`
	Description  string       `json:"description,omitempty"`
	Debit        domain.Money `json:"debit"`
	Credit       domain.Money `json:"credit"`
	CurrencyCode string       `json:"currencyCode,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID    string         `json:"entryID"`
	EntryDate  time.Time      `json:"entryDate"`
	Reference  string         `json:"reference,omitempty"`
	Memo       string         `json:"memo,omitempty"`
	Status     string         `json:"status"`
	PostedAt   *time.Time     `json:"postedAt,omitempty"`
	VoidedAt   *time.Time     `json:"voidedAt,omitempty"`
	VoidReason string         `json:"voidReason,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	CreatedBy  string         `json:"createdBy"`
	Lines      []LineResponse `json:"lines,omitempty"`
}

// ListEntriesParams holds parameters for listing entries with cursor
// pagination.
type ListEntriesParams struct {
	Limit         int
	NextToken     *string
	IncludeVoided bool
}

// ListEntriesResponse is a page of entries plus the cursor for the next page.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

func ToLineResponse(l *domain.JournalLine) LineResponse {
	return LineResponse{
		LineID:       l.LineID,
		AccountID:    l.AccountID,
		Description:  l.Description,
		Debit:        l.Debit,
		Credit:       l.Credit,
		CurrencyCode: l.CurrencyCode,
	}
}

func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:    e.EntryID,
		EntryDate:  e.EntryDate,
		Reference:  e.Reference,
		Memo:       e.Memo,
		Status:     string(e.Status),
		PostedAt:   e.PostedAt,
		VoidedAt:   e.VoidedAt,
		VoidReason: e.VoidReason,
		CreatedAt:  e.CreatedAt,
		CreatedBy:  e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]LineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToLineResponse(&e.Lines[i])
		}
	}
	return resp
}
