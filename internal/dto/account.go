package dto

import (
	"time"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// CreateAccountRequest is the payload for adding an account to the chart.
// CurrencyCode is optional; when absent the account inherits the organization
// base currency.
type CreateAccountRequest struct {
	Code         string `json:"code" binding:"required,max=64"`
	Name         string `json:"name" binding:"required,max=255"`
	AccountType  string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	CurrencyCode string `json:"currencyCode" binding:"omitempty,currencycode"`
	Description  string `json:"description" binding:"max=1000"`
}

// UpdateAccountRequest renames an account or changes its description.
// Code and type are deliberately absent: they are immutable once set.
type UpdateAccountRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID    string    `json:"accountID"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	AccountType  string    `json:"accountType"`
	CurrencyCode string    `json:"currencyCode,omitempty"`
	Description  string    `json:"description,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DeactivateAccountResult reports the outcome of a deactivation.
// NonZeroBalanceWarning is a warning-level side effect, not an error: the
// account was deactivated even though its posted history does not net to zero.
type DeactivateAccountResult struct {
	AccountID             string `json:"accountID"`
	NonZeroBalanceWarning bool   `json:"nonZeroBalanceWarning"`
}

func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		Code:         a.Code,
		Name:         a.Name,
		AccountType:  string(a.AccountType),
		CurrencyCode: a.CurrencyCode,
		Description:  a.Description,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
	}
}

func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
