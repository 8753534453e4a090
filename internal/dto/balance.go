package dto

import (
	"github.com/tallybook/tallybook/internal/core/domain"
)

// BalanceResponse defines the derived totals for one account and currency.
// NetBalance is totalDebits - totalCredits: debit-positive for asset/expense
// accounts under normal balances, credit-positive (negative) for the rest.
type BalanceResponse struct {
	AccountID    string       `json:"accountID"`
	Code         string       `json:"code"`
	Name         string       `json:"name"`
	AccountType  string       `json:"accountType"`
	CurrencyCode string       `json:"currencyCode"`
	TotalDebits  domain.Money `json:"totalDebits"`
	TotalCredits domain.Money `json:"totalCredits"`
	NetBalance   domain.Money `json:"netBalance"`
}

func ToBalanceResponses(balances []domain.AccountBalance) []BalanceResponse {
	responses := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		responses[i] = BalanceResponse{
			AccountID:    b.AccountID,
			Code:         b.Code,
			Name:         b.Name,
			AccountType:  string(b.AccountType),
			CurrencyCode: b.CurrencyCode,
			TotalDebits:  b.TotalDebits,
			TotalCredits: b.TotalCredits,
			NetBalance:   b.NetBalance,
		}
	}
	return responses
}
