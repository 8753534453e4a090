package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// ValidAccountType reports whether t is one of the five fixed account types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account is one entry in an organization's chart of accounts.
// Code is unique within the organization. Code and type become immutable once
// the account is referenced by a posted line; deactivation is the only removal
// path for an account with posted history.
type Account struct {
	AccountID      string      `json:"accountID"`      // Primary key (UUID)
	OrganizationID string      `json:"organizationID"` // FK -> organizations (NOT NULL)
	Code           string      `json:"code"`           // Unique within the organization
	Name           string      `json:"name"`
	AccountType    AccountType `json:"accountType"`
	CurrencyCode   string      `json:"currencyCode"` // Optional override; empty inherits the organization base currency
	Description    string      `json:"description"`
	IsActive       bool        `json:"isActive"`
	AuditFields
}

// EffectiveCurrency resolves the account currency against the organization
// base currency.
func (a Account) EffectiveCurrency(orgBaseCurrency string) string {
	if a.CurrencyCode != "" {
		return a.CurrencyCode
	}
	return orgBaseCurrency
}
