package models

// AccountType mirrors the fixed set of account types at the storage layer.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account is a chart-of-accounts row.
// CurrencyCode is nullable in the database; empty string means the account
// inherits the organization base currency.
type Account struct {
	AccountID      string      `db:"account_id"`
	OrganizationID string      `db:"organization_id"`
	Code           string      `db:"code"`
	Name           string      `db:"name"`
	AccountType    AccountType `db:"account_type"`
	CurrencyCode   string      `db:"currency_code"`
	Description    string      `db:"description"`
	IsActive       bool        `db:"is_active"`
	AuditFields
}
