package domain

// AccountBalance is the derived read-model row for one account in one
// currency: totals folded over posted, non-voided lines.
// NetBalance = TotalDebits - TotalCredits, so asset and expense accounts carry
// positive nets and liability, equity and income accounts negative nets under
// normal balances.
type AccountBalance struct {
	AccountID    string      `json:"accountID"`
	Code         string      `json:"code"`
	Name         string      `json:"name"`
	AccountType  AccountType `json:"accountType"`
	CurrencyCode string      `json:"currencyCode"` // Resolved line -> account -> organization
	TotalDebits  Money       `json:"totalDebits"`
	TotalCredits Money       `json:"totalCredits"`
	NetBalance   Money       `json:"netBalance"`
}
