package accounting

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tallybook/tallybook/internal/core/domain"
)

// ErrUnbalanced indicates that a currency partition of an entry does not net
// to zero. The wrapped message names the currency and the difference.
var ErrUnbalanced = errors.New("journal entry debits and credits do not balance")

// ErrEmptyEntry indicates an attempt to post an entry with no lines.
var ErrEmptyEntry = errors.New("journal entry has no lines")

// CurrencyTotals accumulates debit and credit sums for one currency partition.
type CurrencyTotals struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

// Net returns debits minus credits, the fixed sign convention of the ledger.
func (t CurrencyTotals) Net() decimal.Decimal {
	return t.Debits.Sub(t.Credits)
}

// SumByCurrency folds line amounts into per-currency totals. The resolve
// function maps each line to its effective currency (line -> account ->
// organization). Accumulation is commutative and associative, so the result is
// independent of line order.
func SumByCurrency(lines []domain.JournalLine, resolve func(domain.JournalLine) string) map[string]CurrencyTotals {
	totals := make(map[string]CurrencyTotals, 1)
	for _, line := range lines {
		currency := resolve(line)
		t := totals[currency]
		t.Debits = t.Debits.Add(line.Debit.Decimal())
		t.Credits = t.Credits.Add(line.Credit.Decimal())
		totals[currency] = t
	}
	return totals
}

// VerifyBalanced checks that every currency partition nets to zero.
// This is shared between services (pre-transition validation pass) and the
// posting repository (in-transaction recheck) so both apply identical rules.
// Currencies are checked in sorted order so the reported failure is
// deterministic.
func VerifyBalanced(totals map[string]CurrencyTotals) error {
	if len(totals) == 0 {
		return ErrEmptyEntry
	}
	currencies := make([]string, 0, len(totals))
	for currency := range totals {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)

	for _, currency := range currencies {
		if diff := totals[currency].Net(); !diff.IsZero() {
			return fmt.Errorf("%w: currency %s is off by %s", ErrUnbalanced, currency, diff.String())
		}
	}
	return nil
}

// EffectiveCurrencyResolver builds the line -> account -> organization
// resolution chain for a known set of accounts.
func EffectiveCurrencyResolver(accounts map[string]domain.Account, orgBaseCurrency string) func(domain.JournalLine) string {
	return func(line domain.JournalLine) string {
		if line.CurrencyCode != "" {
			return line.CurrencyCode
		}
		if acc, ok := accounts[line.AccountID]; ok && acc.CurrencyCode != "" {
			return acc.CurrencyCode
		}
		return orgBaseCurrency
	}
}
