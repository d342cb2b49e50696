// Package money provides a currency-tagged decimal amount.
// Charges are never carried as float64.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"

	"hauler-pricing/core/types"
)

// Money represents a monetary amount with full precision.
type Money struct {
	amount   decimal.Decimal
	currency types.Currency
}

// New creates Money from a decimal amount
func New(amount decimal.Decimal, currency types.Currency) Money {
	return Money{amount: amount, currency: currency}
}

// Parse creates Money from a decimal string
func Parse(amount string, currency types.Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: d, currency: currency}, nil
}

// Zero creates zero money
func Zero(currency types.Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() types.Currency {
	return m.currency
}

// Add adds two monetary amounts
func (m Money) Add(other Money) Money {
	if m.currency != other.currency {
		panic(fmt.Sprintf("cannot add %s and %s", m.currency, other.currency))
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}
}

// Sub subtracts monetary amounts
func (m Money) Sub(other Money) Money {
	if m.currency != other.currency {
		panic(fmt.Sprintf("cannot subtract %s and %s", m.currency, other.currency))
	}
	return Money{amount: m.amount.Sub(other.amount), currency: m.currency}
}

// Cmp compares two monetary amounts
func (m Money) Cmp(other Money) int {
	if m.currency != other.currency {
		panic(fmt.Sprintf("cannot compare %s and %s", m.currency, other.currency))
	}
	return m.amount.Cmp(other.amount)
}

// IsZero returns true if amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Rounded returns the amount rounded half-up to cents
func (m Money) Rounded() decimal.Decimal {
	return m.amount.Round(2)
}

// String returns formatted money, e.g. "$130.00" for USD
func (m Money) String() string {
	switch m.currency {
	case types.CurrencyUSD, types.CurrencyCAD:
		if m.amount.IsNegative() {
			return "-$" + m.amount.Neg().StringFixed(2)
		}
		return "$" + m.amount.StringFixed(2)
	default:
		return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
	}
}

// MarshalJSON renders the amount at cent precision with its currency
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"amount":%q,"currency":%q}`, m.amount.StringFixed(2), m.currency)), nil
}
