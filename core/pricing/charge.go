// Package pricing computes disposal and tipping charges.
// Every screen that shows a fee calls into this package; no caller repeats the math.
package pricing

import (
	"github.com/shopspring/decimal"

	"hauler-pricing/core/catalog"
	"hauler-pricing/core/types"
)

// FeeCalculator computes a charge for one material measurement
type FeeCalculator interface {
	Compute(params catalog.MaterialPricing, quantity decimal.Decimal, mode types.PricingMode) (*Charge, error)
}

// Charge is a computed fee with the figures that produced it
type Charge struct {
	Material string
	Mode     types.PricingMode
	Currency types.Currency

	// Quantity is the measured quantity as given
	Quantity decimal.Decimal

	// ChargeableQuantity is the quantity billed at the per-unit rate
	ChargeableQuantity decimal.Decimal

	// Base is rate * chargeable quantity, or the container rate
	Base decimal.Decimal

	// Overage is the flat overage fee when applied, else zero
	Overage        decimal.Decimal
	OverageApplied bool

	// MinFeeApplied is set when the minimum fee raised the total
	MinFeeApplied bool

	Total   decimal.Decimal
	Formula Formula
}

// Formula records how a charge was calculated
type Formula struct {
	Name       string            // "disposal_per_unit"
	Expression string            // "rate * max(0, quantity - included) + overage"
	Inputs     map[string]string // rate=95, quantity=2
	Output     string            // 130
}

func newFormula(name, expression string) Formula {
	return Formula{
		Name:       name,
		Expression: expression,
		Inputs:     make(map[string]string),
	}
}

func (f *Formula) input(name string, d decimal.Decimal) {
	f.Inputs[name] = d.String()
}
