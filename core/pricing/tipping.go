package pricing

import (
	"github.com/shopspring/decimal"

	"hauler-pricing/core/catalog"
	"hauler-pricing/core/types"
	perrors "hauler-pricing/internal/errors"
	"hauler-pricing/internal/logging"
)

// DefaultTippingFactor discounts the disposal rate by 15% for the hauler-side figure
var DefaultTippingFactor = decimal.RequireFromString("0.85")

// DeriveTipping builds the tipping parameters of a material.
// Rate and container rate are scaled by factor; allowance, threshold and
// overage fee are copied for display only and never enter the tipping math.
func DeriveTipping(params catalog.MaterialPricing, factor decimal.Decimal) catalog.MaterialPricing {
	tipping := params.Clone()
	tipping.Rate = params.Rate.Mul(factor)
	if params.ContainerRate != nil {
		scaled := params.ContainerRate.Mul(factor)
		tipping.ContainerRate = &scaled
	}
	tipping.MinFee = nil
	return tipping
}

// TippingCalculator computes the hauler-facing tipping charge: rate * quantity,
// with no included allowance and no overage.
type TippingCalculator struct{}

// NewTippingCalculator creates a tipping calculator
func NewTippingCalculator() *TippingCalculator {
	return &TippingCalculator{}
}

// Compute prices a measurement from tipping parameters (see DeriveTipping)
func (c *TippingCalculator) Compute(params catalog.MaterialPricing, quantity decimal.Decimal, mode types.PricingMode) (*Charge, error) {
	var (
		charge *Charge
		err    error
	)

	switch mode {
	case types.PerUnit:
		if quantity.IsNegative() {
			return nil, perrors.InvalidQuantity("quantity %s is negative", quantity).
				WithContext("material", params.ID)
		}
		charge = &Charge{
			Material:           params.ID,
			Mode:               types.PerUnit,
			Currency:           params.Currency,
			Quantity:           quantity,
			ChargeableQuantity: quantity,
			Base:               params.Rate.Mul(quantity),
			Overage:            decimal.Zero,
			Formula:            newFormula("tipping_per_unit", "tipping_rate * quantity"),
		}
		charge.Total = charge.Base
		charge.Formula.input("tipping_rate", params.Rate)
		charge.Formula.input("quantity", quantity)
	case types.PerContainer:
		charge, err = containerCharge(params, quantity, "tipping_per_container")
	default:
		err = perrors.InvalidParameter("mode", "unknown pricing mode "+mode.String())
	}
	if err != nil {
		return nil, err
	}
	charge.Formula.Output = charge.Total.String()

	logging.Debug("tipping charge computed",
		logging.Material(params.ID),
		logging.Amount("quantity", quantity),
		logging.Amount("charge", charge.Total),
	)

	return charge, nil
}

// ComputeTippingCharge is the bare tipping formula: rate * quantity per unit,
// or the flat container rate per container.
func ComputeTippingCharge(rate, quantity decimal.Decimal, mode types.PricingMode, containerRate *decimal.Decimal) (decimal.Decimal, error) {
	params := catalog.MaterialPricing{Rate: rate, ContainerRate: containerRate}
	charge, err := NewTippingCalculator().Compute(params, quantity, mode)
	if err != nil {
		return decimal.Zero, err
	}
	return charge.Total, nil
}
