package pricing

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hauler-pricing/core/catalog"
	"hauler-pricing/core/types"
	perrors "hauler-pricing/internal/errors"
	"hauler-pricing/internal/logging"
)

// Options tune the disposal calculation
type Options struct {
	// EnforceMinFee floors the total at the material's MinFee when one is set
	EnforceMinFee bool
}

// DisposalCalculator computes the customer-facing disposal charge
type DisposalCalculator struct {
	opts Options
}

// NewDisposalCalculator creates a disposal calculator
func NewDisposalCalculator(opts Options) *DisposalCalculator {
	return &DisposalCalculator{opts: opts}
}

// ComputeCharge returns only the total of Compute
func (c *DisposalCalculator) ComputeCharge(params catalog.MaterialPricing, quantity decimal.Decimal, mode types.PricingMode) (decimal.Decimal, error) {
	charge, err := c.Compute(params, quantity, mode)
	if err != nil {
		return decimal.Zero, err
	}
	return charge.Total, nil
}

// Compute prices a measurement.
//
// Per unit: rate * max(0, quantity - included allowance), plus the overage fee once
// when quantity is strictly greater than the overage threshold.
// Per container: the container rate, whatever the quantity.
func (c *DisposalCalculator) Compute(params catalog.MaterialPricing, quantity decimal.Decimal, mode types.PricingMode) (*Charge, error) {
	var (
		charge *Charge
		err    error
	)

	switch mode {
	case types.PerUnit:
		charge, err = perUnitCharge(params, quantity)
	case types.PerContainer:
		charge, err = containerCharge(params, quantity, "disposal_per_container")
	default:
		err = perrors.InvalidParameter("mode", "unknown pricing mode "+mode.String())
	}
	if err != nil {
		return nil, err
	}

	if c.opts.EnforceMinFee && params.MinFee != nil {
		charge.Formula.input("min_fee", *params.MinFee)
		if charge.Total.LessThan(*params.MinFee) {
			charge.Total = *params.MinFee
			charge.MinFeeApplied = true
		}
		charge.Formula.Expression = "max(min_fee, " + charge.Formula.Expression + ")"
	}
	charge.Formula.Output = charge.Total.String()

	logging.Debug("disposal charge computed",
		logging.Material(params.ID),
		zap.Stringer("mode", mode),
		logging.Amount("quantity", quantity),
		logging.Amount("charge", charge.Total),
		zap.Bool("overage", charge.OverageApplied),
		zap.Bool("min_fee", charge.MinFeeApplied),
	)

	return charge, nil
}

func perUnitCharge(params catalog.MaterialPricing, quantity decimal.Decimal) (*Charge, error) {
	if quantity.IsNegative() {
		return nil, perrors.InvalidQuantity("quantity %s is negative", quantity).
			WithContext("material", params.ID)
	}

	chargeable := decimal.Max(decimal.Zero, quantity.Sub(params.IncludedAllowance))

	charge := &Charge{
		Material:           params.ID,
		Mode:               types.PerUnit,
		Currency:           params.Currency,
		Quantity:           quantity,
		ChargeableQuantity: chargeable,
		Base:               params.Rate.Mul(chargeable),
		Overage:            decimal.Zero,
		Formula:            newFormula("disposal_per_unit", "rate * max(0, quantity - included_allowance)"),
	}
	charge.Formula.input("rate", params.Rate)
	charge.Formula.input("quantity", quantity)
	charge.Formula.input("included_allowance", params.IncludedAllowance)
	charge.Formula.input("overage_threshold", params.OverageThreshold)

	if quantity.GreaterThan(params.OverageThreshold) {
		charge.Overage = params.OverageFee
		charge.OverageApplied = true
		charge.Formula.Expression += " + overage_fee"
		charge.Formula.input("overage_fee", params.OverageFee)
	}

	charge.Total = charge.Base.Add(charge.Overage)
	return charge, nil
}

func containerCharge(params catalog.MaterialPricing, quantity decimal.Decimal, name string) (*Charge, error) {
	if params.ContainerRate == nil {
		return nil, perrors.MissingContainerRate(params.ID)
	}

	charge := &Charge{
		Material:           params.ID,
		Mode:               types.PerContainer,
		Currency:           params.Currency,
		Quantity:           quantity,
		ChargeableQuantity: decimal.Zero,
		Base:               *params.ContainerRate,
		Overage:            decimal.Zero,
		Total:              *params.ContainerRate,
		Formula:            newFormula(name, "container_rate"),
	}
	charge.Formula.input("container_rate", *params.ContainerRate)
	return charge, nil
}
