// Package measure turns scale readings and user-entered numbers into the
// quantity a material is billed in.
package measure

import (
	"strings"

	"github.com/shopspring/decimal"

	"hauler-pricing/core/types"
	perrors "hauler-pricing/internal/errors"
)

// DefaultPoundsPerTon is the short-ton conversion factor
var DefaultPoundsPerTon = decimal.NewFromInt(2000)

// Converter converts scale weights (pounds) into reporting units
type Converter struct {
	poundsPerTon decimal.Decimal
}

// NewConverter creates a converter; poundsPerTon must be positive
func NewConverter(poundsPerTon decimal.Decimal) (*Converter, error) {
	if !poundsPerTon.IsPositive() {
		return nil, perrors.Config("pounds per ton must be positive")
	}
	return &Converter{poundsPerTon: poundsPerTon}, nil
}

// DefaultConverter uses 2000 lbs per ton
func DefaultConverter() *Converter {
	return &Converter{poundsPerTon: DefaultPoundsPerTon}
}

// Factor returns the scale units per reporting unit.
// Tons are weighed in pounds; items, gallons and yards are counted directly.
func (c *Converter) Factor(unit types.UnitOfMeasure) decimal.Decimal {
	if unit == types.UnitTons {
		return c.poundsPerTon
	}
	return decimal.NewFromInt(1)
}

// NetQuantity converts a gross/tare pair into the unit's reporting quantity.
// Only weighed units accept scale readings; counted units are rejected.
func (c *Converter) NetQuantity(gross, tare decimal.Decimal, unit types.UnitOfMeasure) (decimal.Decimal, error) {
	if !unit.Weighed() {
		return decimal.Zero, perrors.InvalidWeight("%s are counted, not weighed; give a quantity, not scale weights", unit)
	}
	net, err := NetWeight(gross, tare)
	if err != nil {
		return decimal.Zero, err
	}
	return ToReportingUnit(net, c.Factor(unit))
}

// PoundsToTons converts pounds to tons
func (c *Converter) PoundsToTons(pounds decimal.Decimal) decimal.Decimal {
	return pounds.Div(c.poundsPerTon)
}

// TonsToPounds converts tons to pounds
func (c *Converter) TonsToPounds(tons decimal.Decimal) decimal.Decimal {
	return tons.Mul(c.poundsPerTon)
}

// NetWeight returns gross - tare.
// A negative reading or a tare heavier than the gross load is rejected rather than clamped.
func NetWeight(gross, tare decimal.Decimal) (decimal.Decimal, error) {
	if gross.IsNegative() || tare.IsNegative() {
		return decimal.Zero, perrors.InvalidWeight("weights must be non-negative (gross=%s, tare=%s)", gross, tare).
			WithContext("gross", gross.String()).
			WithContext("tare", tare.String())
	}
	if gross.LessThan(tare) {
		return decimal.Zero, perrors.InvalidWeight("gross weight %s is less than tare weight %s", gross, tare).
			WithContext("gross", gross.String()).
			WithContext("tare", tare.String())
	}
	return gross.Sub(tare), nil
}

// ToReportingUnit divides a net weight by the unit conversion factor
func ToReportingUnit(net, factor decimal.Decimal) (decimal.Decimal, error) {
	if !factor.IsPositive() {
		return decimal.Zero, perrors.InvalidWeight("unit conversion factor must be positive, got %s", factor)
	}
	return net.Div(factor), nil
}

// ParseQuantity parses a user-entered quantity.
// Unparseable or negative input is an INVALID_QUANTITY error, never a NaN.
func ParseQuantity(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, perrors.InvalidQuantity("quantity is empty")
	}
	q, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, perrors.InvalidQuantity("quantity %q is not a number", s)
	}
	if q.IsNegative() {
		return decimal.Zero, perrors.InvalidQuantity("quantity %s is negative", q)
	}
	return q, nil
}

// ParseWeight parses a user-entered scale weight
func ParseWeight(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	w, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, perrors.InvalidWeight("weight %q is not a number", s)
	}
	return w, nil
}
