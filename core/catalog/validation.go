// Package catalog - Catalog validation
// Ensures every entry satisfies the pricing invariants before it is used.
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	perrors "hauler-pricing/internal/errors"
)

// ValidationRule is a catalog validation rule
type ValidationRule func(*MaterialPricing) error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateUnit,
		validateNonNegative,
		validateOptionalNonNegative,
	}
}

// Validate checks a catalog against validation rules
func (c *Catalog) Validate(rules []ValidationRule) []error {
	var errs []error

	for _, id := range c.IDs() {
		entry := c.entries[id]
		for _, rule := range rules {
			if err := rule(&entry); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", id, err))
			}
		}
	}

	return errs
}

// ValidateEntry checks one entry against the default rules
func ValidateEntry(entry MaterialPricing) error {
	for _, rule := range DefaultValidationRules() {
		if err := rule(&entry); err != nil {
			return err
		}
	}
	return nil
}

// MustValidate panics if validation fails
func (c *Catalog) MustValidate() *Catalog {
	errs := c.Validate(DefaultValidationRules())
	if len(errs) > 0 {
		panic(fmt.Sprintf("catalog has %d validation errors, first: %v", len(errs), errs[0]))
	}
	return c
}

func validateUnit(e *MaterialPricing) error {
	if !e.Unit.Valid() {
		return perrors.InvalidParameter("unit", fmt.Sprintf("unsupported unit of measure %q", e.Unit))
	}
	return nil
}

func validateNonNegative(e *MaterialPricing) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"rate", e.Rate},
		{"included_allowance", e.IncludedAllowance},
		{"overage_threshold", e.OverageThreshold},
		{"overage_fee", e.OverageFee},
	}
	for _, f := range fields {
		if f.value.IsNegative() {
			return perrors.InvalidParameter(f.name, "must be non-negative")
		}
	}
	return nil
}

func validateOptionalNonNegative(e *MaterialPricing) error {
	if e.MinFee != nil && e.MinFee.IsNegative() {
		return perrors.InvalidParameter("min_fee", "must be non-negative")
	}
	if e.ContainerRate != nil && e.ContainerRate.IsNegative() {
		return perrors.InvalidParameter("container_rate", "must be non-negative")
	}
	return nil
}
