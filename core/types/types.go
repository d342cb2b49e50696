// Package types holds the value types shared by the pricing packages.
package types

import "strings"

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyCAD Currency = "CAD"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// UnitOfMeasure is the unit a material is billed in.
// It is descriptive: the fee arithmetic is the same for every unit.
type UnitOfMeasure string

const (
	UnitTons    UnitOfMeasure = "tons"
	UnitItems   UnitOfMeasure = "items"
	UnitGallons UnitOfMeasure = "gallons"
	UnitYards   UnitOfMeasure = "yards"
)

// Units lists every supported unit of measure
var Units = []UnitOfMeasure{UnitTons, UnitItems, UnitGallons, UnitYards}

// String returns the string representation
func (u UnitOfMeasure) String() string {
	return string(u)
}

// Singular returns the unit name used after a single quantity ("per ton")
func (u UnitOfMeasure) Singular() string {
	switch u {
	case UnitTons:
		return "ton"
	case UnitItems:
		return "item"
	case UnitGallons:
		return "gallon"
	case UnitYards:
		return "yard"
	default:
		return string(u)
	}
}

// Weighed reports whether u is measured on a scale rather than counted
func (u UnitOfMeasure) Weighed() bool {
	return u == UnitTons
}

// Valid reports whether u is a supported unit
func (u UnitOfMeasure) Valid() bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

// ParseUnit parses a unit name, accepting singular forms and any case
func ParseUnit(s string) (UnitOfMeasure, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, u := range Units {
		if s == string(u) || s == u.Singular() {
			return u, true
		}
	}
	return "", false
}

// PricingMode selects which charge path a calculation uses
type PricingMode int

const (
	// PerUnit charges by measured quantity
	PerUnit PricingMode = iota
	// PerContainer charges a flat container rate regardless of quantity
	PerContainer
)

// String returns string representation
func (m PricingMode) String() string {
	switch m {
	case PerUnit:
		return "per_unit"
	case PerContainer:
		return "per_container"
	default:
		return "unknown"
	}
}

// ModeFor maps the dashboard's isPricingPerUnit flag to a PricingMode
func ModeFor(isPricingPerUnit bool) PricingMode {
	if isPricingPerUnit {
		return PerUnit
	}
	return PerContainer
}
