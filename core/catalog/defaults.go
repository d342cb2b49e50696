package catalog

import (
	"sync"

	"github.com/shopspring/decimal"

	"hauler-pricing/core/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func opt(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// builtinMaterials are the disposal defaults shipped with the dashboard
func builtinMaterials() []MaterialPricing {
	return []MaterialPricing{
		{
			ID:                "msw",
			Name:              "Municipal Solid Waste",
			Unit:              types.UnitTons,
			Rate:              dec("95.00"),
			IncludedAllowance: dec("1"),
			OverageThreshold:  dec("1.5"),
			OverageFee:        dec("35.00"),
			MinFee:            opt("75.00"),
			ContainerRate:     opt("450.00"),
		},
		{
			ID:                "construction-demolition",
			Name:              "Construction & Demolition",
			Unit:              types.UnitTons,
			Rate:              dec("45.00"),
			IncludedAllowance: dec("1.5"),
			OverageThreshold:  dec("2.5"),
			OverageFee:        dec("15.00"),
			ContainerRate:     opt("395.00"),
		},
		{
			ID:                "yard-waste",
			Name:              "Yard Waste",
			Unit:              types.UnitTons,
			Rate:              dec("38.00"),
			IncludedAllowance: dec("2"),
			OverageThreshold:  dec("3"),
			OverageFee:        dec("10.00"),
			ContainerRate:     opt("225.00"),
		},
		{
			ID:                "mixed-recycling",
			Name:              "Mixed Recycling",
			Unit:              types.UnitTons,
			Rate:              dec("25.00"),
			IncludedAllowance: dec("2"),
			OverageThreshold:  dec("4"),
			OverageFee:        dec("20.00"),
			ContainerRate:     opt("175.00"),
		},
		{
			ID:                "tires",
			Name:              "Tires",
			Unit:              types.UnitItems,
			Rate:              dec("12.00"),
			IncludedAllowance: dec("0"),
			OverageThreshold:  dec("20"),
			OverageFee:        dec("50.00"),
			MinFee:            opt("25.00"),
		},
		{
			ID:                "appliances",
			Name:              "Appliances (White Goods)",
			Unit:              types.UnitItems,
			Rate:              dec("30.00"),
			IncludedAllowance: dec("0"),
			OverageThreshold:  dec("5"),
			OverageFee:        dec("40.00"),
		},
		{
			ID:                "used-oil",
			Name:              "Used Motor Oil",
			Unit:              types.UnitGallons,
			Rate:              dec("0.85"),
			IncludedAllowance: dec("5"),
			OverageThreshold:  dec("55"),
			OverageFee:        dec("25.00"),
		},
		{
			ID:                "concrete",
			Name:              "Clean Concrete",
			Unit:              types.UnitYards,
			Rate:              dec("18.00"),
			IncludedAllowance: dec("1"),
			OverageThreshold:  dec("10"),
			OverageFee:        dec("60.00"),
			ContainerRate:     opt("300.00"),
		},
	}
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c := NewCatalog()
	for _, m := range builtinMaterials() {
		if err := c.Register(m); err != nil {
			panic(err)
		}
	}
	return c.MustValidate().Seal()
})

// Default returns the sealed built-in catalog, priced in USD
func Default() *Catalog {
	return defaultCatalog()
}

// DefaultIn returns the built-in catalog priced in currency.
// USD, or an empty currency, returns the shared Default catalog.
func DefaultIn(currency types.Currency) *Catalog {
	if currency == "" || currency == types.CurrencyUSD {
		return Default()
	}
	c := NewCatalog()
	for _, m := range builtinMaterials() {
		m.Currency = currency
		if err := c.Register(m); err != nil {
			panic(err)
		}
	}
	return c.MustValidate().Seal()
}
