// Package catalog - HCL catalog files
// A catalog file declares one block per material:
//
//	material "msw" {
//	  name               = "Municipal Solid Waste"
//	  unit               = "tons"
//	  rate               = 95.00
//	  included_allowance = 1
//	  overage_threshold  = 1.5
//	  overage_fee        = 35.00
//	  container_rate     = 450.00
//	}
package catalog

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"

	"hauler-pricing/core/types"
	perrors "hauler-pricing/internal/errors"
)

type fileSchema struct {
	Currency  string          `hcl:"currency,optional"`
	Materials []materialBlock `hcl:"material,block"`
}

type materialBlock struct {
	ID                string         `hcl:"id,label"`
	Name              string         `hcl:"name"`
	Unit              string         `hcl:"unit"`
	Rate              hcl.Expression `hcl:"rate"`
	IncludedAllowance hcl.Expression `hcl:"included_allowance,optional"`
	OverageThreshold  hcl.Expression `hcl:"overage_threshold,optional"`
	OverageFee        hcl.Expression `hcl:"overage_fee,optional"`
	MinFee            hcl.Expression `hcl:"min_fee,optional"`
	ContainerRate     hcl.Expression `hcl:"container_rate,optional"`
}

// LoadFile reads, validates and seals a catalog from an HCL file
func LoadFile(path string) (*Catalog, error) {
	return LoadFileIn(path, types.CurrencyUSD)
}

// LoadFileIn is LoadFile with the currency used when the file declares none
func LoadFileIn(path string, currency types.Currency) (*Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, perrors.Wrap(perrors.TypeParsing, "failed to read catalog file", err)
	}
	return ParseIn(src, path, currency)
}

// Parse decodes, validates and seals a catalog from HCL source
func Parse(src []byte, filename string) (*Catalog, error) {
	return ParseIn(src, filename, types.CurrencyUSD)
}

// ParseIn is Parse with the currency used when the source declares none
func ParseIn(src []byte, filename string, fallback types.Currency) (*Catalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, perrors.Parsing(filename, diags)
	}

	var doc fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, perrors.Parsing(filename, diags)
	}

	currency := fallback
	if currency == "" {
		currency = types.CurrencyUSD
	}
	if doc.Currency != "" {
		currency = types.Currency(doc.Currency)
	}

	c := NewCatalog()
	for _, block := range doc.Materials {
		if _, dup := c.entries[block.ID]; dup {
			return nil, perrors.Parsing(filename, fmt.Errorf("material %q declared more than once", block.ID))
		}

		entry, err := block.toPricing(currency)
		if err != nil {
			return nil, perrors.Parsing(filename, err)
		}
		if err := ValidateEntry(entry); err != nil {
			return nil, fmt.Errorf("%s: material %q: %w", filename, block.ID, err)
		}
		if err := c.Register(entry); err != nil {
			return nil, err
		}
	}

	return c.Seal(), nil
}

func (b materialBlock) toPricing(currency types.Currency) (MaterialPricing, error) {
	unit, ok := types.ParseUnit(b.Unit)
	if !ok {
		return MaterialPricing{}, fmt.Errorf("material %q: unsupported unit %q", b.ID, b.Unit)
	}

	entry := MaterialPricing{
		ID:       b.ID,
		Name:     b.Name,
		Unit:     unit,
		Currency: currency,
	}

	required := []struct {
		name   string
		expr   hcl.Expression
		target *decimal.Decimal
	}{
		{"rate", b.Rate, &entry.Rate},
		{"included_allowance", b.IncludedAllowance, &entry.IncludedAllowance},
		{"overage_threshold", b.OverageThreshold, &entry.OverageThreshold},
		{"overage_fee", b.OverageFee, &entry.OverageFee},
	}
	for _, f := range required {
		d, err := decodeDecimal(f.expr)
		if err != nil {
			return MaterialPricing{}, fmt.Errorf("material %q: %s: %w", b.ID, f.name, err)
		}
		if d != nil {
			*f.target = *d
		}
	}

	var err error
	if entry.MinFee, err = decodeDecimal(b.MinFee); err != nil {
		return MaterialPricing{}, fmt.Errorf("material %q: min_fee: %w", b.ID, err)
	}
	if entry.ContainerRate, err = decodeDecimal(b.ContainerRate); err != nil {
		return MaterialPricing{}, fmt.Errorf("material %q: container_rate: %w", b.ID, err)
	}

	return entry, nil
}

// decodeDecimal evaluates a literal number or numeric string without going through float64.
// A missing optional attribute yields nil.
func decodeDecimal(expr hcl.Expression) (*decimal.Decimal, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsKnown() {
		return nil, fmt.Errorf("value must be known")
	}

	var text string
	switch val.Type() {
	case cty.Number:
		text = val.AsBigFloat().Text('f', -1)
	case cty.String:
		text = val.AsString()
	default:
		return nil, fmt.Errorf("expected a number, got %s", val.Type().FriendlyName())
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
