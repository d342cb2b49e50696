// Package output provides output formatting interfaces.
// This package produces human and machine-readable outputs.
package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"

	"hauler-pricing/core/catalog"
	"hauler-pricing/core/diff"
	"hauler-pricing/core/money"
	"hauler-pricing/core/pricing"
	"hauler-pricing/core/ticket"
	"hauler-pricing/core/types"
	perrors "hauler-pricing/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// RenderTicket writes a priced ticket
	RenderTicket(w io.Writer, t *ticket.Ticket) error

	// RenderTipping writes a standalone tipping fee
	RenderTipping(w io.Writer, q *TippingQuote) error

	// RenderMaterials writes the material list
	RenderMaterials(w io.Writer, materials []MaterialDetail) error

	// RenderCatalogReport writes the result of validating a catalog
	RenderCatalogReport(w io.Writer, report *CatalogReport) error

	// RenderCatalogDiff writes the material changes between two catalogs
	RenderCatalogDiff(w io.Writer, result *diff.Result) error
}

// Options tune the rendered output
type Options struct {
	// ShowFormula prints the expression and inputs behind each charge
	ShowFormula bool

	// NoColor disables ANSI colors in CLI output
	NoColor bool
}

// MaterialDetail pairs a material's disposal pricing with its derived tipping pricing
type MaterialDetail struct {
	Disposal catalog.MaterialPricing
	Tipping  catalog.MaterialPricing
}

// Details derives the tipping pricing for every material in a catalog
func Details(cat *catalog.Catalog, tippingFactor decimal.Decimal) []MaterialDetail {
	materials := cat.List()
	details := make([]MaterialDetail, 0, len(materials))
	for _, m := range materials {
		details = append(details, MaterialDetail{
			Disposal: m,
			Tipping:  pricing.DeriveTipping(m, tippingFactor),
		})
	}
	return details
}

// TippingQuote is a hauler tipping fee computed without a full ticket
type TippingQuote struct {
	Material      string
	Name          string
	Unit          types.UnitOfMeasure
	Mode          types.PricingMode
	Quantity      decimal.Decimal
	Rate          decimal.Decimal
	ContainerRate *decimal.Decimal
	Fee           money.Money
}

// CatalogReport is the outcome of loading and validating a catalog file
type CatalogReport struct {
	Source string
	Hash   string
	Stats  catalog.Stats
	Errors []error
}

// Valid reports whether the catalog passed validation
func (r *CatalogReport) Valid() bool {
	return len(r.Errors) == 0
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry creates a registry holding the CLI and JSON formatters
func NewRegistry(opts Options) *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	_ = r.Register(NewCLIFormatter(opts))
	_ = r.Register(NewJSONFormatter(opts))
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	if _, exists := r.formatters[f.Format()]; exists {
		return fmt.Errorf("formatter %q already registered", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns the formatter for a format name
func (r *Registry) Get(name string) (Formatter, error) {
	f, ok := r.formatters[Format(name)]
	if !ok {
		return nil, perrors.InvalidParameter("format", fmt.Sprintf("unknown output format %q (want one of %v)", name, r.Formats()))
	}
	return f, nil
}

// Formats lists the registered format names
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.formatters))
	for f := range r.formatters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}
