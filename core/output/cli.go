package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"hauler-pricing/core/diff"
	"hauler-pricing/core/pricing"
	"hauler-pricing/core/ticket"
	"hauler-pricing/core/types"
	"hauler-pricing/core/ui"
)

// CLIFormatter renders tables for a terminal
type CLIFormatter struct {
	opts Options
}

// NewCLIFormatter creates a CLI formatter
func NewCLIFormatter(opts Options) *CLIFormatter {
	return &CLIFormatter{opts: opts}
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// RenderTicket writes the ticket summary box and the charge breakdown
func (f *CLIFormatter) RenderTicket(w io.Writer, t *ticket.Ticket) error {
	out := ui.NewWriter(w, f.opts.NoColor)

	summary := out.NewTicketSummary(fmt.Sprintf("%s (%s)", t.Name, t.Material))
	summary.DisposalFee = t.DisposalFee.String()
	summary.TippingFee = t.TippingFee.String()
	summary.Margin = t.Margin.String()
	summary.NegativeMargin = t.Margin.Amount().IsNegative()
	summary.Overridden = t.Overridden
	summary.MinFee = t.Disposal != nil && t.Disposal.MinFeeApplied
	summary.Render()

	out.Println("")
	if t.WorkOrder != "" {
		out.Detail("Work order: %s", t.WorkOrder)
	}
	out.Detail("Ticket:     %s", t.ID)
	out.Detail("Mode:       %s", t.Mode)
	if t.NetWeight != nil {
		out.Detail("Net weight: %s lbs", t.NetWeight.String())
	}
	out.Detail("Quantity:   %s %s", t.Quantity.String(), t.Unit)
	out.Println("")

	table := out.NewTable("Charge", "Base", "Overage", "Total")
	for _, c := range []struct {
		label  string
		charge *pricing.Charge
	}{
		{"Disposal", t.Disposal},
		{"Tipping", t.Tipping},
	} {
		if c.charge == nil {
			continue
		}
		table.AddRow(c.label, fixed(c.charge.Base), fixed(c.charge.Overage), fixed(c.charge.Total))
	}
	table.Render()

	if f.opts.ShowFormula {
		out.Println("")
		for _, c := range []*pricing.Charge{t.Disposal, t.Tipping} {
			if c != nil {
				renderFormula(out, c.Formula)
			}
		}
	}
	return nil
}

// RenderTipping writes the tipping fee and the rate behind it
func (f *CLIFormatter) RenderTipping(w io.Writer, q *TippingQuote) error {
	out := ui.NewWriter(w, f.opts.NoColor)
	out.Header(fmt.Sprintf("Tipping Fee: %s (%s)", q.Name, q.Material))

	out.Println("  %s", q.Fee.String())
	if q.Mode == types.PerContainer {
		out.Detail("container rate %s", optional(q.ContainerRate))
	} else {
		out.Detail("%s %s x %s per %s", q.Quantity.String(), q.Unit, q.Rate.String(), q.Unit.Singular())
	}
	return nil
}

// RenderMaterials writes one row per material
func (f *CLIFormatter) RenderMaterials(w io.Writer, materials []MaterialDetail) error {
	out := ui.NewWriter(w, f.opts.NoColor)
	out.Header("Materials")

	table := out.NewTable("ID", "Name", "Unit", "Rate", "Included", "Threshold", "Overage Fee", "Min Fee", "Container", "Tipping Rate")
	for _, m := range materials {
		d := m.Disposal
		table.AddRow(
			d.ID,
			d.Name,
			d.Unit.String(),
			fixed(d.Rate),
			d.IncludedAllowance.String(),
			d.OverageThreshold.String(),
			fixed(d.OverageFee),
			optional(d.MinFee),
			optional(d.ContainerRate),
			m.Tipping.Rate.String(),
		)
	}
	table.Render()
	return nil
}

// RenderCatalogReport writes the validation outcome
func (f *CLIFormatter) RenderCatalogReport(w io.Writer, report *CatalogReport) error {
	out := ui.NewWriter(w, f.opts.NoColor)
	out.Header("Catalog " + report.Source)

	if !report.Valid() {
		for _, err := range report.Errors {
			out.Error("%v", err)
		}
		return nil
	}

	out.Success("%d materials valid", report.Stats.Total)
	out.Detail("Hash:           %s", report.Hash)
	out.Detail("Container rate: %d", report.Stats.WithContainerRate)
	out.Detail("Min fee:        %d", report.Stats.WithMinFee)

	units := make([]string, 0, len(report.Stats.ByUnit))
	for unit, n := range report.Stats.ByUnit {
		units = append(units, fmt.Sprintf("%s=%d", unit, n))
	}
	sort.Strings(units)
	out.Detail("Units:          %s", strings.Join(units, ", "))
	return nil
}

// RenderCatalogDiff writes added, removed and changed materials
func (f *CLIFormatter) RenderCatalogDiff(w io.Writer, result *diff.Result) error {
	out := ui.NewWriter(w, f.opts.NoColor)
	out.Header("Catalog Changes")

	if !result.HasChanges() {
		out.Success("no pricing changes (%d materials)", result.UnchangedCount)
		return nil
	}

	if len(result.Added) > 0 {
		out.SubHeader(fmt.Sprintf("Added (%d)", len(result.Added)))
		for _, m := range result.Added {
			out.Println("  + %s: %s per %s", m.ID, fixed(m.After.Rate), m.After.Unit.Singular())
		}
		out.Println("")
	}

	if len(result.Removed) > 0 {
		out.SubHeader(fmt.Sprintf("Removed (%d)", len(result.Removed)))
		for _, m := range result.Removed {
			out.Println("  - %s", m.ID)
		}
		out.Println("")
	}

	if len(result.Changed) > 0 {
		out.SubHeader(fmt.Sprintf("Changed (%d)", len(result.Changed)))
		table := out.NewTable("Material", "Field", "Before", "After")
		for _, m := range result.Changed {
			for _, c := range m.Fields {
				table.AddRow(m.ID, c.Field, c.Before, c.After)
			}
		}
		table.Render()
	}
	return nil
}

func renderFormula(out *ui.Writer, f pricing.Formula) {
	out.SubHeader(f.Name)
	out.Detail("%s = %s", f.Expression, f.Output)

	names := make([]string, 0, len(f.Inputs))
	for name := range f.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out.Detail("  %s = %s", name, f.Inputs[name])
	}
}

func fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func optional(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.StringFixed(2)
}
