package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"hauler-pricing/core/catalog"
	"hauler-pricing/core/diff"
	"hauler-pricing/core/money"
	"hauler-pricing/core/pricing"
	"hauler-pricing/core/ticket"
	"hauler-pricing/core/types"
)

// JSONFormatter renders machine-readable JSON
type JSONFormatter struct {
	opts Options
}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter(opts Options) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

type ticketJSON struct {
	ID          string              `json:"id"`
	WorkOrder   string              `json:"work_order,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	Material    string              `json:"material"`
	Name        string              `json:"name"`
	Unit        types.UnitOfMeasure `json:"unit"`
	Mode        string              `json:"mode"`
	NetWeight   *decimal.Decimal    `json:"net_weight,omitempty"`
	Quantity    decimal.Decimal     `json:"quantity"`
	DisposalFee money.Money         `json:"disposal_fee"`
	TippingFee  money.Money         `json:"tipping_fee"`
	Margin      money.Money         `json:"margin"`
	Overridden  bool                `json:"overridden"`
	Disposal    *chargeJSON         `json:"disposal,omitempty"`
	Tipping     *chargeJSON         `json:"tipping,omitempty"`
	CatalogHash string              `json:"catalog_hash"`
}

type chargeJSON struct {
	ChargeableQuantity decimal.Decimal `json:"chargeable_quantity"`
	Base               decimal.Decimal `json:"base"`
	Overage            decimal.Decimal `json:"overage"`
	OverageApplied     bool            `json:"overage_applied"`
	MinFeeApplied      bool            `json:"min_fee_applied"`
	Total              decimal.Decimal `json:"total"`
	Formula            *formulaJSON    `json:"formula,omitempty"`
}

type formulaJSON struct {
	Name       string            `json:"name"`
	Expression string            `json:"expression"`
	Inputs     map[string]string `json:"inputs"`
	Output     string            `json:"output"`
}

type materialJSON struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Unit              types.UnitOfMeasure `json:"unit"`
	Currency          types.Currency      `json:"currency"`
	Rate              decimal.Decimal     `json:"rate"`
	IncludedAllowance decimal.Decimal     `json:"included_allowance"`
	OverageThreshold  decimal.Decimal     `json:"overage_threshold"`
	OverageFee        decimal.Decimal     `json:"overage_fee"`
	MinFee            *decimal.Decimal    `json:"min_fee,omitempty"`
	ContainerRate     *decimal.Decimal    `json:"container_rate,omitempty"`
	TippingRate       decimal.Decimal     `json:"tipping_rate"`
	TippingContainer  *decimal.Decimal    `json:"tipping_container_rate,omitempty"`
}

type tippingJSON struct {
	Material      string              `json:"material"`
	Name          string              `json:"name"`
	Unit          types.UnitOfMeasure `json:"unit"`
	Mode          string              `json:"mode"`
	Quantity      decimal.Decimal     `json:"quantity"`
	Rate          decimal.Decimal     `json:"tipping_rate"`
	ContainerRate *decimal.Decimal    `json:"tipping_container_rate,omitempty"`
	Fee           money.Money         `json:"tipping_fee"`
}

type catalogReportJSON struct {
	Source            string         `json:"source"`
	Valid             bool           `json:"valid"`
	Hash              string         `json:"hash,omitempty"`
	Materials         int            `json:"materials"`
	ByUnit            map[string]int `json:"by_unit,omitempty"`
	WithContainerRate int            `json:"with_container_rate"`
	WithMinFee        int            `json:"with_min_fee"`
	Errors            []string       `json:"errors,omitempty"`
}

// RenderTicket writes the ticket with both charge breakdowns
func (f *JSONFormatter) RenderTicket(w io.Writer, t *ticket.Ticket) error {
	return encode(w, ticketJSON{
		ID:          t.ID,
		WorkOrder:   t.WorkOrder,
		CreatedAt:   t.CreatedAt,
		Material:    t.Material,
		Name:        t.Name,
		Unit:        t.Unit,
		Mode:        t.Mode,
		NetWeight:   t.NetWeight,
		Quantity:    t.Quantity,
		DisposalFee: t.DisposalFee,
		TippingFee:  t.TippingFee,
		Margin:      t.Margin,
		Overridden:  t.Overridden,
		Disposal:    f.charge(t.Disposal),
		Tipping:     f.charge(t.Tipping),
		CatalogHash: t.CatalogHash,
	})
}

// RenderTipping writes a standalone tipping fee
func (f *JSONFormatter) RenderTipping(w io.Writer, q *TippingQuote) error {
	return encode(w, tippingJSON{
		Material:      q.Material,
		Name:          q.Name,
		Unit:          q.Unit,
		Mode:          q.Mode.String(),
		Quantity:      q.Quantity,
		Rate:          q.Rate,
		ContainerRate: q.ContainerRate,
		Fee:           q.Fee,
	})
}

// RenderMaterials writes the materials as a JSON array
func (f *JSONFormatter) RenderMaterials(w io.Writer, materials []MaterialDetail) error {
	out := make([]materialJSON, 0, len(materials))
	for _, m := range materials {
		out = append(out, material(m.Disposal, m.Tipping))
	}
	return encode(w, out)
}

// RenderCatalogReport writes the validation outcome
func (f *JSONFormatter) RenderCatalogReport(w io.Writer, report *CatalogReport) error {
	out := catalogReportJSON{
		Source:            report.Source,
		Valid:             report.Valid(),
		Hash:              report.Hash,
		Materials:         report.Stats.Total,
		WithContainerRate: report.Stats.WithContainerRate,
		WithMinFee:        report.Stats.WithMinFee,
	}
	if len(report.Stats.ByUnit) > 0 {
		out.ByUnit = make(map[string]int, len(report.Stats.ByUnit))
		for unit, n := range report.Stats.ByUnit {
			out.ByUnit[unit.String()] = n
		}
	}
	for _, err := range report.Errors {
		out.Errors = append(out.Errors, err.Error())
	}
	return encode(w, out)
}

type catalogDiffJSON struct {
	BeforeHash string             `json:"before_hash"`
	AfterHash  string             `json:"after_hash"`
	Added      []string           `json:"added"`
	Removed    []string           `json:"removed"`
	Changed    []materialDiffJSON `json:"changed"`
	Unchanged  int                `json:"unchanged"`
}

type materialDiffJSON struct {
	ID     string             `json:"id"`
	Fields []diff.FieldChange `json:"fields"`
}

// RenderCatalogDiff writes the catalog changes
func (f *JSONFormatter) RenderCatalogDiff(w io.Writer, result *diff.Result) error {
	out := catalogDiffJSON{
		BeforeHash: result.BeforeHash,
		AfterHash:  result.AfterHash,
		Added:      []string{},
		Removed:    []string{},
		Changed:    []materialDiffJSON{},
		Unchanged:  result.UnchangedCount,
	}
	for _, m := range result.Added {
		out.Added = append(out.Added, m.ID)
	}
	for _, m := range result.Removed {
		out.Removed = append(out.Removed, m.ID)
	}
	for _, m := range result.Changed {
		out.Changed = append(out.Changed, materialDiffJSON{ID: m.ID, Fields: m.Fields})
	}
	return encode(w, out)
}

func (f *JSONFormatter) charge(c *pricing.Charge) *chargeJSON {
	if c == nil {
		return nil
	}
	out := &chargeJSON{
		ChargeableQuantity: c.ChargeableQuantity,
		Base:               c.Base,
		Overage:            c.Overage,
		OverageApplied:     c.OverageApplied,
		MinFeeApplied:      c.MinFeeApplied,
		Total:              c.Total,
	}
	if f.opts.ShowFormula {
		out.Formula = &formulaJSON{
			Name:       c.Formula.Name,
			Expression: c.Formula.Expression,
			Inputs:     c.Formula.Inputs,
			Output:     c.Formula.Output,
		}
	}
	return out
}

func material(d, tipping catalog.MaterialPricing) materialJSON {
	return materialJSON{
		ID:                d.ID,
		Name:              d.Name,
		Unit:              d.Unit,
		Currency:          d.Currency,
		Rate:              d.Rate,
		IncludedAllowance: d.IncludedAllowance,
		OverageThreshold:  d.OverageThreshold,
		OverageFee:        d.OverageFee,
		MinFee:            d.MinFee,
		ContainerRate:     d.ContainerRate,
		TippingRate:       tipping.Rate,
		TippingContainer:  tipping.ContainerRate,
	}
}

func encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
