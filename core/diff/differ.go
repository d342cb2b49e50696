// Package diff provides material-level catalog diffing.
// Compares two material catalogs so a rate change can be reviewed before rollout.
package diff

import (
	"sort"

	"github.com/shopspring/decimal"

	"hauler-pricing/core/catalog"
)

// Result is the complete diff between two catalogs
type Result struct {
	BeforeHash string
	AfterHash  string

	// Material-level changes
	Added   []*MaterialDiff
	Removed []*MaterialDiff
	Changed []*MaterialDiff

	UnchangedCount int
}

// HasChanges reports whether the catalogs differ
func (r *Result) HasChanges() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0 || len(r.Changed) > 0
}

// MaterialDiff describes changes to a single material
type MaterialDiff struct {
	ID         string
	ChangeType ChangeType

	Before *catalog.MaterialPricing
	After  *catalog.MaterialPricing

	// Fields lists what changed for modified materials
	Fields []FieldChange
}

// ChangeType indicates the type of change
type ChangeType int

const (
	ChangeAdded    ChangeType = iota // New material
	ChangeRemoved                    // Material removed
	ChangeModified                   // Pricing changed
)

// String returns the change type name
func (c ChangeType) String() string {
	switch c {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	default:
		return "unknown"
	}
}

// FieldChange is one pricing field that differs
type FieldChange struct {
	Field  string `json:"field"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// Differ computes diffs between catalogs
type Differ struct{}

// NewDiffer creates a new differ
func NewDiffer() *Differ {
	return &Differ{}
}

// Diff computes the diff between before and after
func (d *Differ) Diff(before, after *catalog.Catalog) *Result {
	result := &Result{
		BeforeHash: before.Hash(),
		AfterHash:  after.Hash(),
		Added:      []*MaterialDiff{},
		Removed:    []*MaterialDiff{},
		Changed:    []*MaterialDiff{},
	}

	ids := make(map[string]struct{})
	for _, id := range before.IDs() {
		ids[id] = struct{}{}
	}
	for _, id := range after.IDs() {
		ids[id] = struct{}{}
	}
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	for _, id := range sorted {
		b, inBefore := before.Get(id)
		a, inAfter := after.Get(id)

		switch {
		case !inBefore:
			result.Added = append(result.Added, &MaterialDiff{ID: id, ChangeType: ChangeAdded, After: &a})
		case !inAfter:
			result.Removed = append(result.Removed, &MaterialDiff{ID: id, ChangeType: ChangeRemoved, Before: &b})
		default:
			fields := compare(b, a)
			if len(fields) == 0 {
				result.UnchangedCount++
				continue
			}
			result.Changed = append(result.Changed, &MaterialDiff{
				ID:         id,
				ChangeType: ChangeModified,
				Before:     &b,
				After:      &a,
				Fields:     fields,
			})
		}
	}

	return result
}

// compare lists the fields of two entries that differ, in catalog field order
func compare(before, after catalog.MaterialPricing) []FieldChange {
	var changes []FieldChange
	text := func(field, b, a string) {
		if b != a {
			changes = append(changes, FieldChange{Field: field, Before: b, After: a})
		}
	}
	num := func(field string, b, a decimal.Decimal) {
		if !b.Equal(a) {
			changes = append(changes, FieldChange{Field: field, Before: b.String(), After: a.String()})
		}
	}
	opt := func(field string, b, a *decimal.Decimal) {
		switch {
		case b == nil && a == nil:
		case b == nil:
			changes = append(changes, FieldChange{Field: field, Before: "-", After: a.String()})
		case a == nil:
			changes = append(changes, FieldChange{Field: field, Before: b.String(), After: "-"})
		default:
			num(field, *b, *a)
		}
	}

	text("name", before.Name, after.Name)
	text("unit", before.Unit.String(), after.Unit.String())
	text("currency", before.Currency.String(), after.Currency.String())
	num("rate", before.Rate, after.Rate)
	num("included_allowance", before.IncludedAllowance, after.IncludedAllowance)
	num("overage_threshold", before.OverageThreshold, after.OverageThreshold)
	num("overage_fee", before.OverageFee, after.OverageFee)
	opt("min_fee", before.MinFee, after.MinFee)
	opt("container_rate", before.ContainerRate, after.ContainerRate)

	return changes
}
