// Package catalog - Material pricing catalog
// Holds the default disposal pricing parameters for each material.
// Entries are values: lookups return copies and a sealed catalog never changes.
package catalog

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"hauler-pricing/core/types"
	perrors "hauler-pricing/internal/errors"
)

// ErrSealed is returned when registering into a sealed catalog
var ErrSealed = errors.New("catalog is sealed: entries cannot be added or replaced")

// MaterialPricing holds the disposal pricing parameters of one material
type MaterialPricing struct {
	ID       string
	Name     string
	Unit     types.UnitOfMeasure
	Currency types.Currency

	// Rate is the currency charged per unit beyond the included allowance
	Rate decimal.Decimal

	// IncludedAllowance is the quantity covered before per-unit charges accrue
	IncludedAllowance decimal.Decimal

	// OverageThreshold triggers OverageFee when strictly exceeded
	OverageThreshold decimal.Decimal

	// OverageFee is a flat surcharge applied at most once
	OverageFee decimal.Decimal

	// MinFee floors the final charge when min-fee enforcement is on
	MinFee *decimal.Decimal

	// ContainerRate is the flat charge for per-container pricing
	ContainerRate *decimal.Decimal
}

// Clone returns a deep copy, including the optional fields
func (m MaterialPricing) Clone() MaterialPricing {
	out := m
	if m.MinFee != nil {
		v := *m.MinFee
		out.MinFee = &v
	}
	if m.ContainerRate != nil {
		v := *m.ContainerRate
		out.ContainerRate = &v
	}
	return out
}

// bytes returns a deterministic encoding for hashing.
// Every field is length-prefixed, and decimals use String, which drops trailing
// zeros, so 95 and 95.00 encode the same.
func (m MaterialPricing) bytes() []byte {
	var buf bytes.Buffer
	field := func(s string) {
		fmt.Fprintf(&buf, "%d:%s", len(s), s)
	}
	opt := func(d *decimal.Decimal) {
		if d == nil {
			field("")
			return
		}
		field(d.String())
	}

	field(m.ID)
	field(m.Name)
	field(string(m.Unit))
	field(string(m.Currency))
	field(m.Rate.String())
	field(m.IncludedAllowance.String())
	field(m.OverageThreshold.String())
	field(m.OverageFee.String())
	opt(m.MinFee)
	opt(m.ContainerRate)
	return buf.Bytes()
}

// Catalog maps material ids to their default pricing
type Catalog struct {
	entries map[string]MaterialPricing
	sealed  bool
}

// NewCatalog creates a new, unsealed catalog
func NewCatalog() *Catalog {
	return &Catalog{
		entries: make(map[string]MaterialPricing),
	}
}

// Register adds a material to the catalog
func (c *Catalog) Register(entry MaterialPricing) error {
	if c.sealed {
		return ErrSealed
	}
	if entry.ID == "" {
		return perrors.InvalidParameter("id", "material id is required")
	}
	if entry.Currency == "" {
		entry.Currency = types.CurrencyUSD
	}
	c.entries[entry.ID] = entry.Clone()
	return nil
}

// Seal freezes the catalog
func (c *Catalog) Seal() *Catalog {
	c.sealed = true
	return c
}

// Sealed reports whether the catalog is frozen
func (c *Catalog) Sealed() bool {
	return c.sealed
}

// Get returns a copy of a material's pricing
func (c *Catalog) Get(id string) (MaterialPricing, bool) {
	entry, ok := c.entries[id]
	if !ok {
		return MaterialPricing{}, false
	}
	return entry.Clone(), true
}

// Lookup returns a copy of a material's pricing or a MISSING_MATERIAL error
func (c *Catalog) Lookup(id string) (MaterialPricing, error) {
	entry, ok := c.Get(id)
	if !ok {
		return MaterialPricing{}, perrors.MissingMaterial(id)
	}
	return entry, nil
}

// IDs returns all material ids in sorted order
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// List returns copies of all entries sorted by id
func (c *Catalog) List() []MaterialPricing {
	ids := c.IDs()
	result := make([]MaterialPricing, 0, len(ids))
	for _, id := range ids {
		result = append(result, c.entries[id].Clone())
	}
	return result
}

// Len returns the number of materials
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Hash returns a content hash of every entry, identifying a catalog version
func (c *Catalog) Hash() string {
	h := sha256.New()
	for _, id := range c.IDs() {
		h.Write(c.entries[id].bytes())
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Stats returns catalog statistics
func (c *Catalog) Stats() Stats {
	stats := Stats{
		ByUnit: make(map[types.UnitOfMeasure]int),
	}
	for _, entry := range c.entries {
		stats.Total++
		stats.ByUnit[entry.Unit]++
		if entry.ContainerRate != nil {
			stats.WithContainerRate++
		}
		if entry.MinFee != nil {
			stats.WithMinFee++
		}
	}
	return stats
}

// Stats holds catalog statistics
type Stats struct {
	Total             int
	ByUnit            map[types.UnitOfMeasure]int
	WithContainerRate int
	WithMinFee        int
}
