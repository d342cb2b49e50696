package pricing

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hauler-pricing/core/catalog"
	perrors "hauler-pricing/internal/errors"
	"hauler-pricing/internal/logging"
)

// Override holds edited pricing for one material on one work order.
// Nil fields keep the catalog default.
type Override struct {
	Rate              *decimal.Decimal `json:"rate,omitempty"`
	IncludedAllowance *decimal.Decimal `json:"included_allowance,omitempty"`
	OverageThreshold  *decimal.Decimal `json:"overage_threshold,omitempty"`
	OverageFee        *decimal.Decimal `json:"overage_fee,omitempty"`
	MinFee            *decimal.Decimal `json:"min_fee,omitempty"`
	ContainerRate     *decimal.Decimal `json:"container_rate,omitempty"`

	// TippingRate replaces the derived tipping rate
	TippingRate *decimal.Decimal `json:"tipping_rate,omitempty"`
}

// IsEmpty reports whether the override changes nothing
func (o Override) IsEmpty() bool {
	return o.Rate == nil && o.IncludedAllowance == nil && o.OverageThreshold == nil &&
		o.OverageFee == nil && o.MinFee == nil && o.ContainerRate == nil && o.TippingRate == nil
}

// Validate rejects negative overridden values
func (o Override) Validate() error {
	fields := []struct {
		name  string
		value *decimal.Decimal
	}{
		{"rate", o.Rate},
		{"included_allowance", o.IncludedAllowance},
		{"overage_threshold", o.OverageThreshold},
		{"overage_fee", o.OverageFee},
		{"min_fee", o.MinFee},
		{"container_rate", o.ContainerRate},
		{"tipping_rate", o.TippingRate},
	}
	for _, f := range fields {
		if f.value != nil && f.value.IsNegative() {
			return perrors.InvalidParameter(f.name, "must be non-negative")
		}
	}
	return nil
}

// Apply returns a copy of params with the override's fields replaced.
// params itself is left untouched.
func (o Override) Apply(params catalog.MaterialPricing) catalog.MaterialPricing {
	out := params.Clone()
	if o.Rate != nil {
		out.Rate = *o.Rate
	}
	if o.IncludedAllowance != nil {
		out.IncludedAllowance = *o.IncludedAllowance
	}
	if o.OverageThreshold != nil {
		out.OverageThreshold = *o.OverageThreshold
	}
	if o.OverageFee != nil {
		out.OverageFee = *o.OverageFee
	}
	if o.MinFee != nil {
		v := *o.MinFee
		out.MinFee = &v
	}
	if o.ContainerRate != nil {
		v := *o.ContainerRate
		out.ContainerRate = &v
	}
	return out
}

// Tipping derives tipping parameters, honoring an overridden tipping rate
func (o Override) Tipping(params catalog.MaterialPricing, factor decimal.Decimal) catalog.MaterialPricing {
	tipping := DeriveTipping(o.Apply(params), factor)
	if o.TippingRate != nil {
		tipping.Rate = *o.TippingRate
	}
	return tipping
}

func (o Override) clone() Override {
	cp := func(d *decimal.Decimal) *decimal.Decimal {
		if d == nil {
			return nil
		}
		v := *d
		return &v
	}
	return Override{
		Rate:              cp(o.Rate),
		IncludedAllowance: cp(o.IncludedAllowance),
		OverageThreshold:  cp(o.OverageThreshold),
		OverageFee:        cp(o.OverageFee),
		MinFee:            cp(o.MinFee),
		ContainerRate:     cp(o.ContainerRate),
		TippingRate:       cp(o.TippingRate),
	}
}

// OverrideKey scopes an override to one material on one work order
type OverrideKey struct {
	WorkOrder string
	Material  string
}

// OverrideStore keeps per-work-order pricing edits apart from the shared catalog
type OverrideStore struct {
	mu        sync.RWMutex
	overrides map[OverrideKey]Override
}

// NewOverrideStore creates an empty store
func NewOverrideStore() *OverrideStore {
	return &OverrideStore{
		overrides: make(map[OverrideKey]Override),
	}
}

// Set records an override, replacing any previous one for the same key.
// An empty override clears the key.
func (s *OverrideStore) Set(workOrder, material string, o Override) error {
	if workOrder == "" {
		return perrors.InvalidParameter("work_order", "work order id is required")
	}
	if material == "" {
		return perrors.InvalidParameter("material", "material id is required")
	}
	if err := o.Validate(); err != nil {
		return err
	}

	key := OverrideKey{WorkOrder: workOrder, Material: material}

	s.mu.Lock()
	defer s.mu.Unlock()

	if o.IsEmpty() {
		delete(s.overrides, key)
		return nil
	}
	s.overrides[key] = o.clone()

	logging.Info("pricing override saved",
		logging.WorkOrder(workOrder),
		logging.Material(material),
		zap.Int("work_order_overrides", s.countLocked(workOrder)),
	)
	return nil
}

// Get returns a copy of the override for a key
func (s *OverrideStore) Get(workOrder, material string) (Override, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.overrides[OverrideKey{WorkOrder: workOrder, Material: material}]
	if !ok {
		return Override{}, false
	}
	return o.clone(), true
}

// Clear drops every override of a work order
func (s *OverrideStore) Clear(workOrder string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key := range s.overrides {
		if key.WorkOrder == workOrder {
			delete(s.overrides, key)
			removed++
		}
	}
	return removed
}

// Keys returns every stored key, sorted by work order then material
func (s *OverrideStore) Keys() []OverrideKey {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]OverrideKey, 0, len(s.overrides))
	for key := range s.overrides {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].WorkOrder != keys[j].WorkOrder {
			return keys[i].WorkOrder < keys[j].WorkOrder
		}
		return keys[i].Material < keys[j].Material
	})
	return keys
}

// Resolve returns the catalog pricing of a material with the work order's override applied
func (s *OverrideStore) Resolve(cat *catalog.Catalog, workOrder, material string) (catalog.MaterialPricing, Override, error) {
	params, err := cat.Lookup(material)
	if err != nil {
		return catalog.MaterialPricing{}, Override{}, err
	}
	o, _ := s.Get(workOrder, material)
	return o.Apply(params), o, nil
}

func (s *OverrideStore) countLocked(workOrder string) int {
	n := 0
	for key := range s.overrides {
		if key.WorkOrder == workOrder {
			n++
		}
	}
	return n
}
