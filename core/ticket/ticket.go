// Package ticket prices disposal tickets: one dump-site visit with a measured load.
// It is the single entry point the dashboard screens use to turn a scale reading
// into the customer disposal fee and the hauler tipping fee.
package ticket

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hauler-pricing/core/catalog"
	"hauler-pricing/core/measure"
	"hauler-pricing/core/money"
	"hauler-pricing/core/pricing"
	"hauler-pricing/core/types"
	perrors "hauler-pricing/internal/errors"
	"hauler-pricing/internal/logging"
)

// Request describes a load to price.
// Give either Quantity (already in the material's unit) or GrossWeight and TareWeight.
type Request struct {
	WorkOrder string
	Material  string
	Mode      types.PricingMode

	Quantity    *decimal.Decimal
	GrossWeight *decimal.Decimal
	TareWeight  *decimal.Decimal
}

// Ticket is a priced disposal ticket
type Ticket struct {
	ID        string    `json:"id"`
	WorkOrder string    `json:"work_order,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Material string              `json:"material"`
	Name     string              `json:"name"`
	Unit     types.UnitOfMeasure `json:"unit"`
	Mode     string              `json:"mode"`

	// NetWeight is set when the load was weighed as a gross/tare pair
	NetWeight *decimal.Decimal `json:"net_weight,omitempty"`
	Quantity  decimal.Decimal  `json:"quantity"`

	DisposalFee money.Money `json:"disposal_fee"`
	TippingFee  money.Money `json:"tipping_fee"`
	Margin      money.Money `json:"margin"`

	Disposal *pricing.Charge `json:"-"`
	Tipping  *pricing.Charge `json:"-"`

	// Pricing is the resolved parameters after any work order override
	Pricing    catalog.MaterialPricing `json:"-"`
	Overridden bool                    `json:"overridden"`

	CatalogHash string `json:"catalog_hash"`
}

// Options configure a Service
type Options struct {
	EnforceMinFee bool
	TippingFactor decimal.Decimal
	PoundsPerTon  decimal.Decimal
}

// DefaultOptions returns the dashboard defaults
func DefaultOptions() Options {
	return Options{
		TippingFactor: pricing.DefaultTippingFactor,
		PoundsPerTon:  measure.DefaultPoundsPerTon,
	}
}

// Service prices tickets against a catalog and a work order override store
type Service struct {
	catalog       *catalog.Catalog
	overrides     *pricing.OverrideStore
	disposal      pricing.FeeCalculator
	tipping       pricing.FeeCalculator
	converter     *measure.Converter
	tippingFactor decimal.Decimal
	now           func() time.Time
}

// NewService creates a ticket service
func NewService(cat *catalog.Catalog, overrides *pricing.OverrideStore, opts Options) (*Service, error) {
	if cat == nil {
		return nil, perrors.Config("ticket service requires a catalog")
	}
	if overrides == nil {
		overrides = pricing.NewOverrideStore()
	}
	if !opts.TippingFactor.IsPositive() {
		return nil, perrors.Config("tipping factor must be positive")
	}
	converter, err := measure.NewConverter(opts.PoundsPerTon)
	if err != nil {
		return nil, err
	}

	return &Service{
		catalog:       cat,
		overrides:     overrides,
		disposal:      pricing.NewDisposalCalculator(pricing.Options{EnforceMinFee: opts.EnforceMinFee}),
		tipping:       pricing.NewTippingCalculator(),
		converter:     converter,
		tippingFactor: opts.TippingFactor,
		now:           func() time.Time { return time.Now().UTC() },
	}, nil
}

// Catalog returns the catalog the service prices against
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Overrides returns the work order override store
func (s *Service) Overrides() *pricing.OverrideStore {
	return s.overrides
}

// Quote prices a per-unit quantity at catalog defaults
func (s *Service) Quote(ctx context.Context, material string, quantity decimal.Decimal) (*Ticket, error) {
	return s.Price(ctx, Request{
		Material: material,
		Mode:     types.PerUnit,
		Quantity: &quantity,
	})
}

// Price resolves the material, normalizes the measurement and computes both fees
func (s *Service) Price(ctx context.Context, req Request) (*Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Material == "" {
		return nil, perrors.InvalidParameter("material", "material id is required")
	}

	params, override, err := s.overrides.Resolve(s.catalog, req.WorkOrder, req.Material)
	if err != nil {
		return nil, err
	}

	quantity, net, err := s.quantity(req, params)
	if err != nil {
		return nil, err
	}

	disposal, err := s.disposal.Compute(params, quantity, req.Mode)
	if err != nil {
		return nil, err
	}

	tipping, err := s.tipping.Compute(override.Tipping(params, s.tippingFactor), quantity, req.Mode)
	if err != nil {
		return nil, err
	}

	currency := params.Currency
	disposalFee := money.New(disposal.Total, currency)
	tippingFee := money.New(tipping.Total, currency)

	t := &Ticket{
		ID:          uuid.NewString(),
		WorkOrder:   req.WorkOrder,
		CreatedAt:   s.now(),
		Material:    params.ID,
		Name:        params.Name,
		Unit:        params.Unit,
		Mode:        req.Mode.String(),
		NetWeight:   net,
		Quantity:    quantity,
		DisposalFee: disposalFee,
		TippingFee:  tippingFee,
		Margin:      disposalFee.Sub(tippingFee),
		Disposal:    disposal,
		Tipping:     tipping,
		Pricing:     params,
		Overridden:  !override.IsEmpty(),
		CatalogHash: s.catalog.Hash(),
	}

	logging.Debug("ticket priced",
		zap.String("ticket", t.ID),
		logging.WorkOrder(req.WorkOrder),
		logging.Material(t.Material),
		logging.Amount("quantity", quantity),
		zap.Stringer("disposal_fee", disposalFee),
		zap.Stringer("tipping_fee", tippingFee),
		zap.Bool("overridden", t.Overridden),
	)

	return t, nil
}

// quantity returns the billed quantity and, for weighed loads, the net weight
func (s *Service) quantity(req Request, params catalog.MaterialPricing) (decimal.Decimal, *decimal.Decimal, error) {
	weighed := req.GrossWeight != nil || req.TareWeight != nil

	switch {
	case req.Quantity != nil && weighed:
		return decimal.Zero, nil, perrors.InvalidParameter("quantity", "give either a quantity or a gross/tare pair, not both")
	case req.Quantity != nil:
		if req.Quantity.IsNegative() {
			return decimal.Zero, nil, perrors.InvalidQuantity("quantity %s is negative", req.Quantity)
		}
		return *req.Quantity, nil, nil
	case weighed:
		if !params.Unit.Weighed() {
			return decimal.Zero, nil, perrors.InvalidWeight("material %q is billed in %s; give a quantity, not scale weights", params.ID, params.Unit).
				WithContext("material", params.ID)
		}
		if req.GrossWeight == nil || req.TareWeight == nil {
			return decimal.Zero, nil, perrors.InvalidWeight("both gross and tare weights are required")
		}
		net, err := measure.NetWeight(*req.GrossWeight, *req.TareWeight)
		if err != nil {
			return decimal.Zero, nil, err
		}
		q, err := s.converter.NetQuantity(*req.GrossWeight, *req.TareWeight, params.Unit)
		if err != nil {
			return decimal.Zero, nil, err
		}
		return q, &net, nil
	case req.Mode == types.PerContainer:
		return decimal.Zero, nil, nil
	default:
		return decimal.Zero, nil, perrors.InvalidQuantity("per-unit pricing needs a quantity or a gross/tare pair")
	}
}
