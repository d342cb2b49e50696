package ticket

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hauler-pricing/core/catalog"
	"hauler-pricing/core/pricing"
	"hauler-pricing/core/types"
	perrors "hauler-pricing/internal/errors"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func newService(t *testing.T, opts Options) *Service {
	t.Helper()
	svc, err := NewService(catalog.Default(), pricing.NewOverrideStore(), opts)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestPriceWeighedLoad(t *testing.T) {
	svc := newService(t, DefaultOptions())

	tk, err := svc.Price(context.Background(), Request{
		WorkOrder:   "WO-1001",
		Material:    "msw",
		Mode:        types.PerUnit,
		GrossWeight: dp("6000"),
		TareWeight:  dp("2000"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tk.NetWeight == nil || !tk.NetWeight.Equal(d("4000")) {
		t.Errorf("net weight = %v, want 4000", tk.NetWeight)
	}
	if !tk.Quantity.Equal(d("2")) {
		t.Errorf("quantity = %s, want 2", tk.Quantity)
	}
	if !tk.DisposalFee.Amount().Equal(d("130")) {
		t.Errorf("disposal fee = %s, want 130.00", tk.DisposalFee)
	}
	if !tk.TippingFee.Amount().Equal(d("161.5")) {
		t.Errorf("tipping fee = %s, want 161.50", tk.TippingFee)
	}
	if !tk.Margin.Amount().Equal(d("-31.5")) {
		t.Errorf("margin = %s, want -31.50", tk.Margin)
	}
	if _, err := uuid.Parse(tk.ID); err != nil {
		t.Errorf("ticket id %q is not a uuid: %v", tk.ID, err)
	}
	if tk.CatalogHash != svc.Catalog().Hash() {
		t.Error("ticket must record the catalog hash it was priced against")
	}
	if tk.Overridden {
		t.Error("no override was set")
	}
}

func TestPriceQuantities(t *testing.T) {
	tests := []struct {
		name         string
		material     string
		quantity     string
		wantDisposal string
		wantTipping  string
	}{
		{"msw over threshold", "msw", "2.0", "130", "161.5"},
		{"c&d within allowance", "construction-demolition", "1.0", "0", "38.25"},
		{"zero quantity", "msw", "0", "0", "0"},
		{"tires counted", "tires", "25", "350", "255"},
		{"used oil gallons", "used-oil", "5", "0", "3.6125"},
	}

	svc := newService(t, DefaultOptions())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := svc.Quote(context.Background(), tt.material, d(tt.quantity))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tk.DisposalFee.Amount().Equal(d(tt.wantDisposal)) {
				t.Errorf("disposal = %s, want %s", tk.DisposalFee.Amount(), tt.wantDisposal)
			}
			if !tk.TippingFee.Amount().Equal(d(tt.wantTipping)) {
				t.Errorf("tipping = %s, want %s", tk.TippingFee.Amount(), tt.wantTipping)
			}
		})
	}
}

func TestPricePerContainer(t *testing.T) {
	svc := newService(t, DefaultOptions())

	tk, err := svc.Price(context.Background(), Request{Material: "msw", Mode: types.PerContainer})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tk.DisposalFee.Amount().Equal(d("450")) {
		t.Errorf("disposal = %s, want 450", tk.DisposalFee.Amount())
	}
	if !tk.TippingFee.Amount().Equal(d("382.5")) {
		t.Errorf("tipping = %s, want 382.50", tk.TippingFee.Amount())
	}

	_, err = svc.Price(context.Background(), Request{Material: "tires", Mode: types.PerContainer})
	if !perrors.IsType(err, perrors.TypeMissingContainerRate) {
		t.Errorf("expected MISSING_CONTAINER_RATE, got %v", err)
	}
}

func TestPriceRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want perrors.Type
	}{
		{"no material", Request{Quantity: dp("1")}, perrors.TypeInvalidParameter},
		{"unknown material", Request{Material: "plutonium", Quantity: dp("1")}, perrors.TypeMissingMaterial},
		{"negative quantity", Request{Material: "msw", Quantity: dp("-1")}, perrors.TypeInvalidQuantity},
		{"no measurement", Request{Material: "msw"}, perrors.TypeInvalidQuantity},
		{"quantity and weights", Request{Material: "msw", Quantity: dp("1"), GrossWeight: dp("10"), TareWeight: dp("5")}, perrors.TypeInvalidParameter},
		{"gross without tare", Request{Material: "msw", GrossWeight: dp("10")}, perrors.TypeInvalidWeight},
		{"tare above gross", Request{Material: "msw", GrossWeight: dp("1000"), TareWeight: dp("2000")}, perrors.TypeInvalidWeight},
		{"scale weights for counted material", Request{Material: "tires", GrossWeight: dp("6000"), TareWeight: dp("2000")}, perrors.TypeInvalidWeight},
		{"scale weights for gallons", Request{Material: "used-oil", GrossWeight: dp("600"), TareWeight: dp("200")}, perrors.TypeInvalidWeight},
	}

	svc := newService(t, DefaultOptions())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Price(context.Background(), tt.req)
			if !perrors.IsType(err, tt.want) {
				t.Errorf("expected %s, got %v", tt.want, err)
			}
		})
	}
}

func TestPriceWithOverride(t *testing.T) {
	svc := newService(t, DefaultOptions())
	if err := svc.Overrides().Set("WO-7", "msw", pricing.Override{Rate: dp("100")}); err != nil {
		t.Fatal(err)
	}

	tk, err := svc.Price(context.Background(), Request{WorkOrder: "WO-7", Material: "msw", Quantity: dp("2")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tk.Overridden {
		t.Error("ticket should be marked overridden")
	}
	// 100 * (2 - 1) + 35
	if !tk.DisposalFee.Amount().Equal(d("135")) {
		t.Errorf("disposal = %s, want 135", tk.DisposalFee.Amount())
	}
	// 100 * 0.85 * 2
	if !tk.TippingFee.Amount().Equal(d("170")) {
		t.Errorf("tipping = %s, want 170", tk.TippingFee.Amount())
	}

	other, err := svc.Price(context.Background(), Request{WorkOrder: "WO-8", Material: "msw", Quantity: dp("2")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !other.DisposalFee.Amount().Equal(d("130")) {
		t.Errorf("override leaked into WO-8: disposal = %s", other.DisposalFee.Amount())
	}
	if got, _ := svc.Catalog().Get("msw"); !got.Rate.Equal(d("95")) {
		t.Errorf("catalog rate changed to %s", got.Rate)
	}
}

func TestPriceEnforcesMinFee(t *testing.T) {
	opts := DefaultOptions()
	opts.EnforceMinFee = true
	svc := newService(t, opts)

	tk, err := svc.Quote(context.Background(), "msw", d("0.5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tk.DisposalFee.Amount().Equal(d("75")) {
		t.Errorf("disposal = %s, want min fee 75", tk.DisposalFee.Amount())
	}
	if !tk.Disposal.MinFeeApplied {
		t.Error("charge should record that the min fee applied")
	}
	if !tk.TippingFee.Amount().Equal(d("40.375")) {
		t.Errorf("tipping = %s, want 40.375 with no floor", tk.TippingFee.Amount())
	}
}

func TestPriceCanceledContext(t *testing.T) {
	svc := newService(t, DefaultOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Quote(ctx, "msw", d("1")); err == nil {
		t.Error("expected context error")
	}
}

func TestNewServiceRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero tipping factor", Options{TippingFactor: decimal.Zero, PoundsPerTon: d("2000")}},
		{"zero pounds per ton", Options{TippingFactor: d("0.85"), PoundsPerTon: decimal.Zero}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(catalog.Default(), nil, tt.opts)
			if !perrors.IsType(err, perrors.TypeConfig) {
				t.Errorf("expected CONFIG_ERROR, got %v", err)
			}
		})
	}
}
