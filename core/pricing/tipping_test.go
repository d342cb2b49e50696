package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"hauler-pricing/core/types"
	perrors "hauler-pricing/internal/errors"
)

// TestTippingScenario: disposal rate 95.00 -> tipping rate 80.75; 2.0 tons -> 161.50
func TestTippingScenario(t *testing.T) {
	tipping := DeriveTipping(mswParams(), DefaultTippingFactor)
	if !tipping.Rate.Equal(d("80.75")) {
		t.Fatalf("tipping rate = %s, want 80.75", tipping.Rate)
	}

	charge, err := NewTippingCalculator().Compute(tipping, d("2.0"), types.PerUnit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !charge.Total.Equal(d("161.50")) {
		t.Errorf("tipping charge = %s, want 161.50", charge.Total)
	}
	if charge.OverageApplied {
		t.Error("tipping charge must never apply an overage fee")
	}
}

func TestDeriveTippingCopiesDisplayFields(t *testing.T) {
	params := mswParams()
	tipping := DeriveTipping(params, DefaultTippingFactor)

	if !tipping.IncludedAllowance.Equal(params.IncludedAllowance) ||
		!tipping.OverageThreshold.Equal(params.OverageThreshold) ||
		!tipping.OverageFee.Equal(params.OverageFee) {
		t.Error("allowance, threshold and overage fee must be copied verbatim")
	}
	if tipping.ContainerRate == nil || !tipping.ContainerRate.Equal(d("382.5")) {
		t.Errorf("tipping container rate = %v, want 382.5", tipping.ContainerRate)
	}
	if tipping.MinFee != nil {
		t.Error("tipping parameters must not carry a min fee")
	}
	if !params.Rate.Equal(d("95")) || !params.ContainerRate.Equal(d("450")) {
		t.Error("DeriveTipping mutated the source parameters")
	}
}

func TestComputeTippingCharge(t *testing.T) {
	tests := []struct {
		name      string
		rate      string
		quantity  string
		mode      types.PricingMode
		container string
		want      string
		wantErr   perrors.Type
	}{
		{name: "per unit ignores allowance", rate: "80.75", quantity: "0.5", mode: types.PerUnit, want: "40.375"},
		{name: "zero quantity", rate: "80.75", quantity: "0", mode: types.PerUnit, want: "0"},
		{name: "per container flat", rate: "80.75", quantity: "9", mode: types.PerContainer, container: "382.5", want: "382.5"},
		{name: "per container without rate", rate: "80.75", quantity: "9", mode: types.PerContainer, wantErr: perrors.TypeMissingContainerRate},
		{name: "negative quantity", rate: "80.75", quantity: "-1", mode: types.PerUnit, wantErr: perrors.TypeInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var container *decimal.Decimal
			if tt.container != "" {
				container = dp(tt.container)
			}

			got, err := ComputeTippingCharge(d(tt.rate), d(tt.quantity), tt.mode, container)
			if tt.wantErr != "" {
				if !perrors.IsType(err, tt.wantErr) {
					t.Fatalf("expected %s, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(d(tt.want)) {
				t.Errorf("charge = %s, want %s", got, tt.want)
			}
		})
	}
}
