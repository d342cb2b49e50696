package measure

import (
	"testing"

	"github.com/shopspring/decimal"

	"hauler-pricing/core/types"
	perrors "hauler-pricing/internal/errors"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// TestNetQuantityScaleTicket: 6000 lbs gross, 2000 lbs tare -> 2 tons
func TestNetQuantityScaleTicket(t *testing.T) {
	c := DefaultConverter()

	net, err := NetWeight(d("6000"), d("2000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !net.Equal(d("4000")) {
		t.Errorf("net weight = %s, want 4000", net)
	}

	tons, err := c.NetQuantity(d("6000"), d("2000"), types.UnitTons)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tons.Equal(d("2")) {
		t.Errorf("net quantity = %s tons, want 2", tons)
	}
}

func TestNetQuantityRejectsCountedUnits(t *testing.T) {
	c := DefaultConverter()
	for _, unit := range []types.UnitOfMeasure{types.UnitItems, types.UnitGallons, types.UnitYards} {
		t.Run(unit.String(), func(t *testing.T) {
			_, err := c.NetQuantity(d("6000"), d("2000"), unit)
			if !perrors.IsType(err, perrors.TypeInvalidWeight) {
				t.Errorf("expected INVALID_WEIGHT for %s, got %v", unit, err)
			}
		})
	}
}

func TestNetWeightRejectsBadReadings(t *testing.T) {
	tests := []struct {
		name        string
		gross, tare string
	}{
		{"tare exceeds gross", "2000", "6000"},
		{"negative gross", "-1", "0"},
		{"negative tare", "100", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NetWeight(d(tt.gross), d(tt.tare))
			if !perrors.IsType(err, perrors.TypeInvalidWeight) {
				t.Fatalf("expected INVALID_WEIGHT, got %v", err)
			}
		})
	}
}

func TestNetWeightEqualReadingsIsZero(t *testing.T) {
	net, err := NetWeight(d("2000"), d("2000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !net.IsZero() {
		t.Errorf("net = %s, want 0", net)
	}
}

func TestToReportingUnitRejectsZeroFactor(t *testing.T) {
	if _, err := ToReportingUnit(d("100"), decimal.Zero); !perrors.IsType(err, perrors.TypeInvalidWeight) {
		t.Fatalf("expected INVALID_WEIGHT, got %v", err)
	}
}

func TestTonsPoundsRoundTrip(t *testing.T) {
	c := DefaultConverter()
	for _, s := range []string{"0", "1", "2.5", "1.2345", "17.125", "0.0001"} {
		t.Run(s, func(t *testing.T) {
			tons := d(s)
			back := c.PoundsToTons(c.TonsToPounds(tons))
			if !back.Equal(tons) {
				t.Errorf("round trip %s -> %s", tons, back)
			}
		})
	}
}

func TestNewConverterRejectsNonPositive(t *testing.T) {
	if _, err := NewConverter(decimal.Zero); !perrors.IsType(err, perrors.TypeConfig) {
		t.Fatalf("expected CONFIG_ERROR, got %v", err)
	}
	c, err := NewConverter(d("2240"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Factor(types.UnitTons).Equal(d("2240")) {
		t.Errorf("long-ton factor not applied")
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2.0", "2", false},
		{" 1.5 ", "1.5", false},
		{"0", "0", false},
		{"-1", "", true},
		{"abc", "", true},
		{"NaN", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseQuantity(tt.in)
			if tt.wantErr {
				if !perrors.IsType(err, perrors.TypeInvalidQuantity) {
					t.Fatalf("expected INVALID_QUANTITY, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(d(tt.want)) {
				t.Errorf("ParseQuantity(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
