package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"hauler-pricing/core/types"
)

func TestMoneyString(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		cur    types.Currency
		want   string
	}{
		{"usd whole", "130", types.CurrencyUSD, "$130.00"},
		{"usd cents", "80.75", types.CurrencyUSD, "$80.75"},
		{"half cent rounds", "0.125", types.CurrencyUSD, "$0.13"},
		{"negative", "-31.5", types.CurrencyUSD, "-$31.50"},
		{"other currency", "12.5", types.Currency("EUR"), "12.50 EUR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(tt.amount, tt.cur)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := m.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMoneyAddCurrencyMismatchPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic adding USD to CAD")
		}
	}()
	Zero(types.CurrencyUSD).Add(Zero(types.CurrencyCAD))
}

func TestMoneyArithmetic(t *testing.T) {
	a := New(decimal.NewFromInt(95), types.CurrencyUSD)
	b := New(decimal.NewFromInt(35), types.CurrencyUSD)

	if got := a.Add(b).Amount(); !got.Equal(decimal.NewFromInt(130)) {
		t.Errorf("Add = %s, want 130", got)
	}
	if got := a.Sub(b).Amount(); !got.Equal(decimal.NewFromInt(60)) {
		t.Errorf("Sub = %s, want 60", got)
	}
	if a.Cmp(b) != 1 {
		t.Error("expected 95 > 35")
	}
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(New(decimal.RequireFromString("161.5"), types.CurrencyUSD))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"amount":"161.50","currency":"USD"}`
	if string(data) != want {
		t.Errorf("MarshalJSON = %s, want %s", data, want)
	}
}
