package catalog

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"hauler-pricing/core/types"
	perrors "hauler-pricing/internal/errors"
)

func TestDefaultCatalogIsValidAndSealed(t *testing.T) {
	c := Default()
	if !c.Sealed() {
		t.Fatal("default catalog must be sealed")
	}
	if errs := c.Validate(DefaultValidationRules()); len(errs) > 0 {
		t.Fatalf("default catalog has validation errors: %v", errs)
	}
	if c.Len() != len(builtinMaterials()) {
		t.Errorf("expected %d materials, got %d", len(builtinMaterials()), c.Len())
	}
}

func TestSealedCatalogRejectsRegister(t *testing.T) {
	err := Default().Register(MaterialPricing{ID: "asbestos", Unit: types.UnitTons})
	if err != ErrSealed {
		t.Fatalf("expected ErrSealed, got %v", err)
	}
}

// TestGetReturnsCopy proves edits to a looked-up entry never reach the catalog
func TestGetReturnsCopy(t *testing.T) {
	c := Default()
	before := c.Hash()

	entry, ok := c.Get("msw")
	if !ok {
		t.Fatal("msw missing from default catalog")
	}
	entry.OverageThreshold = decimal.NewFromInt(99)
	*entry.ContainerRate = decimal.NewFromInt(1)
	*entry.MinFee = decimal.Zero

	again, _ := c.Get("msw")
	if !again.OverageThreshold.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("catalog threshold mutated to %s", again.OverageThreshold)
	}
	if !again.ContainerRate.Equal(decimal.RequireFromString("450")) {
		t.Errorf("catalog container rate mutated to %s", again.ContainerRate)
	}
	if c.Hash() != before {
		t.Error("catalog hash changed after editing a copy")
	}
}

func TestLookupMissingMaterial(t *testing.T) {
	_, err := Default().Lookup("asbestos")
	if !perrors.IsType(err, perrors.TypeMissingMaterial) {
		t.Fatalf("expected MISSING_MATERIAL, got %v", err)
	}
}

func TestValidationRules(t *testing.T) {
	neg := decimal.NewFromInt(-1)

	tests := []struct {
		name    string
		entry   MaterialPricing
		wantErr bool
	}{
		{
			name:  "valid entry",
			entry: MaterialPricing{ID: "a", Unit: types.UnitTons, Rate: decimal.NewFromInt(10)},
		},
		{
			name:    "unknown unit",
			entry:   MaterialPricing{ID: "a", Unit: "pounds"},
			wantErr: true,
		},
		{
			name:    "negative rate",
			entry:   MaterialPricing{ID: "a", Unit: types.UnitTons, Rate: neg},
			wantErr: true,
		},
		{
			name:    "negative overage fee",
			entry:   MaterialPricing{ID: "a", Unit: types.UnitYards, OverageFee: neg},
			wantErr: true,
		},
		{
			name:    "negative container rate",
			entry:   MaterialPricing{ID: "a", Unit: types.UnitItems, ContainerRate: &neg},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntry(tt.entry)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateEntry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !perrors.IsType(err, perrors.TypeInvalidParameter) {
				t.Errorf("expected INVALID_PARAMETER, got %v", err)
			}
		})
	}
}

func TestHashIsOrderIndependent(t *testing.T) {
	a, b := NewCatalog(), NewCatalog()
	materials := builtinMaterials()
	for i := range materials {
		_ = a.Register(materials[i])
		_ = b.Register(materials[len(materials)-1-i])
	}
	if a.Hash() != b.Hash() {
		t.Error("registration order changed the catalog hash")
	}
}

func TestHashIgnoresDecimalScale(t *testing.T) {
	build := func(rate string) *Catalog {
		c := NewCatalog()
		if err := c.Register(MaterialPricing{ID: "msw", Unit: types.UnitTons, Rate: decimal.RequireFromString(rate)}); err != nil {
			t.Fatal(err)
		}
		return c.Seal()
	}
	if build("95").Hash() != build("95.00").Hash() {
		t.Error("95 and 95.00 must hash the same")
	}
	if build("95").Hash() == build("95.01").Hash() {
		t.Error("different rates must hash differently")
	}
}

func TestHashSeparatesFields(t *testing.T) {
	a, b := NewCatalog(), NewCatalog()
	if err := a.Register(MaterialPricing{ID: "a", Name: "b|c", Unit: types.UnitTons}); err != nil {
		t.Fatal(err)
	}
	if err := b.Register(MaterialPricing{ID: "a|b", Name: "c", Unit: types.UnitTons}); err != nil {
		t.Fatal(err)
	}
	if a.Hash() == b.Hash() {
		t.Error("moving a separator between id and name must change the hash")
	}
}

func TestDefaultIn(t *testing.T) {
	tests := []struct {
		name     string
		currency types.Currency
		want     types.Currency
	}{
		{"usd", types.CurrencyUSD, types.CurrencyUSD},
		{"empty falls back to usd", "", types.CurrencyUSD},
		{"cad", types.CurrencyCAD, types.CurrencyCAD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultIn(tt.currency)
			if !c.Sealed() {
				t.Error("catalog must be sealed")
			}
			for _, m := range c.List() {
				if m.Currency != tt.want {
					t.Errorf("%s currency = %s, want %s", m.ID, m.Currency, tt.want)
				}
			}
		})
	}

	if m, _ := Default().Get("msw"); m.Currency != types.CurrencyUSD {
		t.Errorf("DefaultIn changed the shared catalog currency to %s", m.Currency)
	}
}

func TestParseInCurrencyFallback(t *testing.T) {
	const body = `
material "msw" {
  name = "MSW"
  unit = "tons"
  rate = 95
}`
	tests := []struct {
		name     string
		src      string
		fallback types.Currency
		want     types.Currency
	}{
		{"fallback used", body, types.CurrencyCAD, types.CurrencyCAD},
		{"file currency wins", "currency = \"USD\"\n" + body, types.CurrencyCAD, types.CurrencyUSD},
		{"empty fallback is usd", body, "", types.CurrencyUSD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseIn([]byte(tt.src), "test.hcl", tt.fallback)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			m, _ := c.Get("msw")
			if m.Currency != tt.want {
				t.Errorf("currency = %s, want %s", m.Currency, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	c, err := LoadFile(filepath.Join("testdata", "materials.hcl"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Sealed() {
		t.Error("loaded catalog must be sealed")
	}

	msw, err := c.Lookup("msw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !msw.Rate.Equal(decimal.RequireFromString("95")) {
		t.Errorf("rate = %s, want 95", msw.Rate)
	}
	if !msw.OverageThreshold.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("overage threshold = %s, want 1.5", msw.OverageThreshold)
	}
	if msw.ContainerRate == nil || !msw.ContainerRate.Equal(decimal.RequireFromString("450")) {
		t.Errorf("container rate = %v, want 450", msw.ContainerRate)
	}
	if msw.MinFee == nil || !msw.MinFee.Equal(decimal.RequireFromString("75")) {
		t.Errorf("min fee = %v, want 75", msw.MinFee)
	}

	tires, err := c.Lookup("tires")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tires.Unit != types.UnitItems {
		t.Errorf("unit = %s, want items", tires.Unit)
	}
	if !tires.Rate.Equal(decimal.RequireFromString("12.10")) {
		t.Errorf("rate = %s, want 12.10", tires.Rate)
	}
	if tires.ContainerRate != nil {
		t.Errorf("tires must have no container rate, got %s", tires.ContainerRate)
	}
	if !tires.IncludedAllowance.IsZero() {
		t.Errorf("omitted allowance should be zero, got %s", tires.IncludedAllowance)
	}
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantType perrors.Type
	}{
		{
			name:     "syntax error",
			src:      `material "msw" {`,
			wantType: perrors.TypeParsing,
		},
		{
			name: "missing rate",
			src: `material "msw" {
  name = "MSW"
  unit = "tons"
}`,
			wantType: perrors.TypeParsing,
		},
		{
			name: "unknown unit",
			src: `material "msw" {
  name = "MSW"
  unit = "pounds"
  rate = 1
}`,
			wantType: perrors.TypeParsing,
		},
		{
			name: "negative fee",
			src: `material "msw" {
  name        = "MSW"
  unit        = "tons"
  rate        = 1
  overage_fee = -5
}`,
			wantType: perrors.TypeInvalidParameter,
		},
		{
			name: "duplicate material",
			src: `material "msw" {
  name = "MSW"
  unit = "tons"
  rate = 1
}
material "msw" {
  name = "MSW again"
  unit = "tons"
  rate = 2
}`,
			wantType: perrors.TypeParsing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "test.hcl")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !perrors.IsType(err, tt.wantType) {
				t.Errorf("expected %s, got %v", tt.wantType, err)
			}
		})
	}
}
