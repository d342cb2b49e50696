// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"hauler-pricing/core/types"
	perrors "hauler-pricing/internal/errors"
	"hauler-pricing/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing contains pricing configuration
	Pricing PricingConfig `json:"pricing"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// Currency is the currency charges are reported in
	Currency types.Currency `json:"currency"`

	// TippingFactor scales the disposal rate into the tipping rate
	TippingFactor decimal.Decimal `json:"tipping_factor"`

	// PoundsPerTon converts scale weights into tons
	PoundsPerTon decimal.Decimal `json:"pounds_per_ton"`

	// EnforceMinFee floors disposal charges at each material's minimum fee
	EnforceMinFee bool `json:"enforce_min_fee"`

	// CatalogPath is an HCL material catalog; empty uses the built-in catalog
	CatalogPath string `json:"catalog_path,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format"`

	// ShowFormula prints the formula behind each charge
	ShowFormula bool `json:"show_formula"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			Currency:      types.CurrencyUSD,
			TippingFactor: decimal.RequireFromString("0.85"),
			PoundsPerTon:  decimal.NewFromInt(2000),
			EnforceMinFee: false,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowFormula:   false,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.hauler-pricing.json
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".hauler-pricing.json"
	}
	return filepath.Join(homeDir, ".hauler-pricing.json")
}

// Load loads configuration from a file; a missing file yields defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, perrors.Wrap(perrors.TypeConfig, "invalid config file "+path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the pricing settings
func (c *Config) Validate() error {
	if !c.Pricing.TippingFactor.IsPositive() || c.Pricing.TippingFactor.GreaterThan(decimal.NewFromInt(1)) {
		return perrors.Config("pricing.tipping_factor must be in (0, 1], got " + c.Pricing.TippingFactor.String())
	}
	if !c.Pricing.PoundsPerTon.IsPositive() {
		return perrors.Config("pricing.pounds_per_ton must be positive, got " + c.Pricing.PoundsPerTon.String())
	}
	if c.Pricing.Currency == "" {
		return perrors.Config("pricing.currency is required")
	}
	switch c.Output.DefaultFormat {
	case "cli", "json":
	default:
		return perrors.Config("output.default_format must be cli or json, got " + c.Output.DefaultFormat)
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
