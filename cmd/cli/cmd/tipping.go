// Package cmd - tipping command
package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"hauler-pricing/core/measure"
	"hauler-pricing/core/money"
	"hauler-pricing/core/output"
	"hauler-pricing/core/pricing"
	"hauler-pricing/core/types"
	"hauler-pricing/internal/config"
	perrors "hauler-pricing/internal/errors"
)

var (
	tippingMaterial     string
	tippingQuantity     string
	tippingPerContainer bool
)

// tippingCmd prices only the hauler-facing tipping fee
var tippingCmd = &cobra.Command{
	Use:   "tipping",
	Short: "Compute the hauler tipping fee for a material",
	Long: `Compute the tipping fee a hauler pays at the dump site.

The tipping rate is the disposal rate scaled by pricing.tipping_factor
(0.85 by default). There is no included allowance and no overage fee.

Examples:
  hauler-pricing tipping --material msw --quantity 2
  hauler-pricing tipping --material msw --per-container`,
	Args: cobra.NoArgs,
	RunE: runTipping,
}

func init() {
	rootCmd.AddCommand(tippingCmd)

	tippingCmd.Flags().StringVarP(&tippingMaterial, "material", "m", "", "material id [REQUIRED]")
	tippingCmd.Flags().StringVarP(&tippingQuantity, "quantity", "q", "", "quantity in the material's unit, required unless --per-container")
	tippingCmd.Flags().BoolVar(&tippingPerContainer, "per-container", false, "charge the flat container rate")

	_ = tippingCmd.MarkFlagRequired("material")
}

func runTipping(cmd *cobra.Command, args []string) error {
	quantity := decimal.Zero
	switch {
	case tippingQuantity != "":
		q, err := measure.ParseQuantity(tippingQuantity)
		if err != nil {
			return err
		}
		quantity = q
	case !tippingPerContainer:
		return perrors.InvalidQuantity("per-unit pricing needs a quantity")
	}

	cat, _, err := loadCatalog()
	if err != nil {
		return err
	}
	params, err := cat.Lookup(tippingMaterial)
	if err != nil {
		return err
	}

	tipping := pricing.DeriveTipping(params, tippingFactor())
	mode := types.ModeFor(!tippingPerContainer)
	fee, err := pricing.ComputeTippingCharge(tipping.Rate, quantity, mode, tipping.ContainerRate)
	if err != nil {
		return err
	}

	f, err := formatter()
	if err != nil {
		return err
	}
	return f.RenderTipping(cmd.OutOrStdout(), &output.TippingQuote{
		Material:      params.ID,
		Name:          params.Name,
		Unit:          params.Unit,
		Mode:          mode,
		Quantity:      quantity,
		Rate:          tipping.Rate,
		ContainerRate: tipping.ContainerRate,
		Fee:           money.New(fee, params.Currency),
	})
}

// tippingFactor is the configured disposal-to-tipping scale
func tippingFactor() decimal.Decimal {
	return config.Get().Pricing.TippingFactor
}
