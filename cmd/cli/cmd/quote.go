// Package cmd - quote command
package cmd

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"hauler-pricing/core/measure"
	"hauler-pricing/core/pricing"
	"hauler-pricing/core/ticket"
	"hauler-pricing/core/types"
	perrors "hauler-pricing/internal/errors"
)

var (
	quoteMaterial     string
	quoteQuantity     string
	quoteGross        string
	quoteTare         string
	quotePerContainer bool
	quoteWorkOrder    string

	overrideRate              string
	overrideIncludedAllowance string
	overrideOverageThreshold  string
	overrideOverageFee        string
	overrideContainerRate     string
	overrideMinFee            string
	overrideTippingRate       string
)

// quoteCmd prices one load as a disposal ticket
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a load's disposal and tipping fees",
	Long: `Price a single load against the material catalog.

Give the load either as a net quantity in the material's unit, or as gross and
tare scale weights in pounds. Weights are converted to tons for tonnage materials.

Override flags change pricing for the given work order only; the catalog is
never modified.

Examples:
  hauler-pricing quote --material msw --quantity 2
  hauler-pricing quote --material msw --gross 6000 --tare 2000
  hauler-pricing quote --material msw --per-container
  hauler-pricing quote --material msw --quantity 2 --work-order WO-7 --rate 100
  hauler-pricing quote --material msw --quantity 2 --work-order WO-7 --overage-threshold 3`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringVarP(&quoteMaterial, "material", "m", "", "material id [REQUIRED]")
	quoteCmd.Flags().StringVarP(&quoteQuantity, "quantity", "q", "", "net quantity in the material's unit")
	quoteCmd.Flags().StringVar(&quoteGross, "gross", "", "gross scale weight in pounds")
	quoteCmd.Flags().StringVar(&quoteTare, "tare", "", "tare scale weight in pounds")
	quoteCmd.Flags().BoolVar(&quotePerContainer, "per-container", false, "charge the flat container rate")
	quoteCmd.Flags().StringVarP(&quoteWorkOrder, "work-order", "w", "", "work order the load belongs to")

	quoteCmd.Flags().StringVar(&overrideRate, "rate", "", "override the per-unit rate for this work order")
	quoteCmd.Flags().StringVar(&overrideIncludedAllowance, "included-allowance", "", "override the included allowance for this work order")
	quoteCmd.Flags().StringVar(&overrideOverageThreshold, "overage-threshold", "", "override the overage threshold for this work order")
	quoteCmd.Flags().StringVar(&overrideOverageFee, "overage-fee", "", "override the overage fee for this work order")
	quoteCmd.Flags().StringVar(&overrideContainerRate, "container-rate", "", "override the container rate for this work order")
	quoteCmd.Flags().StringVar(&overrideMinFee, "min-fee", "", "override the minimum fee for this work order")
	quoteCmd.Flags().StringVar(&overrideTippingRate, "tipping-rate", "", "override the tipping rate for this work order")

	_ = quoteCmd.MarkFlagRequired("material")
	quoteCmd.MarkFlagsMutuallyExclusive("quantity", "gross")
	quoteCmd.MarkFlagsMutuallyExclusive("quantity", "tare")
}

func runQuote(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	req := ticket.Request{
		WorkOrder: quoteWorkOrder,
		Material:  quoteMaterial,
		Mode:      types.ModeFor(!quotePerContainer),
	}

	var err error
	if req.Quantity, err = optionalFlag(quoteQuantity, measure.ParseQuantity); err != nil {
		return err
	}
	if req.GrossWeight, err = optionalFlag(quoteGross, measure.ParseWeight); err != nil {
		return err
	}
	if req.TareWeight, err = optionalFlag(quoteTare, measure.ParseWeight); err != nil {
		return err
	}

	override, err := overrideFromFlags()
	if err != nil {
		return err
	}

	overrides := pricing.NewOverrideStore()
	if !override.IsEmpty() {
		if req.WorkOrder == "" {
			return perrors.InvalidParameter("work-order", "pricing overrides need a work order")
		}
		if err := overrides.Set(req.WorkOrder, req.Material, override); err != nil {
			return err
		}
	}

	svc, err := newService(overrides)
	if err != nil {
		return err
	}
	t, err := svc.Price(ctx, req)
	if err != nil {
		return err
	}

	f, err := formatter()
	if err != nil {
		return err
	}
	return f.RenderTicket(cmd.OutOrStdout(), t)
}

func overrideFromFlags() (pricing.Override, error) {
	var (
		o   pricing.Override
		err error
	)
	if o.Rate, err = optionalFlag(overrideRate, measure.ParseQuantity); err != nil {
		return o, err
	}
	if o.IncludedAllowance, err = optionalFlag(overrideIncludedAllowance, measure.ParseQuantity); err != nil {
		return o, err
	}
	if o.OverageThreshold, err = optionalFlag(overrideOverageThreshold, measure.ParseQuantity); err != nil {
		return o, err
	}
	if o.OverageFee, err = optionalFlag(overrideOverageFee, measure.ParseQuantity); err != nil {
		return o, err
	}
	if o.ContainerRate, err = optionalFlag(overrideContainerRate, measure.ParseQuantity); err != nil {
		return o, err
	}
	if o.MinFee, err = optionalFlag(overrideMinFee, measure.ParseQuantity); err != nil {
		return o, err
	}
	if o.TippingRate, err = optionalFlag(overrideTippingRate, measure.ParseQuantity); err != nil {
		return o, err
	}
	return o, nil
}

// optionalFlag parses a decimal flag, returning nil when it was not given
func optionalFlag(value string, parse func(string) (decimal.Decimal, error)) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := parse(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
