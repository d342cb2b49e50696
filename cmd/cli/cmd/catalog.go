// Package cmd - catalog commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hauler-pricing/core/catalog"
	"hauler-pricing/core/diff"
	"hauler-pricing/core/output"
	"hauler-pricing/internal/config"
	"hauler-pricing/internal/logging"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect material catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an HCL material catalog",
	Long: `Parse and validate an HCL material catalog.

Without a file the active catalog is validated: --catalog, then
pricing.catalog_path from the config file, then the built-in catalog.

A catalog file looks like:

  currency = "USD"

  material "msw" {
    name               = "Municipal Solid Waste"
    unit               = "tons"
    rate               = 95.00
    included_allowance = 1
    overage_threshold  = 1.5
    overage_fee        = 35.00
    container_rate     = 450.00
  }`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalogValidate,
}

var catalogDiffCmd = &cobra.Command{
	Use:   "diff <before> <after>",
	Short: "Show pricing changes between two catalogs",
	Long: `Compare two material catalogs field by field.

Either side may be "builtin" for the shipped catalog.

Examples:
  hauler-pricing catalog diff builtin ./materials.hcl
  hauler-pricing catalog diff ./2025.hcl ./2026.hcl --format json`,
	Args: cobra.ExactArgs(2),
	RunE: runCatalogDiff,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogDiffCmd)
}

func openCatalog(source string) (*catalog.Catalog, error) {
	currency := config.Get().Pricing.Currency
	if source == "builtin" {
		return catalog.DefaultIn(currency), nil
	}
	return catalog.LoadFileIn(source, currency)
}

func runCatalogDiff(cmd *cobra.Command, args []string) error {
	before, err := openCatalog(args[0])
	if err != nil {
		return err
	}
	after, err := openCatalog(args[1])
	if err != nil {
		return err
	}

	result := diff.NewDiffer().Diff(before, after)
	logging.Debug("catalogs compared",
		zap.String("before", result.BeforeHash),
		zap.String("after", result.AfterHash),
		zap.Int("changed", len(result.Changed)),
	)

	f, err := formatter()
	if err != nil {
		return err
	}
	return f.RenderCatalogDiff(cmd.OutOrStdout(), result)
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	var (
		cat    *catalog.Catalog
		source string
		err    error
	)
	if len(args) > 0 {
		source = args[0]
		cat, err = openCatalog(source)
	} else {
		cat, source, err = loadCatalog()
	}

	report := &output.CatalogReport{Source: source}
	if err != nil {
		report.Errors = []error{err}
	} else {
		report.Errors = cat.Validate(catalog.DefaultValidationRules())
		report.Hash = cat.Hash()
		report.Stats = cat.Stats()
	}

	f, ferr := formatter()
	if ferr != nil {
		return ferr
	}
	if err := f.RenderCatalogReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	if !report.Valid() {
		logging.Warn("catalog validation failed", zap.String("catalog", source), zap.Int("errors", len(report.Errors)))
		return fmt.Errorf("catalog %s is invalid", source)
	}
	return nil
}
