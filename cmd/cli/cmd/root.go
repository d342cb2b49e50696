// Package cmd provides the CLI commands for hauler-pricing.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hauler-pricing/core/catalog"
	"hauler-pricing/core/output"
	"hauler-pricing/core/pricing"
	"hauler-pricing/core/ticket"
	"hauler-pricing/internal/config"
	"hauler-pricing/internal/logging"
)

// Version is the CLI version
const Version = "0.1.0"

var (
	cfgFile      string
	catalogFile  string
	outputFormat string
	showFormula  bool
	noColor      bool
	verbose      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hauler-pricing",
	Short: "Price disposal and tipping fees for hauling work orders",
	Long: `hauler-pricing computes dump-site disposal fees and hauler tipping fees.

Materials are priced per unit (tons, items, gallons, yards) with an included
allowance and a flat overage fee, or per container at a flat rate.

Examples:
  hauler-pricing materials list
  hauler-pricing quote --material msw --quantity 2
  hauler-pricing quote --material msw --gross 6000 --tare 2000 --work-order WO-1001
  hauler-pricing tipping --material msw --quantity 2 --format json
  hauler-pricing catalog validate ./materials.hcl`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hauler-pricing.json)")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "HCL material catalog (default is the built-in catalog)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")
	rootCmd.PersistentFlags().BoolVar(&showFormula, "formula", false, "show the formula behind each charge")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// loadCatalog returns the catalog named by --catalog, the config file, or the built-in one
func loadCatalog() (*catalog.Catalog, string, error) {
	currency := config.Get().Pricing.Currency
	path := catalogFile
	if path == "" {
		path = config.Get().Pricing.CatalogPath
	}
	if path == "" {
		return catalog.DefaultIn(currency), "builtin", nil
	}
	cat, err := catalog.LoadFileIn(path, currency)
	if err != nil {
		return nil, path, err
	}
	return cat, path, nil
}

// newService builds a ticket service from the loaded configuration
func newService(overrides *pricing.OverrideStore) (*ticket.Service, error) {
	cat, _, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	p := config.Get().Pricing
	return ticket.NewService(cat, overrides, ticket.Options{
		EnforceMinFee: p.EnforceMinFee,
		TippingFactor: p.TippingFactor,
		PoundsPerTon:  p.PoundsPerTon,
	})
}

// formatter returns the formatter selected by --format or the config default
func formatter() (output.Formatter, error) {
	cfg := config.Get()
	name := outputFormat
	if name == "" {
		name = cfg.Output.DefaultFormat
	}
	registry := output.NewRegistry(output.Options{
		ShowFormula: showFormula || cfg.Output.ShowFormula,
		NoColor:     noColor,
	})
	return registry.Get(name)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "hauler-pricing version %s\n", Version)
	},
}
