// Package cmd - materials commands
package cmd

import (
	"github.com/spf13/cobra"

	"hauler-pricing/core/output"
	"hauler-pricing/core/pricing"
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "Browse the material catalog",
}

var materialsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every material with its disposal and tipping rates",
	Args:  cobra.NoArgs,
	RunE:  runMaterialsList,
}

var materialsShowCmd = &cobra.Command{
	Use:   "show <material>",
	Short: "Show the pricing of one material",
	Args:  cobra.ExactArgs(1),
	RunE:  runMaterialsShow,
}

func init() {
	rootCmd.AddCommand(materialsCmd)
	materialsCmd.AddCommand(materialsListCmd)
	materialsCmd.AddCommand(materialsShowCmd)
}

func runMaterialsList(cmd *cobra.Command, args []string) error {
	cat, _, err := loadCatalog()
	if err != nil {
		return err
	}
	f, err := formatter()
	if err != nil {
		return err
	}
	return f.RenderMaterials(cmd.OutOrStdout(), output.Details(cat, tippingFactor()))
}

func runMaterialsShow(cmd *cobra.Command, args []string) error {
	cat, _, err := loadCatalog()
	if err != nil {
		return err
	}
	params, err := cat.Lookup(args[0])
	if err != nil {
		return err
	}
	f, err := formatter()
	if err != nil {
		return err
	}
	return f.RenderMaterials(cmd.OutOrStdout(), []output.MaterialDetail{{
		Disposal: params,
		Tipping:  pricing.DeriveTipping(params, tippingFactor()),
	}})
}
