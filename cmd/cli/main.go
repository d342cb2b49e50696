// Package main is the entry point for hauler-pricing CLI.
package main

import (
	"os"

	"hauler-pricing/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
