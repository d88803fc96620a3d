// Command taxcalc compares the old and new Indian income tax regimes and
// resolves GST rates across the September 2025 rate change.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
