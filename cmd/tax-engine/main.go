package main

import (
	"fmt"
	"os"

	"github.com/facturino/tax-engine/cmd/tax-engine/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
