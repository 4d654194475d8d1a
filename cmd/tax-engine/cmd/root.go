package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/facturino/tax-engine/internal/logger"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "tax-engine",
	Short: "Generate and validate Romanian tax compliance documents",
	Long: `tax-engine renders CIUS-RO e-invoices (e-Factura) and validates SAF-T D406
accounting exports against the official consistency rule battery.

Examples:
  # Check whether a document is ready for e-invoice submission
  tax-engine check invoice.json

  # Generate the UBL XML (the readiness gate runs first)
  tax-engine generate invoice.json -o invoice.xml

  # Validate SAF-T exports against the 33-rule D406 battery
  tax-engine validate export.xml

  # List the registered rule batteries
  tax-engine rules`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg := logger.DefaultConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = level
	}
	if verbose {
		cfg.Level = "debug"
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	if err := logger.Setup(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "logger setup: %v\n", err)
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
