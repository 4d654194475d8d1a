package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/facturino/tax-engine/internal/einvoice"
)

var (
	generateOutput string
	generateForce  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [document.json]",
	Short: "Generate a CIUS-RO e-invoice XML document",
	Long: `Generate a UBL 2.1 e-invoice (e-Factura, CIUS-RO) from a JSON document.

The pre-submission readiness gate runs first; any failed check blocks
generation unless --force is given. Generation itself never fails: with
--force an incomplete document renders with the missing elements omitted.

Examples:
  tax-engine generate invoice.json
  tax-engine generate invoice.json -o invoice.xml
  tax-engine generate invoice.json --force`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file (default: stdout)")
	generateCmd.Flags().BoolVar(&generateForce, "force", false, "Generate even when the readiness gate fails")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	rep := einvoice.CheckSubmissionReady(doc.Supplier, doc.Client, doc.Invoice, doc.Items)
	if rep.HasFailures() && !generateForce {
		if err := printReport(args[0], rep); err != nil {
			return err
		}
		return fmt.Errorf("document is not submission-ready (%d failed checks)", rep.Failed)
	}
	printVerbose("readiness gate: %d/%d passed\n", rep.Passed, rep.TotalTests)

	xmlBytes := einvoice.Generate(doc.Invoice, doc.Items, doc.Supplier, doc.Client)

	if generateOutput == "" {
		_, err := os.Stdout.Write(xmlBytes)
		return err
	}
	if err := os.WriteFile(generateOutput, xmlBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", generateOutput, err)
	}
	printVerbose("wrote %s (%d bytes)\n", generateOutput, len(xmlBytes))
	return nil
}
