package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/facturino/tax-engine/internal/einvoice"
)

var checkCmd = &cobra.Command{
	Use:   "check [document.json]",
	Short: "Run the e-invoice pre-submission readiness gate",
	Long: `Check whether a document is ready for e-invoice generation and submission.

Every unmet precondition is a hard failure: issuer identification, client
identification, invoice header fields, line item completeness and amount
consistency. A document with any failed check must not be submitted.

Examples:
  tax-engine check invoice.json
  tax-engine check invoice.json -f table`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	rep := einvoice.CheckSubmissionReady(doc.Supplier, doc.Client, doc.Invoice, doc.Items)
	if err := printReport(args[0], rep); err != nil {
		return err
	}

	if rep.HasFailures() {
		return fmt.Errorf("document is not submission-ready (%d failed checks)", rep.Failed)
	}
	return nil
}
