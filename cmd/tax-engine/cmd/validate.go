package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/facturino/tax-engine/internal/saft"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate SAF-T D406 exports",
	Long: `Validate one or more SAF-T D406 accounting exports against the fixed
consistency rule battery: Series I (structural and consistency checks) and
Series II (general-ledger-entry checks), 33 numbered tests in total.

Failures are advisory: the command reports them and maps them to the exit
code, it does not block anything by itself.

Examples:
  tax-engine validate export.xml
  tax-engine validate exports/ -f table
  tax-engine validate *.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectXMLFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no XML files found to validate")
	}

	anyFailed := false
	for _, file := range files {
		printVerbose("Validating: %s\n", file)

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		rep, err := saft.ValidateBytes(content)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		if err := printReport(file, rep); err != nil {
			return err
		}
		if rep.HasFailures() {
			anyFailed = true
		}
	}

	if anyFailed {
		return fmt.Errorf("validation failed for some files")
	}
	return nil
}
