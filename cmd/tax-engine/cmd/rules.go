package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/facturino/tax-engine/internal/einvoice"
	"github.com/facturino/tax-engine/internal/report"
	"github.com/facturino/tax-engine/internal/saft"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the registered rule batteries",
	Long: `List every check in the SAF-T D406 battery (Series I and II) and the
e-invoice readiness gate, with their stable test numbers.

Test numbers are never renumbered or reused across versions; new checks are
appended with fresh numbers.`,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	saftRules := saft.Rules()
	gateChecks := einvoice.GateChecks()

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string][]report.CheckInfo{
			"saft": saftRules,
			"gate": gateChecks,
		})
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BATTERY\tSERIES\tNUMBER\tNAME")
	for _, r := range saftRules {
		fmt.Fprintf(tw, "saft\t%s\t%d\t%s\n", r.Series, r.Number, r.Name)
	}
	for _, c := range gateChecks {
		fmt.Fprintf(tw, "gate\t\t%d\t%s\n", c.Number, c.Name)
	}
	return tw.Flush()
}
