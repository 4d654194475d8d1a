package saft

import (
	"fmt"
	"strings"

	"github.com/facturino/tax-engine/internal/decimal"
	"github.com/facturino/tax-engine/internal/report"
)

// ledgerRules is Series II: the 11 general-ledger-entry consistency checks.
// Numbering continues from Series I.
var ledgerRules = []rule{
	{23, "ledger entries present", func(fs *FieldSet) report.Outcome {
		if len(fs.Entries) == 0 {
			return report.Warn("export contains no general ledger entries")
		}
		return report.Pass(fmt.Sprintf("%d entries", len(fs.Entries)))
	}},
	{24, "transaction IDs present", func(fs *FieldSet) report.Outcome {
		var missing []string
		for i, e := range fs.Entries {
			if strings.TrimSpace(e.TransactionID) == "" {
				missing = append(missing, fmt.Sprintf("entry %d", i+1))
			}
		}
		if len(missing) > 0 {
			return report.FailDetails("entries without a transaction ID",
				strings.Join(missing, ", "))
		}
		return report.Pass("all transaction IDs present")
	}},
	{25, "transaction IDs unique", func(fs *FieldSet) report.Outcome {
		seen := make(map[string]bool, len(fs.Entries))
		var dups []string
		for _, e := range fs.Entries {
			if e.TransactionID == "" {
				continue
			}
			if seen[e.TransactionID] {
				dups = append(dups, e.TransactionID)
			}
			seen[e.TransactionID] = true
		}
		if len(dups) > 0 {
			return report.FailDetails("duplicate transaction IDs",
				strings.Join(dups, ", "))
		}
		return report.Pass("transaction IDs unique")
	}},
	{26, "transaction dates valid", func(fs *FieldSet) report.Outcome {
		var bad []string
		for _, e := range fs.Entries {
			if e.Date.IsZero() {
				bad = append(bad, entryRef(e, fmt.Sprintf("date %q", e.DateRaw)))
			}
		}
		if len(bad) > 0 {
			return report.FailDetails("entries with missing or invalid dates",
				strings.Join(bad, "; "))
		}
		return report.Pass("all transaction dates valid")
	}},
	{27, "transaction dates within period", func(fs *FieldSet) report.Outcome {
		if fs.PeriodStart.IsZero() || fs.PeriodEnd.IsZero() {
			return report.Pass("declared period not comparable")
		}
		var outside []string
		for _, e := range fs.Entries {
			if e.Date.IsZero() {
				continue
			}
			if e.Date.Before(fs.PeriodStart) || e.Date.After(fs.PeriodEnd) {
				outside = append(outside, entryRef(e, e.DateRaw))
			}
		}
		if len(outside) > 0 {
			return report.FailDetails("entries dated outside the declared period",
				strings.Join(outside, "; "))
		}
		return report.Pass("all entries within period")
	}},
	{28, "entries have lines", func(fs *FieldSet) report.Outcome {
		var empty []string
		for _, e := range fs.Entries {
			if len(e.Lines) == 0 {
				empty = append(empty, entryRef(e, ""))
			}
		}
		if len(empty) > 0 {
			return report.FailDetails("entries without lines", strings.Join(empty, "; "))
		}
		return report.Pass("all entries have lines")
	}},
	{29, "lines reference an account", func(fs *FieldSet) report.Outcome {
		var missing []string
		for _, e := range fs.Entries {
			for _, l := range e.Lines {
				if strings.TrimSpace(l.AccountID) == "" {
					missing = append(missing, entryRef(e, fmt.Sprintf("record %s", l.RecordID)))
				}
			}
		}
		if len(missing) > 0 {
			return report.FailDetails("lines without an account reference",
				strings.Join(missing, "; "))
		}
		return report.Pass("all lines reference an account")
	}},
	{30, "account references resolve", func(fs *FieldSet) report.Outcome {
		idx := fs.AccountIndex()
		var unresolved []string
		for _, e := range fs.Entries {
			for _, l := range e.Lines {
				if l.AccountID == "" {
					continue
				}
				if _, ok := idx[l.AccountID]; !ok {
					unresolved = append(unresolved, entryRef(e, fmt.Sprintf("account %s", l.AccountID)))
				}
			}
		}
		if len(unresolved) > 0 {
			return report.FailDetails("account references not in the chart of accounts",
				strings.Join(unresolved, "; "))
		}
		return report.Pass("all account references resolve")
	}},
	{31, "entries balance", func(fs *FieldSet) report.Outcome {
		var unbalanced []string
		for _, e := range fs.Entries {
			debits := decimal.Zero
			credits := decimal.Zero
			for _, l := range e.Lines {
				debits = debits.Add(l.Debit)
				credits = credits.Add(l.Credit)
			}
			if !decimal.WithinTolerance(debits, credits) {
				unbalanced = append(unbalanced,
					entryRef(e, fmt.Sprintf("debit %s, credit %s", debits, credits)))
			}
		}
		if len(unbalanced) > 0 {
			return report.FailDetails("entries where debit does not equal credit",
				strings.Join(unbalanced, "; "))
		}
		return report.Pass("all entries balance")
	}},
	{32, "amounts non-negative", func(fs *FieldSet) report.Outcome {
		var negative []string
		for _, e := range fs.Entries {
			for _, l := range e.Lines {
				if l.Debit.IsNegative() || l.Credit.IsNegative() {
					negative = append(negative, entryRef(e, fmt.Sprintf("record %s", l.RecordID)))
				}
			}
		}
		if len(negative) > 0 {
			return report.FailDetails("lines with negative amounts",
				strings.Join(negative, "; "))
		}
		return report.Pass("no negative amounts")
	}},
	{33, "single-sided lines", func(fs *FieldSet) report.Outcome {
		var double []string
		for _, e := range fs.Entries {
			for _, l := range e.Lines {
				if l.HasDebit && l.HasCredit && !l.Debit.IsZero() && !l.Credit.IsZero() {
					double = append(double, entryRef(e, fmt.Sprintf("record %s", l.RecordID)))
				}
			}
		}
		if len(double) > 0 {
			return report.WarnDetails("lines carrying both a debit and a credit amount",
				strings.Join(double, "; "))
		}
		return report.Pass("all lines single-sided")
	}},
}

func entryRef(e LedgerEntry, extra string) string {
	id := e.TransactionID
	if id == "" {
		id = "(no ID)"
	}
	if extra == "" {
		return id
	}
	return fmt.Sprintf("%s: %s", id, extra)
}
