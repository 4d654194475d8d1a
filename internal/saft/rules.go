package saft

import (
	"fmt"
	"strings"

	"github.com/facturino/tax-engine/internal/decimal"
	"github.com/facturino/tax-engine/internal/model"
	"github.com/facturino/tax-engine/internal/report"
)

// structuralRules is Series I: the 22 structural and consistency checks over
// the header, the company identification, the declared period, the chart of
// accounts and the declared totals. Test numbers are stable and never reused.
var structuralRules = []rule{
	{1, "audit file version declared", func(fs *FieldSet) report.Outcome {
		if strings.TrimSpace(fs.AuditFileVersion) == "" {
			return report.Fail("AuditFileVersion is missing")
		}
		return report.Pass(fmt.Sprintf("version %s", fs.AuditFileVersion))
	}},
	{2, "audit file country", func(fs *FieldSet) report.Outcome {
		if fs.AuditFileCountry != "RO" {
			return report.FailDetails("AuditFileCountry must be RO",
				fmt.Sprintf("declared: %q", fs.AuditFileCountry))
		}
		return report.Pass("country RO")
	}},
	{3, "file creation date", func(fs *FieldSet) report.Outcome {
		if strings.TrimSpace(fs.DateCreatedRaw) == "" {
			return report.Fail("AuditFileDateCreated is missing")
		}
		if fs.DateCreated.IsZero() {
			return report.FailDetails("AuditFileDateCreated is not a valid date",
				fmt.Sprintf("declared: %q", fs.DateCreatedRaw))
		}
		return report.Pass("creation date valid")
	}},
	{4, "company name", func(fs *FieldSet) report.Outcome {
		if strings.TrimSpace(fs.CompanyName) == "" {
			return report.Fail("company name is missing")
		}
		return report.Pass("company name present")
	}},
	{5, "company tax ID present", func(fs *FieldSet) report.Outcome {
		if strings.TrimSpace(fs.CompanyTaxID) == "" {
			return report.Fail("company tax ID (CUI) is missing")
		}
		return report.Pass("company tax ID present")
	}},
	{6, "company tax ID format", func(fs *FieldSet) report.Outcome {
		if strings.TrimSpace(fs.CompanyTaxID) == "" {
			// presence is test 5; format cannot be judged on absent input
			return report.Pass("no tax ID to check")
		}
		if !model.ValidTaxID(fs.CompanyTaxID) {
			return report.FailDetails("company tax ID is not a well-formed CUI",
				fmt.Sprintf("declared: %q", fs.CompanyTaxID))
		}
		return report.Pass("company tax ID well-formed")
	}},
	{7, "company city", func(fs *FieldSet) report.Outcome {
		if strings.TrimSpace(fs.CompanyCity) == "" {
			return report.Fail("company city is missing")
		}
		return report.Pass("company city present")
	}},
	{8, "company county", func(fs *FieldSet) report.Outcome {
		if strings.TrimSpace(fs.CompanyCounty) == "" {
			return report.Fail("company county (Region) is missing")
		}
		return report.Pass("company county present")
	}},
	{9, "company country", func(fs *FieldSet) report.Outcome {
		if strings.TrimSpace(fs.CompanyCountry) == "" {
			return report.Fail("company country is missing")
		}
		return report.Pass("company country present")
	}},
	{10, "company postal code", func(fs *FieldSet) report.Outcome {
		if strings.TrimSpace(fs.CompanyPostalCode) == "" {
			return report.Warn("company postal code is empty")
		}
		return report.Pass("company postal code present")
	}},
	{11, "currency code", func(fs *FieldSet) report.Outcome {
		if !model.Currency(fs.CurrencyCode).Valid() {
			return report.FailDetails("DefaultCurrencyCode is not an accepted currency",
				fmt.Sprintf("declared: %q, accepted: RON, EUR, USD", fs.CurrencyCode))
		}
		return report.Pass(fmt.Sprintf("currency %s", fs.CurrencyCode))
	}},
	{12, "period start date", func(fs *FieldSet) report.Outcome {
		if strings.TrimSpace(fs.PeriodStartRaw) == "" {
			return report.Fail("SelectionStartDate is missing")
		}
		if fs.PeriodStart.IsZero() {
			return report.FailDetails("SelectionStartDate is not a valid date",
				fmt.Sprintf("declared: %q", fs.PeriodStartRaw))
		}
		return report.Pass("period start valid")
	}},
	{13, "period end date", func(fs *FieldSet) report.Outcome {
		if strings.TrimSpace(fs.PeriodEndRaw) == "" {
			return report.Fail("SelectionEndDate is missing")
		}
		if fs.PeriodEnd.IsZero() {
			return report.FailDetails("SelectionEndDate is not a valid date",
				fmt.Sprintf("declared: %q", fs.PeriodEndRaw))
		}
		return report.Pass("period end valid")
	}},
	{14, "period ordering", func(fs *FieldSet) report.Outcome {
		if fs.PeriodStart.IsZero() || fs.PeriodEnd.IsZero() {
			return report.Pass("period boundaries not comparable")
		}
		if fs.PeriodEnd.Before(fs.PeriodStart) {
			return report.FailDetails("declared period ends before it starts",
				fmt.Sprintf("start %s, end %s", fs.PeriodStartRaw, fs.PeriodEndRaw))
		}
		return report.Pass("period ordered")
	}},
	{15, "creation date after period end", func(fs *FieldSet) report.Outcome {
		if fs.DateCreated.IsZero() || fs.PeriodEnd.IsZero() {
			return report.Pass("dates not comparable")
		}
		if fs.DateCreated.Before(fs.PeriodEnd) {
			return report.WarnDetails("file was created before the declared period ended",
				fmt.Sprintf("created %s, period end %s", fs.DateCreatedRaw, fs.PeriodEndRaw))
		}
		return report.Pass("creation date follows period end")
	}},
	{16, "chart of accounts present", func(fs *FieldSet) report.Outcome {
		if len(fs.Accounts) == 0 {
			return report.Fail("no general ledger accounts declared")
		}
		return report.Pass(fmt.Sprintf("%d account(s) declared", len(fs.Accounts)))
	}},
	{17, "account IDs unique", func(fs *FieldSet) report.Outcome {
		seen := make(map[string]bool, len(fs.Accounts))
		var dups []string
		for _, a := range fs.Accounts {
			if seen[a.ID] {
				dups = append(dups, a.ID)
			}
			seen[a.ID] = true
		}
		if len(dups) > 0 {
			return report.FailDetails("duplicate account IDs in chart of accounts",
				strings.Join(dups, ", "))
		}
		return report.Pass("account IDs unique")
	}},
	{18, "account descriptions", func(fs *FieldSet) report.Outcome {
		var missing []string
		for _, a := range fs.Accounts {
			if strings.TrimSpace(a.Description) == "" {
				missing = append(missing, a.ID)
			}
		}
		if len(missing) > 0 {
			return report.WarnDetails("accounts without a description",
				strings.Join(missing, ", "))
		}
		return report.Pass("all accounts described")
	}},
	{19, "declared entry count", func(fs *FieldSet) report.Outcome {
		if !fs.HasDeclaredCount {
			return report.Fail("NumberOfEntries is missing or not a number")
		}
		if fs.DeclaredEntryCount != len(fs.Entries) {
			return report.FailDetails("NumberOfEntries does not match the transactions present",
				fmt.Sprintf("declared %d, found %d", fs.DeclaredEntryCount, len(fs.Entries)))
		}
		return report.Pass(fmt.Sprintf("%d entries", len(fs.Entries)))
	}},
	{20, "declared total debit", func(fs *FieldSet) report.Outcome {
		sum := fs.SumDebits()
		if !decimal.WithinTolerance(fs.DeclaredTotalDebit, sum) {
			return report.FailDetails("TotalDebit does not match the sum of line debits",
				fmt.Sprintf("declared %s, computed %s", fs.DeclaredTotalDebit, sum))
		}
		return report.Pass("total debit consistent")
	}},
	{21, "declared total credit", func(fs *FieldSet) report.Outcome {
		sum := fs.SumCredits()
		if !decimal.WithinTolerance(fs.DeclaredTotalCredit, sum) {
			return report.FailDetails("TotalCredit does not match the sum of line credits",
				fmt.Sprintf("declared %s, computed %s", fs.DeclaredTotalCredit, sum))
		}
		return report.Pass("total credit consistent")
	}},
	{22, "debit equals credit", func(fs *FieldSet) report.Outcome {
		debits := fs.SumDebits()
		credits := fs.SumCredits()
		if !decimal.WithinTolerance(debits, credits) {
			return report.FailDetails("ledger does not balance",
				fmt.Sprintf("debits %s, credits %s", debits, credits))
		}
		return report.Pass("ledger balanced")
	}},
}
