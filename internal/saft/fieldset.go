// Package saft parses SAF-T D406 accounting exports and validates them
// against the fixed consistency rule battery (Series I and Series II) before
// submission to the tax authority portal.
package saft

import (
	"time"

	dec "github.com/shopspring/decimal"
)

// Account is one entry of the declared chart of accounts
type Account struct {
	ID          string
	Description string
}

// LedgerLine is one debit/credit line of a general-ledger transaction.
// HasDebit/HasCredit record element presence, distinct from a declared
// zero amount.
type LedgerLine struct {
	RecordID  string
	AccountID string
	Debit     dec.Decimal
	Credit    dec.Decimal
	HasDebit  bool
	HasCredit bool
}

// LedgerEntry is one general-ledger transaction
type LedgerEntry struct {
	TransactionID string
	DateRaw       string
	Date          time.Time
	Lines         []LedgerLine
}

// FieldSet is the flat extraction the rule battery evaluates. Raw strings are
// kept next to parsed values so rules can tell "absent" from "unparseable"
// and quote the original text in messages.
type FieldSet struct {
	AuditFileVersion string
	AuditFileCountry string
	DateCreatedRaw   string
	DateCreated      time.Time

	CompanyName       string
	CompanyTaxID      string
	CompanyCity       string
	CompanyCounty     string
	CompanyCountry    string
	CompanyPostalCode string

	CurrencyCode   string
	PeriodStartRaw string
	PeriodEndRaw   string
	PeriodStart    time.Time
	PeriodEnd      time.Time

	Accounts []Account

	DeclaredEntryCount  int
	HasDeclaredCount    bool
	DeclaredTotalDebit  dec.Decimal
	DeclaredTotalCredit dec.Decimal

	Entries []LedgerEntry
}

// SumDebits totals every line debit across all entries
func (fs *FieldSet) SumDebits() dec.Decimal {
	total := dec.Zero
	for _, e := range fs.Entries {
		for _, l := range e.Lines {
			total = total.Add(l.Debit)
		}
	}
	return total
}

// SumCredits totals every line credit across all entries
func (fs *FieldSet) SumCredits() dec.Decimal {
	total := dec.Zero
	for _, e := range fs.Entries {
		for _, l := range e.Lines {
			total = total.Add(l.Credit)
		}
	}
	return total
}

// AccountIndex returns the chart of accounts keyed by account ID
func (fs *FieldSet) AccountIndex() map[string]Account {
	idx := make(map[string]Account, len(fs.Accounts))
	for _, a := range fs.Accounts {
		idx[a.ID] = a
	}
	return idx
}
