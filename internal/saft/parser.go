package saft

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"time"

	"github.com/facturino/tax-engine/internal/decimal"
	"github.com/facturino/tax-engine/internal/model"
)

// SAF-T XML structures. Matching is by local name so the declared namespace
// (mfp:anaf:dgti:d406) does not matter. Numeric fields stay strings here:
// the extractor never fails on bad numeric content, the rule battery flags
// it instead.
type auditFile struct {
	XMLName xml.Name    `xml:"AuditFile"`
	Header  auditHeader `xml:"Header"`
	Master  masterFiles `xml:"MasterFiles"`
	Entries glEntries   `xml:"GeneralLedgerEntries"`
}

type auditHeader struct {
	AuditFileVersion     string       `xml:"AuditFileVersion"`
	AuditFileCountry     string       `xml:"AuditFileCountry"`
	AuditFileDateCreated string       `xml:"AuditFileDateCreated"`
	Company              auditCompany `xml:"Company"`
	DefaultCurrencyCode  string       `xml:"DefaultCurrencyCode"`
	Selection            selection    `xml:"SelectionCriteria"`
}

type auditCompany struct {
	RegistrationNumber string       `xml:"RegistrationNumber"`
	Name               string       `xml:"Name"`
	Address            auditAddress `xml:"Address"`
}

type auditAddress struct {
	City       string `xml:"City"`
	Region     string `xml:"Region"`
	Country    string `xml:"Country"`
	PostalCode string `xml:"PostalCode"`
}

type selection struct {
	SelectionStartDate string `xml:"SelectionStartDate"`
	SelectionEndDate   string `xml:"SelectionEndDate"`
}

type masterFiles struct {
	Accounts []glAccount `xml:"GeneralLedgerAccounts>Account"`
}

type glAccount struct {
	AccountID          string `xml:"AccountID"`
	AccountDescription string `xml:"AccountDescription"`
}

type glEntries struct {
	NumberOfEntries string      `xml:"NumberOfEntries"`
	TotalDebit      string      `xml:"TotalDebit"`
	TotalCredit     string      `xml:"TotalCredit"`
	Journals        []glJournal `xml:"Journal"`
}

type glJournal struct {
	Transactions []glTransaction `xml:"Transaction"`
}

type glTransaction struct {
	TransactionID   string   `xml:"TransactionID"`
	TransactionDate string   `xml:"TransactionDate"`
	Lines           []glLine `xml:"Line"`
}

type glLine struct {
	RecordID  string    `xml:"RecordID"`
	AccountID string    `xml:"AccountID"`
	Debit     *glAmount `xml:"DebitAmount"`
	Credit    *glAmount `xml:"CreditAmount"`
}

type glAmount struct {
	Amount string `xml:"Amount"`
}

// Parse extracts the rule battery's field set from a SAF-T D406 document.
// It is a targeted extractor, not a schema validator: structurally unreadable
// input (empty, non-XML, unclosed tags, wrong root element) yields a
// *model.ParseError; everything semantic is left to the rules.
func Parse(content []byte) (*FieldSet, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, model.NewParseError(model.DocumentSAFT, "content", "empty input", nil)
	}

	var doc auditFile
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, model.NewParseError(model.DocumentSAFT, "xml", "malformed XML or not a SAF-T audit file", err)
	}

	fs := &FieldSet{
		AuditFileVersion:  doc.Header.AuditFileVersion,
		AuditFileCountry:  doc.Header.AuditFileCountry,
		DateCreatedRaw:    doc.Header.AuditFileDateCreated,
		CompanyName:       doc.Header.Company.Name,
		CompanyTaxID:      doc.Header.Company.RegistrationNumber,
		CompanyCity:       doc.Header.Company.Address.City,
		CompanyCounty:     doc.Header.Company.Address.Region,
		CompanyCountry:    doc.Header.Company.Address.Country,
		CompanyPostalCode: doc.Header.Company.Address.PostalCode,
		CurrencyCode:      doc.Header.DefaultCurrencyCode,
		PeriodStartRaw:    doc.Header.Selection.SelectionStartDate,
		PeriodEndRaw:      doc.Header.Selection.SelectionEndDate,

		DeclaredTotalDebit:  decimal.FromStringOrZero(doc.Entries.TotalDebit),
		DeclaredTotalCredit: decimal.FromStringOrZero(doc.Entries.TotalCredit),
	}

	if d, err := parseDate(fs.DateCreatedRaw); err == nil {
		fs.DateCreated = d
	}
	if d, err := parseDate(fs.PeriodStartRaw); err == nil {
		fs.PeriodStart = d
	}
	if d, err := parseDate(fs.PeriodEndRaw); err == nil {
		fs.PeriodEnd = d
	}

	if doc.Entries.NumberOfEntries != "" {
		if n, err := strconv.Atoi(doc.Entries.NumberOfEntries); err == nil {
			fs.DeclaredEntryCount = n
			fs.HasDeclaredCount = true
		}
	}

	for _, a := range doc.Master.Accounts {
		fs.Accounts = append(fs.Accounts, Account{
			ID:          a.AccountID,
			Description: a.AccountDescription,
		})
	}

	for _, journal := range doc.Entries.Journals {
		for _, tx := range journal.Transactions {
			entry := LedgerEntry{
				TransactionID: tx.TransactionID,
				DateRaw:       tx.TransactionDate,
			}
			if d, err := parseDate(tx.TransactionDate); err == nil {
				entry.Date = d
			}
			for _, line := range tx.Lines {
				ll := LedgerLine{
					RecordID:  line.RecordID,
					AccountID: line.AccountID,
				}
				if line.Debit != nil {
					ll.HasDebit = true
					ll.Debit = decimal.FromStringOrZero(line.Debit.Amount)
				}
				if line.Credit != nil {
					ll.HasCredit = true
					ll.Credit = decimal.FromStringOrZero(line.Credit.Amount)
				}
				entry.Lines = append(entry.Lines, ll)
			}
			fs.Entries = append(fs.Entries, entry)
		}
	}

	return fs, nil
}

var dateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, format := range dateFormats {
		t, err := time.Parse(format, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
