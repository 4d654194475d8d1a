package saft_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturino/tax-engine/internal/report"
	"github.com/facturino/tax-engine/internal/saft"
)

func resultByNumber(t *testing.T, rep report.ValidationReport, number int) report.TestResult {
	t.Helper()
	for _, r := range rep.Results {
		if r.TestNumber == number {
			return r
		}
	}
	t.Fatalf("no result with test number %d", number)
	return report.TestResult{}
}

func validateVariant(t *testing.T, old, new string) report.ValidationReport {
	t.Helper()
	content := strings.Replace(validAuditFile, old, new, 1)
	require.NotEqual(t, validAuditFile, content, "replacement %q did not apply", old)
	rep, err := saft.ValidateBytes([]byte(content))
	require.NoError(t, err)
	return rep
}

func TestValidate_ValidFile_AllPass(t *testing.T) {
	rep, err := saft.ValidateBytes([]byte(validAuditFile))
	require.NoError(t, err)

	assert.Equal(t, saft.TestCount, rep.TotalTests)
	assert.Equal(t, saft.TestCount, rep.Passed)
	assert.Equal(t, 0, rep.Failed)
	assert.Equal(t, 0, rep.Warnings)
}

// Every run produces exactly 33 results numbered 1..33, in order, no matter
// how broken the input is.
func TestValidate_RuleCountInvariant(t *testing.T) {
	inputs := []string{
		validAuditFile,
		"<AuditFile></AuditFile>",
		"<AuditFile><Header><AuditFileCountry>DE</AuditFileCountry></Header></AuditFile>",
	}

	for _, input := range inputs {
		rep, err := saft.ValidateBytes([]byte(input))
		require.NoError(t, err)

		assert.Equal(t, saft.TestCount, rep.TotalTests)
		assert.Equal(t, rep.TotalTests, rep.Passed+rep.Failed+rep.Warnings)
		require.Len(t, rep.Results, saft.TestCount)
		for i, r := range rep.Results {
			assert.Equal(t, i+1, r.TestNumber, "results must be numbered 1..33 without gaps")
		}
	}
}

func TestValidate_WrongCountry(t *testing.T) {
	rep := validateVariant(t, "<AuditFileCountry>RO</AuditFileCountry>", "<AuditFileCountry>DE</AuditFileCountry>")

	r := resultByNumber(t, rep, 2)
	assert.Equal(t, report.StatusFail, r.Status)
	assert.Contains(t, r.Details, "DE")
	assert.Equal(t, 1, rep.Failed, "unrelated rules must be unaffected")
}

func TestValidate_MissingTaxID(t *testing.T) {
	rep := validateVariant(t, "<RegistrationNumber>RO123</RegistrationNumber>", "<RegistrationNumber></RegistrationNumber>")

	assert.Equal(t, report.StatusFail, resultByNumber(t, rep, 5).Status)
	// format check passes when there is nothing to judge
	assert.Equal(t, report.StatusPass, resultByNumber(t, rep, 6).Status)
	assert.Equal(t, 1, rep.Failed)
}

func TestValidate_MalformedTaxID(t *testing.T) {
	rep := validateVariant(t, "<RegistrationNumber>RO123</RegistrationNumber>", "<RegistrationNumber>ROXYZ</RegistrationNumber>")

	assert.Equal(t, report.StatusPass, resultByNumber(t, rep, 5).Status)
	assert.Equal(t, report.StatusFail, resultByNumber(t, rep, 6).Status)
}

func TestValidate_MissingPostalCode_IsWarning(t *testing.T) {
	rep := validateVariant(t, "<PostalCode>010101</PostalCode>", "<PostalCode></PostalCode>")

	assert.Equal(t, report.StatusWarning, resultByNumber(t, rep, 10).Status)
	assert.Equal(t, 0, rep.Failed)
	assert.Equal(t, 1, rep.Warnings)
}

func TestValidate_UnknownCurrency(t *testing.T) {
	rep := validateVariant(t, "<DefaultCurrencyCode>RON</DefaultCurrencyCode>", "<DefaultCurrencyCode>GBP</DefaultCurrencyCode>")
	assert.Equal(t, report.StatusFail, resultByNumber(t, rep, 11).Status)
}

func TestValidate_PeriodReversed(t *testing.T) {
	rep := validateVariant(t, "<SelectionEndDate>2025-01-31</SelectionEndDate>", "<SelectionEndDate>2024-12-31</SelectionEndDate>")

	assert.Equal(t, report.StatusFail, resultByNumber(t, rep, 14).Status)
	// TX-1 (2025-01-15) is now outside the declared period as well
	assert.Equal(t, report.StatusFail, resultByNumber(t, rep, 27).Status)
}

func TestValidate_CreatedBeforePeriodEnd_IsWarning(t *testing.T) {
	rep := validateVariant(t, "<AuditFileDateCreated>2025-02-05</AuditFileDateCreated>", "<AuditFileDateCreated>2025-01-20</AuditFileDateCreated>")

	assert.Equal(t, report.StatusWarning, resultByNumber(t, rep, 15).Status)
	assert.Equal(t, 0, rep.Failed)
}

func TestValidate_DuplicateAccountIDs(t *testing.T) {
	rep := validateVariant(t, "<AccountID>704</AccountID>\n        <AccountDescription>Venituri din servicii</AccountDescription>",
		"<AccountID>512</AccountID>\n        <AccountDescription>Venituri din servicii</AccountDescription>")

	r := resultByNumber(t, rep, 17)
	assert.Equal(t, report.StatusFail, r.Status)
	assert.Contains(t, r.Details, "512")
}

func TestValidate_MissingAccountDescription_IsWarning(t *testing.T) {
	rep := validateVariant(t, "<AccountDescription>Conturi la banci</AccountDescription>", "<AccountDescription></AccountDescription>")

	r := resultByNumber(t, rep, 18)
	assert.Equal(t, report.StatusWarning, r.Status)
	assert.Contains(t, r.Details, "512")
}

func TestValidate_EntryCountMismatch(t *testing.T) {
	rep := validateVariant(t, "<NumberOfEntries>1</NumberOfEntries>", "<NumberOfEntries>5</NumberOfEntries>")

	r := resultByNumber(t, rep, 19)
	assert.Equal(t, report.StatusFail, r.Status)
	assert.Contains(t, r.Details, "declared 5, found 1")
}

func TestValidate_TotalDebitMismatch(t *testing.T) {
	rep := validateVariant(t, "<TotalDebit>119.00</TotalDebit>", "<TotalDebit>200.00</TotalDebit>")
	assert.Equal(t, report.StatusFail, resultByNumber(t, rep, 20).Status)
}

func TestValidate_TotalDebitWithinTolerance(t *testing.T) {
	rep := validateVariant(t, "<TotalDebit>119.00</TotalDebit>", "<TotalDebit>119.01</TotalDebit>")
	assert.Equal(t, report.StatusPass, resultByNumber(t, rep, 20).Status)
}

func TestValidate_UnbalancedLedger(t *testing.T) {
	rep := validateVariant(t, "<Amount>119.00</Amount>\n          </CreditAmount>", "<Amount>100.00</Amount>\n          </CreditAmount>")

	// declared credit total, global balance and per-entry balance all trip
	assert.Equal(t, report.StatusFail, resultByNumber(t, rep, 21).Status)
	assert.Equal(t, report.StatusFail, resultByNumber(t, rep, 22).Status)
	assert.Equal(t, report.StatusFail, resultByNumber(t, rep, 31).Status)
}

func TestValidate_NoEntries_IsWarning(t *testing.T) {
	content := `<AuditFile>
  <Header>
    <AuditFileVersion>2.0</AuditFileVersion>
    <AuditFileCountry>RO</AuditFileCountry>
  </Header>
  <GeneralLedgerEntries>
    <NumberOfEntries>0</NumberOfEntries>
    <TotalDebit>0</TotalDebit>
    <TotalCredit>0</TotalCredit>
  </GeneralLedgerEntries>
</AuditFile>`

	rep, err := saft.ValidateBytes([]byte(content))
	require.NoError(t, err)
	assert.Equal(t, report.StatusWarning, resultByNumber(t, rep, 23).Status)
	// the ledger rules over zero entries pass vacuously
	assert.Equal(t, report.StatusPass, resultByNumber(t, rep, 31).Status)
}

func TestValidate_MissingTransactionID(t *testing.T) {
	rep := validateVariant(t, "<TransactionID>TX-1</TransactionID>", "<TransactionID></TransactionID>")

	assert.Equal(t, report.StatusFail, resultByNumber(t, rep, 24).Status)
	// uniqueness skips unidentified entries rather than double-reporting
	assert.Equal(t, report.StatusPass, resultByNumber(t, rep, 25).Status)
}

func TestValidate_InvalidTransactionDate(t *testing.T) {
	rep := validateVariant(t, "<TransactionDate>2025-01-15</TransactionDate>", "<TransactionDate>sometime</TransactionDate>")

	r := resultByNumber(t, rep, 26)
	assert.Equal(t, report.StatusFail, r.Status)
	assert.Contains(t, r.Details, "TX-1")
}

func TestValidate_UnresolvedAccountReference(t *testing.T) {
	rep := validateVariant(t, "<AccountID>704</AccountID>\n          <CreditAmount>", "<AccountID>999</AccountID>\n          <CreditAmount>")

	r := resultByNumber(t, rep, 30)
	assert.Equal(t, report.StatusFail, r.Status)
	assert.Contains(t, r.Details, "999")
}

func TestValidate_NegativeAmount(t *testing.T) {
	rep := validateVariant(t, "<Amount>119.00</Amount>\n          </DebitAmount>", "<Amount>-119.00</Amount>\n          </DebitAmount>")
	assert.Equal(t, report.StatusFail, resultByNumber(t, rep, 32).Status)
}

func TestValidate_BothSidedLine_IsWarning(t *testing.T) {
	rep := validateVariant(t, `<DebitAmount>
            <Amount>119.00</Amount>
          </DebitAmount>`, `<DebitAmount>
            <Amount>119.00</Amount>
          </DebitAmount>
          <CreditAmount>
            <Amount>0.01</Amount>
          </CreditAmount>`)

	assert.Equal(t, report.StatusWarning, resultByNumber(t, rep, 33).Status)
}

func TestRules_Listing(t *testing.T) {
	rules := saft.Rules()
	require.Len(t, rules, saft.TestCount)

	for i, r := range rules {
		assert.Equal(t, i+1, r.Number)
		assert.NotEmpty(t, r.Name)
	}
	assert.Equal(t, saft.SeriesStructural, rules[0].Series)
	assert.Equal(t, saft.SeriesStructural, rules[21].Series)
	assert.Equal(t, saft.SeriesLedger, rules[22].Series)
	assert.Equal(t, saft.SeriesLedger, rules[32].Series)
}
