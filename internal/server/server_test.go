package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturino/tax-engine/internal/report"
	"github.com/facturino/tax-engine/internal/server"
)

func newTestServer() *server.Server {
	return server.NewServer(&server.Config{Address: ":0"})
}

func doRequest(t *testing.T, srv *server.Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

const readyDocument = `{
  "supplier": {
    "name": "Acme SRL",
    "taxId": "RO123",
    "address": "Str. X 1",
    "email": "a@acme.ro"
  },
  "client": {
    "name": "Beta SRL",
    "taxId": "RO456",
    "address": "Str. Y 2"
  },
  "invoice": {
    "number": "INV-1",
    "issueDate": "2025-01-10",
    "dueDate": "2025-02-10",
    "currency": "RON",
    "subtotal": "100.00",
    "vatAmount": "19.00",
    "total": "119.00"
  },
  "items": [
    {
      "description": "Consulting",
      "quantity": "1",
      "unitPrice": "100.00",
      "vatRate": "19",
      "subtotal": "100.00",
      "vatAmount": "19.00",
      "total": "119.00"
    }
  ]
}`

func TestHealthEndpoint(t *testing.T) {
	w := doRequest(t, newTestServer(), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestCheckEndpoint_Ready(t *testing.T) {
	w := doRequest(t, newTestServer(), http.MethodPost, "/api/v1/einvoice/check", []byte(readyDocument))

	require.Equal(t, http.StatusOK, w.Code)
	var rep report.ValidationReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, 0, rep.Failed)
	assert.Equal(t, rep.TotalTests, rep.Passed)
}

func TestCheckEndpoint_MissingClientTaxID(t *testing.T) {
	doc := strings.Replace(readyDocument, `"taxId": "RO456",`, `"taxId": "",`, 1)
	w := doRequest(t, newTestServer(), http.MethodPost, "/api/v1/einvoice/check", []byte(doc))

	require.Equal(t, http.StatusOK, w.Code, "the check endpoint reports, it does not block")
	var rep report.ValidationReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, 1, rep.Failed)
}

func TestCheckEndpoint_InvalidJSON(t *testing.T) {
	w := doRequest(t, newTestServer(), http.MethodPost, "/api/v1/einvoice/check", []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateEndpoint_Ready(t *testing.T) {
	w := doRequest(t, newTestServer(), http.MethodPost, "/api/v1/einvoice/generate", []byte(readyDocument))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	body := w.Body.String()
	assert.Contains(t, body, "<cbc:ID>INV-1</cbc:ID>")
	assert.Contains(t, body, "119.00")
}

func TestGenerateEndpoint_Blocked(t *testing.T) {
	doc := strings.Replace(readyDocument, `"taxId": "RO456",`, `"taxId": "",`, 1)
	w := doRequest(t, newTestServer(), http.MethodPost, "/api/v1/einvoice/generate", []byte(doc))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp server.GenerateBlockedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "document is not submission-ready", resp.Error)
	assert.Equal(t, 1, resp.Report.Failed)
}

func TestValidateSAFTEndpoint_EmptyBody(t *testing.T) {
	w := doRequest(t, newTestServer(), http.MethodPost, "/api/v1/saft/validate", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateSAFTEndpoint_Unreadable(t *testing.T) {
	w := doRequest(t, newTestServer(), http.MethodPost, "/api/v1/saft/validate", []byte("definitely not xml"))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unreadable SAF-T document", resp.Error)
}

func TestValidateSAFTEndpoint_ReportsFailures(t *testing.T) {
	// Structurally valid but semantically broken: rules fail, HTTP stays 200
	content := `<AuditFile><Header><AuditFileCountry>DE</AuditFileCountry></Header></AuditFile>`
	w := doRequest(t, newTestServer(), http.MethodPost, "/api/v1/saft/validate", []byte(content))

	require.Equal(t, http.StatusOK, w.Code)
	var rep report.ValidationReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, 33, rep.TotalTests)
	assert.Greater(t, rep.Failed, 0)
}

func TestRulesEndpoint(t *testing.T) {
	w := doRequest(t, newTestServer(), http.MethodGet, "/api/v1/rules", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp server.RulesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.SAFT, 33)
	assert.Len(t, resp.Gate, 16)
}

func TestRequestIDHeader(t *testing.T) {
	w := doRequest(t, newTestServer(), http.MethodGet, "/health", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
