package extract

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"earnings_facts/pkg/core/facts"
)

const fixturePage = `<html><body>
	<h1>Q3 2023 Results</h1>
	<p>Revenue of $5.2 billion, up 12% year-over-year.</p>
</body></html>`

func postExtract(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader(body))
	rec := httptest.NewRecorder()
	HandleExtract(rec, req)
	return rec
}

func TestHandleExtractWithInlineHTML(t *testing.T) {
	payload, _ := json.Marshal(Request{
		HTML:    fixturePage,
		URL:     "https://example.com/q3",
		Company: "Test Co",
		Period:  "Q3 2023",
	})

	rec := postExtract(t, string(payload))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result facts.ExtractionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("response is not an ExtractionResult: %v", err)
	}
	if result.ExtractionStatus != facts.StatusSuccess {
		t.Errorf("status = %q, want success", result.ExtractionStatus)
	}
	if result.FactCount == 0 {
		t.Error("expected facts from fixture page")
	}
	if result.HTMLLength != len(fixturePage) {
		t.Errorf("html_length = %d, want %d", result.HTMLLength, len(fixturePage))
	}
	if result.Company != "Test Co" || result.Period != "Q3 2023" {
		t.Errorf("context fields not carried: %+v", result)
	}
}

func TestHandleExtractMissingURL(t *testing.T) {
	rec := postExtract(t, `{"company": "Test Co"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var record facts.ErrorRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("response is not an error record: %v", err)
	}
	if record.ExtractionStatus != facts.StatusFailed {
		t.Errorf("extraction_status = %q, want failed", record.ExtractionStatus)
	}
	if record.Error != "missing url" {
		t.Errorf("error = %q", record.Error)
	}
}

func TestHandleExtractRejectsGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/extract", nil)
	rec := httptest.NewRecorder()
	HandleExtract(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleExtractHTMLReport(t *testing.T) {
	payload, _ := json.Marshal(Request{HTML: fixturePage, Company: "Test Co", Period: "Q3 2023"})

	req := httptest.NewRequest(http.MethodPost, "/api/extract?format=html", strings.NewReader(string(payload)))
	rec := httptest.NewRecorder()
	HandleExtract(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Earnings Facts") {
		t.Errorf("report body missing heading: %s", rec.Body.String())
	}
}
