// Package extract provides the HTTP API handler for earnings fact extraction.
package extract

import (
	"encoding/json"
	"log"
	"net/http"

	"earnings_facts/pkg/core/facts"
	"earnings_facts/pkg/core/fetch"
	"earnings_facts/pkg/core/utils"
)

// Package-level fetcher shared by requests; the parser is stateless
var pageFetcher *fetch.PageFetcher

// InitHandler initializes the handler with an optional page cache directory
func InitHandler(cacheDir string) {
	pageFetcher = fetch.NewPageFetcher(cacheDir)
}

// Request for the extraction endpoint. HTML takes precedence when supplied;
// otherwise the page is fetched from URL.
type Request struct {
	HTML    string `json:"html,omitempty"`
	URL     string `json:"url"`
	Company string `json:"company"`
	Period  string `json:"period"`
}

// HandleExtract handles POST /api/extract.
// Responds with exactly one JSON record: an ExtractionResult on success, or
// an error record with extraction_status "failed" when retrieval or input
// validation fails. The core itself never produces the failed shape.
func HandleExtract(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, facts.NewErrorRecord("", "", "", "Invalid request body"))
		return
	}

	if req.Company == "" {
		req.Company = "Unknown"
	}
	if req.Period == "" {
		req.Period = "Unknown"
	}

	html := req.HTML
	if html == "" {
		if req.URL == "" {
			writeError(w, http.StatusBadRequest, facts.NewErrorRecord("", req.Company, req.Period, "missing url"))
			return
		}
		if pageFetcher == nil {
			pageFetcher = fetch.NewPageFetcher("")
		}
		fetched, err := pageFetcher.FetchHTML(r.Context(), req.URL)
		if err != nil {
			log.Printf("[Extract] fetch failed for %s: %v", req.URL, err)
			writeError(w, http.StatusBadGateway, facts.NewErrorRecord(req.URL, req.Company, req.Period, err.Error()))
			return
		}
		html = fetched
	}

	parser := facts.NewParser()
	result, err := parser.Parse(html, req.URL, req.Company, req.Period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, facts.NewErrorRecord(req.URL, req.Company, req.Period, err.Error()))
		return
	}
	result.HTMLLength = len(html)

	log.Printf("[Extract] %s %s: %d facts, %d tables (%s)",
		req.Company, req.Period, result.FactCount, len(result.Tables), result.ExtractionStatus)

	// ?format=html renders the markdown report for browser preview
	if r.URL.Query().Get("format") == "html" {
		markdown := facts.ResultToMarkdown(result)
		page, err := utils.RenderMarkdownHTML(markdown)
		if err != nil {
			writeError(w, http.StatusInternalServerError, facts.NewErrorRecord(req.URL, req.Company, req.Period, err.Error()))
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func writeError(w http.ResponseWriter, status int, record *facts.ErrorRecord) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(record)
}
