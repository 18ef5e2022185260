// Command extract reads a JSON payload from stdin, retrieves the earnings
// release page, runs fact extraction, and prints exactly one JSON record to
// stdout. Retrieval or payload failures produce an error record with
// extraction_status "failed"; the process never exits without emitting a record.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"earnings_facts/pkg/core/facts"
	"earnings_facts/pkg/core/fetch"
	"earnings_facts/pkg/core/utils"

	"github.com/joho/godotenv"
)

// Payload is the stdin request. HTML takes precedence when supplied;
// otherwise URL is fetched.
type Payload struct {
	URL     string `json:"url"`
	HTML    string `json:"html,omitempty"`
	Company string `json:"company"`
	Period  string `json:"period"`
}

func main() {
	godotenv.Load()

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		emit(facts.NewErrorRecord("", "Unknown", "Unknown", fmt.Sprintf("Failed to read stdin: %v", err)))
		return
	}
	if len(input) == 0 {
		input = []byte("{}")
	}

	var payload Payload
	if _, err := utils.SmartParse(string(input), &payload); err != nil {
		emit(facts.NewErrorRecord("", "Unknown", "Unknown", fmt.Sprintf("Invalid JSON input: %v", err)))
		return
	}

	if payload.Company == "" {
		payload.Company = "Unknown"
	}
	if payload.Period == "" {
		payload.Period = "Unknown"
	}

	html := payload.HTML
	debugFile := ""
	if html == "" {
		if payload.URL == "" {
			emit(facts.NewErrorRecord("", payload.Company, payload.Period, "missing url"))
			return
		}

		fetcher := fetch.NewPageFetcher(os.Getenv("PAGE_CACHE_DIR"))
		debugDir := os.Getenv("DEBUG_HTML_DIR")
		if debugDir == "" {
			debugDir = "debug_html"
		}
		fetcher.SetDebugDir(debugDir)

		ctx, cancel := context.WithTimeout(context.Background(), fetch.DefaultTimeout)
		defer cancel()

		html, err = fetcher.FetchHTML(ctx, payload.URL)
		if err != nil {
			emit(facts.NewErrorRecord(payload.URL, payload.Company, payload.Period, err.Error()))
			return
		}

		// Best effort: keep a copy of the fetched page for inspection
		if path, err := fetcher.SaveDebugHTML(payload.Company, payload.Period, html); err == nil {
			debugFile = path
		}
	}

	parser := facts.NewParser()
	result, err := parser.Parse(html, payload.URL, payload.Company, payload.Period)
	if err != nil {
		record := facts.NewErrorRecord(payload.URL, payload.Company, payload.Period, err.Error())
		record.DebugFile = debugFile
		emit(record)
		return
	}
	result.HTMLLength = len(html)
	result.DebugFile = debugFile

	emit(result)
}

// emit prints the single JSON record this process is contracted to produce
func emit(record interface{}) {
	data, err := json.Marshal(record)
	if err != nil {
		// Marshal of our own types cannot normally fail; keep the contract anyway
		fmt.Println(`{"error":"internal marshal failure","extraction_status":"failed"}`)
		return
	}
	fmt.Println(string(data))
}
