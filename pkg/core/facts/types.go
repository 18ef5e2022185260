// Package facts extracts structured financial facts from earnings release HTML.
package facts

// Fact type categories
const (
	FactTypeRevenue  = "revenue"
	FactTypeEarnings = "earnings"
	FactTypeGrowth   = "growth"
	FactTypeGuidance = "guidance"
)

// Confidence levels are fixed per pattern family. They reflect how specific
// the phrasing is, not a statistical measure.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
)

// Extraction status values
const (
	StatusSuccess = "success"
	StatusNoData  = "no_data_found"
	StatusFailed  = "failed"
)

// Fact represents a single extracted financial observation
type Fact struct {
	FactType   string  `json:"fact_type"` // "revenue", "earnings", "growth", "guidance"
	Metric     string  `json:"metric"`    // e.g. "total_revenue", "eps", "growth_rate"
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`                // e.g. "billion_usd", "usd_per_share", "percent"
	Direction  string  `json:"direction,omitempty"` // growth facts only: "increase" or "decrease"
	Confidence string  `json:"confidence"`
	SourceText string  `json:"source_text"` // Verbatim matched substring (max 150 chars)
	SourceURL  string  `json:"source_url"`
	Company    string  `json:"company"`
	Period     string  `json:"period"`
}

// Table represents a structured grid found in the source markup.
// TableIndex is the position among ALL tables in document order, assigned
// before zero-row tables are filtered out, so emitted indices may be sparse.
type Table struct {
	TableIndex int        `json:"table_index"`
	Headers    []string   `json:"headers"` // nil when no header row could be distinguished
	Rows       [][]string `json:"rows"`    // First 10 qualifying rows
	RowCount   int        `json:"row_count"`
}

// ExtractionResult is the top-level record for one extraction call
type ExtractionResult struct {
	RunID            string  `json:"run_id"`
	Company          string  `json:"company"`
	Period           string  `json:"period"`
	SourceURL        string  `json:"source_url"`
	ExtractedAt      string  `json:"extracted_at"` // UTC, RFC3339 with trailing Z
	Facts            []Fact  `json:"facts"`
	Tables           []Table `json:"tables"`
	ExtractionStatus string  `json:"extraction_status"` // "success" or "no_data_found"
	FactCount        int     `json:"fact_count"`
	HTMLLength       int     `json:"html_length,omitempty"`
	DebugFile        string  `json:"debug_file,omitempty"`
}

// ErrorRecord is emitted by callers (CLI, HTTP handler, batch runner) when the
// retrieval layer fails or the input payload is unusable. The extraction core
// never produces this shape.
type ErrorRecord struct {
	URL              string `json:"url"`
	Company          string `json:"company"`
	Period           string `json:"period"`
	Error            string `json:"error"`
	ExtractionStatus string `json:"extraction_status"` // always "failed"
	DebugFile        string `json:"debug_file,omitempty"`
}

// NewErrorRecord builds a failed-extraction record for the given context
func NewErrorRecord(url, company, period, message string) *ErrorRecord {
	return &ErrorRecord{
		URL:              url,
		Company:          company,
		Period:           period,
		Error:            message,
		ExtractionStatus: StatusFailed,
	}
}
