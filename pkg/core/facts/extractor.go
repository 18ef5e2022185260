package facts

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// maxSourceTextLen caps the verbatim matched substring kept for provenance
const maxSourceTextLen = 150

// Parser extracts structured financial facts from earnings release HTML.
// It holds no state across calls: each Parse owns its own dedup sets, so
// concurrent Parse calls are safe without locking.
type Parser struct{}

// NewParser creates a new facts parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse runs the full extraction pipeline over one HTML document:
// normalize to text, run the four fact families, structure the tables,
// stamp the caller context onto every fact.
//
// Pattern non-matches are not errors. An input yielding zero facts returns a
// result with extraction_status "no_data_found"; Parse only fails when the
// HTML cannot be parsed at all.
func (p *Parser) Parse(rawHTML, url, company, period string) (*ExtractionResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}

	text := NormalizeText(doc)

	facts := make([]Fact, 0)
	for _, fam := range factFamilies {
		facts = append(facts, runFamily(text, fam)...)
	}

	tables := StructureTables(doc)

	// Context fields are stamped uniformly after family extraction
	for i := range facts {
		facts[i].SourceURL = url
		facts[i].Company = company
		facts[i].Period = period
	}

	status := StatusNoData
	if len(facts) > 0 {
		status = StatusSuccess
	}

	return &ExtractionResult{
		RunID:            uuid.NewString(),
		Company:          company,
		Period:           period,
		SourceURL:        url,
		ExtractedAt:      time.Now().UTC().Format(time.RFC3339),
		Facts:            facts,
		Tables:           tables,
		ExtractionStatus: status,
		FactCount:        len(facts),
	}, nil
}

// runFamily applies every rule of one family against the full text.
// Matches across rules may overlap; duplicates are suppressed only by the
// dedup key (value/unit identity), which is private to this run.
func runFamily(text string, fam ruleFamily) []Fact {
	seen := make(map[string]bool)
	var out []Fact

	for _, rule := range fam.rules {
		for _, groups := range rule.re.FindAllStringSubmatch(text, -1) {
			value, ok := parseAmount(groups[1])
			if !ok {
				continue
			}
			if rule.guard != nil && !rule.guard(value) {
				continue
			}

			unitWord, unitLabel := resolveUnit(rule, groups)

			key := dedupKey(rule, value, unitWord)
			if seen[key] {
				continue
			}
			seen[key] = true

			fact := Fact{
				FactType:   fam.factType,
				Metric:     rule.metric,
				Value:      value,
				Unit:       unitLabel,
				Confidence: fam.confidence,
				SourceText: truncate(groups[0], maxSourceTextLen),
			}
			if fam.direction {
				fact.Direction = directionOf(groups[0])
			}
			out = append(out, fact)
		}
	}

	return out
}

// dedupKey builds the family-scoped identity of one observation
func dedupKey(rule factRule, value float64, unitWord string) string {
	key := rule.keyPrefix + formatValue(value)
	if rule.keyUnit {
		key += "_" + unitWord
	}
	return key + rule.keySuffix
}

// parseAmount converts a captured numeric string (thousands separators
// allowed) to a float. Capture groups are constrained to digit/comma/decimal
// syntax, so a false return indicates a pattern bug rather than bad input.
func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// formatValue renders a value for dedup keys without trailing zeros
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// directionOf infers growth direction from the matched vocabulary
func directionOf(matched string) string {
	lower := strings.ToLower(matched)
	for _, word := range []string{"decrease", "decline", "down"} {
		if strings.Contains(lower, word) {
			return "decrease"
		}
	}
	return "increase"
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
