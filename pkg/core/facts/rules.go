package facts

import (
	"regexp"
	"strings"
)

// =============================================================================
// RULE TABLE - One descriptor per phrasing, grouped into fact families
// =============================================================================

// unitStrategy controls how a rule resolves the unit of a matched value
type unitStrategy int

const (
	// unitScaleRequired reads a mandatory scale word from capture group 2
	// and emits "{scale}_usd".
	unitScaleRequired unitStrategy = iota
	// unitScaleOptional reads capture group 2 when present; a missing scale
	// word falls back to bare "usd" (never "usd_usd").
	unitScaleOptional
	// unitFixed uses the rule's fixedUnit label as-is.
	unitFixed
	// unitScanMatch re-scans the full matched substring for a scale keyword,
	// falling back to bare "usd".
	unitScanMatch
)

// factRule is a single pattern descriptor. Group 1 must capture the numeric
// value (digits, commas, decimal point only); group 2, where declared,
// captures the scale word.
type factRule struct {
	re        *regexp.Regexp
	metric    string
	unit      unitStrategy
	fixedUnit string               // label for unitFixed rules
	keyPrefix string               // dedup key prefix, e.g. "eps_"
	keyUnit   bool                 // include the resolved scale word in the dedup key
	keySuffix string               // dedup key suffix, e.g. "_sales"
	guard     func(v float64) bool // value-range guard, nil accepts all
}

// ruleFamily groups the rules for one fact type. Families never share state:
// each extraction run gives every family its own dedup set.
type ruleFamily struct {
	factType   string
	confidence string
	direction  bool // infer increase/decrease from matched vocabulary
	rules      []factRule
}

var scaleWordRe = regexp.MustCompile(`(?i)(billion|million)`)

// epsGuard rejects mis-captures like percentages or page numbers
func epsGuard(v float64) bool { return v > 0 && v < 1000 }

// growthGuard keeps growth rates in a realistic range
func growthGuard(v float64) bool { return v >= 0 && v <= 1000 }

var factFamilies = []ruleFamily{
	{
		factType:   FactTypeRevenue,
		confidence: ConfidenceHigh,
		rules: []factRule{
			// "revenue to $X.X billion" / "revenue of $X.X billion"
			{
				re:      regexp.MustCompile(`(?i)revenue\s+(?:to|of|was|reached|totaled|grew\s+to)\s+\$\s?([\d,]+\.?\d*)\s*(billion|million|thousand)`),
				metric:  "total_revenue",
				unit:    unitScaleRequired,
				keyUnit: true,
			},
			// "$X.X billion revenue" / "$X.X billion in revenue"
			{
				re:      regexp.MustCompile(`(?i)\$\s?([\d,]+\.?\d*)\s*(billion|million)\s+(?:in\s+)?revenue`),
				metric:  "total_revenue",
				unit:    unitScaleRequired,
				keyUnit: true,
			},
			// "Net sales increased X% to $Y.Y billion" (Amazon style)
			{
				re:        regexp.MustCompile(`(?i)(?:net\s+)?sales?\s+(?:increased|grew)\s+[\d.]+%?\s+to\s+\$\s?([\d,]+\.?\d*)\s*(billion|million)`),
				metric:    "net_sales",
				unit:      unitScaleRequired,
				keyUnit:   true,
				keySuffix: "_sales",
			},
		},
	},
	{
		factType:   FactTypeEarnings,
		confidence: ConfidenceHigh,
		rules: []factRule{
			// EPS phrasings, including "$X.XX per diluted share"
			{
				re:        regexp.MustCompile(`(?i)diluted\s+(?:net\s+)?(?:income|earnings)\s+per\s+share\s+(?:of\s+)?\$\s?([\d.]+)`),
				metric:    "eps",
				unit:      unitFixed,
				fixedUnit: "usd_per_share",
				keyPrefix: "eps_",
				guard:     epsGuard,
			},
			{
				re:        regexp.MustCompile(`(?i)EPS\s+(?:of\s+)?\$\s?([\d.]+)`),
				metric:    "eps",
				unit:      unitFixed,
				fixedUnit: "usd_per_share",
				keyPrefix: "eps_",
				guard:     epsGuard,
			},
			{
				re:        regexp.MustCompile(`(?i)earnings\s+per\s+share\s+(?:of\s+)?\$\s?([\d.]+)`),
				metric:    "eps",
				unit:      unitFixed,
				fixedUnit: "usd_per_share",
				keyPrefix: "eps_",
				guard:     epsGuard,
			},
			{
				re:        regexp.MustCompile(`(?i)\$\s?([\d.]+)\s+per\s+(?:diluted\s+)?share`),
				metric:    "eps",
				unit:      unitFixed,
				fixedUnit: "usd_per_share",
				keyPrefix: "eps_",
				guard:     epsGuard,
			},
			{
				re:        regexp.MustCompile(`(?i)(?:or\s+)?\$\s?([\d.]+)\s+per\s+diluted\s+share`),
				metric:    "eps",
				unit:      unitFixed,
				fixedUnit: "usd_per_share",
				keyPrefix: "eps_",
				guard:     epsGuard,
			},
			// Net income, verb-led and noun-trailing
			{
				re:        regexp.MustCompile(`(?i)net\s+income\s+(?:increased|grew|was|reached|of)\s+(?:to\s+)?\$\s?([\d,]+\.?\d*)\s*(billion|million|thousand)?`),
				metric:    "net_income",
				unit:      unitScaleOptional,
				keyPrefix: "net_income_",
				keyUnit:   true,
			},
			{
				re:        regexp.MustCompile(`(?i)\$\s?([\d,]+\.?\d*)\s*(billion|million)\s+(?:in\s+)?net\s+income`),
				metric:    "net_income",
				unit:      unitScaleOptional,
				keyPrefix: "net_income_",
				keyUnit:   true,
			},
			// Operating income
			{
				re:        regexp.MustCompile(`(?i)operating\s+income\s+(?:increased|grew|was|reached)\s+(?:to\s+)?\$\s?([\d,]+\.?\d*)\s*(billion|million)?`),
				metric:    "operating_income",
				unit:      unitScaleOptional,
				keyPrefix: "operating_income_",
				keyUnit:   true,
			},
			{
				re:        regexp.MustCompile(`(?i)\$\s?([\d,]+\.?\d*)\s*(billion|million)\s+(?:in\s+)?operating\s+income`),
				metric:    "operating_income",
				unit:      unitScaleOptional,
				keyPrefix: "operating_income_",
				keyUnit:   true,
			},
		},
	},
	{
		factType:   FactTypeGrowth,
		confidence: ConfidenceMedium,
		direction:  true,
		rules: []factRule{
			{
				re:        regexp.MustCompile(`(?i)(?:increased|grew|growth\s+of|up)\s+([\d.]+)\s*%`),
				metric:    "growth_rate",
				unit:      unitFixed,
				fixedUnit: "percent",
				keyPrefix: "growth_",
				guard:     growthGuard,
			},
			{
				re:        regexp.MustCompile(`(?i)([\d.]+)\s*%\s+(?:increase|growth|up)`),
				metric:    "growth_rate",
				unit:      unitFixed,
				fixedUnit: "percent",
				keyPrefix: "growth_",
				guard:     growthGuard,
			},
			{
				re:        regexp.MustCompile(`(?i)([\d.]+)\s*%\s+year[- ]over[- ]year`),
				metric:    "growth_rate",
				unit:      unitFixed,
				fixedUnit: "percent",
				keyPrefix: "growth_",
				guard:     growthGuard,
			},
			{
				re:        regexp.MustCompile(`(?i)(?:sales|revenue|income)\s+(?:increased|grew)\s+([\d.]+)%`),
				metric:    "growth_rate",
				unit:      unitFixed,
				fixedUnit: "percent",
				keyPrefix: "growth_",
				guard:     growthGuard,
			},
		},
	},
	{
		factType:   FactTypeGuidance,
		confidence: ConfidenceMedium,
		rules: []factRule{
			// Scale word is non-capturing here, so unit comes from a re-scan
			{
				re:        regexp.MustCompile(`(?i)(?:guidance|expected?|forecast|outlook|projects?)\s+(?:to\s+be\s+)?(?:between\s+)?\$\s?([\d,]+\.?\d*)\s*(?:billion|million)`),
				metric:    "forward_guidance",
				unit:      unitScanMatch,
				keyPrefix: "guidance_",
				keyUnit:   true,
			},
			{
				re:        regexp.MustCompile(`(?i)estimates?\s+(?:of\s+)?\$\s?([\d,]+\.?\d*)\s*(billion|million)`),
				metric:    "forward_guidance",
				unit:      unitScanMatch,
				keyPrefix: "guidance_",
				keyUnit:   true,
			},
		},
	},
}

// resolveUnit returns the scale word used in dedup keys and the unit label
// stored on the fact. groups is the full submatch slice; matched is groups[0].
func resolveUnit(rule factRule, groups []string) (word string, label string) {
	switch rule.unit {
	case unitFixed:
		return "", rule.fixedUnit

	case unitScaleRequired:
		word = strings.ToLower(groups[2])
		return word, word + "_usd"

	case unitScaleOptional:
		// The scale group is optional; guard against an absent capture
		word = "usd"
		if len(groups) > 2 && groups[2] != "" {
			word = strings.ToLower(groups[2])
		}
		if word == "usd" {
			return word, "usd"
		}
		return word, word + "_usd"

	case unitScanMatch:
		word = "usd"
		if m := scaleWordRe.FindString(groups[0]); m != "" {
			word = strings.ToLower(m)
		}
		if word == "usd" {
			return word, "usd"
		}
		return word, word + "_usd"
	}
	return "", "usd"
}
