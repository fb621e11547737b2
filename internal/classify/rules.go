// Package classify implements the hybrid category classifier: rule-based
// keyword matching first, cost-capped LLM batches for the remainder, and a
// default fallback for everything else.
package classify

import (
	"regexp"
	"strings"

	"github.com/sells-group/territory-cli/internal/taxonomy"
)

// Confidence tiers for rule matches.
const (
	confExact     = 1.0
	confAffix     = 0.9
	confSubstring = 0.8
)

// suffixPattern strips trailing business-entity noise ("X Services",
// "Y Store, Inc.") before keyword matching.
var suffixPattern = regexp.MustCompile(`\s*(services?|store|shop|center|company|inc\.?|llc|corp\.?)\s*$`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Match is a successful rule classification.
type Match struct {
	Sector     string
	Subsector  string
	Confidence float64
}

// Rules matches normalized category strings against the taxonomy keyword
// table. Classification is a pure function of the input string and the
// table order.
type Rules struct {
	entries []taxonomy.KeywordEntry
}

// NewRules builds a rule classifier over the taxonomy's ordered keywords.
func NewRules(t *taxonomy.Taxonomy) *Rules {
	return &Rules{entries: t.Keywords()}
}

// Classify returns the first keyword entry whose keyword is contained in
// the normalized category. Overlapping keywords resolve to the earliest
// entry in taxonomy order; that tie-break is documented policy, not an
// accident of iteration.
func (r *Rules) Classify(category string) (Match, bool) {
	normalized := NormalizeCategory(category)
	if normalized == "" {
		return Match{}, false
	}

	for _, e := range r.entries {
		if !strings.Contains(normalized, e.Keyword) {
			continue
		}
		confidence := confSubstring
		switch {
		case normalized == e.Keyword:
			confidence = confExact
		case strings.HasPrefix(normalized, e.Keyword), strings.HasSuffix(normalized, e.Keyword):
			confidence = confAffix
		}
		return Match{Sector: e.Sector, Subsector: e.Subsector, Confidence: confidence}, true
	}
	return Match{}, false
}

// NormalizeCategory lowercases, trims, strips one trailing entity suffix,
// and collapses internal whitespace.
func NormalizeCategory(category string) string {
	normalized := strings.ToLower(strings.TrimSpace(category))
	normalized = suffixPattern.ReplaceAllString(normalized, "")
	normalized = whitespacePattern.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}
