// Package taxonomy holds the canonical two-level business taxonomy
// (sector → subsector → keywords) used by both the rule-based and the
// LLM classifiers.
package taxonomy

import (
	"fmt"
	"strings"
)

// KeywordEntry binds one matching keyword to its taxonomy position.
// Entries live in an explicitly ordered slice because keyword sets overlap
// across subsectors and the first match in authored order wins; the
// tie-break must not depend on map iteration order.
type KeywordEntry struct {
	Keyword   string
	Sector    string
	Subsector string
}

// Subsector is one second-level taxonomy node with its match keywords.
type Subsector struct {
	Name     string
	Keywords []string
}

// Sector is one top-level taxonomy node. Subsector order is the authored
// order and is load-bearing for classification tie-breaks.
type Sector struct {
	Name       string
	Subsectors []Subsector
}

// Taxonomy is the full sector → subsector → keyword mapping.
type Taxonomy struct {
	sectors  []Sector
	keywords []KeywordEntry
	members  map[string]map[string]bool // sector → subsector → present
}

// New builds a Taxonomy from sectors, deriving the ordered keyword list
// (sector-major, subsector-minor, keyword-minor) and the membership index.
func New(sectors []Sector) *Taxonomy {
	t := &Taxonomy{
		sectors: sectors,
		members: make(map[string]map[string]bool, len(sectors)),
	}
	for _, sec := range sectors {
		subs := make(map[string]bool, len(sec.Subsectors))
		for _, sub := range sec.Subsectors {
			subs[sub.Name] = true
			for _, kw := range sub.Keywords {
				t.keywords = append(t.keywords, KeywordEntry{
					Keyword:   strings.ToLower(kw),
					Sector:    sec.Name,
					Subsector: sub.Name,
				})
			}
		}
		t.members[sec.Name] = subs
	}
	return t
}

// Keywords returns the ordered keyword table. Callers must iterate in slice
// order; the first containment match is the classification.
func (t *Taxonomy) Keywords() []KeywordEntry {
	return t.keywords
}

// Sectors returns the authored sector list.
func (t *Taxonomy) Sectors() []Sector {
	return t.sectors
}

// Contains reports whether subsector exists under sector.
func (t *Taxonomy) Contains(sector, subsector string) bool {
	return t.members[sector][subsector]
}

// PromptDescription renders the taxonomy as one line per sector for LLM
// prompts: "Sector: Subsector A, Subsector B, ...".
func (t *Taxonomy) PromptDescription() string {
	var b strings.Builder
	for i, sec := range t.sectors {
		if i > 0 {
			b.WriteByte('\n')
		}
		names := make([]string, len(sec.Subsectors))
		for j, sub := range sec.Subsectors {
			names[j] = sub.Name
		}
		fmt.Fprintf(&b, "%s: %s", sec.Name, strings.Join(names, ", "))
	}
	return b.String()
}
