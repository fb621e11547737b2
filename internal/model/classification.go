package model

// Method identifies which stage of the hybrid classifier produced a result.
type Method string

const (
	MethodRuleBased    Method = "rule_based"
	MethodLLM          Method = "llm"
	MethodUnclassified Method = "unclassified"
)

// Fallback sector/subsector for categories nothing could resolve.
const (
	FallbackSector    = "Other Services"
	FallbackSubsector = "Miscellaneous"
)

// Classification maps one distinct input category to a canonical
// (sector, subsector) pair. Exactly one Classification exists per unique
// category string; every record sharing the category reuses it.
type Classification struct {
	OriginalCategory string  `json:"original_category"`
	Sector           string  `json:"standardized_sector"`
	Subsector        string  `json:"standardized_subsector"`
	Confidence       float64 `json:"confidence"`
	Method           Method  `json:"method"`
}

// Unclassified returns the default fallback classification for a category
// that neither rules nor the LLM could resolve.
func Unclassified(category string) Classification {
	return Classification{
		OriginalCategory: category,
		Sector:           FallbackSector,
		Subsector:        FallbackSubsector,
		Confidence:       0.0,
		Method:           MethodUnclassified,
	}
}
