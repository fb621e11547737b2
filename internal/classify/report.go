package classify

import (
	"github.com/sells-group/territory-cli/internal/model"
)

// Report summarizes one classification run over the unique category set.
type Report struct {
	TotalUniqueCategories  int            `json:"total_unique_categories"`
	Methods                MethodCounts   `json:"methods"`
	ConfidenceDistribution ConfidenceDist `json:"confidence_distribution"`
	SectorDistribution     map[string]int `json:"sector_distribution"`
}

// MethodCounts tallies classifications by method.
type MethodCounts struct {
	RuleBased    int `json:"rule_based"`
	LLM          int `json:"llm"`
	Unclassified int `json:"unclassified"`
}

// ConfidenceDist buckets classification confidence.
type ConfidenceDist struct {
	High   int `json:"high (>0.8)"`
	Medium int `json:"medium (0.5-0.8)"`
	Low    int `json:"low (<0.5)"`
}

// BuildReport computes method, confidence, and sector distributions from
// the final category mappings.
func BuildReport(mappings map[string]model.Classification) Report {
	report := Report{
		TotalUniqueCategories: len(mappings),
		SectorDistribution:    make(map[string]int),
	}

	for _, m := range mappings {
		switch m.Method {
		case model.MethodRuleBased:
			report.Methods.RuleBased++
		case model.MethodLLM:
			report.Methods.LLM++
		default:
			report.Methods.Unclassified++
		}

		switch {
		case m.Confidence > 0.8:
			report.ConfidenceDistribution.High++
		case m.Confidence >= 0.5:
			report.ConfidenceDistribution.Medium++
		default:
			report.ConfidenceDistribution.Low++
		}

		report.SectorDistribution[m.Sector]++
	}

	return report
}
