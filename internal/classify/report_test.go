package classify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/territory-cli/internal/model"
)

func TestBuildReport(t *testing.T) {
	mappings := map[string]model.Classification{
		"restaurant": {Sector: "Food & Beverage", Subsector: "Restaurants", Confidence: 1.0, Method: model.MethodRuleBased},
		"thai place": {Sector: "Food & Beverage", Subsector: "Restaurants", Confidence: 0.9, Method: model.MethodRuleBased},
		"vape shop":  {Sector: "Retail", Subsector: "Specialty Retail", Confidence: 0.8, Method: model.MethodLLM},
		"mystery":    {Sector: model.FallbackSector, Subsector: model.FallbackSubsector, Confidence: 0.0, Method: model.MethodUnclassified},
	}

	report := BuildReport(mappings)

	assert.Equal(t, 4, report.TotalUniqueCategories)
	assert.Equal(t, 2, report.Methods.RuleBased)
	assert.Equal(t, 1, report.Methods.LLM)
	assert.Equal(t, 1, report.Methods.Unclassified)

	// 0.8 sits in the medium bucket; only strictly greater is high.
	assert.Equal(t, 2, report.ConfidenceDistribution.High)
	assert.Equal(t, 1, report.ConfidenceDistribution.Medium)
	assert.Equal(t, 1, report.ConfidenceDistribution.Low)

	assert.Equal(t, 2, report.SectorDistribution["Food & Beverage"])
	assert.Equal(t, 1, report.SectorDistribution["Retail"])
	assert.Equal(t, 1, report.SectorDistribution["Other Services"])
}

func TestBuildReport_Empty(t *testing.T) {
	report := BuildReport(nil)
	assert.Equal(t, 0, report.TotalUniqueCategories)
	assert.Empty(t, report.SectorDistribution)
}

func TestReportJSONKeys(t *testing.T) {
	data, err := json.Marshal(BuildReport(nil))
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"high (>0.8)"`)
	assert.Contains(t, string(data), `"medium (0.5-0.8)"`)
	assert.Contains(t, string(data), `"low (<0.5)"`)
}
