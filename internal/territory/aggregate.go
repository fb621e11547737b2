// Package territory aggregates standardized business records into
// per-territory metrics (ZIP, block group, or city summaries) for the
// franchise territory planner.
package territory

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/territory-cli/internal/model"
)

// UnknownTerritory is the sentinel key for records whose grouping field is
// absent or blank.
const UnknownTerritory = "UNKNOWN"

// GroupFields enumerates the supported grouping fields.
var GroupFields = []string{"zip_code", "blockgroup", "city"}

// Metrics is the full aggregation output.
type Metrics struct {
	GroupBy     string      `json:"group_by"`
	Summary     Summary     `json:"summary"`
	Territories []Territory `json:"territories"`
}

// Summary holds the overall batch statistics.
type Summary struct {
	GroupBy         string `json:"group_by"`
	TerritoryCount  int    `json:"territory_count"`
	TotalBusinesses int    `json:"total_businesses"`
}

// Territory is the finalized per-group output record. Percentages and means
// are nil when the underlying denominator is zero.
type Territory struct {
	TerritoryID               string         `json:"territory_id"`
	BusinessCount             int            `json:"business_count"`
	FranchiseCount            int            `json:"franchise_count"`
	IndependentCount          int            `json:"independent_count"`
	UnknownFranchiseCount     int            `json:"unknown_franchise_count"`
	PctFranchise              *float64       `json:"pct_franchise"`
	PctIndependent            *float64       `json:"pct_independent"`
	HasValidCoordinatesCount  int            `json:"has_valid_coordinates_count"`
	PctValidCoordinates       *float64       `json:"pct_valid_coordinates"`
	AvgRatingMean             *float64       `json:"avg_rating_mean"`
	ClassificationConfMean    *float64       `json:"classification_confidence_mean"`
	ClassificationMethodCount map[string]int `json:"classification_method_counts"`
	TopSectors                []NameCount    `json:"top_sectors"`
	TopSubsectors             []NameCount    `json:"top_subsectors"`
}

// running is the mutable per-territory state during the single aggregation
// pass. It is finalized exactly once and never mutated afterwards.
type running struct {
	businessCount         int
	franchiseCount        int
	independentCount      int
	unknownFranchiseCount int
	validCoordinatesCount int
	ratingSum             float64
	ratingN               int
	confidenceSum         float64
	confidenceN           int
	methodCounts          *counter
	sectorCounts          *counter
	subsectorCounts       *counter
}

// Aggregate groups standardized records by groupBy and computes territory
// metrics in a single pass. topN caps the sector/subsector frequency lists;
// non-positive values disable them.
func Aggregate(records []model.StandardizedRecord, groupBy string, topN int) (*Metrics, error) {
	if !validGroupField(groupBy) {
		return nil, eris.Errorf("territory: unsupported group field %q (want one of %s)",
			groupBy, strings.Join(GroupFields, ", "))
	}
	if topN < 0 {
		topN = 0
	}

	groups := make(map[string]*running)

	for _, rec := range records {
		key := groupKey(rec, groupBy)

		t := groups[key]
		if t == nil {
			t = &running{
				methodCounts:    newCounter(),
				sectorCounts:    newCounter(),
				subsectorCounts: newCounter(),
			}
			groups[key] = t
		}

		t.businessCount++

		switch {
		case rec.IsFranchise == nil:
			t.unknownFranchiseCount++
		case *rec.IsFranchise:
			t.franchiseCount++
		default:
			t.independentCount++
		}

		if rec.HasValidCoordinates {
			t.validCoordinatesCount++
		}
		if rec.AvgRating != nil {
			t.ratingSum += *rec.AvgRating
			t.ratingN++
		}

		t.confidenceSum += rec.CategoryConfidence
		t.confidenceN++

		method := strings.TrimSpace(string(rec.CategoryMethod))
		if method == "" {
			method = string(model.MethodUnclassified)
		}
		t.methodCounts.inc(method)

		t.sectorCounts.inc(orUnknown(rec.CategorySector))
		t.subsectorCounts.inc(orUnknown(rec.CategorySubsector))
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	metrics := &Metrics{
		GroupBy:     groupBy,
		Territories: make([]Territory, 0, len(keys)),
	}

	for _, key := range keys {
		t := groups[key]
		metrics.Summary.TotalBusinesses += t.businessCount
		metrics.Territories = append(metrics.Territories, finalize(key, t, topN))
	}
	metrics.Summary.GroupBy = groupBy
	metrics.Summary.TerritoryCount = len(groups)

	zap.L().Info("territory: aggregation complete",
		zap.String("group_by", groupBy),
		zap.Int("territories", metrics.Summary.TerritoryCount),
		zap.Int("businesses", metrics.Summary.TotalBusinesses),
	)

	return metrics, nil
}

func finalize(key string, t *running, topN int) Territory {
	return Territory{
		TerritoryID:               key,
		BusinessCount:             t.businessCount,
		FranchiseCount:            t.franchiseCount,
		IndependentCount:          t.independentCount,
		UnknownFranchiseCount:     t.unknownFranchiseCount,
		PctFranchise:              ratio(t.franchiseCount, t.businessCount),
		PctIndependent:            ratio(t.independentCount, t.businessCount),
		HasValidCoordinatesCount:  t.validCoordinatesCount,
		PctValidCoordinates:       ratio(t.validCoordinatesCount, t.businessCount),
		AvgRatingMean:             mean(t.ratingSum, t.ratingN),
		ClassificationConfMean:    mean(t.confidenceSum, t.confidenceN),
		ClassificationMethodCount: t.methodCounts.asMap(),
		TopSectors:                t.sectorCounts.topN(topN),
		TopSubsectors:             t.subsectorCounts.topN(topN),
	}
}

func groupKey(rec model.StandardizedRecord, groupBy string) string {
	var value string
	switch groupBy {
	case "zip_code":
		value = rec.ZipCode
	case "blockgroup":
		value = rec.Blockgroup
	case "city":
		value = rec.City
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return UnknownTerritory
	}
	return value
}

func validGroupField(field string) bool {
	for _, f := range GroupFields {
		if f == field {
			return true
		}
	}
	return false
}

func ratio(count, total int) *float64 {
	if total <= 0 {
		return nil
	}
	r := float64(count) / float64(total)
	return &r
}

func mean(sum float64, n int) *float64 {
	if n <= 0 {
		return nil
	}
	m := sum / float64(n)
	return &m
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
