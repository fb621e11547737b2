// Package normalize reconciles raw business listing records into the typed
// schema the classifier and aggregator consume. Normalization never fails a
// record: malformed fields degrade to nulls or defaults and land in the
// quality log.
package normalize

import (
	"fmt"
	"hash/fnv"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/territory-cli/internal/model"
)

// California bounding box for coordinate validation.
const (
	minLat = 32.5
	maxLat = 42.0
	minLon = -124.5
	maxLon = -114.0
)

const maxNameLength = 200

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// Normalizer cleans records one at a time while accumulating the issue log
// and the set of business ids already assigned. It is scoped to a single
// pipeline run; create a fresh one per batch so id uniqueness and the
// report reset together.
type Normalizer struct {
	issues  *issueLog
	seenIDs map[string]bool
}

// New returns a Normalizer with an empty issue log.
func New() *Normalizer {
	return &Normalizer{
		issues:  newIssueLog(),
		seenIDs: make(map[string]bool),
	}
}

// Report returns the quality report accumulated so far.
func (n *Normalizer) Report() QualityReport {
	return n.issues.report()
}

// Normalize cleans a single raw record. index is the record's position in
// the input; it feeds issue record ids, synthesized business ids, and the
// duplicate-id suffix, so callers must process records in input order for
// reproducible output.
func (n *Normalizer) Normalize(raw model.RawRecord, index int) model.NormalizedRecord {
	recordID := fmt.Sprintf("record_%d", index)
	var rec model.NormalizedRecord

	// Required fields are checked against the raw record before any
	// fallback reconciliation, so the report reflects the source data.
	for _, field := range []string{"business_name", "category"} {
		if stringify(raw[field]) == "" {
			n.issues.add(IssueMissingRequiredFields, recordID, field)
		}
	}

	rec.BusinessName = n.cleanName(raw, recordID)
	rec.Category, rec.CategoriesRaw = n.cleanCategory(raw, recordID)
	rec.ZipCode = n.cleanZip(raw, recordID)
	rec.Blockgroup = cleanBlockgroup(raw)
	rec.Phone = cleanPhone(raw)
	rec.FranchiseType, rec.IsFranchise = cleanFranchise(raw)
	rec.AvgRating = cleanRating(raw)

	rec.Address = strings.TrimSpace(stringify(raw["address"]))
	rec.City = strings.TrimSpace(stringify(raw["city"]))
	rec.URL = strings.TrimSpace(stringify(raw["url"]))

	n.cleanCoordinates(raw, &rec, recordID)

	rec.BusinessID = n.assignBusinessID(raw, &rec, index, recordID)

	return rec
}

func (n *Normalizer) cleanName(raw model.RawRecord, recordID string) string {
	// The fallback to "name" only applies when business_name is absent
	// entirely; a present-but-blank business_name is an issue, not a miss.
	v, present := raw["business_name"]
	name := stringify(v)
	if !present {
		name = stringify(raw["name"])
		if strings.TrimSpace(name) == "" {
			return ""
		}
	}

	name = strings.TrimSpace(norm.NFC.String(name))
	if name == "" {
		n.issues.add(IssueEmptyBusinessName, recordID, "")
		return ""
	}
	if runes := []rune(name); len(runes) > maxNameLength {
		n.issues.add(IssueLongBusinessName, recordID, "")
		return string(runes[:maxNameLength])
	}
	return name
}

func (n *Normalizer) cleanCategory(raw model.RawRecord, recordID string) (string, []string) {
	category := stringify(raw["category"])
	var categoriesRaw []string

	if category == "" {
		switch cats := raw["categories"].(type) {
		case []any:
			if len(cats) > 0 {
				category = strings.TrimSpace(stringify(cats[0]))
				for _, c := range cats {
					categoriesRaw = append(categoriesRaw, stringify(c))
				}
			}
		case []string:
			if len(cats) > 0 {
				category = strings.TrimSpace(cats[0])
				categoriesRaw = cats
			}
		case string:
			category = strings.TrimSpace(cats)
		}
	}

	category = strings.TrimSpace(norm.NFC.String(category))
	if category == "" {
		// Only present-but-blank categories are an issue; a record with no
		// category field at all was already counted as missing_required_fields.
		if _, present := raw["category"]; present {
			n.issues.add(IssueEmptyCategory, recordID, "")
		}
		category = "Unknown"
	}
	return category, categoriesRaw
}

func (n *Normalizer) cleanZip(raw model.RawRecord, recordID string) string {
	zip := strings.TrimSpace(stringify(raw["zip_code"]))
	if zip == "" {
		zip = strings.TrimSpace(stringify(raw["zip"]))
	}
	if zip == "" {
		return ""
	}
	if !zipPattern.MatchString(zip) {
		n.issues.add(IssueInvalidZipCode, recordID, zip)
		return zip // left as submitted, not nulled
	}
	return zip[:5]
}

// cleanCoordinates validates lat/lon when both are present, falling back to
// WKT geom recovery when they are missing or unparseable.
func (n *Normalizer) cleanCoordinates(raw model.RawRecord, rec *model.NormalizedRecord, recordID string) {
	latRaw, hasLat := raw["latitude"]
	lonRaw, hasLon := raw["longitude"]

	if hasLat && hasLon {
		lat, latOK := toFloat(latRaw)
		lon, lonOK := toFloat(lonRaw)
		if latOK && lonOK {
			rec.Latitude = &lat
			rec.Longitude = &lon
			if inCaliforniaBox(lat, lon) {
				rec.HasValidCoordinates = true
			} else {
				n.issues.add(IssueInvalidCoordinates, recordID, "")
			}
		} else {
			n.issues.add(IssueInvalidCoordinates, recordID, "")
		}
	}

	if rec.Latitude != nil && rec.Longitude != nil {
		return
	}

	geomStr := strings.TrimSpace(stringify(raw["geom"]))
	if geomStr == "" {
		return
	}

	g, err := wkt.Unmarshal(geomStr)
	if err != nil {
		n.issues.add(IssueInvalidGeomCoords, recordID, geomStr)
		return
	}
	point, ok := g.(*geom.Point)
	if !ok {
		n.issues.add(IssueInvalidGeomCoords, recordID, geomStr)
		return
	}

	coords := point.Coords()
	lon, lat := coords.X(), coords.Y()
	rec.Longitude = &lon
	rec.Latitude = &lat
	rec.HasValidCoordinates = inCaliforniaBox(lat, lon)

	zap.L().Debug("normalize: recovered coordinates from geom",
		zap.String("record_id", recordID),
		zap.Float64("latitude", lat),
		zap.Float64("longitude", lon),
	)
}

// assignBusinessID derives or synthesizes a business id and enforces batch
// uniqueness. Collisions keep the original under BusinessIDOriginal and
// suffix the active id with the record index.
func (n *Normalizer) assignBusinessID(raw model.RawRecord, rec *model.NormalizedRecord, index int, recordID string) string {
	id := strings.TrimSpace(stringify(raw["business_id"]))
	if id == "" {
		if sourceID := stringify(raw["id"]); sourceID != "" {
			id = "ca_biz_" + sourceID
		}
	}
	if id == "" {
		id = fmt.Sprintf("biz_%d_%d", index, nameHash(rec.BusinessName))
	}

	if n.seenIDs[id] {
		n.issues.add(IssueDuplicateBusinessID, recordID, id)
		rec.BusinessIDOriginal = id
		id = fmt.Sprintf("%s_%d", id, index)
	}
	n.seenIDs[id] = true
	return id
}

func cleanFranchise(raw model.RawRecord) (string, *bool) {
	v, present := raw["franchise"]
	if !present || v == nil {
		return "", nil
	}

	franchise := true
	independent := false
	switch strings.ToUpper(strings.TrimSpace(stringify(v))) {
	case "FRANCHISE", "CHAIN":
		return "FRANCHISE", &franchise
	case "INDEPENDENT", "LOCAL":
		return "INDEPENDENT", &independent
	case "":
		return "UNKNOWN", nil
	default:
		return strings.ToUpper(strings.TrimSpace(stringify(v))), nil
	}
}

func cleanRating(raw model.RawRecord) *float64 {
	v, present := raw["avg_rating"]
	if !present || v == nil {
		return nil
	}
	rating, ok := toFloat(v)
	if !ok || rating < 0.0 || rating > 5.0 {
		return nil
	}
	return &rating
}

func cleanBlockgroup(raw model.RawRecord) string {
	bg := strings.TrimSpace(stringify(raw["blockgroup"]))
	if bg == "" {
		return ""
	}
	if isAllDigits(bg) && len(bg) < 6 {
		bg = strings.Repeat("0", 6-len(bg)) + bg
	}
	return bg
}

func cleanPhone(raw model.RawRecord) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, stringify(raw["phone"]))
	if len(digits) != 10 {
		return ""
	}
	return digits
}

func inCaliforniaBox(lat, lon float64) bool {
	return lat >= minLat && lat <= maxLat && lon >= minLon && lon <= maxLon
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// nameHash gives a stable hash for synthesized ids. FNV rather than
// maphash so re-runs over the same input produce the same ids.
func nameHash(name string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return h.Sum32()
}

// stringify renders an arbitrary JSON value as a string, avoiding the
// "1.23e+07" and trailing ".0" artifacts float64 round-trips produce.
func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		if s == math.Trunc(s) && math.Abs(s) < 1e15 {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	case int:
		return float64(f), true
	case int64:
		return float64(f), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
