// Package model defines the record types flowing through the
// standardization pipeline.
package model

// RawRecord is a business record as read from the source export. No shape
// is guaranteed: exports differ in key names (name vs business_name,
// categories list vs category string) and value types. All validation and
// coercion happens at the normalize boundary.
type RawRecord map[string]any

// NormalizedRecord is a RawRecord after schema reconciliation and field
// validation. BusinessID is unique across the batch; optional fields are
// pointers so "absent" and "zero" stay distinguishable in JSON output.
type NormalizedRecord struct {
	BusinessID         string   `json:"business_id"`
	BusinessIDOriginal string   `json:"business_id_original,omitempty"`
	BusinessName       string   `json:"business_name,omitempty"`
	Category           string   `json:"category"`
	CategoriesRaw      []string `json:"categories_raw,omitempty"`

	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	// Blockgroup is zero-padded to six digits when the source value is
	// all-digit, so it joins cleanly against census block group tables.
	Blockgroup string `json:"blockgroup,omitempty"`

	Latitude            *float64 `json:"latitude,omitempty"`
	Longitude           *float64 `json:"longitude,omitempty"`
	HasValidCoordinates bool     `json:"has_valid_coordinates"`

	Phone string `json:"phone,omitempty"`
	URL   string `json:"url,omitempty"`

	FranchiseType string   `json:"franchise_type,omitempty"`
	IsFranchise   *bool    `json:"is_franchise,omitempty"`
	AvgRating     *float64 `json:"avg_rating,omitempty"`
}

// StandardizedRecord is a NormalizedRecord with its category classification
// merged in. Immutable once aggregation begins.
type StandardizedRecord struct {
	NormalizedRecord

	CategoryOriginal   string  `json:"category_original"`
	CategorySector     string  `json:"category_sector"`
	CategorySubsector  string  `json:"category_subsector"`
	CategoryConfidence float64 `json:"category_confidence"`
	CategoryMethod     Method  `json:"category_method"`
}

// Standardize attaches a classification to a normalized record.
func Standardize(rec NormalizedRecord, c Classification) StandardizedRecord {
	return StandardizedRecord{
		NormalizedRecord:   rec,
		CategoryOriginal:   c.OriginalCategory,
		CategorySector:     c.Sector,
		CategorySubsector:  c.Subsector,
		CategoryConfidence: c.Confidence,
		CategoryMethod:     c.Method,
	}
}
