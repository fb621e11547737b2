package normalize

// Issue type keys used in the quality log. The record itself is always
// retained; these only describe what was cleaned or nulled.
const (
	IssueMissingRequiredFields = "missing_required_fields"
	IssueEmptyBusinessName     = "empty_business_name"
	IssueLongBusinessName      = "long_business_name"
	IssueEmptyCategory         = "empty_category"
	IssueInvalidCoordinates    = "invalid_coordinates"
	IssueInvalidGeomCoords     = "invalid_geom_coordinates"
	IssueInvalidZipCode        = "invalid_zip_code"
	IssueDuplicateBusinessID   = "duplicate_business_id"
)

// Issue records one field-level problem on one record. Detail carries the
// offending field name or value when there is one.
type Issue struct {
	RecordID string `json:"record_id"`
	Detail   string `json:"detail,omitempty"`
}

// QualityReport summarizes the issue log for one pipeline run.
type QualityReport struct {
	TotalIssues    int                `json:"total_issues"`
	IssuesByType   map[string]int     `json:"issues_by_type"`
	DetailedIssues map[string][]Issue `json:"detailed_issues"`
}

// issueLog accumulates issues keyed by type. It belongs to a single
// Normalizer and therefore a single pipeline run; it is never shared.
type issueLog struct {
	byType map[string][]Issue
}

func newIssueLog() *issueLog {
	return &issueLog{byType: make(map[string][]Issue)}
}

func (l *issueLog) add(issueType, recordID, detail string) {
	l.byType[issueType] = append(l.byType[issueType], Issue{RecordID: recordID, Detail: detail})
}

func (l *issueLog) report() QualityReport {
	r := QualityReport{
		IssuesByType:   make(map[string]int, len(l.byType)),
		DetailedIssues: make(map[string][]Issue, len(l.byType)),
	}
	for t, issues := range l.byType {
		r.IssuesByType[t] = len(issues)
		r.DetailedIssues[t] = issues
		r.TotalIssues += len(issues)
	}
	return r
}
