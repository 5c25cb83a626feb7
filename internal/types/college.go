// Package types defines the shared data structures for the college advisor.
package types

// CollegeRecord is one catalog entry for an institution. Records are loaded
// once at start-up and are read-only afterwards; no component writes back
// into a record.
type CollegeRecord struct {
	Name       string     `json:"name" validate:"required"`
	Location   string     `json:"location"`
	Type       string     `json:"type"`
	Rating     float64    `json:"rating" validate:"gte=0"`
	Admission  Admission  `json:"admission"`
	Placements Placements `json:"placements"`
	Facilities []string   `json:"facilities"`
	Courses    []Course   `json:"courses" validate:"dive"`
}

// Admission holds the gating exam and the per-year cutoff figures for a
// college. The cutoff map is sparse; not every year need be present.
type Admission struct {
	Exam   string             `json:"exam" validate:"required"`
	Cutoff map[string]float64 `json:"cutoff"`
}

// Placements holds annual compensation figures and recruiter names.
type Placements struct {
	AveragePackage float64  `json:"average_package" validate:"gte=0"`
	HighestPackage float64  `json:"highest_package" validate:"gte=0"`
	TopRecruiters  []string `json:"top_recruiters"`
}

// Course is a degree program with its annual fee.
type Course struct {
	Name      string  `json:"name" validate:"required"`
	AnnualFee float64 `json:"annual_fee" validate:"gte=0"`
}

// CutoffFor returns the cutoff for the given year, and whether the college
// has a figure for that year at all.
func (c *CollegeRecord) CutoffFor(year string) (float64, bool) {
	v, ok := c.Admission.Cutoff[year]
	return v, ok
}

// EligibleSet is the ordered subset of the catalog matching the most recent
// score/exam query. A nil *EligibleSet means no eligibility query has been
// issued yet; a non-nil set with no colleges means a query ran and matched
// nothing. The two states are reported differently.
type EligibleSet struct {
	Exam     string
	Score    int64
	Colleges []CollegeRecord
}

// Empty reports whether the set contains no colleges.
func (s *EligibleSet) Empty() bool {
	return s == nil || len(s.Colleges) == 0
}
