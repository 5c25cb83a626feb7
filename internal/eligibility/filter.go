// Package eligibility filters the catalog down to the colleges a score
// qualifies for under an exam's cutoff rule.
package eligibility

import (
	"fmt"
	"strings"

	"github.com/jonathan/college-advisor/internal/catalog"
	"github.com/jonathan/college-advisor/internal/types"
)

// ReferenceYear is the cutoff year used for eligibility decisions,
// independent of any year mentioned in the query.
const ReferenceYear = "2023"

// DisplayLimit caps how many eligible colleges are shown to the user. The
// full set is still retained for recommendation scoring.
const DisplayLimit = 10

// Rule describes how a score relates to a cutoff for a family of exams.
type Rule int

// Cutoff comparison rules.
const (
	// RankBased exams admit when the score/rank meets or exceeds the cutoff.
	RankBased Rule = iota
	// MarksBased exams admit when the score is at or below the cutoff.
	MarksBased
)

// examRules maps the known exam identifiers to their cutoff rule.
var examRules = map[string]Rule{
	"jee main": RankBased,
	"reap":     RankBased,
	"met":      RankBased,
	"bitsat":   MarksBased,
}

// UnsupportedExamError reports an exam identifier with no known cutoff rule.
// It is a per-query condition, distinct from an empty result.
type UnsupportedExamError struct {
	Exam string
}

func (e *UnsupportedExamError) Error() string {
	return fmt.Sprintf("no cutoff rule known for exam %q", e.Exam)
}

// Supported reports whether a cutoff rule is known for the exam.
func Supported(exam string) bool {
	_, ok := examRules[strings.ToLower(exam)]
	return ok
}

// Filter returns the colleges whose admission exam equals exam and whose
// ReferenceYear cutoff admits the score, in catalog order. Colleges missing
// a cutoff for the reference year cannot be evaluated and are excluded. An
// empty result is valid and distinct from an unsupported exam.
func Filter(cat *catalog.Catalog, score int64, exam string) (*types.EligibleSet, error) {
	rule, ok := examRules[strings.ToLower(exam)]
	if !ok {
		return nil, &UnsupportedExamError{Exam: exam}
	}

	set := &types.EligibleSet{Exam: exam, Score: score}
	for _, college := range cat.Colleges() {
		if !strings.EqualFold(college.Admission.Exam, exam) {
			continue
		}
		cutoff, ok := college.CutoffFor(ReferenceYear)
		if !ok {
			continue
		}
		if admits(rule, float64(score), cutoff) {
			set.Colleges = append(set.Colleges, college)
		}
	}

	return set, nil
}

func admits(rule Rule, score, cutoff float64) bool {
	switch rule {
	case MarksBased:
		return score <= cutoff
	default:
		return score >= cutoff
	}
}
