// Package intent classifies one line of user text into a coarse intent and
// extracts its structured parameters (score, college name fragment, year,
// exam).
package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent is the coarse tag assigned to a user utterance.
type Intent string

// Recognized intents, in classification priority order.
const (
	Greeting    Intent = "greeting"
	Eligibility Intent = "eligibility"
	BestCollege Intent = "best_college"
	Cutoff      Intent = "cutoff"
	Fees        Intent = "fees"
	Salary      Intent = "salary"
	Information Intent = "information"
	General     Intent = "general"
)

// DefaultYear is assumed when the utterance carries no supported year token.
const DefaultYear = "2023"

// Params are the structured values extracted from an utterance. Score and
// College use HasScore / empty string to distinguish "absent" from a zero
// value.
type Params struct {
	Score    int64
	HasScore bool
	College  string
	Year     string
	Exam     string
}

var (
	digitRe = regexp.MustCompile(`[0-9]+`)

	// College fragments are only captured after one of the trigger words;
	// the fragment is the run of letters and spaces that follows.
	collegeRe = regexp.MustCompile(`(?i)(?:cutoff|information|fees|package|salary|life|placements|recruiters).*?\b([A-Za-z\s]+)\b`)

	// Years are matched literally against the supported set.
	yearRe = regexp.MustCompile(`\b(2023|2022|2021)\b`)

	greetingRe = regexp.MustCompile(`\b(hi|hello|hey|howdy)\b`)
)

// rule pairs a predicate with the intent it assigns. Rules are evaluated
// top-down; the first match wins.
type rule struct {
	intent Intent
	match  func(lower string) bool
}

func contains(substr string) func(string) bool {
	return func(lower string) bool { return strings.Contains(lower, substr) }
}

func containsAny(substrs ...string) func(string) bool {
	return func(lower string) bool {
		for _, s := range substrs {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}
}

var rules = []rule{
	{Greeting, func(lower string) bool {
		return greetingRe.MatchString(lower) || strings.Contains(lower, "what's up")
	}},
	{Eligibility, contains("which colleges can i get")},
	{BestCollege, contains("which college is best")},
	{Cutoff, contains("cutoff")},
	{Fees, contains("fees")},
	{Salary, containsAny("median salary", "average package")},
	{Information, contains("information")},
}

// Parse classifies one line of input and extracts its parameters. The exams
// argument is the set of admission exam identifiers known to the catalog, in
// catalog order; the first one whose name appears in the input is taken.
func Parse(input string, exams []string) (Intent, Params) {
	lower := strings.ToLower(input)

	tag := General
	for _, r := range rules {
		if r.match(lower) {
			tag = r.intent
			break
		}
	}

	return tag, extractParams(input, lower, exams)
}

func extractParams(input, lower string, exams []string) Params {
	p := Params{Year: DefaultYear}

	// All digit characters in the input form one concatenated number. An
	// utterance whose digits overflow int64 is treated as having no score.
	if digits := digitRe.FindAllString(input, -1); len(digits) > 0 {
		if n, err := strconv.ParseInt(strings.Join(digits, ""), 10, 64); err == nil {
			p.Score = n
			p.HasScore = true
		}
	}

	if m := collegeRe.FindStringSubmatch(input); m != nil {
		p.College = strings.TrimSpace(m[1])
	}

	if m := yearRe.FindString(input); m != "" {
		p.Year = m
	}

	for _, exam := range exams {
		if strings.Contains(lower, strings.ToLower(exam)) {
			p.Exam = exam
			break
		}
	}

	return p
}
