// Package observability provides formatted output utilities for verbose CLI
// mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/college-advisor/internal/recommend"
	"github.com/jonathan/college-advisor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCollege outputs a human-readable summary of one catalog record.
func (p *Printer) PrintCollege(college *types.CollegeRecord) {
	if college == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Location: %s\n", college.Location))
	sb.WriteString(fmt.Sprintf("Type:     %s\n", college.Type))
	sb.WriteString(fmt.Sprintf("Rating:   %.1f\n", college.Rating))
	sb.WriteString(fmt.Sprintf("Exam:     %s\n", college.Admission.Exam))
	sb.WriteString(fmt.Sprintf("Avg pkg:  %.0f\n", college.Placements.AveragePackage))
	sb.WriteString(fmt.Sprintf("High pkg: %.0f", college.Placements.HighestPackage))

	p.printBox(college.Name, sb.String())
}

// PrintEligibleSet outputs the colleges matched by the last eligibility
// query, truncated for readability.
func (p *Printer) PrintEligibleSet(set *types.EligibleSet) {
	if set == nil {
		return
	}

	var sb strings.Builder
	count := min(len(set.Colleges), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("• %s\n", set.Colleges[i].Name))
	}
	if len(set.Colleges) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(set.Colleges)-maxItemsToShow))
	}
	if len(set.Colleges) == 0 {
		sb.WriteString("(no matches)\n")
	}

	title := fmt.Sprintf("Eligible for %s (score %d)", set.Exam, set.Score)
	p.printBox(title, strings.TrimRight(sb.String(), "\n"))
}

// PrintRecommendation outputs the composite score breakdown of a scored set.
func (p *Printer) PrintRecommendation(rec *recommend.Recommendation) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	count := min(len(rec.Ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		marker := " "
		if rec.Ranked[i].College.Name == rec.Best.College.Name {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %.3f  %s\n", marker, rec.Ranked[i].Composite, rec.Ranked[i].College.Name))
	}
	if len(rec.Ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(rec.Ranked)-maxItemsToShow))
	}

	p.printBox("Composite scores", strings.TrimRight(sb.String(), "\n"))
}
