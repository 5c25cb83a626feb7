// Package catalog loads the college catalog from a JSON document and serves
// read-only lookups over it.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/college-advisor/internal/types"
)

// Catalog is the immutable in-memory collection of college records. It is
// loaded once at start-up; a missing or malformed source is a fatal start-up
// error, not a per-query error.
type Catalog struct {
	colleges []types.CollegeRecord
	byName   map[string]int
	exams    []string
}

// Load reads and validates the catalog document at path.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var colleges []types.CollegeRecord
	if err := json.Unmarshal(data, &colleges); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}

	return New(colleges)
}

// New builds a catalog from already-decoded records, enforcing the record
// invariants: non-empty unique names, a gating exam per record, and
// non-negative numeric fields.
func New(colleges []types.CollegeRecord) (*Catalog, error) {
	if len(colleges) == 0 {
		return nil, fmt.Errorf("catalog contains no colleges")
	}

	validate := validator.New()

	c := &Catalog{
		colleges: colleges,
		byName:   make(map[string]int, len(colleges)),
	}

	seenExams := make(map[string]bool)
	for i := range colleges {
		rec := &colleges[i]
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("invalid college record %q: %w", rec.Name, err)
		}
		if _, dup := c.byName[rec.Name]; dup {
			return nil, fmt.Errorf("duplicate college name %q", rec.Name)
		}
		c.byName[rec.Name] = i

		if exam := rec.Admission.Exam; !seenExams[exam] {
			seenExams[exam] = true
			c.exams = append(c.exams, exam)
		}
	}

	return c, nil
}

// Len returns the number of colleges in the catalog.
func (c *Catalog) Len() int {
	return len(c.colleges)
}

// Colleges returns the records in catalog order. The returned slice is a
// copy; the records themselves must be treated as read-only.
func (c *Catalog) Colleges() []types.CollegeRecord {
	out := make([]types.CollegeRecord, len(c.colleges))
	copy(out, c.colleges)
	return out
}

// Names returns the canonical college names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.colleges))
	for i := range c.colleges {
		names[i] = c.colleges[i].Name
	}
	return names
}

// Exams returns the distinct admission exam identifiers in first-encountered
// catalog order.
func (c *Catalog) Exams() []string {
	out := make([]string, len(c.exams))
	copy(out, c.exams)
	return out
}

// ByName looks up a college by its canonical name.
func (c *Catalog) ByName(name string) (types.CollegeRecord, bool) {
	i, ok := c.byName[name]
	if !ok {
		return types.CollegeRecord{}, false
	}
	return c.colleges[i], true
}
