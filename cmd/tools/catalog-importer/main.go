// Command catalog-importer converts saved HTML college listings into the
// catalog JSON document the advisor loads at start-up.
//
// Each input file is expected to contain a table with id "colleges" whose
// rows carry the columns: name, location, type, rating, exam, cutoff 2021,
// cutoff 2022, cutoff 2023, average package, highest package, recruiters
// (comma separated), facilities (comma separated), courses ("Name: fee"
// items separated by semicolons). Empty cutoff cells are omitted from the
// record.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/college-advisor/internal/catalog"
	"github.com/jonathan/college-advisor/internal/types"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "colleges.json", "Path to write the catalog JSON")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: catalog-importer [--out colleges.json] file1.html [file2.html ...]")
		os.Exit(1)
	}

	records, err := importFiles(files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Run the records through the same invariant checks the advisor applies
	// at start-up, so a bad export is caught here instead of there.
	if _, err := catalog.New(records); err != nil {
		fmt.Fprintf(os.Stderr, "Error: imported catalog is invalid: %v\n", err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to marshal catalog: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to write %s: %v\n", outPath, err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d colleges from %d file(s) into %s\n", len(records), len(files), outPath)
}

// importFiles parses every input file concurrently and merges the results in
// input order.
func importFiles(files []string) ([]types.CollegeRecord, error) {
	perFile := make([][]types.CollegeRecord, len(files))

	var g errgroup.Group
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			records, err := parseFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			perFile[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []types.CollegeRecord
	for _, records := range perFile {
		merged = append(merged, records...)
	}
	return merged, nil
}

func parseFile(path string) ([]types.CollegeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var records []types.CollegeRecord
	var rowErr error
	doc.Find("table#colleges tbody tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		record, err := parseRow(row)
		if err != nil {
			rowErr = fmt.Errorf("row %d: %w", i+1, err)
			return false
		}
		records = append(records, record)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no college rows found")
	}
	return records, nil
}

func parseRow(row *goquery.Selection) (types.CollegeRecord, error) {
	cells := row.Find("td").Map(func(_ int, cell *goquery.Selection) string {
		return strings.TrimSpace(cell.Text())
	})
	if len(cells) < 13 {
		return types.CollegeRecord{}, fmt.Errorf("expected 13 columns, got %d", len(cells))
	}

	rating, err := parseNumber(cells[3], "rating")
	if err != nil {
		return types.CollegeRecord{}, err
	}
	avgPackage, err := parseNumber(cells[8], "average package")
	if err != nil {
		return types.CollegeRecord{}, err
	}
	highPackage, err := parseNumber(cells[9], "highest package")
	if err != nil {
		return types.CollegeRecord{}, err
	}

	cutoff := make(map[string]float64)
	for i, year := range []string{"2021", "2022", "2023"} {
		cell := cells[5+i]
		if cell == "" {
			continue
		}
		v, err := parseNumber(cell, "cutoff "+year)
		if err != nil {
			return types.CollegeRecord{}, err
		}
		cutoff[year] = v
	}

	courses, err := parseCourses(cells[12])
	if err != nil {
		return types.CollegeRecord{}, err
	}

	return types.CollegeRecord{
		Name:     cells[0],
		Location: cells[1],
		Type:     cells[2],
		Rating:   rating,
		Admission: types.Admission{
			Exam:   cells[4],
			Cutoff: cutoff,
		},
		Placements: types.Placements{
			AveragePackage: avgPackage,
			HighestPackage: highPackage,
			TopRecruiters:  splitList(cells[10]),
		},
		Facilities: splitList(cells[11]),
		Courses:    courses,
	}, nil
}

// parseCourses splits a cell like "B.Tech CSE: 250000; B.Tech ECE: 180000".
func parseCourses(cell string) ([]types.Course, error) {
	var courses []types.Course
	for _, item := range strings.Split(cell, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, feeText, ok := strings.Cut(item, ":")
		if !ok {
			return nil, fmt.Errorf("malformed course %q", item)
		}
		fee, err := parseNumber(strings.TrimSpace(feeText), "course fee")
		if err != nil {
			return nil, err
		}
		courses = append(courses, types.Course{
			Name:      strings.TrimSpace(name),
			AnnualFee: fee,
		})
	}
	return courses, nil
}

func parseNumber(s, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", field, s)
	}
	return v, nil
}

func splitList(cell string) []string {
	var out []string
	for _, item := range strings.Split(cell, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
