package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `<html><body>
<table id="colleges">
<tbody>
<tr>
  <td>Alpha Institute of Technology</td>
  <td>Jaipur</td>
  <td>Government</td>
  <td>4.5</td>
  <td>JEE Main</td>
  <td>5,500</td>
  <td>5,200</td>
  <td>5,000</td>
  <td>850,000</td>
  <td>4,300,000</td>
  <td>Microsoft, Amazon</td>
  <td>Hostel, Library</td>
  <td>B.Tech CSE: 178000; B.Tech ECE: 178000</td>
</tr>
<tr>
  <td>Beta College of Engineering</td>
  <td>Kota</td>
  <td>Private</td>
  <td>3.9</td>
  <td>REAP</td>
  <td></td>
  <td>13,500</td>
  <td>12,500</td>
  <td>420,000</td>
  <td>1,200,000</td>
  <td>Infosys</td>
  <td>Hostel</td>
  <td>B.Tech Civil: 82000</td>
</tr>
</tbody>
</table>
</body></html>`

func writeHTML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "listing.html")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseFile(t *testing.T) {
	records, err := parseFile(writeHTML(t, sampleHTML))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Alpha Institute of Technology", first.Name)
	assert.Equal(t, "Jaipur", first.Location)
	assert.Equal(t, 4.5, first.Rating)
	assert.Equal(t, "JEE Main", first.Admission.Exam)
	assert.Equal(t, map[string]float64{"2021": 5500, "2022": 5200, "2023": 5000}, first.Admission.Cutoff)
	assert.Equal(t, 850000.0, first.Placements.AveragePackage)
	assert.Equal(t, []string{"Microsoft", "Amazon"}, first.Placements.TopRecruiters)
	require.Len(t, first.Courses, 2)
	assert.Equal(t, "B.Tech CSE", first.Courses[0].Name)
	assert.Equal(t, 178000.0, first.Courses[0].AnnualFee)

	// Empty cutoff cells are omitted, not recorded as zero.
	second := records[1]
	assert.Equal(t, map[string]float64{"2022": 13500, "2023": 12500}, second.Admission.Cutoff)
}

func TestParseFile_NoRows(t *testing.T) {
	_, err := parseFile(writeHTML(t, "<html><body><p>nothing here</p></body></html>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no college rows found")
}

func TestParseFile_BadNumber(t *testing.T) {
	bad := `<table id="colleges"><tbody><tr>
		<td>X</td><td>Y</td><td>Z</td><td>not-a-number</td><td>JEE Main</td>
		<td></td><td></td><td>5000</td><td>1</td><td>2</td><td></td><td></td><td></td>
	</tr></tbody></table>`
	_, err := parseFile(writeHTML(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rating")
}

func TestImportFiles_MergesInInputOrder(t *testing.T) {
	first := writeHTML(t, sampleHTML)
	second := writeHTML(t, sampleHTML)

	records, err := importFiles([]string{first, second})
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "Alpha Institute of Technology", records[0].Name)
	assert.Equal(t, "Alpha Institute of Technology", records[2].Name)
}

func TestImportFiles_MissingFile(t *testing.T) {
	_, err := importFiles([]string{filepath.Join(t.TempDir(), "nope.html")})
	require.Error(t, err)
}

func TestParseCourses(t *testing.T) {
	courses, err := parseCourses("A: 100; B: 200;")
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "A", courses[0].Name)
	assert.Equal(t, 200.0, courses[1].AnnualFee)

	_, err = parseCourses("no fee here")
	require.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a , b ,"))
	assert.Nil(t, splitList(""))
}
