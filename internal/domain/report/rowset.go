package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RowSet is one tabular report: a named sheet of ordered rows of
// text/number cells. Cells are string, int or float64; nil serializes to
// the empty string.
type RowSet struct {
	Name string
	Rows [][]any
}

// CSV serializes the row-set as delimited text: fields joined by comma,
// rows by newline, double-quote enclosure with internal quotes doubled.
// POST: Returns the encoded bytes or a hard error; no partial output
func (rs RowSet) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range rs.Rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = CellString(cell)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("encode %s row: %w", rs.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode %s: %w", rs.Name, err)
	}
	return buf.Bytes(), nil
}

// CellString renders a single cell for delimited output. nil becomes the
// empty string, numbers keep their numeric form, everything else uses
// its default textual representation.
func CellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func formatPercent(pct int) string {
	return strconv.Itoa(pct) + "%"
}

var filenameStrip = regexp.MustCompile(`[^a-zA-Z0-9\s-]+`)

// ExportFilename derives a download filename from a team display name:
// non-alphanumeric/non-space/non-hyphen characters stripped, whitespace
// collapsed, defaulting to "Team", with a report-specific suffix
// appended (e.g. "_Attendance.xlsx").
func ExportFilename(teamName, suffix string) string {
	base := filenameStrip.ReplaceAllString(teamName, "")
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		base = "Team"
	}
	return base + suffix
}
