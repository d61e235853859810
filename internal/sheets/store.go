// Package sheets provides access to the tabular store backing the intranet:
// named sheets whose first row declares the column names and whose data rows
// hold heterogeneous cell values (strings, numbers or empty cells).
package sheets

import (
	"context"
	"strconv"
	"strings"
)

// Sheet is a point-in-time snapshot of one named table. Rows holds only the
// data rows; Headers is the header row. Cell values are string, float64 or
// nil depending on what was stored.
type Sheet struct {
	Name    string          `json:"sheetName"`
	Headers []string        `json:"headers"`
	Rows    [][]interface{} `json:"rows"`
}

// Col resolves a column name to its index, or -1 when the sheet has no such
// column. Resolution is case-sensitive, matching the stored header text.
func (s *Sheet) Col(name string) int {
	for i, h := range s.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or nil when either index is out of
// range. Short rows behave as if padded with empty cells.
func (s *Sheet) Cell(row, col int) interface{} {
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row]) {
		return nil
	}
	return s.Rows[row][col]
}

// Store defines the operations any tabular store implementation must
// satisfy. Row indices are 0-based positions within the data rows as
// returned by Read; the header row is not addressable.
type Store interface {
	// Read returns a snapshot of the named sheet, or (nil, nil) when the
	// sheet does not exist.
	Read(ctx context.Context, name string) (*Sheet, error)

	// CreateSheet creates an empty sheet with the given header row. It is
	// an error if the sheet already exists.
	CreateSheet(ctx context.Context, name string, headers []string) error

	// AppendRow appends one data row to the named sheet.
	AppendRow(ctx context.Context, name string, row []interface{}) error

	// UpdateCell overwrites a single cell of an existing data row.
	UpdateCell(ctx context.Context, name string, row, col int, value interface{}) error

	// DeleteRow removes one data row; later rows shift up by one position.
	DeleteRow(ctx context.Context, name string, row int) error
}

// CellText renders a cell value the way the period and status filters
// compare it: numbers lose any trailing ".0" so a numeric year 2024 equals
// the string "2024".
func CellText(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case bool:
		return strconv.FormatBool(c)
	default:
		return ""
	}
}

// NormalizeText trims and lower-cases a cell for case-insensitive matching.
func NormalizeText(v interface{}) string {
	return strings.ToLower(strings.TrimSpace(CellText(v)))
}
