// Package docgen generates proposal and report PDFs from pre-authored
// document templates: a template is copied, placeholder tokens are
// substituted, table rows are cloned from an example row, and the result is
// rendered to PDF. Only the PDF survives; the working copy is always
// removed.
package docgen

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Document is the template model: an ordered list of paragraphs and tables.
type Document struct {
	Elements []Element `json:"elements"`
}

// Element holds exactly one of a paragraph or a table.
type Element struct {
	Paragraph *Paragraph `json:"paragraph,omitempty"`
	Table     *Table     `json:"table,omitempty"`
}

type Paragraph struct {
	Text  string  `json:"text"`
	Bold  bool    `json:"bold,omitempty"`
	Size  float64 `json:"size,omitempty"`
	Align string  `json:"align,omitempty"` // "L", "C" or "R"
}

type Table struct {
	Rows []TableRow `json:"rows"`
}

type TableRow struct {
	Cells []TableCell `json:"cells"`
}

type TableCell struct {
	Text  string    `json:"text"`
	Attrs CellAttrs `json:"attrs,omitempty"`
}

// CellAttrs are the visual formatting attributes copied from a template row
// onto cloned rows.
type CellAttrs struct {
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Align  string  `json:"align,omitempty"`
	Fill   bool    `json:"fill,omitempty"`
}

// LoadDocument reads a template document from disk.
func LoadDocument(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid template document %s: %w", path, err)
	}
	return &doc, nil
}

// Save writes the document to disk.
func (d *Document) Save(path string) error {
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// ReplaceText substitutes every occurrence of token across all paragraphs
// and table cells.
func (d *Document) ReplaceText(token, value string) {
	for _, el := range d.Elements {
		if el.Paragraph != nil {
			el.Paragraph.Text = strings.ReplaceAll(el.Paragraph.Text, token, value)
		}
		if el.Table != nil {
			for i := range el.Table.Rows {
				for j := range el.Table.Rows[i].Cells {
					cell := &el.Table.Rows[i].Cells[j]
					cell.Text = strings.ReplaceAll(cell.Text, token, value)
				}
			}
		}
	}
}

// Tables returns every table in document order.
func (d *Document) Tables() []*Table {
	var tables []*Table
	for _, el := range d.Elements {
		if el.Table != nil {
			tables = append(tables, el.Table)
		}
	}
	return tables
}

// FindServicesTable returns the first table whose header row's second cell
// contains the marker substring, case-insensitively. This is how the
// services table is told apart from any other table in a template. Returns
// nil when no table qualifies.
func (d *Document) FindServicesTable(marker string) *Table {
	upperMarker := strings.ToUpper(marker)
	for _, table := range d.Tables() {
		if len(table.Rows) == 0 || len(table.Rows[0].Cells) <= 1 {
			continue
		}
		if strings.Contains(strings.ToUpper(table.Rows[0].Cells[1].Text), upperMarker) {
			return table
		}
	}
	return nil
}

// AppendClonedRow appends a row with the given cell texts, copying visual
// attributes index-for-index from the template row. The attribute copy
// stops silently once the template row runs out of cells.
func (t *Table) AppendClonedRow(template TableRow, texts []string) {
	row := TableRow{}
	for i, text := range texts {
		cell := TableCell{Text: text}
		if i < len(template.Cells) {
			cell.Attrs = template.Cells[i].Attrs
		}
		row.Cells = append(row.Cells, cell)
	}
	t.Rows = append(t.Rows, row)
}

// InsertRow inserts a row at the given index.
func (t *Table) InsertRow(index int, row TableRow) {
	if index < 0 || index > len(t.Rows) {
		index = len(t.Rows)
	}
	t.Rows = append(t.Rows[:index], append([]TableRow{row}, t.Rows[index:]...)...)
}

// RemoveRow deletes the row at the given index, if it exists.
func (t *Table) RemoveRow(index int) {
	if index < 0 || index >= len(t.Rows) {
		return
	}
	t.Rows = append(t.Rows[:index], t.Rows[index+1:]...)
}

// asText renders a heterogeneous JSON value into cell text; whole numbers
// lose their decimal part the way spreadsheet cells display them.
func asText(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case int:
		return strconv.Itoa(c)
	default:
		return fmt.Sprintf("%v", c)
	}
}
