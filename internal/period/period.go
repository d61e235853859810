// Package period matches sheet rows against a {month, year} reporting
// period using trimmed, case-insensitive string comparison.
package period

import (
	"strings"

	"github.com/brexcellence/intranet-server/internal/sheets"
)

// Month and year column names shared by every financial sheet.
const (
	MonthColumn = "MES"
	YearColumn  = "ANO"
)

// Period identifies a reporting period. Both fields are compared as
// strings: the month case-insensitively, the year by trimmed equality, so
// a numeric 2024 cell matches the string "2024".
type Period struct {
	Mes string `json:"mes" form:"mes"`
	Ano string `json:"ano" form:"ano"`
}

// IsZero reports whether the period is absent (either field empty).
func (p Period) IsZero() bool {
	return strings.TrimSpace(p.Mes) == "" || strings.TrimSpace(p.Ano) == ""
}

// HasColumns reports whether the sheet carries both period columns. When it
// does not, filtering degrades to match-everything; callers log that.
func HasColumns(sheet *sheets.Sheet) bool {
	return sheet.Col(MonthColumn) != -1 && sheet.Col(YearColumn) != -1
}

// MatchesRow reports whether the data row at index belongs to the period.
// Sheets without period columns match unconditionally.
func (p Period) MatchesRow(sheet *sheets.Sheet, row int) bool {
	mesCol := sheet.Col(MonthColumn)
	anoCol := sheet.Col(YearColumn)
	if mesCol == -1 || anoCol == -1 {
		return true
	}

	mes := sheets.NormalizeText(sheet.Cell(row, mesCol))
	ano := strings.TrimSpace(sheets.CellText(sheet.Cell(row, anoCol)))

	return mes == strings.ToLower(strings.TrimSpace(p.Mes)) &&
		ano == strings.TrimSpace(p.Ano)
}
