package docgen

import (
	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth  = 210.0 // A4 portrait, mm
	margin     = 10.0
	lineHeight = 6.0
	rowHeight  = 7.0
)

// renderPDF writes the document as an A4 PDF. Core fonts cover the
// Portuguese accented characters through the cp1252 translator.
func renderPDF(doc *Document, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, el := range doc.Elements {
		if el.Paragraph != nil {
			renderParagraph(pdf, tr, el.Paragraph)
		}
		if el.Table != nil {
			renderTable(pdf, tr, el.Table)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderParagraph(pdf *gofpdf.Fpdf, tr func(string) string, p *Paragraph) {
	size := p.Size
	if size == 0 {
		size = 11
	}
	style := ""
	if p.Bold {
		style = "B"
	}
	align := p.Align
	if align == "" {
		align = "L"
	}

	pdf.SetFont("Helvetica", style, size)
	if p.Text == "" {
		pdf.Ln(lineHeight)
		return
	}
	pdf.MultiCell(0, lineHeight, tr(p.Text), "", align, false)
	pdf.Ln(2)
}

func renderTable(pdf *gofpdf.Fpdf, tr func(string) string, t *Table) {
	cols := 0
	for _, row := range t.Rows {
		if len(row.Cells) > cols {
			cols = len(row.Cells)
		}
	}
	if cols == 0 {
		return
	}
	colWidth := (pageWidth - 2*margin) / float64(cols)

	pdf.SetFillColor(230, 230, 230)
	for _, row := range t.Rows {
		for _, cell := range row.Cells {
			attrs := cell.Attrs
			size := attrs.Size
			if size == 0 {
				size = 10
			}
			style := ""
			if attrs.Bold {
				style += "B"
			}
			if attrs.Italic {
				style += "I"
			}
			align := attrs.Align
			if align == "" {
				align = "L"
			}
			pdf.SetFont("Helvetica", style, size)
			pdf.CellFormat(colWidth, rowHeight, tr(cell.Text), "1", 0, align, attrs.Fill, 0, "")
		}
		pdf.Ln(rowHeight)
	}
	pdf.Ln(2)
}
