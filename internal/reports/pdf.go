package reports

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// renderPDF собирает постраничный документ: по озаглавленному разделу на вид
// записи, таблица с сеткой, на продолжениях раздела шапка повторяется.
func renderPDF(tables []Table) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	// кириллица в данных: базовые шрифты рисуют только однобайтовые кодировки
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1251")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("SETA report - page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.SetAutoPageBreak(false, 15)

	pageW, pageH := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right
	const rowH = 6.0

	for _, t := range tables {
		pdf.AddPage()
		writeSectionTitle(pdf, t.Title)

		colW := usable / float64(len(t.Columns))
		writeHeaderRow(pdf, t.Columns, colW, rowH)

		for _, row := range t.Rows {
			if pdf.GetY()+rowH > pageH-15 {
				pdf.AddPage()
				writeSectionTitle(pdf, t.Title+" (cont.)")
				writeHeaderRow(pdf, t.Columns, colW, rowH)
			}
			pdf.SetFont("Helvetica", "", 8)
			for _, cell := range row {
				pdf.CellFormat(colW, rowH, tr(truncate(cell, colW)), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func writeHeaderRow(pdf *gofpdf.Fpdf, columns []string, colW, rowH float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(221, 230, 240)
	for _, col := range columns {
		pdf.CellFormat(colW, rowH, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

// truncate грубо обрезает значение, не влезающее в ячейку.
func truncate(s string, colW float64) string {
	max := int(colW / 1.6)
	r := []rune(s)
	if max < 4 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
