// PDF renderer.
// Lays the records out as a two-column table using gofpdf.

package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/dictexport/core"
)

const (
	pdfWordWidth = 70.0
	pdfRowHeight = 7.0
)

// PDFRenderer renders records as a PDF table.
//
// The built-in Helvetica font only covers the cp1252 code page; other
// characters (Cyrillic translations, for one) need FontPath to point at a
// UTF-8 TrueType font.
type PDFRenderer struct {
	FontPath string
}

// NewPDFRenderer creates a PDFRenderer. fontPath may be empty.
func NewPDFRenderer(fontPath string) *PDFRenderer {
	return &PDFRenderer{FontPath: fontPath}
}

// Render converts records into PDF bytes.
func (r *PDFRenderer) Render(records []core.Record) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if r.FontPath != "" {
		family = "body"
		pdf.AddUTF8Font(family, "", r.FontPath)
		pdf.AddUTF8Font(family, "B", r.FontPath)
		tr = func(s string) string { return s }
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	translationWidth := pageWidth - left - right - pdfWordWidth

	header := func() {
		pdf.SetFont(family, "B", 10)
		pdf.SetFillColor(235, 235, 235)
		pdf.CellFormat(pdfWordWidth, pdfRowHeight, tr("Word"), "1", 0, "L", true, 0, "")
		pdf.CellFormat(translationWidth, pdfRowHeight, tr("Translation"), "1", 1, "L", true, 0, "")
		pdf.SetFont(family, "", 10)
	}
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			header()
		}
	})

	pdf.AddPage()
	pdf.SetFont(family, "B", 18)
	pdf.MultiCell(0, 8, tr("Dictionary"), "", "L", false)
	pdf.SetFont(family, "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, tr(strconv.Itoa(len(records))+" words"), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	header()
	for _, rec := range records {
		pdf.CellFormat(pdfWordWidth, pdfRowHeight, tr(rec.Word), "1", 0, "L", false, 0, "")
		pdf.CellFormat(translationWidth, pdfRowHeight, tr(rec.Translation), "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}
