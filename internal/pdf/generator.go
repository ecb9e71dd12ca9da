package pdf

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/fleet-reports/internal/model"
)

const (
	fontName   = "Helvetica"
	rowHeight  = 7.0
	margin     = 15.0
	maxColumns = 12
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: fontName}
}

func (g *Generator) Generate(table model.Table) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, text(pdf, table.Title), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	if len(table.Summary) > 0 {
		pdf.SetFont(g.fontName, "", 10)
		for _, field := range table.Summary {
			g.ensureSpace(pdf, rowHeight)
			pdf.SetFont(g.fontName, "B", 10)
			pdf.CellFormat(80, 6, text(pdf, field.Label), "", 0, "L", false, 0, "")
			pdf.SetFont(g.fontName, "", 10)
			pdf.CellFormat(0, 6, text(pdf, model.CellText(field.Value)), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	for _, section := range table.Sections {
		g.drawSection(pdf, section)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) drawSection(pdf *gofpdf.Fpdf, section model.Section) {
	g.ensureSpace(pdf, 8+2*rowHeight)
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, text(pdf, section.Name), "", 1, "L", false, 0, "")

	headers := section.Headers
	if len(headers) > maxColumns {
		headers = headers[:maxColumns]
	}
	if len(headers) == 0 {
		return
	}

	pageWidth, _ := pdf.GetPageSize()
	width := (pageWidth - 2*margin) / float64(len(headers))
	widths := make([]float64, len(headers))
	for i := range widths {
		widths[i] = width
	}

	drawTableRow(pdf, g.fontName, headers, widths, true)
	for _, row := range section.Rows {
		if g.ensureSpace(pdf, rowHeight) {
			drawTableRow(pdf, g.fontName, headers, widths, true)
		}
		cols := make([]string, len(headers))
		for i := range cols {
			if i < len(row) {
				cols[i] = model.CellText(row[i])
			}
		}
		drawTableRow(pdf, g.fontName, cols, widths, false)
	}
	pdf.Ln(4)
}

// ensureSpace starts a new page when fewer than height millimetres remain and
// reports whether it did.
func (g *Generator) ensureSpace(pdf *gofpdf.Fpdf, height float64) bool {
	_, pageHeight := pdf.GetPageSize()
	if pdf.GetY()+height <= pageHeight-margin {
		return false
	}
	pdf.AddPage()
	return true
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	fontSize := 9.0
	if len(cols) > 8 {
		fontSize = 7
	}
	pdf.SetFont(fontName, style, fontSize)
	for i, col := range cols {
		align := "L"
		if !header && looksNumeric(col) {
			align = "R"
		}
		pdf.CellFormat(widths[i], rowHeight, fit(pdf, text(pdf, col), widths[i]-2), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

// fit trims value until it renders within width.
func fit(pdf *gofpdf.Fpdf, value string, width float64) string {
	if pdf.GetStringWidth(value) <= width {
		return value
	}
	runes := []rune(value)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"..") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ".."
}

// text converts UTF-8 to the cp1252 encoding the core fonts expect.
func text(pdf *gofpdf.Fpdf, value string) string {
	return pdf.UnicodeTranslatorFromDescriptor("")(value)
}

func looksNumeric(value string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	return err == nil
}
