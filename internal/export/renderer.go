package export

import (
	"fmt"

	"github.com/nurpe/fleet-reports/internal/model"
)

// TableGenerator turns a table into a binary document.
type TableGenerator interface {
	Generate(table model.Table) ([]byte, error)
}

// Renderer dispatches a table to the writer for the requested format. CSV is
// written in this package, the binary formats by the injected generators.
type Renderer struct {
	excel TableGenerator
	pdf   TableGenerator
	docx  TableGenerator
}

func NewRenderer(excel, pdf, docx TableGenerator) *Renderer {
	return &Renderer{excel: excel, pdf: pdf, docx: docx}
}

func (r *Renderer) Render(format Format, table model.Table) ([]byte, error) {
	switch format {
	case FormatXLSX:
		return generate(r.excel, format, table)
	case FormatPDF:
		return generate(r.pdf, format, table)
	case FormatDOCX:
		return generate(r.docx, format, table)
	default:
		return writeCSV(table)
	}
}

func generate(g TableGenerator, format Format, table model.Table) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("no %s generator configured", format)
	}
	content, err := g.Generate(table)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return content, nil
}
