package docx

import (
	"os"
	"path/filepath"

	"github.com/gomutex/godocx"

	"github.com/nurpe/fleet-reports/internal/model"
)

const defaultTableStyle = "LightList-Accent4"

type Generator struct {
	tableStyle string
}

func NewGenerator() *Generator {
	return &Generator{tableStyle: defaultTableStyle}
}

// Generate writes the title as a heading, summary fields as paragraphs and
// each section as a styled table with a header row.
func (g *Generator) Generate(table model.Table) ([]byte, error) {
	document, err := godocx.NewDocument()
	if err != nil {
		return nil, err
	}

	document.AddHeading(table.Title, 0)
	for _, field := range table.Summary {
		p := document.AddParagraph("")
		p.AddText(field.Label + ": ").Bold(true)
		p.AddText(model.CellText(field.Value))
	}

	for _, section := range table.Sections {
		document.AddHeading(section.Name, 1)
		grid := document.AddTable()
		grid.Style(g.tableStyle)

		header := grid.AddRow()
		for _, name := range section.Headers {
			header.AddCell().AddParagraph(name)
		}
		for _, cells := range section.Rows {
			row := grid.AddRow()
			for _, cell := range cells {
				row.AddCell().AddParagraph(model.CellText(cell))
			}
		}
	}

	// godocx only saves to a path.
	dir, err := os.MkdirTemp("", "docx-export-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "report.docx")
	if err := document.SaveTo(path); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
