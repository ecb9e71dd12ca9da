package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/fleet-reports/internal/model"
)

const (
	summarySheet = "Summary"
	maxSheetName = 31
	defaultWidth = 18
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes the summary fields to a Summary sheet and every section to
// its own sheet.
func (g *Generator) Generate(table model.Table) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{}
	addSheet := func(name string) (string, error) {
		sheetName := buildSheetName(name, usedNames)
		usedNames[sheetName] = struct{}{}
		if len(usedNames) == 1 {
			return sheetName, file.SetSheetName("Sheet1", sheetName)
		}
		_, err := file.NewSheet(sheetName)
		return sheetName, err
	}

	if len(table.Summary) > 0 || len(table.Sections) == 0 {
		sheetName, err := addSheet(summarySheet)
		if err != nil {
			return nil, err
		}
		g.writeSummary(file, sheetName, table, bold)
	}

	for _, section := range table.Sections {
		sheetName, err := addSheet(section.Name)
		if err != nil {
			return nil, err
		}
		g.writeSection(file, sheetName, section, bold)
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, table model.Table, bold int) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", table.Title)
	_ = file.SetCellStyle(sheet, "A1", "A1", bold)
	for i, field := range table.Summary {
		row := 3 + i
		set(fmt.Sprintf("A%d", row), field.Label)
		set(fmt.Sprintf("B%d", row), cellValue(field.Value))
	}

	_ = file.SetColWidth(sheet, "A", "A", 40)
	_ = file.SetColWidth(sheet, "B", "B", 24)
}

func (g *Generator) writeSection(file *excelize.File, sheet string, section model.Section, bold int) {
	for i, header := range section.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = file.SetCellValue(sheet, cell, header)
		_ = file.SetCellStyle(sheet, cell, cell, bold)
	}

	for r, row := range section.Rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = file.SetCellValue(sheet, cell, cellValue(value))
		}
	}

	if len(section.Headers) > 0 {
		last, _ := excelize.ColumnNumberToName(len(section.Headers))
		_ = file.SetColWidth(sheet, "A", last, defaultWidth)
		_ = file.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	}
}

// cellValue keeps numbers numeric so spreadsheets can sum them.
func cellValue(value any) any {
	switch v := value.(type) {
	case decimal.Decimal:
		f, _ := v.Round(2).Float64()
		return f
	case *decimal.Decimal:
		if v == nil {
			return ""
		}
		return cellValue(*v)
	case time.Time:
		return formatDate(v)
	case *time.Time:
		if v == nil {
			return ""
		}
		return formatDate(*v)
	case int, int64, float64:
		return v
	default:
		return model.CellText(v)
	}
}

func buildSheetName(name string, used map[string]struct{}) string {
	base := sanitizeSheetName(name)
	if len(base) > maxSheetName {
		base = base[:maxSheetName]
	}

	nameCandidate := base
	counter := 2
	for {
		if _, exists := used[nameCandidate]; !exists {
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > maxSheetName {
			trimmed = trimmed[:maxSheetName-len(suffix)]
		}
		nameCandidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Sheet"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = replacer.Replace(value)
	value = strings.TrimSpace(value)
	if value == "" {
		return "Sheet"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
