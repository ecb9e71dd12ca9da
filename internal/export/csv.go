package export

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/nurpe/fleet-reports/internal/model"
)

// writeCSV lays the table out as a title line, the summary as label/value
// pairs and each section under an upper-cased heading.
func writeCSV(table model.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{table.Title}}
	if len(table.Summary) > 0 {
		records = append(records, nil, []string{"SUMMARY"})
		for _, field := range table.Summary {
			records = append(records, []string{field.Label, model.CellText(field.Value)})
		}
	}
	for _, section := range table.Sections {
		records = append(records, nil, []string{strings.ToUpper(section.Name)}, section.Headers)
		for _, row := range section.Rows {
			cells := make([]string, len(row))
			for i, value := range row {
				cells[i] = model.CellText(value)
			}
			records = append(records, cells)
		}
	}

	for _, record := range records {
		if record == nil {
			record = []string{""}
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
