package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Table is the flat projection handed to export renderers: optional summary
// fields followed by one or more tabular sections.
type Table struct {
	Name     string
	Title    string
	Summary  []Field
	Sections []Section
}

type Field struct {
	Label string
	Value any
}

type Section struct {
	Name    string
	Headers []string
	Rows    [][]any
}

func (s *Section) AddRow(cells ...any) {
	s.Rows = append(s.Rows, cells)
}

func (t *Table) AddField(label string, value any) {
	t.Summary = append(t.Summary, Field{Label: label, Value: value})
}

// AddSection appends a section and returns it for filling. The pointer is
// only valid until the next AddSection call.
func (t *Table) AddSection(name string, headers ...string) *Section {
	t.Sections = append(t.Sections, Section{Name: name, Headers: headers})
	return &t.Sections[len(t.Sections)-1]
}

// CellText renders a table cell the same way for every text-based format.
func CellText(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case time.Time:
		if value.IsZero() {
			return ""
		}
		return value.Format("2006-01-02")
	case *time.Time:
		if value == nil {
			return ""
		}
		return CellText(*value)
	case decimal.Decimal:
		return value.StringFixed(2)
	case *decimal.Decimal:
		if value == nil {
			return ""
		}
		return value.StringFixed(2)
	case float64:
		return strconv.FormatFloat(value, 'f', 2, 64)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case bool:
		if value {
			return "Yes"
		}
		return "No"
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprint(value)
	}
}
