package export

import "strings"

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// ParseFormat accepts the format names used by the report endpoints and falls
// back to CSV for anything it does not recognise.
func ParseFormat(raw string) Format {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "xlsx", "excel":
		return FormatXLSX
	case "pdf":
		return FormatPDF
	case "docx", "word":
		return FormatDOCX
	default:
		return FormatCSV
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/csv"
	}
}

func (f Format) Extension() string {
	switch f {
	case FormatXLSX, FormatPDF, FormatDOCX:
		return string(f)
	default:
		return "csv"
	}
}
