package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/fleet-reports/internal/model"
)

func documentXML(t *testing.T, content []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	require.NoError(t, err)

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(raw)
	}
	t.Fatal("word/document.xml missing")
	return ""
}

func TestGenerateProducesDocument(t *testing.T) {
	table := model.Table{Name: "load-report", Title: "Load Report"}
	table.AddField("Total Revenue", decimal.RequireFromString("300"))
	section := table.AddSection("Load Details", "Load #", "Name")
	section.AddRow(int64(1), "Pipes")
	section.AddRow(int64(2), "Tom & Jerry")

	content, err := NewGenerator().Generate(table)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("PK")))

	document := documentXML(t, content)
	assert.Contains(t, document, "Load Report")
	assert.Contains(t, document, "Total Revenue")
	assert.Contains(t, document, "300.00")
	assert.Contains(t, document, "Load Details")
	assert.Contains(t, document, "Tom &amp; Jerry")
	assert.Contains(t, document, "<w:tbl>")
}

func TestGenerateEmptyTable(t *testing.T) {
	content, err := NewGenerator().Generate(model.Table{Title: "Empty"})
	require.NoError(t, err)
	assert.Contains(t, documentXML(t, content), "Empty")
}
