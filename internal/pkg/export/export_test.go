package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteCSV(t *testing.T) {
	table := Table{Headers: []string{"code", "content", "hours"}}
	table = table.AddRow("EMP-AAAAAA", "fixed, then shipped", 7.5)
	table = table.AddRow("EMP-BBBBBB", nil, 0)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "code,content,hours", lines[0])
	assert.Equal(t, `EMP-AAAAAA,"fixed, then shipped",7.5`, lines[1])
	assert.Equal(t, "EMP-BBBBBB,,0", lines[2])
}

func TestXLSX(t *testing.T) {
	metrics := Table{Sheet: "Metrics", Headers: []string{"Employee", "Score"}}
	metrics = metrics.AddRow("EMP-AAAAAA", 85)
	weekly := Table{Sheet: "Weekly", Headers: []string{"Employee", "Summary"}}

	buf, err := XLSX(metrics, weekly)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Metrics", "Weekly"}, f.GetSheetList())

	rows, err := f.GetRows("Metrics")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Employee", "Score"}, rows[0])
	assert.Equal(t, []string{"EMP-AAAAAA", "85"}, rows[1])
}

func TestXLSXRequiresTable(t *testing.T) {
	_, err := XLSX()
	assert.Error(t, err)
}
