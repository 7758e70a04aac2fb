package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Table is a header row plus data rows, rendered as one CSV file or one XLSX sheet.
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]interface{}
}

func (t Table) AddRow(values ...interface{}) Table {
	t.Rows = append(t.Rows, values)
	return t
}

// WriteCSV writes t as RFC 4180 CSV.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(t.Headers))
	for _, row := range t.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) && row[i] != nil {
				record[i] = fmt.Sprint(row[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// XLSX renders each table on its own sheet with a styled header row.
func XLSX(tables ...Table) (*bytes.Buffer, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("xlsx export needs at least one table")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating header style: %w", err)
	}

	for i, t := range tables {
		index, err := f.NewSheet(t.Sheet)
		if err != nil {
			return nil, fmt.Errorf("error creating sheet %q: %w", t.Sheet, err)
		}
		if i == 0 {
			f.SetActiveSheet(index)
		}

		if err := writeSheet(f, t, headerStyle); err != nil {
			return nil, err
		}
	}

	if f.GetSheetName(0) != tables[0].Sheet {
		f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing xlsx to buffer: %w", err)
	}
	return &buf, nil
}

func writeSheet(f *excelize.File, t Table, headerStyle int) error {
	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(t.Sheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}
	if err := f.SetRowStyle(t.Sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("error styling header: %w", err)
	}

	for r, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(t.Sheet, cell, &values); err != nil {
			return fmt.Errorf("error writing row %d: %w", r+2, err)
		}
	}

	if len(t.Headers) > 0 {
		last, err := excelize.ColumnNumberToName(len(t.Headers))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(t.Sheet, "A", last, 18); err != nil {
			return err
		}
	}
	return nil
}
