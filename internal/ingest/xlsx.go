package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one spreadsheet row keyed by its header cell.
type Row map[string]string

// Str returns the first non-empty value among the given header names.
func (r Row) Str(headers ...string) string {
	for _, h := range headers {
		if v := strings.TrimSpace(r[h]); v != "" {
			return v
		}
	}
	return ""
}

// ParseFile dispatches on the file extension. Exports arrive as either xlsx
// workbooks or CSV dumps of the same sheets.
func ParseFile(filename string, data []byte) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return ParseXLSX(data)
	case ".csv":
		return ParseCSV(data)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filename)
	}
}

// ParseXLSX reads the first sheet of a workbook into header-keyed rows.
func ParseXLSX(data []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheets[0], err)
	}
	defer rows.Close()

	var header []string
	parsed := make([]Row, 0)
	for rows.Next() {
		cells, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if header == nil {
			header = trimAll(cells)
			continue
		}
		if row := buildRow(header, cells); len(row) > 0 {
			parsed = append(parsed, row)
		}
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return parsed, nil
}

// ParseCSV reads a CSV dump into header-keyed rows.
func ParseCSV(data []byte) ([]Row, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return []Row{}, nil
	}

	header := trimAll(records[0])
	parsed := make([]Row, 0, len(records)-1)
	for _, cells := range records[1:] {
		if row := buildRow(header, cells); len(row) > 0 {
			parsed = append(parsed, row)
		}
	}
	return parsed, nil
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

// buildRow maps cells onto headers, skipping blank headers and all-empty rows.
func buildRow(header, cells []string) Row {
	row := make(Row, len(header))
	empty := true
	for i, h := range header {
		if h == "" || i >= len(cells) {
			continue
		}
		value := strings.TrimSpace(cells[i])
		row[h] = value
		if value != "" {
			empty = false
		}
	}
	if empty {
		return nil
	}
	return row
}
