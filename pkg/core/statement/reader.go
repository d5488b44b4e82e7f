package statement

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"finhealth/pkg/core/table"
)

// Sheet names the analyzer understands. Anything else in a workbook is
// carried through the read but ignored by consolidation.
const (
	SheetIncome  = "Income Statement"
	SheetBalance = "Balance Sheet"
)

// FieldColumn is the row-label column every statement sheet must carry.
const FieldColumn = "Field"

// ReadFinancials reads every sheet of an xlsx workbook into tabular
// statements, keyed by sheet name. Sheets without a header row or a Field
// column are skipped with a warning rather than failing the whole file.
func ReadFinancials(path string) (map[string]*table.Statement, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := make(map[string]*table.Statement)
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q in %s: %w", name, path, err)
		}
		stmt, ok := buildStatement(name, rows)
		if !ok {
			fmt.Printf("Warning: sheet %q in %s has no '%s' column. Skipping sheet.\n", name, path, FieldColumn)
			continue
		}
		sheets[name] = stmt
	}
	return sheets, nil
}

// buildStatement turns raw sheet rows into a Statement. The first row is
// the header; the Field column holds row labels and every other header is
// treated as a fiscal-year column.
func buildStatement(name string, rows [][]string) (*table.Statement, bool) {
	if len(rows) == 0 {
		return nil, false
	}

	header := rows[0]
	fieldIdx := -1
	type yearCol struct {
		idx   int
		label string
	}
	var yearCols []yearCol
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == FieldColumn {
			if fieldIdx == -1 {
				fieldIdx = i
			}
			continue
		}
		if h == "" {
			continue
		}
		yearCols = append(yearCols, yearCol{idx: i, label: h})
	}
	if fieldIdx == -1 {
		return nil, false
	}

	stmt := &table.Statement{Name: name}
	for _, yc := range yearCols {
		stmt.Years = append(stmt.Years, yc.label)
	}

	for _, row := range rows[1:] {
		line := table.Line{Values: make(map[string]float64)}
		if fieldIdx < len(row) {
			line.Field = strings.TrimSpace(row[fieldIdx])
		}
		for _, yc := range yearCols {
			if yc.idx >= len(row) {
				continue
			}
			if v, ok := table.ParseCell(row[yc.idx]); ok {
				line.Values[yc.label] = v
			}
		}
		stmt.Lines = append(stmt.Lines, line)
	}
	return stmt, true
}
