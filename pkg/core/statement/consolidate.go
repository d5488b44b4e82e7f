package statement

import (
	"fmt"
	"strings"

	"finhealth/pkg/core/table"
)

// SourceFile is one uploaded workbook after reading: its path (for
// warnings) and its sheets.
type SourceFile struct {
	Path   string
	Sheets map[string]*table.Statement
}

// Financials is the consolidated dataset the rest of the pipeline runs on:
// exactly one Income Statement and one Balance Sheet.
type Financials struct {
	Income  *table.Statement
	Balance *table.Statement
}

// Consolidate merges the statement sheets of every source file into one
// Income Statement and one Balance Sheet. Rows are grouped by their
// trimmed Field label and every year column is summed per group, so the
// same line item split across files (or duplicated within one file) adds
// up into a single consolidated line. A file missing one of the two
// sheets contributes nothing to that statement; that alone is not fatal.
//
// Fails only when, after all files, either statement ends up with no rows.
func Consolidate(files []SourceFile) (*Financials, error) {
	income := newAccumulator(SheetIncome)
	balance := newAccumulator(SheetBalance)

	for _, f := range files {
		if s, ok := f.Sheets[SheetIncome]; ok {
			income.add(s)
		} else {
			fmt.Printf("Warning: '%s' not found in %s. Skipping.\n", SheetIncome, f.Path)
		}
		if s, ok := f.Sheets[SheetBalance]; ok {
			balance.add(s)
		} else {
			fmt.Printf("Warning: '%s' not found in %s. Skipping.\n", SheetBalance, f.Path)
		}
	}

	if len(income.lines) == 0 || len(balance.lines) == 0 {
		return nil, fmt.Errorf("no valid '%s' or '%s' data was found in any of the files", SheetIncome, SheetBalance)
	}
	return &Financials{Income: income.statement(), Balance: balance.statement()}, nil
}

// accumulator builds one consolidated statement, preserving first-seen
// order of both year columns and Field labels.
type accumulator struct {
	name     string
	years    []string
	yearSeen map[string]bool
	order    []string
	lines    map[string]map[string]float64
}

func newAccumulator(name string) *accumulator {
	return &accumulator{
		name:     name,
		yearSeen: make(map[string]bool),
		lines:    make(map[string]map[string]float64),
	}
}

func (a *accumulator) add(s *table.Statement) {
	for _, y := range s.Years {
		if !a.yearSeen[y] {
			a.yearSeen[y] = true
			a.years = append(a.years, y)
		}
	}
	for _, line := range s.Lines {
		// Trim again even though the reader already does: statements can
		// reach consolidation from other sources, and grouping is defined
		// over the trimmed label. Blank labels still form a group of
		// their own.
		field := strings.TrimSpace(line.Field)
		group, ok := a.lines[field]
		if !ok {
			group = make(map[string]float64)
			a.lines[field] = group
			a.order = append(a.order, field)
		}
		for y, v := range line.Values {
			group[y] += v
		}
	}
}

func (a *accumulator) statement() *table.Statement {
	stmt := &table.Statement{Name: a.name, Years: a.years}
	for _, field := range a.order {
		stmt.Lines = append(stmt.Lines, table.Line{Field: field, Values: a.lines[field]})
	}
	return stmt
}
