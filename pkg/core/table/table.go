package table

import (
	"strconv"
	"strings"
)

// Statement is one tabular financial statement: a list of labeled lines
// with one numeric value per fiscal-year column. Year column headers are
// kept as strings exactly as they appeared in the source sheet; a header
// like "2024" and a numeric header 2024 are considered the same year
// (see ResolveYear).
type Statement struct {
	Name  string
	Years []string
	Lines []Line
}

// Line is a single statement row. Field is the trimmed row label
// (empty string when the source cell was blank). Values holds the
// parseable cells only; a missing year key reads as 0 downstream.
type Line struct {
	Field  string
	Values map[string]float64
}

// HasYear reports whether the statement carries the exact year column label.
func (s *Statement) HasYear(label string) bool {
	for _, y := range s.Years {
		if y == label {
			return true
		}
	}
	return false
}

// ResolveYear maps a requested fiscal year onto one of the statement's
// column labels. The string form is tried first; if that misses and the
// request parses as an integer, any column whose label parses to the same
// integer matches (so "2024" finds a column ingested as 2024.0 and vice
// versa). Returns the statement's own label for the year.
func (s *Statement) ResolveYear(year string) (string, bool) {
	year = strings.TrimSpace(year)
	if s.HasYear(year) {
		return year, true
	}
	want, err := strconv.Atoi(year)
	if err != nil {
		return "", false
	}
	for _, label := range s.Years {
		if n, ok := parseYearInt(label); ok && n == want {
			return label, true
		}
	}
	return "", false
}

// FindLineValue returns the value of the unique line whose Field matches
// exactly, for the given (already resolved) year column. Zero matches,
// duplicate matches, and missing or unparseable cells all degrade to 0;
// the lookup itself never fails.
func FindLineValue(s *Statement, field, year string) float64 {
	var found *Line
	for i := range s.Lines {
		if s.Lines[i].Field == field {
			if found != nil {
				return 0
			}
			found = &s.Lines[i]
		}
	}
	if found == nil {
		return 0
	}
	return found.Values[year]
}

// ParseCell interprets a raw sheet cell as a number. Thousands separators
// are tolerated since exported statements commonly carry them.
func ParseCell(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	raw = strings.ReplaceAll(raw, ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseYearInt parses a year column label as an integer, accepting the
// float renderings spreadsheet readers produce for numeric headers
// ("2024.0" -> 2024).
func parseYearInt(label string) (int, bool) {
	label = strings.TrimSpace(label)
	if n, err := strconv.Atoi(label); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(label, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// ParseYearNumber parses a year column label as a number. Used for
// latest-year detection and numeric trend ordering; labels like "FY23"
// simply fail the parse.
func ParseYearNumber(label string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(label), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
