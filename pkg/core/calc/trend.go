package calc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"finhealth/pkg/core/statement"
	"finhealth/pkg/core/table"
)

// Trend metric row labels.
const (
	TrendRevenue   = "Revenue (in currency)"
	TrendNetProfit = "Net Profit (in currency)"
	TrendNetMargin = "Net Margin (%)"
)

// TrendRow is one metric across all detected fiscal years, in ascending
// year order. It serializes as a flat record ({"Metric": ..., "2023": ...,
// "2024": ...}) for API and CLI consumers.
type TrendRow struct {
	Metric string
	Years  []string
	Values map[string]float64
}

// MarshalJSON emits the row as a flat object with the Metric key first
// and year keys in the row's sorted order.
func (r TrendRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"Metric":`)
	name, err := json.Marshal(r.Metric)
	if err != nil {
		return nil, err
	}
	buf.Write(name)
	for _, y := range r.Years {
		key, err := json.Marshal(y)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.Values[y])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AnalyzeTrends computes the revenue / net profit / net margin trend
// across every year column of the consolidated Income Statement. Years
// sort ascending numerically when every label parses as a number, and
// lexicographically otherwise (e.g. "FY21" < "FY23").
func AnalyzeTrends(fin *statement.Financials) ([]TrendRow, error) {
	years := append([]string(nil), fin.Income.Years...)
	if len(years) == 0 {
		return nil, fmt.Errorf("no year columns found in %s", statement.SheetIncome)
	}
	sortYears(years)

	revenue := TrendRow{Metric: TrendRevenue, Years: years, Values: make(map[string]float64)}
	profit := TrendRow{Metric: TrendNetProfit, Years: years, Values: make(map[string]float64)}
	margin := TrendRow{Metric: TrendNetMargin, Years: years, Values: make(map[string]float64)}

	for _, year := range years {
		rev := table.FindLineValue(fin.Income, LineRevenue, year)
		pat := table.FindLineValue(fin.Income, LineNetProfit, year)
		revenue.Values[year] = rev
		profit.Values[year] = pat
		margin.Values[year] = safeDiv(pat, rev) * 100
	}

	return []TrendRow{revenue, profit, margin}, nil
}

func sortYears(years []string) {
	numeric := make(map[string]float64, len(years))
	allNumeric := true
	for _, y := range years {
		v, ok := table.ParseYearNumber(y)
		if !ok {
			allNumeric = false
			break
		}
		numeric[y] = v
	}
	if allNumeric {
		sort.Slice(years, func(i, j int) bool { return numeric[years[i]] < numeric[years[j]] })
	} else {
		sort.Strings(years)
	}
}
