package pipeline

import (
	"context"
	"fmt"

	"finhealth/pkg/core/calc"
	"finhealth/pkg/core/insight"
	"finhealth/pkg/core/statement"
	"finhealth/pkg/core/table"
	"finhealth/pkg/core/utils"
)

// Advisor produces the natural-language improvement summary. It never
// fails; degraded outcomes are embedded in the Advisory text.
type Advisor interface {
	Request(ctx context.Context, ratios, subScores map[string]float64, overall float64) insight.Advisory
}

// Result is the terminal structure of one analysis run. Trend rows
// serialize as flat records, matching what the web UI tables expect.
type Result struct {
	Ratios             map[string]float64 `json:"ratios"`
	SubScores          map[string]float64 `json:"sub_scores"`
	OverallScore       float64            `json:"overall_score"`
	Trends             []calc.TrendRow    `json:"trends"`
	AIInsights         string             `json:"ai_insights"`
	AIInsightsHTML     string             `json:"ai_insights_html,omitempty"`
	FocusAreas         []string           `json:"focus_areas,omitempty"`
	DetectedFiscalYear string             `json:"detected_fiscal_year"`
}

// Analyzer runs the full chain: read -> consolidate -> detect latest
// fiscal year -> ratios -> scores -> trends -> insight. All state is
// local to one Analyze call, so a single Analyzer may serve concurrent
// requests.
type Analyzer struct {
	readFile func(path string) (map[string]*table.Statement, error)
	advisor  Advisor
}

func NewAnalyzer(advisor Advisor) *Analyzer {
	return &Analyzer{
		readFile: statement.ReadFinancials,
		advisor:  advisor,
	}
}

// SetReader injects a custom workbook reader (e.g., for testing).
func (a *Analyzer) SetReader(read func(path string) (map[string]*table.Statement, error)) {
	a.readFile = read
}

// Analyze executes the pipeline over a batch of workbook paths. Any core
// failure aborts with an error and no partial result; only the insight
// step is allowed to degrade in place.
func (a *Analyzer) Analyze(ctx context.Context, paths []string) (*Result, error) {
	// 1. Read every workbook; unreadable files are skipped, not fatal.
	var files []statement.SourceFile
	for _, path := range paths {
		sheets, err := a.readFile(path)
		if err != nil {
			fmt.Printf("Warning: could not read %s: %v. Skipping.\n", path, err)
			continue
		}
		files = append(files, statement.SourceFile{Path: path, Sheets: sheets})
	}

	// 2. Consolidate into one Income Statement and one Balance Sheet.
	fin, err := statement.Consolidate(files)
	if err != nil {
		return nil, err
	}

	// 3. Auto-detect the latest fiscal year.
	fiscalYear, err := detectLatestYear(fin.Income)
	if err != nil {
		return nil, err
	}
	fmt.Printf("--- Auto-detected fiscal year for analysis: %s ---\n", fiscalYear)

	// 4. Ratios for the detected year.
	ratios, err := calc.ComputeRatios(fin, fiscalYear)
	if err != nil {
		return nil, err
	}

	// 5. Scores.
	subScores, overall := calc.ScoreRatios(ratios)

	// 6. Multi-year trends.
	trends, err := calc.AnalyzeTrends(fin)
	if err != nil {
		return nil, err
	}

	// 7. Insight (non-fatal by contract).
	advisory := insight.Advisory{Summary: insight.MissingCredentialMessage}
	if a.advisor != nil {
		advisory = a.advisor.Request(ctx, ratios, subScores, overall)
	}

	return &Result{
		Ratios:             ratios,
		SubScores:          subScores,
		OverallScore:       overall,
		Trends:             trends,
		AIInsights:         advisory.Summary,
		AIInsightsHTML:     utils.RenderMarkdownHTML(advisory.Summary),
		FocusAreas:         advisory.FocusAreas,
		DetectedFiscalYear: fiscalYear,
	}, nil
}

// detectLatestYear picks the Income Statement year column with the
// highest numeric value, skipping labels that do not parse. The original
// column label is returned, so "2024.0" stays "2024.0" for lookups.
func detectLatestYear(income *table.Statement) (string, error) {
	if len(income.Years) == 0 {
		return "", fmt.Errorf("no fiscal year columns found in the consolidated data")
	}

	best := ""
	var bestVal float64
	for _, label := range income.Years {
		v, ok := table.ParseYearNumber(label)
		if !ok {
			continue
		}
		if best == "" || v > bestVal {
			best, bestVal = label, v
		}
	}
	if best == "" {
		return "", fmt.Errorf("could not detect any numeric fiscal year columns (e.g. 2023, 2024)")
	}
	return best, nil
}
