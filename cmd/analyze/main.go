package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"finhealth/pkg/core/calc"
	"finhealth/pkg/core/insight"
	"finhealth/pkg/core/llm"
	"finhealth/pkg/core/pipeline"
)

var ratioOrder = []string{
	calc.RatioNetProfitMargin,
	calc.RatioReturnOnAssets,
	calc.RatioDebtToEquity,
	calc.RatioCurrentRatio,
	calc.RatioGrossMargin,
	calc.RatioQuickRatio,
}

var scoreOrder = []string{
	calc.ScoreProfitability,
	calc.ScoreLiquidity,
	calc.ScoreLeverage,
	calc.ScoreEfficiency,
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: analyze <file1.xlsx> [file2.xlsx] ...")
		os.Exit(1)
	}
	paths := os.Args[1:]

	requester := insight.NewRequester(&llm.OpenAIProvider{}, os.Getenv("OPENAI_API_KEY"))
	analyzer := pipeline.NewAnalyzer(requester)

	fmt.Printf("\nAnalyzing financials from %d file(s)...\n", len(paths))
	result, err := analyzer.Analyze(context.Background(), paths)
	if err != nil {
		fmt.Printf("\n--- ERROR ---\n%v\n", err)
		os.Exit(1)
	}

	printReport(result)
}

func printReport(result *pipeline.Result) {
	fmt.Printf("\nKey Financial Ratios (%s):\n", result.DetectedFiscalYear)
	for _, name := range ratioOrder {
		fmt.Printf("   %-25s: %.2f\n", name, result.Ratios[name])
	}

	fmt.Println("\nSub-scores:")
	for _, name := range scoreOrder {
		fmt.Printf("   %-15s: %.2f\n", name, result.SubScores[name])
	}
	fmt.Printf("\nOverall Financial Score: %.2f/100\n", result.OverallScore)

	fmt.Println("\nTrend Analysis (Consolidated):")
	printTrends(result.Trends)

	fmt.Println("\nAI-Powered Suggestions:")
	if result.AIInsights == "" {
		fmt.Println("No insights generated.")
	} else {
		fmt.Println(result.AIInsights)
	}
}

func printTrends(rows []calc.TrendRow) {
	if len(rows) == 0 {
		fmt.Println("   (no trend data)")
		return
	}

	fmt.Printf("   %-26s", "Metric")
	for _, y := range rows[0].Years {
		fmt.Printf(" %14s", y)
	}
	fmt.Println()

	for _, row := range rows {
		fmt.Printf("   %-26s", row.Metric)
		for _, y := range row.Years {
			fmt.Printf(" %14.2f", row.Values[y])
		}
		fmt.Println()
	}
}
