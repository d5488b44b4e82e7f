package calc

import (
	"math"
	"testing"
)

func TestScoreRatios(t *testing.T) {
	ratios := map[string]float64{
		RatioNetProfitMargin: 0.10,
		RatioGrossMargin:     0.55,
		RatioCurrentRatio:    2.0,
		RatioQuickRatio:      1.4,
		RatioDebtToEquity:    0.5,
		RatioReturnOnAssets:  0.05,
	}

	subScores, overall := ScoreRatios(ratios)

	// Profitability = (10 + 55) / 2
	if got := subScores[ScoreProfitability]; math.Abs(got-32.5) > 1e-9 {
		t.Errorf("Profitability: expected 32.5, got %f", got)
	}
	// Liquidity = (min(2/2,1)*100 + min(1.4,1)*100) / 2 = 100
	if got := subScores[ScoreLiquidity]; math.Abs(got-100) > 1e-9 {
		t.Errorf("Liquidity: expected 100, got %f", got)
	}
	// Leverage = (1 - min(0.5/3,1)) * 100
	if got := subScores[ScoreLeverage]; math.Abs(got-(1-0.5/3)*100) > 1e-9 {
		t.Errorf("Leverage: expected %f, got %f", (1-0.5/3)*100, got)
	}
	// Efficiency = min(0.05/0.1,1) * 100 = 50
	if got := subScores[ScoreEfficiency]; math.Abs(got-50) > 1e-9 {
		t.Errorf("Efficiency: expected 50, got %f", got)
	}

	wantOverall := (subScores[ScoreProfitability] + subScores[ScoreLiquidity] +
		subScores[ScoreLeverage] + subScores[ScoreEfficiency]) / 4
	if math.Abs(overall-wantOverall) > 1e-9 {
		t.Errorf("Overall: expected %f, got %f", wantOverall, overall)
	}
}

func TestScoreRatiosEmptyInput(t *testing.T) {
	subScores, overall := ScoreRatios(nil)
	if len(subScores) != 0 {
		t.Errorf("Expected empty sub-scores, got %v", subScores)
	}
	if overall != 0 {
		t.Errorf("Expected overall 0, got %f", overall)
	}
}

func TestScoreRatiosUpperBounds(t *testing.T) {
	ratios := map[string]float64{
		RatioNetProfitMargin: 0.2,
		RatioGrossMargin:     0.6,
		RatioCurrentRatio:    50,
		RatioQuickRatio:      50,
		RatioDebtToEquity:    0,
		RatioReturnOnAssets:  5,
	}
	subScores, _ := ScoreRatios(ratios)

	if subScores[ScoreLiquidity] > 100 {
		t.Errorf("Liquidity must cap at 100, got %f", subScores[ScoreLiquidity])
	}
	if subScores[ScoreEfficiency] > 100 {
		t.Errorf("Efficiency must cap at 100, got %f", subScores[ScoreEfficiency])
	}
	if subScores[ScoreLeverage] > 100 {
		t.Errorf("Leverage must cap at 100 for non-negative debt/equity, got %f", subScores[ScoreLeverage])
	}
}

// The 0-100 intent is knowingly not enforced on the downside (and Leverage
// upside for negative debt/equity). These cases document the preserved
// behavior, not a bug to fix.
func TestScoreRatiosKnownUnclampedCases(t *testing.T) {
	deepLoss := map[string]float64{
		RatioNetProfitMargin: -1.5,
		RatioGrossMargin:     -0.5,
		RatioCurrentRatio:    0.1,
		RatioQuickRatio:      0.1,
		RatioDebtToEquity:    0.5,
		RatioReturnOnAssets:  -0.2,
	}
	subScores, _ := ScoreRatios(deepLoss)

	// Profitability = (-150 + -50) / 2 = -100, reflected directly.
	if got := subScores[ScoreProfitability]; math.Abs(got-(-100)) > 1e-9 {
		t.Errorf("Profitability: expected -100 unclamped, got %f", got)
	}
	if subScores[ScoreEfficiency] >= 0 {
		t.Errorf("Efficiency: expected negative passthrough, got %f", subScores[ScoreEfficiency])
	}

	negativeEquity := map[string]float64{RatioDebtToEquity: -3}
	subScores, _ = ScoreRatios(negativeEquity)
	// (1 - min(-1, 1)) * 100 = 200: above 100 when debt/equity < 0.
	if got := subScores[ScoreLeverage]; math.Abs(got-200) > 1e-9 {
		t.Errorf("Leverage: expected 200 for D/E -3, got %f", got)
	}
}
