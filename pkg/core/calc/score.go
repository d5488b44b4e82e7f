package calc

// Sub-score category names.
const (
	ScoreProfitability = "Profitability"
	ScoreLiquidity     = "Liquidity"
	ScoreLeverage      = "Leverage"
	ScoreEfficiency    = "Efficiency"
)

// ScoreRatios maps a ratio set to four weighted sub-scores and their
// unweighted mean. An empty ratio set is a defined degenerate case: empty
// sub-scores and an overall of 0, not an error.
//
// The scale intent is 0-100, but Profitability is deliberately left
// unclamped (margins above 100% or below zero pass straight through) and
// negative ratios can push Liquidity below 0 or Leverage above 100.
// Downstream consumers rely on these exact formulas, so no floor is
// applied.
func ScoreRatios(ratios map[string]float64) (map[string]float64, float64) {
	if len(ratios) == 0 {
		return map[string]float64{}, 0
	}

	subScores := map[string]float64{
		ScoreProfitability: (ratios[RatioNetProfitMargin]*100 + ratios[RatioGrossMargin]*100) / 2,
		ScoreLiquidity: (capAtOne(ratios[RatioCurrentRatio]/2)*100 +
			capAtOne(ratios[RatioQuickRatio]/1)*100) / 2,
		ScoreLeverage:   (1 - capAtOne(ratios[RatioDebtToEquity]/3)) * 100,
		ScoreEfficiency: capAtOne(ratios[RatioReturnOnAssets]/0.1) * 100,
	}

	var sum float64
	for _, s := range subScores {
		sum += s
	}
	return subScores, sum / float64(len(subScores))
}

// capAtOne clamps the upper bound only; negative inputs pass through.
func capAtOne(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
