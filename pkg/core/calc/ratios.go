package calc

import (
	"fmt"

	"finhealth/pkg/core/statement"
	"finhealth/pkg/core/table"
)

// Ratio names, used as keys in every ratio set.
const (
	RatioNetProfitMargin = "Net Profit Margin"
	RatioReturnOnAssets  = "Return on Assets (ROA)"
	RatioDebtToEquity    = "Debt to Equity Ratio"
	RatioCurrentRatio    = "Current Ratio"
	RatioGrossMargin     = "Gross Margin"
	RatioQuickRatio      = "Quick Ratio"
)

// Statement line items the ratio engine extracts.
const (
	LineRevenue          = "Revenue from operations"
	LineNetProfit        = "Profit/(Loss) for the year"
	LineCOGSMaterials    = "Cost of materials consumed"
	LineCOGSPurchases    = "Purchases of stock-in-trade"
	LineCOGSChanges      = "Changes in inventories of goods, work-in-progress and stock-in-trade"
	LineCurrentAssets    = "Current assets"
	LineNonCurrentAssets = "Non-current assets"
	LineCurrentLiab      = "Current liabilities"
	LineBorrowingsNC     = "Borrowings, non-current"
	LineBorrowingsC      = "Borrowings, current"
	LineEquity           = "Equity"
	LineInventories      = "Inventories"
)

// ComputeRatios extracts the named line items for one fiscal year and
// computes the six health ratios. The year must resolve (string form
// first, then integer form) in BOTH statements; past that validation the
// function cannot fail: missing lines read as 0 and every division is
// guarded, so the worst case is a ratio set of zeros.
func ComputeRatios(fin *statement.Financials, fiscalYear string) (map[string]float64, error) {
	incomeYear, okIncome := fin.Income.ResolveYear(fiscalYear)
	balanceYear, okBalance := fin.Balance.ResolveYear(fiscalYear)
	if !okIncome || !okBalance {
		return nil, fmt.Errorf("fiscal year '%s' not found in '%s' or '%s' columns",
			fiscalYear, statement.SheetIncome, statement.SheetBalance)
	}

	revenue := table.FindLineValue(fin.Income, LineRevenue, incomeYear)
	netProfit := table.FindLineValue(fin.Income, LineNetProfit, incomeYear)
	cogsMaterials := table.FindLineValue(fin.Income, LineCOGSMaterials, incomeYear)
	cogsPurchases := table.FindLineValue(fin.Income, LineCOGSPurchases, incomeYear)
	cogsChanges := table.FindLineValue(fin.Income, LineCOGSChanges, incomeYear)

	currentAssets := table.FindLineValue(fin.Balance, LineCurrentAssets, balanceYear)
	nonCurrentAssets := table.FindLineValue(fin.Balance, LineNonCurrentAssets, balanceYear)
	currentLiabilities := table.FindLineValue(fin.Balance, LineCurrentLiab, balanceYear)
	ncBorrowings := table.FindLineValue(fin.Balance, LineBorrowingsNC, balanceYear)
	cBorrowings := table.FindLineValue(fin.Balance, LineBorrowingsC, balanceYear)
	totalEquity := table.FindLineValue(fin.Balance, LineEquity, balanceYear)
	inventories := table.FindLineValue(fin.Balance, LineInventories, balanceYear)

	totalAssets := currentAssets + nonCurrentAssets
	totalDebt := ncBorrowings + cBorrowings
	totalCOGS := cogsMaterials + cogsPurchases + cogsChanges
	grossProfit := revenue - totalCOGS
	quickAssets := currentAssets - inventories

	return map[string]float64{
		RatioNetProfitMargin: safeDiv(netProfit, revenue),
		RatioReturnOnAssets:  safeDiv(netProfit, totalAssets),
		RatioDebtToEquity:    safeDiv(totalDebt, totalEquity),
		RatioCurrentRatio:    safeDiv(currentAssets, currentLiabilities),
		RatioGrossMargin:     safeDiv(grossProfit, revenue),
		RatioQuickRatio:      safeDiv(quickAssets, currentLiabilities),
	}, nil
}

func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
