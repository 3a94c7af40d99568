package calculations

import (
	"github.com/shopspring/decimal"

	"github.com/username/divroutine/backend/src/models"
)

// CalculateYOC returns the holding's yield on cost: expected annual dividend
// over cost basis, as a percentage. Zero when the expected dividend is absent
// or the cost basis is zero.
func CalculateYOC(holding models.Holding) float64 {
	if holding.ExpectedDividendPerShareYear == "" {
		return 0
	}
	quantity := parseAmount(holding.Quantity)
	totalCost := quantity.Mul(parseAmount(holding.AvgCost))
	if totalCost.IsZero() {
		return 0
	}
	annualDividend := quantity.Mul(parseAmount(holding.ExpectedDividendPerShareYear))
	return annualDividend.Div(totalCost).InexactFloat64() * 100
}

// BuildHoldingRow derives the display fields a holdings table shows for one
// position: total cost basis, expected annual dividend, and YOC.
func BuildHoldingRow(holding models.Holding) models.HoldingRow {
	quantity := parseAmount(holding.Quantity)
	totalCost := quantity.Mul(parseAmount(holding.AvgCost))
	annualDividend := decimal.Zero
	if holding.ExpectedDividendPerShareYear != "" {
		annualDividend = quantity.Mul(parseAmount(holding.ExpectedDividendPerShareYear))
	}
	return models.HoldingRow{
		Holding:        holding,
		TotalCost:      totalCost.InexactFloat64(),
		AnnualDividend: annualDividend.InexactFloat64(),
		YOC:            CalculateYOC(holding),
	}
}

// CalculatePortfolioYOC returns the cost-weighted yield on cost across all
// holdings: total expected annual dividend over total cost basis. This is not
// an average of the per-holding YOCs.
func CalculatePortfolioYOC(holdings []models.Holding) float64 {
	totalCost := decimal.Zero
	totalAnnualDividend := decimal.Zero
	for _, h := range holdings {
		quantity := parseAmount(h.Quantity)
		totalCost = totalCost.Add(quantity.Mul(parseAmount(h.AvgCost)))
		if h.ExpectedDividendPerShareYear != "" {
			totalAnnualDividend = totalAnnualDividend.Add(quantity.Mul(parseAmount(h.ExpectedDividendPerShareYear)))
		}
	}
	if totalCost.IsZero() {
		return 0
	}
	return totalAnnualDividend.Div(totalCost).InexactFloat64() * 100
}
