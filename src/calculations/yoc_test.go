package calculations

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/username/divroutine/backend/src/models"
)

func TestCalculateYOC(t *testing.T) {
	holding := models.Holding{
		Symbol:                       "SCHD",
		Quantity:                     "100",
		AvgCost:                      "30000",
		ExpectedDividendPerShareYear: "2400",
	}
	// 100*2400 / (100*30000) * 100 = 8%
	assert.Equal(t, 8.0, CalculateYOC(holding))
}

func TestCalculateYOCDegradesToZero(t *testing.T) {
	assert.Equal(t, 0.0, CalculateYOC(models.Holding{Quantity: "100", AvgCost: "30000"}))
	assert.Equal(t, 0.0, CalculateYOC(models.Holding{Quantity: "0", AvgCost: "30000", ExpectedDividendPerShareYear: "2400"}))
	assert.Equal(t, 0.0, CalculateYOC(models.Holding{Quantity: "100", AvgCost: "0", ExpectedDividendPerShareYear: "2400"}))
}

func TestBuildHoldingRow(t *testing.T) {
	holding := models.Holding{
		Symbol:                       "SCHD",
		Quantity:                     "100",
		AvgCost:                      "30000",
		ExpectedDividendPerShareYear: "2400",
	}
	row := BuildHoldingRow(holding)
	assert.Equal(t, 3000000.0, row.TotalCost)
	assert.Equal(t, 240000.0, row.AnnualDividend)
	assert.Equal(t, 8.0, row.YOC)
}

func TestBuildHoldingRowWithoutExpectedDividend(t *testing.T) {
	row := BuildHoldingRow(models.Holding{Symbol: "NEW", Quantity: "10", AvgCost: "5000"})
	assert.Equal(t, 50000.0, row.TotalCost)
	assert.Equal(t, 0.0, row.AnnualDividend)
	assert.Equal(t, 0.0, row.YOC)
}

func TestCalculatePortfolioYOC(t *testing.T) {
	holdings := []models.Holding{
		{Symbol: "SCHD", Quantity: "100", AvgCost: "30000", ExpectedDividendPerShareYear: "2400"},
		{Symbol: "VYM", Quantity: "100", AvgCost: "10000", ExpectedDividendPerShareYear: "400"},
	}
	// (240000 + 40000) / (3000000 + 1000000) * 100 = 7%
	// Cost-weighted, not the average of 8% and 4%.
	assert.Equal(t, 7.0, CalculatePortfolioYOC(holdings))
}

func TestCalculatePortfolioYOCEmpty(t *testing.T) {
	assert.Equal(t, 0.0, CalculatePortfolioYOC(nil))
	assert.Equal(t, 0.0, CalculatePortfolioYOC([]models.Holding{{Quantity: "0", AvgCost: "100"}}))
}
