package calculations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/divroutine/backend/src/models"
)

func div(symbol, payDate, gross, net string) models.Dividend {
	return models.Dividend{Symbol: symbol, PayDate: payDate, GrossAmount: gross, NetAmount: net}
}

func TestCalculateTTMDividend(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	dividends := []models.Dividend{
		div("SCHD", "2024-01-15", "100000", "85000"),
		div("SCHD", "2023-06-20", "100000", "85000"),
		div("SCHD", "2023-06-01", "100000", "85000"), // older than 12 months
		div("VYM", "2022-12-30", "50000", "42500"),   // older than 12 months
	}

	assert.Equal(t, 170000.0, calculateTTMDividendAt(now, dividends, true))
	assert.Equal(t, 200000.0, calculateTTMDividendAt(now, dividends, false))
}

func TestCalculateTTMDividendCutoffIsInclusive(t *testing.T) {
	now := time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC)
	dividends := []models.Dividend{div("SCHD", "2023-06-15", "1000", "850")}

	assert.Equal(t, 850.0, calculateTTMDividendAt(now, dividends, true))
}

func TestCalculateTTMDividendEmpty(t *testing.T) {
	assert.Equal(t, 0.0, CalculateTTMDividend(nil, true))
}

func TestCalculateTTMDividendNetNeverExceedsGross(t *testing.T) {
	dividends := []models.Dividend{
		div("SCHD", time.Now().AddDate(0, -2, 0).Format("2006-01-02"), "100000", "85000"),
		div("VYM", time.Now().AddDate(0, -5, 0).Format("2006-01-02"), "70000", "70000"),
	}
	assert.LessOrEqual(t, CalculateTTMDividend(dividends, true), CalculateTTMDividend(dividends, false))
}

func TestCalculateMonthlyDividend(t *testing.T) {
	dividends := []models.Dividend{
		div("SCHD", "2024-01-15", "100000", "85000"),
		div("SCHD", "2024-04-15", "100000", "85000"),
	}

	assert.Equal(t, 85000.0, CalculateMonthlyDividend(dividends, 2024, 1, true))
	assert.Equal(t, 100000.0, CalculateMonthlyDividend(dividends, 2024, 1, false))
	assert.Equal(t, 0.0, CalculateMonthlyDividend(dividends, 2024, 2, true))
}

func TestProjectAnnualDividend(t *testing.T) {
	holdings := []models.Holding{
		{Symbol: "SCHD", Quantity: "100", AvgCost: "30000", ExpectedDividendPerShareYear: "2400"},
		{Symbol: "VYM", Quantity: "50", AvgCost: "110000", ExpectedDividendPerShareYear: "3600"},
		{Symbol: "GROW", Quantity: "10", AvgCost: "50000"}, // no expected dividend
	}

	assert.Equal(t, 420000.0, ProjectAnnualDividend(holdings))
	assert.Equal(t, 35000.0, ProjectMonthlyDividend(holdings))
}

func TestProjectMonthlyDividendRounds(t *testing.T) {
	holdings := []models.Holding{
		{Symbol: "SCHD", Quantity: "1", ExpectedDividendPerShareYear: "100"},
	}
	// 100 / 12 = 8.33... rounds to 8
	assert.Equal(t, 8.0, ProjectMonthlyDividend(holdings))
}

func TestGroupDividendsByMonth(t *testing.T) {
	dividends := []models.Dividend{
		div("SCHD", "2024-03-15", "100", "85"),
		div("VYM", "2024-01-05", "200", "170"),
		div("SCHD", "2024-03-28", "100", "85"),
		div("SCHD", "2023-12-20", "300", "255"),
	}

	points := GroupDividendsByMonth(dividends, true)
	require.Len(t, points, 3)

	assert.Equal(t, "2023-12", points[0].Month)
	assert.Equal(t, "2024-01", points[1].Month)
	assert.Equal(t, "2024-03", points[2].Month)
	assert.Equal(t, 170.0, points[1].Value)
	assert.Equal(t, 170.0, points[2].Value)

	// Bucketing conserves the grand total.
	var total float64
	for _, p := range points {
		total += p.Value
	}
	assert.Equal(t, 595.0, total)
}

func TestGroupDividendsByMonthSkipsBadDates(t *testing.T) {
	dividends := []models.Dividend{
		div("SCHD", "not-a-date", "100", "85"),
		div("SCHD", "2024-03-15", "100", "85"),
	}
	points := GroupDividendsByMonth(dividends, true)
	require.Len(t, points, 1)
	assert.Equal(t, "2024-03", points[0].Month)
}
