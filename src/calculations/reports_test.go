package calculations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/divroutine/backend/src/models"
)

func TestGenerateWeeklyReport(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	dividends := []models.Dividend{
		div("SCHD", "2024-03-11", "100000", "85000"),
		div("VYM", "2024-03-15", "60000", "51000"),
		div("SCHD", "2024-03-20", "100000", "85000"), // outside the window
	}
	cashFlows := []models.CashFlow{
		flow("2024-03-12", 1_000_000),
		flow("2024-03-14", -50_000), // withdrawal, excluded
		flow("2024-03-09", 700_000), // outside the window
	}

	report := GenerateWeeklyReport(start, end, dividends, cashFlows, 900_000)

	assert.Equal(t, "2024-03-10", report.Period.Start)
	assert.Equal(t, "2024-03-16", report.Period.End)
	assert.Equal(t, 136000.0, report.Dividends.Total)
	assert.Equal(t, 2, report.Dividends.Count)
	assert.Equal(t, int64(1_000_000), report.Deposits.Total)
	assert.Equal(t, 1, report.Deposits.Count)
	assert.InDelta(t, 136000.0/900_000*100, report.GoalProgress, 1e-9)

	require.Len(t, report.Highlights, 3)
	assert.Equal(t, "Top dividend: SCHD (85,000)", report.Highlights[0])
	assert.Equal(t, "Dividends received from 2 symbols", report.Highlights[1])
	assert.Equal(t, "Total deposits: 1,000,000 (1 payments)", report.Highlights[2])
}

func TestGenerateWeeklyReportTopDividendTieKeepsFirst(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
	dividends := []models.Dividend{
		div("AAA", "2024-03-11", "100", "85"),
		div("BBB", "2024-03-12", "100", "85"),
	}

	report := GenerateWeeklyReport(start, end, dividends, nil, 900_000)
	require.NotEmpty(t, report.Highlights)
	assert.Equal(t, "Top dividend: AAA (85)", report.Highlights[0])
}

func TestGenerateWeeklyReportEmptyWindow(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	report := GenerateWeeklyReport(start, end, nil, nil, 0)

	assert.Equal(t, 0.0, report.Dividends.Total)
	assert.Equal(t, 0.0, report.GoalProgress) // zero goal degrades to 0, not NaN
	assert.Empty(t, report.Highlights)
}

func TestGenerateMonthlyReport(t *testing.T) {
	now := time.Now()
	target := now.AddDate(0, -1, 0)
	year, month := target.Year(), int(target.Month())
	inMonth := func(day int) string {
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	}

	dividends := []models.Dividend{
		div("SCHD", inMonth(5), "100000", "85000"),
		div("VYM", inMonth(12), "120000", "102000"),
		div("SCHD", inMonth(20), "100000", "85000"),
		div("OLD", now.AddDate(-2, 0, 0).Format("2006-01-02"), "999999", "999999"),
	}
	cashFlows := []models.CashFlow{
		{Date: inMonth(1), Amount: 1_500_000},
		{Date: inMonth(15), Amount: 500_000},
	}
	holdings := []models.Holding{
		{Symbol: "SCHD", Quantity: "100", AvgCost: "30000", ExpectedDividendPerShareYear: "2400"},
	}

	report := GenerateMonthlyReport(year, month, dividends, cashFlows, holdings, 900_000, 2_000_000)

	assert.Equal(t, year, report.Period.Year)
	assert.Equal(t, month, report.Period.Month)
	assert.Equal(t, 272000.0, report.Dividends.Total)
	assert.Equal(t, 3, report.Dividends.Count)

	require.Len(t, report.Dividends.BySymbol, 2)
	assert.Equal(t, models.SymbolAmount{Symbol: "SCHD", Amount: 170000}, report.Dividends.BySymbol[0])
	assert.Equal(t, models.SymbolAmount{Symbol: "VYM", Amount: 102000}, report.Dividends.BySymbol[1])

	assert.Equal(t, int64(2_000_000), report.Deposits.Total)
	assert.Equal(t, 100.0, report.Deposits.Adherence)
	assert.InDelta(t, 272000.0/900_000*100, report.GoalProgress, 1e-9)

	// TTM covers the full history as of now: the two-year-old payment is out.
	assert.Equal(t, 272000.0, report.TTM)
	assert.Equal(t, 240000.0, report.ProjectedAnnual)
}

func TestLastNWeeks(t *testing.T) {
	now := time.Date(2024, 3, 20, 14, 30, 0, 0, time.UTC)

	weeks := lastNWeeksAt(now, 3)
	require.Len(t, weeks, 3)

	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), weeks[0].Start)
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), weeks[0].End)
	assert.Equal(t, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), weeks[1].End)
	assert.Equal(t, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), weeks[2].End)
}

func TestLastNMonths(t *testing.T) {
	now := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	months := lastNMonthsAt(now, 4)
	require.Len(t, months, 4)

	assert.Equal(t, models.MonthPeriod{Year: 2024, Month: 2}, months[0])
	assert.Equal(t, models.MonthPeriod{Year: 2024, Month: 1}, months[1])
	assert.Equal(t, models.MonthPeriod{Year: 2023, Month: 12}, months[2])
	assert.Equal(t, models.MonthPeriod{Year: 2023, Month: 11}, months[3])
}

func TestSundayWeekOf(t *testing.T) {
	// 2024-03-20 is a Wednesday.
	week := SundayWeekOf(time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC), week.Start)
	assert.Equal(t, time.Date(2024, 3, 23, 0, 0, 0, 0, time.UTC), week.End)

	// A Sunday snaps to itself.
	week = SundayWeekOf(time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC), week.Start)
}
