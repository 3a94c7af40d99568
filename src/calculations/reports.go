package calculations

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/username/divroutine/backend/src/models"
	"github.com/username/divroutine/backend/src/utils"
)

// DateRange is an inclusive calendar window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GenerateWeeklyReport summarizes the dividends and deposits of an inclusive
// date range. GoalProgress compares the week's dividend total against the
// monthly goal without pro-rating; consumers rely on that reading, so it is
// kept even though the ratio mixes a weekly figure with a monthly target.
func GenerateWeeklyReport(start, end time.Time, dividends []models.Dividend, cashFlows []models.CashFlow, goalMonthlyDividend int64) models.WeeklyReport {
	start = truncateToDay(start)
	end = truncateToDay(end)

	var weekDividends []models.Dividend
	totalDividends := decimal.Zero
	for _, d := range dividends {
		payDate, ok := parseDate(d.PayDate)
		if !ok || payDate.Before(start) || payDate.After(end) {
			continue
		}
		weekDividends = append(weekDividends, d)
		totalDividends = totalDividends.Add(parseAmount(d.NetAmount))
	}

	var totalDeposits int64
	depositCount := 0
	for _, cf := range cashFlows {
		date, ok := parseDate(cf.Date)
		if !ok || cf.Amount <= 0 || date.Before(start) || date.After(end) {
			continue
		}
		totalDeposits += cf.Amount
		depositCount++
	}

	highlights := []string{}
	if len(weekDividends) > 0 {
		top := weekDividends[0]
		topAmount := parseAmount(top.NetAmount)
		for _, d := range weekDividends[1:] {
			if amount := parseAmount(d.NetAmount); amount.GreaterThan(topAmount) {
				top = d
				topAmount = amount
			}
		}
		highlights = append(highlights, fmt.Sprintf("Top dividend: %s (%s)",
			top.Symbol, utils.FormatThousands(int64(math.Round(topAmount.InexactFloat64())))))

		uniqueSymbols := make(map[string]bool)
		for _, d := range weekDividends {
			uniqueSymbols[d.Symbol] = true
		}
		highlights = append(highlights, fmt.Sprintf("Dividends received from %d symbols", len(uniqueSymbols)))
	}
	if totalDeposits > 0 {
		highlights = append(highlights, fmt.Sprintf("Total deposits: %s (%d payments)",
			utils.FormatThousands(totalDeposits), depositCount))
	}

	dividendTotal := totalDividends.InexactFloat64()
	return models.WeeklyReport{
		Period: models.ReportPeriod{
			Start: start.Format(dateLayout),
			End:   end.Format(dateLayout),
		},
		Dividends: models.WeeklyDividendSummary{
			Total: dividendTotal,
			Count: len(weekDividends),
		},
		Deposits: models.WeeklyDepositSummary{
			Total: totalDeposits,
			Count: depositCount,
		},
		GoalProgress: CalculateGoalProgress(dividendTotal, float64(goalMonthlyDividend)),
		Highlights:   highlights,
	}
}

// GenerateMonthlyReport summarizes one calendar month. TTM and the annual
// projection are computed over the entire history passed in, never restricted
// to the report month, so older reports stay comparable with current ones.
func GenerateMonthlyReport(year, month int, dividends []models.Dividend, cashFlows []models.CashFlow, holdings []models.Holding, goalMonthlyDividend, monthlyInvestPlan int64) models.MonthlyReport {
	bySymbol := make(map[string]decimal.Decimal)
	var symbolOrder []string
	totalDividends := decimal.Zero
	count := 0
	for _, d := range dividends {
		payDate, ok := parseDate(d.PayDate)
		if !ok || payDate.Year() != year || int(payDate.Month()) != month {
			continue
		}
		amount := parseAmount(d.NetAmount)
		if _, seen := bySymbol[d.Symbol]; !seen {
			symbolOrder = append(symbolOrder, d.Symbol)
		}
		bySymbol[d.Symbol] = bySymbol[d.Symbol].Add(amount)
		totalDividends = totalDividends.Add(amount)
		count++
	}

	breakdown := make([]models.SymbolAmount, 0, len(bySymbol))
	for _, symbol := range symbolOrder {
		breakdown = append(breakdown, models.SymbolAmount{
			Symbol: symbol,
			Amount: bySymbol[symbol].InexactFloat64(),
		})
	}
	sort.SliceStable(breakdown, func(i, j int) bool { return breakdown[i].Amount > breakdown[j].Amount })

	var monthDeposits int64
	for _, cf := range cashFlows {
		date, ok := parseDate(cf.Date)
		if !ok || cf.Amount <= 0 {
			continue
		}
		if date.Year() == year && int(date.Month()) == month {
			monthDeposits += cf.Amount
		}
	}

	dividendTotal := totalDividends.InexactFloat64()
	return models.MonthlyReport{
		Period: models.MonthPeriod{Year: year, Month: month},
		Dividends: models.MonthlyDividendSummary{
			Total:    dividendTotal,
			Count:    count,
			BySymbol: breakdown,
		},
		Deposits: models.MonthlyDepositSummary{
			Total:     monthDeposits,
			Adherence: CalculateRoutineAdherence(cashFlows, year, month, monthlyInvestPlan),
		},
		GoalProgress:    CalculateGoalProgress(dividendTotal, float64(goalMonthlyDividend)),
		TTM:             CalculateTTMDividend(dividends, true),
		ProjectedAnnual: ProjectAnnualDividend(holdings),
	}
}

// LastNWeeks returns n trailing 7-day windows, newest first, each ending at
// today minus 7*i days. These are rolling windows, not Sunday-anchored
// calendar weeks; SundayWeekOf covers the explicit pick-a-date path.
func LastNWeeks(n int) []DateRange {
	return lastNWeeksAt(time.Now(), n)
}

func lastNWeeksAt(now time.Time, n int) []DateRange {
	today := truncateToDay(now)
	weeks := make([]DateRange, 0, n)
	for i := 0; i < n; i++ {
		end := today.AddDate(0, 0, -7*i)
		weeks = append(weeks, DateRange{Start: end.AddDate(0, 0, -6), End: end})
	}
	return weeks
}

// LastNMonths returns n calendar months, newest first, starting at the
// current month.
func LastNMonths(n int) []models.MonthPeriod {
	return lastNMonthsAt(time.Now(), n)
}

func lastNMonthsAt(now time.Time, n int) []models.MonthPeriod {
	months := make([]models.MonthPeriod, 0, n)
	for i := 0; i < n; i++ {
		m := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		months = append(months, models.MonthPeriod{Year: m.Year(), Month: int(m.Month())})
	}
	return months
}

// SundayWeekOf snaps a date to its Sunday-through-Saturday calendar week.
func SundayWeekOf(date time.Time) DateRange {
	day := truncateToDay(date)
	start := day.AddDate(0, 0, -int(day.Weekday()))
	return DateRange{Start: start, End: start.AddDate(0, 0, 6)}
}
