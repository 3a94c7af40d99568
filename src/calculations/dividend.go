package calculations

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/username/divroutine/backend/src/models"
)

// CalculateTTMDividend sums the trailing-twelve-month dividend amounts,
// using net or gross per useNet. The window rolls back 12 calendar months
// from today (not 365 days) and is inclusive of the cutoff date.
func CalculateTTMDividend(dividends []models.Dividend, useNet bool) float64 {
	return calculateTTMDividendAt(time.Now(), dividends, useNet)
}

func calculateTTMDividendAt(now time.Time, dividends []models.Dividend, useNet bool) float64 {
	cutoff := now.AddDate(-1, 0, 0)
	cutoff = time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC)

	sum := decimal.Zero
	for _, d := range dividends {
		payDate, ok := parseDate(d.PayDate)
		if !ok || payDate.Before(cutoff) {
			continue
		}
		sum = sum.Add(dividendAmount(d, useNet))
	}
	return sum.InexactFloat64()
}

// CalculateMonthlyDividend sums the dividends whose pay date falls exactly in
// the given calendar year and month (1-12).
func CalculateMonthlyDividend(dividends []models.Dividend, year, month int, useNet bool) float64 {
	sum := decimal.Zero
	for _, d := range dividends {
		payDate, ok := parseDate(d.PayDate)
		if !ok || payDate.Year() != year || int(payDate.Month()) != month {
			continue
		}
		sum = sum.Add(dividendAmount(d, useNet))
	}
	return sum.InexactFloat64()
}

// ProjectAnnualDividend projects the next twelve months of dividends from the
// holdings' expected per-share payouts. Holdings without an expected value
// contribute nothing.
func ProjectAnnualDividend(holdings []models.Holding) float64 {
	sum := decimal.Zero
	for _, h := range holdings {
		if h.ExpectedDividendPerShareYear == "" {
			continue
		}
		sum = sum.Add(parseAmount(h.Quantity).Mul(parseAmount(h.ExpectedDividendPerShareYear)))
	}
	return sum.InexactFloat64()
}

// ProjectMonthlyDividend is the annual projection divided evenly by twelve.
// Per-symbol payout-month schedules are ignored; this is a deliberate
// simplification, not a per-month distribution.
func ProjectMonthlyDividend(holdings []models.Holding) float64 {
	return math.Round(ProjectAnnualDividend(holdings) / 12)
}

// GroupDividendsByMonth buckets dividends by the YYYY-MM of their pay date and
// sums each bucket. Only months with at least one dividend appear; the result
// is sorted ascending by month key.
func GroupDividendsByMonth(dividends []models.Dividend, useNet bool) []models.MonthlyDataPoint {
	buckets := make(map[string]decimal.Decimal)
	for _, d := range dividends {
		payDate, ok := parseDate(d.PayDate)
		if !ok {
			continue
		}
		key := monthKey(payDate)
		buckets[key] = buckets[key].Add(dividendAmount(d, useNet))
	}

	points := make([]models.MonthlyDataPoint, 0, len(buckets))
	for key, total := range buckets {
		points = append(points, models.MonthlyDataPoint{Month: key, Value: total.InexactFloat64()})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })
	return points
}
