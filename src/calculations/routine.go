package calculations

import (
	"sort"
	"time"

	"github.com/username/divroutine/backend/src/models"
)

// CalculateRoutineAdherence computes the month's deposits as a percentage of
// the monthly investment plan. Withdrawals are excluded; a plan of zero yields
// zero rather than a division error.
func CalculateRoutineAdherence(cashFlows []models.CashFlow, year, month int, monthlyInvestPlan int64) float64 {
	if monthlyInvestPlan == 0 {
		return 0
	}
	var deposits int64
	for _, cf := range cashFlows {
		date, ok := parseDate(cf.Date)
		if !ok || cf.Amount <= 0 {
			continue
		}
		if date.Year() == year && int(date.Month()) == month {
			deposits += cf.Amount
		}
	}
	return float64(deposits) / float64(monthlyInvestPlan) * 100
}

// CalculateInvestmentStreak counts the consecutive months, newest first, whose
// deposit adherence meets threshold percent. The walk starts at the most
// recent month that has deposits and steps back one calendar month at a time;
// a month with no deposits counts as 0% and breaks the streak.
func CalculateInvestmentStreak(cashFlows []models.CashFlow, monthlyInvestPlan int64, threshold float64) int {
	if monthlyInvestPlan <= 0 {
		return 0
	}

	monthlyTotals := make(map[string]int64)
	for _, cf := range cashFlows {
		date, ok := parseDate(cf.Date)
		if !ok || cf.Amount <= 0 {
			continue
		}
		monthlyTotals[monthKey(date)] += cf.Amount
	}
	if len(monthlyTotals) == 0 {
		return 0
	}

	keys := make([]string, 0, len(monthlyTotals))
	for key := range monthlyTotals {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	oldest := keys[len(keys)-1]
	cursor, _ := time.Parse("2006-01", keys[0])
	streak := 0
	for monthKey(cursor) >= oldest {
		total := monthlyTotals[monthKey(cursor)]
		adherence := float64(total) / float64(monthlyInvestPlan) * 100
		if adherence < threshold {
			break
		}
		streak++
		cursor = cursor.AddDate(0, -1, 0)
	}
	return streak
}

// CalculateYearlyDeposits sums the positive cash flows of the given year.
func CalculateYearlyDeposits(cashFlows []models.CashFlow, year int) int64 {
	var total int64
	for _, cf := range cashFlows {
		date, ok := parseDate(cf.Date)
		if !ok || cf.Amount <= 0 {
			continue
		}
		if date.Year() == year {
			total += cf.Amount
		}
	}
	return total
}

// GroupCashFlowsByMonth buckets cash flows by YYYY-MM, accumulating deposits
// and withdrawals (as absolute values) separately. Sorted ascending by month.
func GroupCashFlowsByMonth(cashFlows []models.CashFlow) []models.CashFlowDataPoint {
	type bucket struct {
		deposits    int64
		withdrawals int64
	}
	buckets := make(map[string]*bucket)
	for _, cf := range cashFlows {
		date, ok := parseDate(cf.Date)
		if !ok {
			continue
		}
		key := monthKey(date)
		b, exists := buckets[key]
		if !exists {
			b = &bucket{}
			buckets[key] = b
		}
		if cf.Amount > 0 {
			b.deposits += cf.Amount
		} else {
			b.withdrawals += -cf.Amount
		}
	}

	points := make([]models.CashFlowDataPoint, 0, len(buckets))
	for key, b := range buckets {
		points = append(points, models.CashFlowDataPoint{
			Month:       key,
			Deposits:    b.deposits,
			Withdrawals: b.withdrawals,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })
	return points
}
