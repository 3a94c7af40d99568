package models

// ReportPeriod is the inclusive date range a weekly report covers.
type ReportPeriod struct {
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end"`   // YYYY-MM-DD
}

// WeeklyDividendSummary holds the dividend totals of a weekly report.
type WeeklyDividendSummary struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// WeeklyDepositSummary holds the deposit totals of a weekly report.
type WeeklyDepositSummary struct {
	Total int64 `json:"total"`
	Count int   `json:"count"`
}

// WeeklyReport is the derived, transient weekly summary. Field names and
// nesting are a stable contract for every consumer.
type WeeklyReport struct {
	Period       ReportPeriod          `json:"period"`
	Dividends    WeeklyDividendSummary `json:"dividends"`
	Deposits     WeeklyDepositSummary  `json:"deposits"`
	GoalProgress float64               `json:"goalProgress"`
	Highlights   []string              `json:"highlights"`
}

// MonthPeriod identifies the calendar month a monthly report covers.
type MonthPeriod struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1-12
}

// SymbolAmount is one entry of the per-symbol dividend breakdown.
type SymbolAmount struct {
	Symbol string  `json:"symbol"`
	Amount float64 `json:"amount"`
}

// MonthlyDividendSummary holds the dividend section of a monthly report.
// BySymbol is sorted descending by amount.
type MonthlyDividendSummary struct {
	Total    float64        `json:"total"`
	Count    int            `json:"count"`
	BySymbol []SymbolAmount `json:"bySymbol"`
}

// MonthlyDepositSummary holds the deposit section of a monthly report.
type MonthlyDepositSummary struct {
	Total     int64   `json:"total"`
	Adherence float64 `json:"adherence"`
}

// MonthlyReport is the derived, transient monthly summary. TTM and
// ProjectedAnnual are always computed over the full history passed in,
// independent of the report month, so historical reports stay comparable.
type MonthlyReport struct {
	Period          MonthPeriod            `json:"period"`
	Dividends       MonthlyDividendSummary `json:"dividends"`
	Deposits        MonthlyDepositSummary  `json:"deposits"`
	GoalProgress    float64                `json:"goalProgress"`
	TTM             float64                `json:"ttm"`
	ProjectedAnnual float64                `json:"projectedAnnual"`
}

// KpiResult holds the dashboard headline numbers.
type KpiResult struct {
	ThisMonthDividend float64 `json:"this_month_dividend"`
	TTMDividend       float64 `json:"ttm_dividend"`
	GoalProgress      float64 `json:"goal_progress"`
	RoutineAdherence  float64 `json:"routine_adherence"`
	InvestmentStreak  int     `json:"investment_streak"`
	ProjectedAnnual   float64 `json:"projected_annual"`
	ProjectedMonthly  float64 `json:"projected_monthly"`
	PortfolioYOC      float64 `json:"portfolio_yoc"`
}

// MonthlyDataPoint is one month bucket of the dividend chart series.
type MonthlyDataPoint struct {
	Month string  `json:"month"` // YYYY-MM
	Value float64 `json:"value"`
}

// CashFlowDataPoint is one month bucket of the deposit/withdrawal chart series.
// Withdrawals are reported as absolute values.
type CashFlowDataPoint struct {
	Month       string `json:"month"` // YYYY-MM
	Deposits    int64  `json:"deposits"`
	Withdrawals int64  `json:"withdrawals"`
}
