package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/username/divroutine/backend/src/calculations"
	"github.com/username/divroutine/backend/src/logger"
	"github.com/username/divroutine/backend/src/model"
	"github.com/username/divroutine/backend/src/models"
)

const (
	ckKpis           = "agg_kpis_user_%d"
	ckWeeklyReport   = "agg_weekly_report_user_%d_%s"
	ckMonthlyReport  = "agg_monthly_report_user_%d_%04d_%02d"
	ckRecentWeekly   = "agg_recent_weekly_user_%d_%d"
	ckRecentMonthly  = "agg_recent_monthly_user_%d_%d"
	ckDividendChart  = "agg_dividend_chart_user_%d"
	ckCashFlowChart  = "agg_cash_flow_chart_user_%d"
	ckHoldingRows    = "agg_holding_rows_user_%d"
	ckUserCachedKeys = "agg_keys_user_%d"

	// Streak months must fully meet the plan.
	streakThresholdPercent = 100
)

type reportServiceImpl struct {
	db          *sql.DB
	reportCache *cache.Cache
}

func NewReportService(db *sql.DB, reportCache *cache.Cache) ReportService {
	return &reportServiceImpl{db: db, reportCache: reportCache}
}

// rememberKey tracks which cache keys belong to a user so invalidation can
// delete them without scanning the whole cache.
func (s *reportServiceImpl) rememberKey(userID int64, key string) {
	indexKey := fmt.Sprintf(ckUserCachedKeys, userID)
	var keys []string
	if cached, found := s.reportCache.Get(indexKey); found {
		keys = cached.([]string)
	}
	for _, k := range keys {
		if k == key {
			return
		}
	}
	keys = append(keys, key)
	s.reportCache.Set(indexKey, keys, cache.NoExpiration)
}

func (s *reportServiceImpl) cacheSet(userID int64, key string, value any) {
	s.reportCache.Set(key, value, DefaultCacheExpiration)
	s.rememberKey(userID, key)
}

func (s *reportServiceImpl) InvalidateUserCache(userID int64) {
	indexKey := fmt.Sprintf(ckUserCachedKeys, userID)
	if cached, found := s.reportCache.Get(indexKey); found {
		for _, key := range cached.([]string) {
			s.reportCache.Delete(key)
		}
	}
	s.reportCache.Delete(indexKey)
	logger.L.Debug("Report cache invalidated", "userID", userID)
}

func (s *reportServiceImpl) userSettings(userID int64) (*model.User, error) {
	user, err := model.GetUserByID(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching user settings: %w", err)
	}
	return user, nil
}

func (s *reportServiceImpl) GetKpis(userID int64) (*models.KpiResult, error) {
	cacheKey := fmt.Sprintf(ckKpis, userID)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(*models.KpiResult), nil
	}

	user, err := s.userSettings(userID)
	if err != nil {
		return nil, err
	}
	dividends, err := model.ListDividends(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching dividends: %w", err)
	}
	cashFlows, err := model.ListCashFlows(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching cash flows: %w", err)
	}
	holdings, err := model.ListHoldings(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching holdings: %w", err)
	}

	now := time.Now()
	thisMonth := calculations.CalculateMonthlyDividend(dividends, now.Year(), int(now.Month()), true)

	result := &models.KpiResult{
		ThisMonthDividend: thisMonth,
		TTMDividend:       calculations.CalculateTTMDividend(dividends, true),
		GoalProgress:      calculations.CalculateGoalProgress(thisMonth, float64(user.GoalMonthlyDividend)),
		RoutineAdherence:  calculations.CalculateRoutineAdherence(cashFlows, now.Year(), int(now.Month()), user.MonthlyInvestPlan),
		InvestmentStreak:  calculations.CalculateInvestmentStreak(cashFlows, user.MonthlyInvestPlan, streakThresholdPercent),
		ProjectedAnnual:   calculations.ProjectAnnualDividend(holdings),
		ProjectedMonthly:  calculations.ProjectMonthlyDividend(holdings),
		PortfolioYOC:      calculations.CalculatePortfolioYOC(holdings),
	}

	s.cacheSet(userID, cacheKey, result)
	return result, nil
}

func (s *reportServiceImpl) GetWeeklyReport(userID int64, window calculations.DateRange) (*models.WeeklyReport, error) {
	cacheKey := fmt.Sprintf(ckWeeklyReport, userID, window.Start.Format("2006-01-02"))
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(*models.WeeklyReport), nil
	}

	user, err := s.userSettings(userID)
	if err != nil {
		return nil, err
	}
	dividends, err := model.ListDividends(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching dividends: %w", err)
	}
	cashFlows, err := model.ListCashFlows(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching cash flows: %w", err)
	}

	report := calculations.GenerateWeeklyReport(window.Start, window.End, dividends, cashFlows, user.GoalMonthlyDividend)
	s.cacheSet(userID, cacheKey, &report)
	return &report, nil
}

func (s *reportServiceImpl) GetMonthlyReport(userID int64, year, month int) (*models.MonthlyReport, error) {
	cacheKey := fmt.Sprintf(ckMonthlyReport, userID, year, month)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(*models.MonthlyReport), nil
	}

	user, err := s.userSettings(userID)
	if err != nil {
		return nil, err
	}
	dividends, err := model.ListDividends(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching dividends: %w", err)
	}
	cashFlows, err := model.ListCashFlows(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching cash flows: %w", err)
	}
	holdings, err := model.ListHoldings(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching holdings: %w", err)
	}

	report := calculations.GenerateMonthlyReport(year, month, dividends, cashFlows, holdings, user.GoalMonthlyDividend, user.MonthlyInvestPlan)
	s.cacheSet(userID, cacheKey, &report)
	return &report, nil
}

func (s *reportServiceImpl) GetRecentWeeklyReports(userID int64, n int) ([]models.WeeklyReport, error) {
	cacheKey := fmt.Sprintf(ckRecentWeekly, userID, n)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.([]models.WeeklyReport), nil
	}

	user, err := s.userSettings(userID)
	if err != nil {
		return nil, err
	}
	dividends, err := model.ListDividends(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching dividends: %w", err)
	}
	cashFlows, err := model.ListCashFlows(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching cash flows: %w", err)
	}

	windows := calculations.LastNWeeks(n)
	reports := make([]models.WeeklyReport, 0, len(windows))
	for _, window := range windows {
		reports = append(reports, calculations.GenerateWeeklyReport(window.Start, window.End, dividends, cashFlows, user.GoalMonthlyDividend))
	}

	s.cacheSet(userID, cacheKey, reports)
	return reports, nil
}

func (s *reportServiceImpl) GetRecentMonthlyReports(userID int64, n int) ([]models.MonthlyReport, error) {
	cacheKey := fmt.Sprintf(ckRecentMonthly, userID, n)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.([]models.MonthlyReport), nil
	}

	user, err := s.userSettings(userID)
	if err != nil {
		return nil, err
	}
	dividends, err := model.ListDividends(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching dividends: %w", err)
	}
	cashFlows, err := model.ListCashFlows(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching cash flows: %w", err)
	}
	holdings, err := model.ListHoldings(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching holdings: %w", err)
	}

	periods := calculations.LastNMonths(n)
	reports := make([]models.MonthlyReport, 0, len(periods))
	for _, period := range periods {
		reports = append(reports, calculations.GenerateMonthlyReport(period.Year, period.Month, dividends, cashFlows, holdings, user.GoalMonthlyDividend, user.MonthlyInvestPlan))
	}

	s.cacheSet(userID, cacheKey, reports)
	return reports, nil
}

func (s *reportServiceImpl) GetDividendChart(userID int64) ([]models.MonthlyDataPoint, error) {
	cacheKey := fmt.Sprintf(ckDividendChart, userID)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.([]models.MonthlyDataPoint), nil
	}

	dividends, err := model.ListDividends(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching dividends: %w", err)
	}

	points := calculations.GroupDividendsByMonth(dividends, true)
	s.cacheSet(userID, cacheKey, points)
	return points, nil
}

func (s *reportServiceImpl) GetCashFlowChart(userID int64) ([]models.CashFlowDataPoint, error) {
	cacheKey := fmt.Sprintf(ckCashFlowChart, userID)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.([]models.CashFlowDataPoint), nil
	}

	cashFlows, err := model.ListCashFlows(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching cash flows: %w", err)
	}

	points := calculations.GroupCashFlowsByMonth(cashFlows)
	s.cacheSet(userID, cacheKey, points)
	return points, nil
}

func (s *reportServiceImpl) GetHoldingRows(userID int64) ([]models.HoldingRow, error) {
	cacheKey := fmt.Sprintf(ckHoldingRows, userID)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.([]models.HoldingRow), nil
	}

	holdings, err := model.ListHoldings(s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching holdings: %w", err)
	}

	rows := make([]models.HoldingRow, 0, len(holdings))
	for _, h := range holdings {
		rows = append(rows, calculations.BuildHoldingRow(h))
	}

	s.cacheSet(userID, cacheKey, rows)
	return rows, nil
}
