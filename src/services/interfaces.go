package services

import (
	"errors"
	"io"
	"time"

	"github.com/username/divroutine/backend/src/calculations"
	"github.com/username/divroutine/backend/src/models"
	"github.com/username/divroutine/backend/src/parsers/tabular"
)

const (
	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

// Common service errors.
var (
	ErrParsingFailed  = errors.New("tabular parsing failed")
	ErrInvalidMapping = errors.New("column mapping is invalid")
)

// ImportSummary reports the outcome of one batch import. A batch with some
// failed rows is still a success for the remaining rows.
type ImportSummary struct {
	TotalRows    int                  `json:"totalRows"`
	SuccessCount int                  `json:"successCount"`
	FailCount    int                  `json:"failCount"`
	Errors       []tabular.ParseError `json:"errors,omitempty"`
	Message      string               `json:"message"`
}

// ReportService computes the derived dashboard and report shapes from a
// user's ledger, caching results until the next write.
type ReportService interface {
	GetKpis(userID int64) (*models.KpiResult, error)
	GetWeeklyReport(userID int64, window calculations.DateRange) (*models.WeeklyReport, error)
	GetMonthlyReport(userID int64, year, month int) (*models.MonthlyReport, error)
	GetRecentWeeklyReports(userID int64, n int) ([]models.WeeklyReport, error)
	GetRecentMonthlyReports(userID int64, n int) ([]models.MonthlyReport, error)
	GetDividendChart(userID int64) ([]models.MonthlyDataPoint, error)
	GetCashFlowChart(userID int64) ([]models.CashFlowDataPoint, error)
	GetHoldingRows(userID int64) ([]models.HoldingRow, error)
	InvalidateUserCache(userID int64)
}

// ImportService runs the tabular import pipeline: parse, map, validate,
// insert the valid rows in one transaction, report partial success.
type ImportService interface {
	ImportCSV(fileReader io.Reader, userID int64, kind tabular.RecordKind, mapping tabular.ColumnMapping) (*ImportSummary, error)
	ImportRows(rows [][]string, userID int64, kind tabular.RecordKind, mapping tabular.ColumnMapping) (*ImportSummary, error)
}
