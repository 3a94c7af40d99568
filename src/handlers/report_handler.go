package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/username/divroutine/backend/src/calculations"
	"github.com/username/divroutine/backend/src/logger"
	"github.com/username/divroutine/backend/src/services"
	"github.com/username/divroutine/backend/src/utils"
)

// ReportHandler serves the derived dashboard endpoints: KPIs, weekly and
// monthly reports, and the chart series.
type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func (h *ReportHandler) HandleGetKpis(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	kpis, err := h.reportService.GetKpis(userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to compute KPIs", "error", err)
		sendJSONError(w, "Failed to compute KPIs", http.StatusInternalServerError)
		return
	}
	utils.SendJSONResponse(w, kpis, http.StatusOK)
}

// HandleGetWeeklyReport reports the Sunday-to-Saturday week containing the
// given ?date=, defaulting to today.
func (h *ReportHandler) HandleGetWeeklyReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	anchor := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			sendJSONError(w, "date must be a valid YYYY-MM-DD date", http.StatusBadRequest)
			return
		}
		anchor = parsed
	}

	report, err := h.reportService.GetWeeklyReport(userID, calculations.SundayWeekOf(anchor))
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to build weekly report", "error", err)
		sendJSONError(w, "Failed to build weekly report", http.StatusInternalServerError)
		return
	}
	utils.SendJSONResponse(w, report, http.StatusOK)
}

// HandleGetMonthlyReport reports the given ?year=&month=, defaulting to the
// previous calendar month.
func (h *ReportHandler) HandleGetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	lastMonth := time.Now().AddDate(0, -1, 0)
	year := queryInt(r, "year", lastMonth.Year())
	month := queryInt(r, "month", int(lastMonth.Month()))
	if month < 1 || month > 12 {
		sendJSONError(w, "month must be between 1 and 12", http.StatusBadRequest)
		return
	}

	report, err := h.reportService.GetMonthlyReport(userID, year, month)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to build monthly report", "error", err)
		sendJSONError(w, "Failed to build monthly report", http.StatusInternalServerError)
		return
	}
	utils.SendJSONResponse(w, report, http.StatusOK)
}

func (h *ReportHandler) HandleGetRecentWeeklyReports(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	n := queryInt(r, "n", 4)
	if n < 1 || n > 26 {
		sendJSONError(w, "n must be between 1 and 26", http.StatusBadRequest)
		return
	}

	reports, err := h.reportService.GetRecentWeeklyReports(userID, n)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to build recent weekly reports", "error", err)
		sendJSONError(w, "Failed to build recent weekly reports", http.StatusInternalServerError)
		return
	}
	utils.SendJSONResponse(w, reports, http.StatusOK)
}

func (h *ReportHandler) HandleGetRecentMonthlyReports(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	n := queryInt(r, "n", 6)
	if n < 1 || n > 24 {
		sendJSONError(w, "n must be between 1 and 24", http.StatusBadRequest)
		return
	}

	reports, err := h.reportService.GetRecentMonthlyReports(userID, n)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to build recent monthly reports", "error", err)
		sendJSONError(w, "Failed to build recent monthly reports", http.StatusInternalServerError)
		return
	}
	utils.SendJSONResponse(w, reports, http.StatusOK)
}

func (h *ReportHandler) HandleGetDividendChart(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	points, err := h.reportService.GetDividendChart(userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to build dividend chart", "error", err)
		sendJSONError(w, "Failed to build dividend chart", http.StatusInternalServerError)
		return
	}
	utils.SendJSONResponse(w, points, http.StatusOK)
}

func (h *ReportHandler) HandleGetCashFlowChart(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	points, err := h.reportService.GetCashFlowChart(userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to build cash flow chart", "error", err)
		sendJSONError(w, "Failed to build cash flow chart", http.StatusInternalServerError)
		return
	}
	utils.SendJSONResponse(w, points, http.StatusOK)
}
