package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/username/divroutine/backend/src/database"
	"github.com/username/divroutine/backend/src/logger"
	"github.com/username/divroutine/backend/src/model"
	"github.com/username/divroutine/backend/src/models"
	"github.com/username/divroutine/backend/src/parsers/tabular"
	"github.com/username/divroutine/backend/src/security/validation"
	"github.com/username/divroutine/backend/src/services"
	"github.com/username/divroutine/backend/src/utils"
)

// LedgerHandler serves the manual-entry CRUD endpoints for transactions,
// dividends, cash flows and holdings.
type LedgerHandler struct {
	reportService services.ReportService
}

func NewLedgerHandler(reportService services.ReportService) *LedgerHandler {
	return &LedgerHandler{reportService: reportService}
}

func idFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func sendValidationErrors(w http.ResponseWriter, result tabular.RowValidation) {
	utils.SendJSONResponse(w, map[string]any{
		"error":  "Validation failed",
		"errors": result.Errors,
	}, http.StatusBadRequest)
}

func (h *LedgerHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	txs, err := model.ListTransactions(database.DB, userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list transactions", "error", err)
		sendJSONError(w, "Failed to fetch transactions", http.StatusInternalServerError)
		return
	}
	utils.SendJSONResponse(w, txs, http.StatusOK)
}

func (h *LedgerHandler) HandleAddTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var t models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	t.Symbol = validation.SanitizeText(strings.TrimSpace(t.Symbol))

	row := tabular.Row{
		"trade_date": t.TradeDate,
		"symbol":     t.Symbol,
		"side":       t.Side,
		"quantity":   t.Quantity,
		"price":      t.Price,
		"fee_tax":    t.FeeTax,
	}
	if result := tabular.ValidateTransactionRow(row); !result.Valid {
		sendValidationErrors(w, result)
		return
	}
	record := tabular.BuildTransaction(row)

	if err := model.InsertTransaction(database.DB, userID, &record); err != nil {
		logger.FromContext(r.Context()).Error("Failed to insert transaction", "error", err)
		sendJSONError(w, "Failed to save transaction", http.StatusInternalServerError)
		return
	}
	h.reportService.InvalidateUserCache(userID)
	utils.SendJSONResponse(w, record, http.StatusCreated)
}

func (h *LedgerHandler) HandleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, model.DeleteTransaction)
}

func (h *LedgerHandler) HandleListDividends(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	divs, err := model.ListDividends(database.DB, userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list dividends", "error", err)
		sendJSONError(w, "Failed to fetch dividends", http.StatusInternalServerError)
		return
	}
	utils.SendJSONResponse(w, divs, http.StatusOK)
}

func (h *LedgerHandler) HandleAddDividend(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var d models.Dividend
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	d.Symbol = validation.SanitizeText(strings.TrimSpace(d.Symbol))

	row := tabular.Row{
		"pay_date":        d.PayDate,
		"ex_date":         d.ExDate,
		"symbol":          d.Symbol,
		"gross_amount":    d.GrossAmount,
		"withholding_tax": d.WithholdingTax,
		"net_amount":      d.NetAmount,
	}
	if result := tabular.ValidateDividendRow(row); !result.Valid {
		sendValidationErrors(w, result)
		return
	}

	// Net exceeding gross is impossible for a real payment. The batch import
	// keeps parity with spreadsheet sources and does not apply this check.
	gross, _ := decimal.NewFromString(d.GrossAmount)
	net, _ := decimal.NewFromString(d.NetAmount)
	if net.GreaterThan(gross) {
		sendJSONError(w, "net_amount cannot exceed gross_amount", http.StatusBadRequest)
		return
	}

	record := tabular.BuildDividend(row)
	if err := model.InsertDividend(database.DB, userID, &record); err != nil {
		logger.FromContext(r.Context()).Error("Failed to insert dividend", "error", err)
		sendJSONError(w, "Failed to save dividend", http.StatusInternalServerError)
		return
	}
	h.reportService.InvalidateUserCache(userID)
	utils.SendJSONResponse(w, record, http.StatusCreated)
}

func (h *LedgerHandler) HandleDeleteDividend(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, model.DeleteDividend)
}

func (h *LedgerHandler) HandleListCashFlows(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	flows, err := model.ListCashFlows(database.DB, userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list cash flows", "error", err)
		sendJSONError(w, "Failed to fetch cash flows", http.StatusInternalServerError)
		return
	}
	utils.SendJSONResponse(w, flows, http.StatusOK)
}

func (h *LedgerHandler) HandleAddCashFlow(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var c models.CashFlow
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !tabular.IsValidDate(c.Date) {
		sendJSONError(w, "date must be a valid YYYY-MM-DD date", http.StatusBadRequest)
		return
	}
	c.Memo = validation.SanitizeText(validation.StripUnprintable(c.Memo))

	if err := model.InsertCashFlow(database.DB, userID, &c); err != nil {
		logger.FromContext(r.Context()).Error("Failed to insert cash flow", "error", err)
		sendJSONError(w, "Failed to save cash flow", http.StatusInternalServerError)
		return
	}
	h.reportService.InvalidateUserCache(userID)
	utils.SendJSONResponse(w, c, http.StatusCreated)
}

func (h *LedgerHandler) HandleDeleteCashFlow(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, model.DeleteCashFlow)
}

func (h *LedgerHandler) HandleListHoldings(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	rows, err := h.reportService.GetHoldingRows(userID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list holdings", "error", err)
		sendJSONError(w, "Failed to fetch holdings", http.StatusInternalServerError)
		return
	}
	utils.SendJSONResponse(w, rows, http.StatusOK)
}

func (h *LedgerHandler) validateHolding(hld *models.Holding) string {
	hld.Symbol = validation.SanitizeText(strings.TrimSpace(hld.Symbol))
	hld.Name = validation.SanitizeText(strings.TrimSpace(hld.Name))
	hld.Sector = validation.SanitizeText(strings.TrimSpace(hld.Sector))

	switch {
	case hld.Symbol == "":
		return "symbol is required"
	case !tabular.IsValidNumber(hld.Quantity):
		return "quantity must be a valid number"
	case !tabular.IsValidNumber(hld.AvgCost):
		return "avg_cost must be a valid number"
	case hld.ExpectedDividendPerShareYear != "" && !tabular.IsValidNumber(hld.ExpectedDividendPerShareYear):
		return "expected_dividend_per_share_year must be a valid number"
	}
	return ""
}

func (h *LedgerHandler) HandleAddHolding(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var hld models.Holding
	if err := json.NewDecoder(r.Body).Decode(&hld); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := h.validateHolding(&hld); msg != "" {
		sendJSONError(w, msg, http.StatusBadRequest)
		return
	}

	if err := model.InsertHolding(database.DB, userID, &hld); err != nil {
		logger.FromContext(r.Context()).Error("Failed to insert holding", "error", err)
		sendJSONError(w, "Failed to save holding", http.StatusInternalServerError)
		return
	}
	h.reportService.InvalidateUserCache(userID)
	utils.SendJSONResponse(w, hld, http.StatusCreated)
}

func (h *LedgerHandler) HandleUpdateHolding(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	id, err := idFromURL(r)
	if err != nil {
		sendJSONError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	var hld models.Holding
	if err := json.NewDecoder(r.Body).Decode(&hld); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	hld.ID = id
	if msg := h.validateHolding(&hld); msg != "" {
		sendJSONError(w, msg, http.StatusBadRequest)
		return
	}

	if err := model.UpdateHolding(database.DB, userID, &hld); err != nil {
		if errors.Is(err, model.ErrRecordNotFound) {
			sendJSONError(w, "Holding not found", http.StatusNotFound)
			return
		}
		logger.FromContext(r.Context()).Error("Failed to update holding", "error", err)
		sendJSONError(w, "Failed to update holding", http.StatusInternalServerError)
		return
	}
	h.reportService.InvalidateUserCache(userID)
	utils.SendJSONResponse(w, hld, http.StatusOK)
}

func (h *LedgerHandler) HandleDeleteHolding(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, model.DeleteHolding)
}

func (h *LedgerHandler) handleDelete(w http.ResponseWriter, r *http.Request, deleteFn func(db *sql.DB, userID, id int64) error) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	id, err := idFromURL(r)
	if err != nil {
		sendJSONError(w, "Invalid id", http.StatusBadRequest)
		return
	}

	if err := deleteFn(database.DB, userID, id); err != nil {
		if errors.Is(err, model.ErrRecordNotFound) {
			sendJSONError(w, "Record not found", http.StatusNotFound)
			return
		}
		logger.FromContext(r.Context()).Error("Failed to delete record", "error", err)
		sendJSONError(w, "Failed to delete record", http.StatusInternalServerError)
		return
	}
	h.reportService.InvalidateUserCache(userID)
	w.WriteHeader(http.StatusNoContent)
}
