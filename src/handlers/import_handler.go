package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/username/divroutine/backend/src/config"
	"github.com/username/divroutine/backend/src/logger"
	"github.com/username/divroutine/backend/src/parsers/tabular"
	"github.com/username/divroutine/backend/src/services"
	"github.com/username/divroutine/backend/src/utils"
)

// ImportHandler serves the two import paths: a multipart CSV upload and a
// sheet-sync endpoint that takes already fetched rows as JSON.
type ImportHandler struct {
	importService services.ImportService
}

func NewImportHandler(importService services.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

func importStatus(err error) (string, int) {
	switch {
	case errors.Is(err, services.ErrInvalidMapping):
		return "A non-empty column mapping is required", http.StatusBadRequest
	case errors.Is(err, tabular.ErrUnknownKind):
		return "kind must be one of transaction, dividend, cashflow", http.StatusBadRequest
	case errors.Is(err, services.ErrParsingFailed):
		return "Failed to parse CSV content", http.StatusBadRequest
	default:
		return "Import failed", http.StatusInternalServerError
	}
}

// HandleUploadCSV accepts a multipart form with a 'file' CSV, a 'kind' field
// and a 'mapping' field holding the column mapping as JSON.
func (h *ImportHandler) HandleUploadCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		sendJSONError(w, fmt.Sprintf("Failed to process upload or file too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	kind := tabular.RecordKind(r.FormValue("kind"))

	var mapping tabular.ColumnMapping
	if raw := r.FormValue("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			sendJSONError(w, "mapping must be valid JSON", http.StatusBadRequest)
			return
		}
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		sendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		sendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	summary, err := h.importService.ImportCSV(file, userID, kind, mapping)
	if err != nil {
		message, status := importStatus(err)
		if status == http.StatusInternalServerError {
			ctxLogger.Error("CSV import failed", "error", err)
		}
		sendJSONError(w, message, status)
		return
	}
	utils.SendJSONResponse(w, summary, http.StatusOK)
}

// HandleSyncRows accepts pre-fetched sheet rows (header row included) and runs
// them through the same mapping and validation pipeline as the CSV upload.
func (h *ImportHandler) HandleSyncRows(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var request struct {
		Kind    string                `json:"kind"`
		Mapping tabular.ColumnMapping `json:"mapping"`
		Rows    [][]string            `json:"rows"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	summary, err := h.importService.ImportRows(request.Rows, userID, tabular.RecordKind(request.Kind), request.Mapping)
	if err != nil {
		message, status := importStatus(err)
		if status == http.StatusInternalServerError {
			logger.FromContext(r.Context()).Error("Sheet sync failed", "error", err)
		}
		sendJSONError(w, message, status)
		return
	}
	utils.SendJSONResponse(w, summary, http.StatusOK)
}
