package services

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/username/divroutine/backend/src/logger"
	"github.com/username/divroutine/backend/src/model"
	"github.com/username/divroutine/backend/src/parsers/tabular"
	"github.com/username/divroutine/backend/src/security/validation"
)

type importServiceImpl struct {
	db            *sql.DB
	reportService ReportService
}

func NewImportService(db *sql.DB, reportService ReportService) ImportService {
	return &importServiceImpl{db: db, reportService: reportService}
}

func (s *importServiceImpl) ImportCSV(fileReader io.Reader, userID int64, kind tabular.RecordKind, mapping tabular.ColumnMapping) (*ImportSummary, error) {
	rows, err := tabular.ParseContent(fileReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	return s.ImportRows(rows, userID, kind, mapping)
}

func (s *importServiceImpl) ImportRows(rows [][]string, userID int64, kind tabular.RecordKind, mapping tabular.ColumnMapping) (*ImportSummary, error) {
	if len(mapping) == 0 {
		return nil, ErrInvalidMapping
	}
	validator, err := tabular.ValidatorFor(kind)
	if err != nil {
		return nil, err
	}

	result := tabular.MapRows(rows, mapping, validator)

	if len(result.Data) > 0 {
		if err := s.insertRecords(userID, kind, result.Data); err != nil {
			return nil, err
		}
		s.reportService.InvalidateUserCache(userID)
	}

	summary := &ImportSummary{
		TotalRows:    result.TotalRows,
		SuccessCount: result.SuccessCount,
		FailCount:    result.FailCount,
		Errors:       result.Errors,
		Message:      fmt.Sprintf("%d of %d rows imported, %d failed", result.SuccessCount, result.TotalRows, result.FailCount),
	}
	logger.L.Info("Import batch finished",
		"userID", userID, "kind", string(kind),
		"totalRows", summary.TotalRows, "success", summary.SuccessCount, "failed", summary.FailCount)
	return summary, nil
}

// insertRecords writes all valid rows of the batch within one transaction.
// Failed rows were already filtered out by the mapper; a database error here
// aborts the whole batch.
func (s *importServiceImpl) insertRecords(userID int64, kind tabular.RecordKind, data []tabular.Row) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting import transaction: %w", err)
	}
	defer tx.Rollback()

	for _, row := range data {
		switch kind {
		case tabular.KindTransaction:
			record := tabular.BuildTransaction(row)
			if err := model.InsertTransaction(tx, userID, &record); err != nil {
				return fmt.Errorf("inserting transaction row: %w", err)
			}
		case tabular.KindDividend:
			record := tabular.BuildDividend(row)
			if err := model.InsertDividend(tx, userID, &record); err != nil {
				return fmt.Errorf("inserting dividend row: %w", err)
			}
		case tabular.KindCashFlow:
			record := tabular.BuildCashFlow(row)
			record.Memo = validation.SanitizeText(validation.StripUnprintable(record.Memo))
			if err := model.InsertCashFlow(tx, userID, &record); err != nil {
				return fmt.Errorf("inserting cash flow row: %w", err)
			}
		default:
			return tabular.ErrUnknownKind
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import transaction: %w", err)
	}
	return nil
}
