// Package tabular turns raw CSV or sheet rows into typed ledger records. The
// mapper is best-effort: a bad row is reported and skipped, it never aborts
// the batch.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Row is one candidate record keyed by target field name.
type Row map[string]string

// ColumnMapping maps a source header label to a target field name. Headers
// mapped to the empty string are dropped.
type ColumnMapping map[string]string

// ParseError describes why one source row was rejected. Row numbering is
// 1-based and counts the header, so the first data row is row 2; any UI
// showing "Row N: message" depends on that exact numbering.
type ParseError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Value   Row    `json:"value"`
	Message string `json:"message"`
}

// ParseResult is the partial-success outcome of mapping a batch.
// SuccessCount+FailCount always equals TotalRows; a row with several
// validation errors still counts as a single failure.
type ParseResult struct {
	Data         []Row        `json:"data"`
	Errors       []ParseError `json:"errors"`
	TotalRows    int          `json:"totalRows"`
	SuccessCount int          `json:"successCount"`
	FailCount    int          `json:"failCount"`
}

// ParseContent reads delimited text into rows of trimmed cells. Records may
// have varying field counts; the caller decides what to do with short rows.
func ParseContent(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("tabular parser: failed to read csv records: %w", err)
	}
	for _, record := range records {
		for i, cell := range record {
			record[i] = strings.TrimSpace(cell)
		}
	}
	return records, nil
}

// ExtractHeaders returns the header row, or nil for empty input.
func ExtractHeaders(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

// MapRows converts data rows into candidate records using the header row
// (row 0) and the column mapping, validating each candidate when a validator
// is given. Failing rows land in Errors (one entry per validation message)
// and are excluded from Data; without a validator every row is accepted.
func MapRows(rows [][]string, mapping ColumnMapping, validator RowValidator) ParseResult {
	if len(rows) == 0 {
		return ParseResult{Data: []Row{}, Errors: []ParseError{}}
	}

	headers := rows[0]
	dataRows := rows[1:]
	result := ParseResult{
		Data:      []Row{},
		Errors:    []ParseError{},
		TotalRows: len(dataRows),
	}

	for index, raw := range dataRows {
		// Header is row 1 for reporting purposes, so data starts at row 2.
		rowNumber := index + 2

		candidate := Row{}
		for colIndex, header := range headers {
			field := mapping[header]
			if field == "" {
				continue
			}
			if colIndex < len(raw) {
				candidate[field] = raw[colIndex]
			} else {
				candidate[field] = ""
			}
		}

		if validator != nil {
			validation := validator(candidate)
			if !validation.Valid {
				for _, message := range validation.Errors {
					result.Errors = append(result.Errors, ParseError{
						Row:     rowNumber,
						Value:   candidate,
						Message: message,
					})
				}
				result.FailCount++
				continue
			}
		}

		result.Data = append(result.Data, candidate)
		result.SuccessCount++
	}

	return result
}
