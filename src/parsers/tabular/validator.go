package tabular

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// RecordKind selects which row schema a batch is validated against.
type RecordKind string

const (
	KindTransaction RecordKind = "transaction"
	KindDividend    RecordKind = "dividend"
	KindCashFlow    RecordKind = "cashflow"
)

// ErrUnknownKind is returned for a record kind no validator exists for.
var ErrUnknownKind = fmt.Errorf("unknown record kind")

// RowValidation is the outcome of validating a single candidate row.
type RowValidation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// RowValidator checks one candidate row against a record schema.
type RowValidator func(Row) RowValidation

var dateShapeRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDate reports whether s is a YYYY-MM-DD string naming a real calendar
// date. "2024-13-01" matches the shape but is rejected.
func IsValidDate(s string) bool {
	if s == "" || !dateShapeRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsValidNumber reports whether s parses as a base-10 float. The empty string
// is not a number.
func IsValidNumber(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func requiredFieldErrors(row Row, fields []string) []string {
	var errs []string
	for _, field := range fields {
		if row[field] == "" {
			errs = append(errs, fmt.Sprintf("missing required field: %s", field))
		}
	}
	return errs
}

// ValidatorFor returns the validator of the given record kind.
func ValidatorFor(kind RecordKind) (RowValidator, error) {
	switch kind {
	case KindTransaction:
		return ValidateTransactionRow, nil
	case KindDividend:
		return ValidateDividendRow, nil
	case KindCashFlow:
		return ValidateCashFlowRow, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

var transactionSides = map[string]bool{
	"BUY":               true,
	"SELL":              true,
	"DIVIDEND_REINVEST": true,
}

// ValidateTransactionRow checks a candidate trade row. Cross-field rules are
// deliberately out of scope here; this layer validates fields in isolation.
func ValidateTransactionRow(row Row) RowValidation {
	errs := requiredFieldErrors(row, []string{"trade_date", "symbol", "side", "quantity", "price"})

	if v := row["trade_date"]; v != "" && !IsValidDate(v) {
		errs = append(errs, "trade_date must be a valid date (YYYY-MM-DD)")
	}
	if v := row["quantity"]; v != "" && !IsValidNumber(v) {
		errs = append(errs, "quantity must be a number")
	}
	if v := row["price"]; v != "" && !IsValidNumber(v) {
		errs = append(errs, "price must be a number")
	}
	if v := row["side"]; v != "" && !transactionSides[strings.ToUpper(v)] {
		errs = append(errs, "side must be one of BUY, SELL, DIVIDEND_REINVEST")
	}

	return RowValidation{Valid: len(errs) == 0, Errors: errs}
}

// ValidateDividendRow checks a candidate dividend row. ex_date is optional
// but must be a valid date when present. Net vs gross consistency is the
// manual-entry form's concern, not the batch validator's.
func ValidateDividendRow(row Row) RowValidation {
	errs := requiredFieldErrors(row, []string{"pay_date", "symbol", "gross_amount", "net_amount"})

	if v := row["pay_date"]; v != "" && !IsValidDate(v) {
		errs = append(errs, "pay_date must be a valid date (YYYY-MM-DD)")
	}
	if v := row["ex_date"]; v != "" && !IsValidDate(v) {
		errs = append(errs, "ex_date must be a valid date (YYYY-MM-DD)")
	}
	if v := row["gross_amount"]; v != "" && !IsValidNumber(v) {
		errs = append(errs, "gross_amount must be a number")
	}
	if v := row["net_amount"]; v != "" && !IsValidNumber(v) {
		errs = append(errs, "net_amount must be a number")
	}

	return RowValidation{Valid: len(errs) == 0, Errors: errs}
}

// ValidateCashFlowRow checks a candidate deposit/withdrawal row.
func ValidateCashFlowRow(row Row) RowValidation {
	errs := requiredFieldErrors(row, []string{"date", "amount"})

	if v := row["date"]; v != "" && !IsValidDate(v) {
		errs = append(errs, "date must be a valid date (YYYY-MM-DD)")
	}
	if v := row["amount"]; v != "" && !IsValidNumber(v) {
		errs = append(errs, "amount must be a number")
	}

	return RowValidation{Valid: len(errs) == 0, Errors: errs}
}
