package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidDate(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2024-03-15", true},
		{"2024-12-31", true},
		{"2024-13-01", false}, // matches the shape, month out of range
		{"2024-02-30", false}, // no such day
		{"2024-3-15", false},  // missing zero padding
		{"15-03-2024", false},
		{"", false},
		{"not-a-date", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidDate(tt.input), "input %q", tt.input)
	}
}

func TestIsValidNumber(t *testing.T) {
	assert.True(t, IsValidNumber("100"))
	assert.True(t, IsValidNumber("-3.5"))
	assert.True(t, IsValidNumber("0"))
	assert.False(t, IsValidNumber(""))
	assert.False(t, IsValidNumber("abc"))
}

func TestValidateTransactionRow(t *testing.T) {
	valid := Row{
		"trade_date": "2024-03-15",
		"symbol":     "SCHD",
		"side":       "BUY",
		"quantity":   "100",
		"price":      "30000",
	}
	assert.True(t, ValidateTransactionRow(valid).Valid)

	// Side is matched case-insensitively.
	valid["side"] = "dividend_reinvest"
	assert.True(t, ValidateTransactionRow(valid).Valid)

	invalid := Row{
		"trade_date": "2024-03-15",
		"symbol":     "SCHD",
		"side":       "INVALID",
		"quantity":   "100",
		"price":      "30000",
	}
	result := ValidateTransactionRow(invalid)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "side must be one of BUY, SELL, DIVIDEND_REINVEST", result.Errors[0])
}

func TestValidateTransactionRowMissingFields(t *testing.T) {
	result := ValidateTransactionRow(Row{"symbol": "SCHD"})
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 4) // trade_date, side, quantity, price
	assert.Contains(t, result.Errors, "missing required field: trade_date")
}

func TestValidateDividendRow(t *testing.T) {
	valid := Row{
		"pay_date":     "2024-03-15",
		"symbol":       "SCHD",
		"gross_amount": "100000",
		"net_amount":   "85000",
	}
	assert.True(t, ValidateDividendRow(valid).Valid)

	// ex_date is optional, empty is fine...
	valid["ex_date"] = ""
	assert.True(t, ValidateDividendRow(valid).Valid)

	// ...but a present ex_date must be a real date.
	valid["ex_date"] = "2024-13-01"
	result := ValidateDividendRow(valid)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "ex_date must be a valid date (YYYY-MM-DD)")
}

func TestValidateCashFlowRow(t *testing.T) {
	assert.True(t, ValidateCashFlowRow(Row{"date": "2024-03-15", "amount": "-50000"}).Valid)

	result := ValidateCashFlowRow(Row{"date": "2024-03-15", "amount": "lots"})
	assert.False(t, result.Valid)
	assert.Contains(t, result.Errors, "amount must be a number")
}

func TestValidatorFor(t *testing.T) {
	for _, kind := range []RecordKind{KindTransaction, KindDividend, KindCashFlow} {
		validator, err := ValidatorFor(kind)
		require.NoError(t, err)
		require.NotNil(t, validator)
	}

	_, err := ValidatorFor(RecordKind("holdings"))
	assert.ErrorIs(t, err, ErrUnknownKind)
}
