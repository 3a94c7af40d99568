package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transactionMapping = ColumnMapping{
	"Date":     "trade_date",
	"Ticker":   "symbol",
	"Type":     "side",
	"Shares":   "quantity",
	"Price":    "price",
	"Comments": "", // explicitly unmapped
}

func TestParseContent(t *testing.T) {
	content := "Date,Ticker,Type\n2024-03-15, SCHD ,BUY\n"

	rows, err := ParseContent(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Date", "Ticker", "Type"}, rows[0])
	assert.Equal(t, []string{"2024-03-15", "SCHD", "BUY"}, rows[1])
}

func TestExtractHeaders(t *testing.T) {
	assert.Nil(t, ExtractHeaders(nil))
	assert.Equal(t, []string{"a", "b"}, ExtractHeaders([][]string{{"a", "b"}, {"1", "2"}}))
}

func TestMapRowsWithoutValidatorAcceptsEverything(t *testing.T) {
	rows := [][]string{
		{"Date", "Ticker", "Type", "Shares", "Price", "Comments"},
		{"2024-03-15", "SCHD", "BUY", "100", "30000", "ignore me"},
		{"garbage", "", "", "", "", ""},
	}

	result := MapRows(rows, transactionMapping, nil)

	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 0, result.FailCount)
	assert.Empty(t, result.Errors)

	require.Len(t, result.Data, 2)
	assert.Equal(t, "SCHD", result.Data[0]["symbol"])
	_, mapped := result.Data[0]["Comments"]
	assert.False(t, mapped, "unmapped columns must be dropped")
}

func TestMapRowsPartialFailure(t *testing.T) {
	rows := [][]string{
		{"Date", "Ticker", "Type", "Shares", "Price"},
		{"2024-03-15", "SCHD", "BUY", "100", "30000"},
		{"2024-03-16", "SCHD", "INVALID", "100", "30000"},
		{"2024-03-17", "VYM", "SELL", "10", "110000"},
	}

	result := MapRows(rows, transactionMapping, ValidateTransactionRow)

	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.FailCount)
	assert.Equal(t, result.TotalRows, result.SuccessCount+result.FailCount)
	assert.Len(t, result.Data, result.SuccessCount)

	require.Len(t, result.Errors, 1)
	// Header is row 1, so the first data row is row 2 and the bad one is row 3.
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Message, "side")
}

func TestMapRowsMultipleErrorsStillOneFailedRow(t *testing.T) {
	rows := [][]string{
		{"Date", "Ticker", "Type", "Shares", "Price"},
		{"13-03-2024", "SCHD", "HOLD", "abc", "30000"},
	}

	result := MapRows(rows, transactionMapping, ValidateTransactionRow)

	assert.Equal(t, 1, result.TotalRows)
	assert.Equal(t, 0, result.SuccessCount)
	assert.Equal(t, 1, result.FailCount)
	assert.GreaterOrEqual(t, len(result.Errors), 3)
	for _, parseErr := range result.Errors {
		assert.Equal(t, 2, parseErr.Row)
	}
}

func TestMapRowsShortRowFillsEmptyCells(t *testing.T) {
	rows := [][]string{
		{"Date", "Ticker", "Type", "Shares", "Price"},
		{"2024-03-15", "SCHD"},
	}

	result := MapRows(rows, transactionMapping, nil)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "", result.Data[0]["price"])
	assert.Equal(t, "SCHD", result.Data[0]["symbol"])
}

func TestMapRowsEmptyInput(t *testing.T) {
	result := MapRows(nil, transactionMapping, ValidateTransactionRow)
	assert.Equal(t, 0, result.TotalRows)
	assert.Empty(t, result.Data)
	assert.Empty(t, result.Errors)

	// A header-only file has zero data rows.
	result = MapRows([][]string{{"Date", "Ticker"}}, transactionMapping, nil)
	assert.Equal(t, 0, result.TotalRows)
}

func TestBuildRecords(t *testing.T) {
	tx := BuildTransaction(Row{
		"trade_date": "2024-03-15",
		"symbol":     "SCHD",
		"side":       "buy",
		"quantity":   "100",
		"price":      "30000",
	})
	assert.Equal(t, "BUY", tx.Side)
	assert.Equal(t, "0", tx.FeeTax)

	dividend := BuildDividend(Row{
		"pay_date":     "2024-03-15",
		"symbol":       "SCHD",
		"gross_amount": "100000",
		"net_amount":   "85000",
	})
	assert.Equal(t, "0", dividend.WithholdingTax)
	assert.Equal(t, "85000", dividend.NetAmount)

	cashFlow := BuildCashFlow(Row{"date": "2024-03-15", "amount": "1000000", "memo": "salary"})
	assert.Equal(t, int64(1000000), cashFlow.Amount)
	assert.Equal(t, "salary", cashFlow.Memo)

	withdrawal := BuildCashFlow(Row{"date": "2024-03-16", "amount": "-50000.9"})
	assert.Equal(t, int64(-50000), withdrawal.Amount)
}
