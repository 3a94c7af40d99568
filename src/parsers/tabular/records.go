package tabular

import (
	"strconv"
	"strings"

	"github.com/username/divroutine/backend/src/models"
)

// BuildTransaction converts a validated candidate row into a Transaction.
// The side is normalized to upper case; fee_tax defaults to "0".
func BuildTransaction(row Row) models.Transaction {
	feeTax := row["fee_tax"]
	if feeTax == "" {
		feeTax = "0"
	}
	return models.Transaction{
		Symbol:    row["symbol"],
		TradeDate: row["trade_date"],
		Side:      strings.ToUpper(row["side"]),
		Quantity:  row["quantity"],
		Price:     row["price"],
		FeeTax:    feeTax,
	}
}

// BuildDividend converts a validated candidate row into a Dividend.
// withholding_tax defaults to "0".
func BuildDividend(row Row) models.Dividend {
	withholding := row["withholding_tax"]
	if withholding == "" {
		withholding = "0"
	}
	return models.Dividend{
		Symbol:         row["symbol"],
		ExDate:         row["ex_date"],
		PayDate:        row["pay_date"],
		GrossAmount:    row["gross_amount"],
		WithholdingTax: withholding,
		NetAmount:      row["net_amount"],
	}
}

// BuildCashFlow converts a validated candidate row into a CashFlow. Amounts
// are stored in the smallest currency unit; fractional values are truncated.
func BuildCashFlow(row Row) models.CashFlow {
	amount, err := strconv.ParseInt(row["amount"], 10, 64)
	if err != nil {
		if f, ferr := strconv.ParseFloat(row["amount"], 64); ferr == nil {
			amount = int64(f)
		}
	}
	return models.CashFlow{
		Date:   row["date"],
		Amount: amount,
		Memo:   row["memo"],
	}
}
