package model

import (
	"database/sql"
	"errors"

	"github.com/username/divroutine/backend/src/models"
)

var ErrRecordNotFound = errors.New("record not found")

func InsertTransaction(db dbExecutor, userID int64, t *models.Transaction) error {
	res, err := db.Exec(`
		INSERT INTO transactions (user_id, symbol, trade_date, side, quantity, price, fee_tax)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, t.Symbol, t.TradeDate, t.Side, t.Quantity, t.Price, t.FeeTax,
	)
	if err != nil {
		return err
	}
	t.ID, err = res.LastInsertId()
	return err
}

func ListTransactions(db *sql.DB, userID int64) ([]models.Transaction, error) {
	rows, err := db.Query(`
		SELECT id, symbol, trade_date, side, quantity, price, fee_tax
		FROM transactions
		WHERE user_id = ?
		ORDER BY trade_date ASC, id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Symbol, &t.TradeDate, &t.Side, &t.Quantity, &t.Price, &t.FeeTax); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func DeleteTransaction(db *sql.DB, userID, id int64) error {
	return deleteOwnedRow(db, "transactions", userID, id)
}

func InsertDividend(db dbExecutor, userID int64, d *models.Dividend) error {
	res, err := db.Exec(`
		INSERT INTO dividends (user_id, symbol, ex_date, pay_date, gross_amount, withholding_tax, net_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, d.Symbol, nullIfEmpty(d.ExDate), d.PayDate, d.GrossAmount, d.WithholdingTax, d.NetAmount,
	)
	if err != nil {
		return err
	}
	d.ID, err = res.LastInsertId()
	return err
}

func ListDividends(db *sql.DB, userID int64) ([]models.Dividend, error) {
	rows, err := db.Query(`
		SELECT id, symbol, ex_date, pay_date, gross_amount, withholding_tax, net_amount
		FROM dividends
		WHERE user_id = ?
		ORDER BY pay_date ASC, id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var divs []models.Dividend
	for rows.Next() {
		var d models.Dividend
		var exDate sql.NullString
		if err := rows.Scan(&d.ID, &d.Symbol, &exDate, &d.PayDate, &d.GrossAmount, &d.WithholdingTax, &d.NetAmount); err != nil {
			return nil, err
		}
		d.ExDate = exDate.String
		divs = append(divs, d)
	}
	return divs, rows.Err()
}

func DeleteDividend(db *sql.DB, userID, id int64) error {
	return deleteOwnedRow(db, "dividends", userID, id)
}

func InsertCashFlow(db dbExecutor, userID int64, c *models.CashFlow) error {
	res, err := db.Exec(`
		INSERT INTO cash_flows (user_id, date, amount, memo)
		VALUES (?, ?, ?, ?)`,
		userID, c.Date, c.Amount, c.Memo,
	)
	if err != nil {
		return err
	}
	c.ID, err = res.LastInsertId()
	return err
}

func ListCashFlows(db *sql.DB, userID int64) ([]models.CashFlow, error) {
	rows, err := db.Query(`
		SELECT id, date, amount, memo
		FROM cash_flows
		WHERE user_id = ?
		ORDER BY date ASC, id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flows []models.CashFlow
	for rows.Next() {
		var c models.CashFlow
		var memo sql.NullString
		if err := rows.Scan(&c.ID, &c.Date, &c.Amount, &memo); err != nil {
			return nil, err
		}
		c.Memo = memo.String
		flows = append(flows, c)
	}
	return flows, rows.Err()
}

func DeleteCashFlow(db *sql.DB, userID, id int64) error {
	return deleteOwnedRow(db, "cash_flows", userID, id)
}

func InsertHolding(db *sql.DB, userID int64, h *models.Holding) error {
	res, err := db.Exec(`
		INSERT INTO holdings (user_id, symbol, name, sector, quantity, avg_cost, expected_dividend_per_share_year)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, h.Symbol, h.Name, h.Sector, h.Quantity, h.AvgCost, nullIfEmpty(h.ExpectedDividendPerShareYear),
	)
	if err != nil {
		return err
	}
	h.ID, err = res.LastInsertId()
	return err
}

func UpdateHolding(db *sql.DB, userID int64, h *models.Holding) error {
	res, err := db.Exec(`
		UPDATE holdings
		SET symbol = ?, name = ?, sector = ?, quantity = ?, avg_cost = ?, expected_dividend_per_share_year = ?
		WHERE id = ? AND user_id = ?`,
		h.Symbol, h.Name, h.Sector, h.Quantity, h.AvgCost, nullIfEmpty(h.ExpectedDividendPerShareYear),
		h.ID, userID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func ListHoldings(db *sql.DB, userID int64) ([]models.Holding, error) {
	rows, err := db.Query(`
		SELECT id, symbol, name, sector, quantity, avg_cost, expected_dividend_per_share_year
		FROM holdings
		WHERE user_id = ?
		ORDER BY symbol ASC, id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []models.Holding
	for rows.Next() {
		var h models.Holding
		var name, sector, expected sql.NullString
		if err := rows.Scan(&h.ID, &h.Symbol, &name, &sector, &h.Quantity, &h.AvgCost, &expected); err != nil {
			return nil, err
		}
		h.Name = name.String
		h.Sector = sector.String
		h.ExpectedDividendPerShareYear = expected.String
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

func DeleteHolding(db *sql.DB, userID, id int64) error {
	return deleteOwnedRow(db, "holdings", userID, id)
}

// dbExecutor lets the insert helpers run inside either *sql.DB or *sql.Tx,
// so batch imports can reuse them within a single transaction.
type dbExecutor interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func deleteOwnedRow(db *sql.DB, table string, userID, id int64) error {
	res, err := db.Exec("DELETE FROM "+table+" WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
