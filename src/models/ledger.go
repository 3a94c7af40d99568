package models

// Transaction represents a single buy/sell/reinvest trade.
// Monetary fields are decimal strings to avoid floating-point loss on currency amounts.
type Transaction struct {
	ID        int64  `json:"id,omitempty"` // Database primary key
	Symbol    string `json:"symbol"`
	TradeDate string `json:"trade_date"` // YYYY-MM-DD
	Side      string `json:"side"`       // "BUY", "SELL" or "DIVIDEND_REINVEST"
	Quantity  string `json:"quantity"`   // Decimal string, > 0
	Price     string `json:"price"`      // Decimal string, > 0
	FeeTax    string `json:"fee_tax"`    // Decimal string, >= 0, defaults to "0"
}

// Dividend represents a single dividend payment.
type Dividend struct {
	ID             int64  `json:"id,omitempty"`
	Symbol         string `json:"symbol"`
	ExDate         string `json:"ex_date,omitempty"` // YYYY-MM-DD, optional
	PayDate        string `json:"pay_date"`          // YYYY-MM-DD
	GrossAmount    string `json:"gross_amount"`      // Decimal string
	WithholdingTax string `json:"withholding_tax"`   // Decimal string, defaults to "0"
	NetAmount      string `json:"net_amount"`        // Decimal string, <= gross
}

// CashFlow represents a deposit (positive) or withdrawal (negative) in the
// smallest currency unit. Zero flows are meaningless but not rejected.
type CashFlow struct {
	ID     int64  `json:"id,omitempty"`
	Date   string `json:"date"` // YYYY-MM-DD
	Amount int64  `json:"amount"`
	Memo   string `json:"memo,omitempty"`
}

// Holding represents a current position snapshot.
type Holding struct {
	ID       int64  `json:"id,omitempty"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name,omitempty"`
	Sector   string `json:"sector,omitempty"`
	Quantity string `json:"quantity"` // Decimal string
	AvgCost  string `json:"avg_cost"` // Decimal string
	// ExpectedDividendPerShareYear is optional; empty means "unknown", treated as 0 in projections.
	ExpectedDividendPerShareYear string `json:"expected_dividend_per_share_year,omitempty"`
}

// HoldingRow is a Holding enriched with the derived fields the holdings table displays.
type HoldingRow struct {
	Holding
	TotalCost      float64 `json:"total_cost"`      // quantity * avgCost
	AnnualDividend float64 `json:"annual_dividend"` // quantity * expected per-share
	YOC            float64 `json:"yoc"`             // annualDividend / totalCost * 100
}
