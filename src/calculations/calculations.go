// Package calculations holds the pure aggregation functions that turn raw
// ledger rows (dividends, cash flows, holdings) into derived KPIs, series and
// reports. Every function here is side-effect free and safe to call from any
// number of concurrent request handlers; the service layer owns fetching and
// caching.
package calculations

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/username/divroutine/backend/src/models"
)

const dateLayout = "2006-01-02"

// parseDate parses a YYYY-MM-DD ledger date. The second return is false for
// anything that does not parse; callers skip such rows the same way the
// import validators would have rejected them.
func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseAmount parses a decimal-string money field. Malformed strings degrade
// to zero rather than propagating an error; the validator is the place where
// bad numbers are rejected.
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func dividendAmount(d models.Dividend, useNet bool) decimal.Decimal {
	if useNet {
		return parseAmount(d.NetAmount)
	}
	return parseAmount(d.GrossAmount)
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
