// Package models holds the storefront's persisted records and the typed
// inputs that create or update them.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Persist prices as JSON numbers, the layout the seed data uses.
	decimal.MarshalJSONWithoutQuotes = true
}

// DateLayout is the calendar-date format used for join dates.
const DateLayout = "2006-01-02"

// Today formats now as a join date, taking the calendar day in UTC.
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}
