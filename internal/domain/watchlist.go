package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WatchlistEntry struct {
	ID      int64
	Symbol  string
	AddedAt time.Time
}

// WatchlistQuoteRow is a watchlist entry with its latest market data.
// Market fields are nil when the quote was unavailable.
type WatchlistQuoteRow struct {
	WatchlistEntry
	Price         *decimal.Decimal
	Change        *decimal.Decimal
	ChangePercent *decimal.Decimal
	Volume        *int64
}
