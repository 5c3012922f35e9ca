package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is the net holding in one symbol, derived from transaction
// history on every query. Only symbols with net quantity > 0 appear in
// portfolio views; fully or over-sold symbols stay in the history and
// in the summary but are never listed as positions.
type Position struct {
	Symbol              string
	Quantity            int64
	TotalCost           decimal.Decimal
	AverageCost         decimal.Decimal
	LastTransactionDate time.Time
}

// PortfolioSummary aggregates the full transaction set without the
// net-quantity filter, so sold-out symbols still contribute.
type PortfolioSummary struct {
	DistinctSymbols int64
	TotalCost       decimal.Decimal
	TotalShares     int64
}

// ValuationRow is a position marked to the current market price.
// Market fields are nil when the quote for the symbol was unavailable;
// the ledger fields are always populated.
type ValuationRow struct {
	Position
	CurrentPrice      *decimal.Decimal
	CurrentValue      *decimal.Decimal
	ProfitLoss        *decimal.Decimal
	ProfitLossPercent *decimal.Decimal
	Weight            *decimal.Decimal
}
