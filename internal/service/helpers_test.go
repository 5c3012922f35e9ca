package service

import (
	"testing"
	"time"

	"bistdesk/internal/domain"
	"bistdesk/internal/repository"
	"bistdesk/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeMarketData serves canned series and quotes; symbols without an
// entry behave like a feed outage.
type fakeMarketData struct {
	history      map[string]domain.PriceSeries
	quotes       map[string]*domain.Quote
	fundamentals map[string]*domain.Fundamentals
}

func (f fakeMarketData) History(symbol string, period string) (domain.PriceSeries, error) {
	series, ok := f.history[symbol]
	if !ok || len(series) == 0 {
		return nil, domain.DataUnavailableError{Symbol: symbol, Reason: "no history"}
	}
	return series, nil
}

func (f fakeMarketData) Quote(symbol string) (*domain.Quote, error) {
	quote, ok := f.quotes[symbol]
	if !ok {
		return nil, domain.DataUnavailableError{Symbol: symbol, Reason: "no quote"}
	}
	return quote, nil
}

func (f fakeMarketData) Fundamentals(symbol string) (*domain.Fundamentals, error) {
	fundamentals, ok := f.fundamentals[symbol]
	if !ok {
		return nil, domain.DataUnavailableError{Symbol: symbol, Reason: "no fundamentals"}
	}
	return fundamentals, nil
}

var _ repository.MarketDataRepository = fakeMarketData{}

func newTestLedgerService(t *testing.T) LedgerService {
	t.Helper()
	db, err := util.NewTestDb()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewLedgerService(
		repository.NewTransactionRepository(db),
		repository.NewWatchlistRepository(db),
		repository.NewAlarmRepository(db),
	)
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func barsWithCloses(closes []float64, volume int64) domain.PriceSeries {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make(domain.PriceSeries, len(closes))
	for i, c := range closes {
		price := decimal.NewFromFloat(c)
		out[i] = domain.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
			Volume: volume,
		}
	}
	return out
}
