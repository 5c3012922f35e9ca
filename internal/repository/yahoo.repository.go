package repository

import (
	"fmt"
	"time"

	"bistdesk/internal/domain"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/shopspring/decimal"
)

// MarketDataRepository is the fetch boundary to the external quote feed.
// Failures come back as errors for the caller to report; nothing here
// retries or panics.
type MarketDataRepository interface {
	History(symbol string, period string) (domain.PriceSeries, error)
	Quote(symbol string) (*domain.Quote, error)
	Fundamentals(symbol string) (*domain.Fundamentals, error)
}

type yahooRepositoryHandler struct {
	// ExchangeSuffix maps a bare BIST code to the provider's listing,
	// e.g. THYAO -> THYAO.IS.
	ExchangeSuffix string
}

func NewYahooRepository(exchangeSuffix string) MarketDataRepository {
	return yahooRepositoryHandler{ExchangeSuffix: exchangeSuffix}
}

var periodStarts = map[string]func(now time.Time) time.Time{
	"1d":  func(now time.Time) time.Time { return now.AddDate(0, 0, -1) },
	"5d":  func(now time.Time) time.Time { return now.AddDate(0, 0, -7) },
	"1mo": func(now time.Time) time.Time { return now.AddDate(0, -1, 0) },
	"3mo": func(now time.Time) time.Time { return now.AddDate(0, -3, 0) },
	"6mo": func(now time.Time) time.Time { return now.AddDate(0, -6, 0) },
	"1y":  func(now time.Time) time.Time { return now.AddDate(-1, 0, 0) },
	"2y":  func(now time.Time) time.Time { return now.AddDate(-2, 0, 0) },
}

func (h yahooRepositoryHandler) listing(symbol string) string {
	return symbol + h.ExchangeSuffix
}

func (h yahooRepositoryHandler) History(symbol string, period string) (domain.PriceSeries, error) {
	startFn, ok := periodStarts[period]
	if !ok {
		return nil, domain.ValidationError{Field: "period", Reason: fmt.Sprintf("unknown period %q", period)}
	}

	now := time.Now()
	start := startFn(now)
	params := &chart.Params{
		Symbol:   h.listing(symbol),
		Start:    datetime.New(&start),
		End:      datetime.New(&now),
		Interval: datetime.OneDay,
	}

	iter := chart.Get(params)
	series := domain.PriceSeries{}
	for iter.Next() {
		bar := iter.Bar()
		series = append(series, domain.Bar{
			Date:   time.Unix(int64(bar.Timestamp), 0),
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: int64(bar.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get price history for %s: %w", symbol, err)
	}

	if len(series) == 0 {
		return nil, domain.DataUnavailableError{Symbol: symbol, Reason: fmt.Sprintf("empty price history for period %s", period)}
	}

	return series, nil
}

func (h yahooRepositoryHandler) Quote(symbol string) (*domain.Quote, error) {
	q, err := equity.Get(h.listing(symbol))
	if err != nil {
		return nil, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}
	if q == nil || q.RegularMarketPrice == 0 {
		return nil, domain.DataUnavailableError{Symbol: symbol, Reason: "no regular market price in quote"}
	}

	return &domain.Quote{
		Symbol:    symbol,
		Price:     decimal.NewFromFloat(q.RegularMarketPrice),
		PrevClose: decimal.NewFromFloat(q.RegularMarketPreviousClose),
		Volume:    int64(q.RegularMarketVolume),
	}, nil
}

func (h yahooRepositoryHandler) Fundamentals(symbol string) (*domain.Fundamentals, error) {
	q, err := equity.Get(h.listing(symbol))
	if err != nil {
		return nil, fmt.Errorf("failed to get fundamentals for %s: %w", symbol, err)
	}
	if q == nil {
		return nil, domain.DataUnavailableError{Symbol: symbol, Reason: "empty quote response"}
	}

	return fundamentalsFromEquity(q), nil
}

// zero values from the feed mean "not reported" and map to nil, so the
// presentation layer can render N/A instead of 0.
func fundamentalsFromEquity(q *finance.Equity) *domain.Fundamentals {
	out := &domain.Fundamentals{}
	if q.MarketCap != 0 {
		mc := q.MarketCap
		out.MarketCap = &mc
	}
	if q.ForwardPE != 0 {
		v := q.ForwardPE
		out.ForwardPE = &v
	}
	if q.TrailingPE != 0 {
		v := q.TrailingPE
		out.TrailingPE = &v
	}
	if q.TrailingAnnualDividendYield != 0 {
		v := q.TrailingAnnualDividendYield
		out.DividendYield = &v
	}
	if q.FiftyTwoWeekHigh != 0 {
		v := q.FiftyTwoWeekHigh
		out.FiftyTwoWeekHigh = &v
	}
	if q.FiftyTwoWeekLow != 0 {
		v := q.FiftyTwoWeekLow
		out.FiftyTwoWeekLow = &v
	}
	return out
}
