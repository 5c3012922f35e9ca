package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bar is one OHLCV candle from the market data provider.
type Bar struct {
	Date   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume int64
}

type PriceSeries []Bar

func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close.InexactFloat64()
	}
	return out
}

func (s PriceSeries) Highs() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.High.InexactFloat64()
	}
	return out
}

func (s PriceSeries) Lows() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Low.InexactFloat64()
	}
	return out
}

func (s PriceSeries) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = float64(b.Volume)
	}
	return out
}

func (s PriceSeries) Last() Bar {
	return s[len(s)-1]
}

// Quote is a point-in-time snapshot of the latest trade.
type Quote struct {
	Symbol    string
	Price     decimal.Decimal
	PrevClose decimal.Decimal
	Volume    int64
}
