package calculator

import (
	"testing"
	"time"

	"bistdesk/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func seriesFromCloses(closes []float64, volume int64) domain.PriceSeries {
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

func Test_indicatorsService(t *testing.T) {
	svc := NewIndicatorsService()

	t.Run("rejects series shorter than two bars", func(t *testing.T) {
		_, err := svc.Compute(seriesFromCloses([]float64{10}, 100))
		require.Error(t, err)
	})

	t.Run("strictly rising closes saturate RSI", func(t *testing.T) {
		closes := make([]float64, 30)
		for i := range closes {
			closes[i] = 10 + float64(i)
		}

		snapshot, err := svc.Compute(seriesFromCloses(closes, 1000))
		require.NoError(t, err)
		require.InDelta(t, 100.0, snapshot.RSI, 0.001)
		require.Equal(t, 39.0, snapshot.LastPrice)
		require.InDelta(t, 1000.0, snapshot.MeanVolume, 0.001)
		require.Equal(t, 1000.0, snapshot.Volume)
	})

	t.Run("constant closes collapse the bollinger bands", func(t *testing.T) {
		closes := make([]float64, 30)
		for i := range closes {
			closes[i] = 25
		}

		snapshot, err := svc.Compute(seriesFromCloses(closes, 500))
		require.NoError(t, err)
		require.InDelta(t, 25.0, snapshot.BBUpper, 0.001)
		require.InDelta(t, 25.0, snapshot.BBMiddle, 0.001)
		require.InDelta(t, 25.0, snapshot.BBLower, 0.001)
		require.InDelta(t, 25.0, snapshot.EMA20, 0.001)
	})

	t.Run("windows longer than the series stay zero", func(t *testing.T) {
		closes := make([]float64, 30)
		for i := range closes {
			closes[i] = 10 + float64(i)
		}

		snapshot, err := svc.Compute(seriesFromCloses(closes, 1000))
		require.NoError(t, err)
		// SMA50 and EMA200 need more than 30 bars
		require.Zero(t, snapshot.SMA50)
		require.Zero(t, snapshot.EMA200)
	})

	t.Run("series shorter than every window still yields a snapshot", func(t *testing.T) {
		closes := make([]float64, 12)
		for i := range closes {
			closes[i] = 10 + float64(i)
		}

		snapshot, err := svc.Compute(seriesFromCloses(closes, 1000))
		require.NoError(t, err)
		require.Equal(t, 21.0, snapshot.LastPrice)
		require.Equal(t, 1000.0, snapshot.Volume)
		require.InDelta(t, 1000.0, snapshot.MeanVolume, 0.001)
		require.NotZero(t, snapshot.OBV)
		// 12 bars fit none of the indicator lookbacks
		require.Zero(t, snapshot.RSI)
		require.Zero(t, snapshot.StochK)
		require.Zero(t, snapshot.MACD)
		require.Zero(t, snapshot.MACDSignal)
		require.Zero(t, snapshot.EMA20)
		require.Zero(t, snapshot.SMA50)
		require.Zero(t, snapshot.EMA200)
		require.Zero(t, snapshot.BBUpper)
		require.Zero(t, snapshot.BBLower)
	})
}
