package service

import (
	"testing"

	"bistdesk/internal/calculator"
	"bistdesk/internal/domain"
	"bistdesk/internal/util"

	"github.com/stretchr/testify/require"
)

func newTestAnalysisService(marketData fakeMarketData) AnalysisService {
	return NewAnalysisService(marketData, calculator.NewIndicatorsService(), NewSignalService(), testLogger())
}

func Test_analysisService_Analyze(t *testing.T) {
	t.Run("builds stats, indicators, and a signal from the series", func(t *testing.T) {
		closes := make([]float64, 30)
		for i := range closes {
			closes[i] = 10 + float64(i)
		}
		marketData := fakeMarketData{
			history: map[string]domain.PriceSeries{"THYAO": barsWithCloses(closes, 1000)},
			fundamentals: map[string]*domain.Fundamentals{
				"THYAO": {ForwardPE: util.Float64Pointer(8.5)},
			},
		}

		report, err := newTestAnalysisService(marketData).Analyze("thyao", "3mo")
		require.NoError(t, err)
		require.Equal(t, "THYAO", report.Symbol)
		require.Equal(t, "3mo", report.Period)
		require.Equal(t, 30, report.Bars)
		require.Equal(t, 39.0, report.LastPrice)
		require.Equal(t, 10.0, report.Stats.MinPrice)
		require.Equal(t, 39.0, report.Stats.MaxPrice)
		require.InDelta(t, 24.5, report.Stats.MeanPrice, 0.001)
		// (39 - 10) / 24.5 * 100
		require.InDelta(t, 118.367, report.Stats.Volatility, 0.01)
		// (39 - 38) / 38 * 100
		require.InDelta(t, 2.6316, report.Stats.DailyChangePercent, 0.001)
		require.Equal(t, int64(1000), report.Stats.LastVolume)
		require.NotNil(t, report.Fundamentals)

		// rising series: MACD above signal and price above EMA20
		require.GreaterOrEqual(t, report.Signal.Score, 2)
	})

	t.Run("series above the minimum but below every indicator window still analyzes", func(t *testing.T) {
		closes := make([]float64, 12)
		for i := range closes {
			closes[i] = 10 + float64(i)
		}
		marketData := fakeMarketData{
			history: map[string]domain.PriceSeries{"THYAO": barsWithCloses(closes, 1000)},
		}

		report, err := newTestAnalysisService(marketData).Analyze("THYAO", "1mo")
		require.NoError(t, err)
		require.Equal(t, 12, report.Bars)
		require.Equal(t, 21.0, report.LastPrice)
		require.Zero(t, report.Indicators.RSI)
		require.Zero(t, report.Indicators.EMA200)
	})

	t.Run("short series is reported as unavailable data", func(t *testing.T) {
		marketData := fakeMarketData{
			history: map[string]domain.PriceSeries{"THYAO": barsWithCloses([]float64{1, 2, 3, 4, 5}, 100)},
		}

		_, err := newTestAnalysisService(marketData).Analyze("THYAO", "1mo")
		require.Error(t, err)
		require.True(t, domain.IsDataUnavailableError(err), err.Error())
	})

	t.Run("missing fundamentals do not fail the analysis", func(t *testing.T) {
		closes := make([]float64, 20)
		for i := range closes {
			closes[i] = 50
		}
		marketData := fakeMarketData{
			history: map[string]domain.PriceSeries{"SASA": barsWithCloses(closes, 100)},
		}

		report, err := newTestAnalysisService(marketData).Analyze("SASA", "1mo")
		require.NoError(t, err)
		require.Nil(t, report.Fundamentals)
	})

	t.Run("unknown symbol propagates the feed error", func(t *testing.T) {
		_, err := newTestAnalysisService(fakeMarketData{}).Analyze("NOPE", "1mo")
		require.Error(t, err)
		require.True(t, domain.IsDataUnavailableError(err))
	})
}

func Test_analysisService_RenderText(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 10 + float64(i)
	}
	marketData := fakeMarketData{
		history: map[string]domain.PriceSeries{"THYAO": barsWithCloses(closes, 1000)},
	}
	svc := newTestAnalysisService(marketData)

	report, err := svc.Analyze("THYAO", "3mo")
	require.NoError(t, err)

	text := svc.RenderText(report)
	require.Contains(t, text, "THYAO analysis (3mo, 30 bars)")
	require.Contains(t, text, "signal score:")
	require.Contains(t, text, "fundamentals: N/A")
}
