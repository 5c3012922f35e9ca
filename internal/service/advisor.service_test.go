package service

import (
	"context"
	"testing"

	"bistdesk/internal/domain"
	"bistdesk/internal/util"

	"github.com/stretchr/testify/require"
)

func newTestAdvisorService() AdvisorService {
	return NewAdvisorService(newTestAnalysisService(fakeMarketData{}), nil, testLogger())
}

func Test_advisorService_Advise(t *testing.T) {
	t.Run("bullish snapshot reads bullish across experts", func(t *testing.T) {
		report := &domain.AnalysisReport{
			Symbol: "THYAO",
			Indicators: domain.IndicatorSnapshot{
				LastPrice:  100,
				RSI:        25,
				MACD:       1,
				MACDSignal: 0.5,
				EMA20:      95,
				Volume:     2500,
				MeanVolume: 1000,
			},
			Fundamentals: &domain.Fundamentals{
				ForwardPE:     util.Float64Pointer(8),
				DividendYield: util.Float64Pointer(0.06),
			},
		}

		opinions, err := newTestAdvisorService().Advise(context.Background(), report)
		require.NoError(t, err)
		require.Contains(t, opinions.TechnicalExpert, "oversold")
		require.Contains(t, opinions.TechnicalExpert, "positive signal")
		require.Contains(t, opinions.TechnicalExpert, "above the 20-day average")
		require.Contains(t, opinions.FundamentalExpert, "undervalued")
		require.Contains(t, opinions.FundamentalExpert, "dividend yield is high")
		require.Contains(t, opinions.VolumeExpert, "abnormally high volume")
		require.Nil(t, opinions.Commentary)
	})

	t.Run("bearish snapshot reads bearish", func(t *testing.T) {
		report := &domain.AnalysisReport{
			Symbol: "GARAN",
			Indicators: domain.IndicatorSnapshot{
				LastPrice:  100,
				RSI:        80,
				MACD:       -1,
				MACDSignal: 0,
				EMA20:      110,
				Volume:     900,
				MeanVolume: 1000,
			},
			Fundamentals: &domain.Fundamentals{ForwardPE: util.Float64Pointer(30)},
		}

		opinions, err := newTestAdvisorService().Advise(context.Background(), report)
		require.NoError(t, err)
		require.Contains(t, opinions.TechnicalExpert, "overbought")
		require.Contains(t, opinions.TechnicalExpert, "negative signal")
		require.Contains(t, opinions.TechnicalExpert, "below the 20-day average")
		require.Contains(t, opinions.FundamentalExpert, "expensive")
		require.Contains(t, opinions.VolumeExpert, "normal level")
	})

	t.Run("missing fundamentals read as not enough data", func(t *testing.T) {
		report := &domain.AnalysisReport{Symbol: "SASA"}

		opinions, err := newTestAdvisorService().Advise(context.Background(), report)
		require.NoError(t, err)
		require.Equal(t, "fundamental expert: not enough data", opinions.FundamentalExpert)
	})

	t.Run("nil report is rejected", func(t *testing.T) {
		_, err := newTestAdvisorService().Advise(context.Background(), nil)
		require.Error(t, err)
	})
}
