package calculator

import (
	"fmt"

	"bistdesk/internal/domain"

	"github.com/markcheno/go-talib"
	"github.com/montanaflynn/stats"
)

// IndicatorsService computes the technical indicator snapshot a signal
// evaluation and an analysis report are built from. It is stateless and
// deterministic; the same series always yields the same snapshot.
type IndicatorsService interface {
	Compute(series domain.PriceSeries) (*domain.IndicatorSnapshot, error)
}

type indicatorsServiceHandler struct{}

func NewIndicatorsService() IndicatorsService {
	return indicatorsServiceHandler{}
}

const (
	rsiPeriod        = 14
	stochPeriod      = 14
	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9
	emaShortPeriod   = 20
	smaMediumPeriod  = 50
	emaLongPeriod    = 200
	bbandsPeriod     = 20
	bbandsDeviations = 2.0
)

// Compute takes the last value of every indicator series. Each
// indicator is only computed when the series covers its lookback;
// otherwise its field stays at zero, and callers treat zero as "no
// reading" rather than a value. The indicator library indexes past the
// end of undersized inputs, so these guards are load-bearing.
func (h indicatorsServiceHandler) Compute(series domain.PriceSeries) (*domain.IndicatorSnapshot, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("need at least 2 bars to compute indicators, got %d", len(series))
	}

	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()
	volumes := series.Volumes()

	meanVolume, err := stats.Mean(volumes)
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean volume: %w", err)
	}

	last := len(series) - 1
	snapshot := &domain.IndicatorSnapshot{
		LastPrice:  closes[last],
		Volume:     volumes[last],
		MeanVolume: meanVolume,
	}

	// lookbacks: RSI consumes period+1 bars, the slow stochastic
	// consumes fastK+slowK+slowD-2, MACD consumes slow+signal-1, and
	// the moving averages and bands consume their own period.
	if len(closes) > rsiPeriod {
		snapshot.RSI = talib.Rsi(closes, rsiPeriod)[last]
	}
	if len(closes) >= stochPeriod+4 {
		stochK, _ := talib.Stoch(highs, lows, closes, stochPeriod, 3, talib.SMA, 3, talib.SMA)
		snapshot.StochK = stochK[last]
	}
	if len(closes) >= macdSlowPeriod+macdSignalPeriod {
		macd, macdSignal, _ := talib.Macd(closes, macdFastPeriod, macdSlowPeriod, macdSignalPeriod)
		snapshot.MACD = macd[last]
		snapshot.MACDSignal = macdSignal[last]
	}
	if len(closes) >= emaShortPeriod {
		snapshot.EMA20 = talib.Ema(closes, emaShortPeriod)[last]
	}
	if len(closes) >= smaMediumPeriod {
		snapshot.SMA50 = talib.Sma(closes, smaMediumPeriod)[last]
	}
	if len(closes) >= emaLongPeriod {
		snapshot.EMA200 = talib.Ema(closes, emaLongPeriod)[last]
	}
	if len(closes) >= bbandsPeriod {
		bbUpper, bbMiddle, bbLower := talib.BBands(closes, bbandsPeriod, bbandsDeviations, bbandsDeviations, talib.SMA)
		snapshot.BBUpper = bbUpper[last]
		snapshot.BBMiddle = bbMiddle[last]
		snapshot.BBLower = bbLower[last]
	}
	snapshot.OBV = talib.Obv(closes, volumes)[last]

	return snapshot, nil
}
