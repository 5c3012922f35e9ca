package service

import (
	"fmt"
	"strings"
	"time"

	"bistdesk/internal/calculator"
	"bistdesk/internal/domain"
	"bistdesk/internal/repository"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
)

// minAnalysisBars is the smallest series worth analyzing; anything
// shorter produces indicator values too degenerate to report on.
const minAnalysisBars = 10

type AnalysisService interface {
	Analyze(symbol string, period string) (*domain.AnalysisReport, error)
	RenderText(report *domain.AnalysisReport) string
}

type analysisServiceHandler struct {
	MarketDataRepository repository.MarketDataRepository
	IndicatorsService    calculator.IndicatorsService
	SignalService        SignalService
	Logger               *zap.SugaredLogger
}

func NewAnalysisService(
	marketDataRepository repository.MarketDataRepository,
	indicatorsService calculator.IndicatorsService,
	signalService SignalService,
	logger *zap.SugaredLogger,
) AnalysisService {
	return analysisServiceHandler{
		MarketDataRepository: marketDataRepository,
		IndicatorsService:    indicatorsService,
		SignalService:        signalService,
		Logger:               logger,
	}
}

func (h analysisServiceHandler) Analyze(symbol string, period string) (*domain.AnalysisReport, error) {
	normalized, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}

	series, err := h.MarketDataRepository.History(normalized, period)
	if err != nil {
		return nil, err
	}
	if len(series) < minAnalysisBars {
		return nil, domain.DataUnavailableError{
			Symbol: normalized,
			Reason: fmt.Sprintf("need at least %d bars for analysis, got %d", minAnalysisBars, len(series)),
		}
	}

	closes := series.Closes()
	meanPrice, err := stats.Mean(closes)
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean price: %w", err)
	}
	minPrice, err := stats.Min(closes)
	if err != nil {
		return nil, fmt.Errorf("failed to compute min price: %w", err)
	}
	maxPrice, err := stats.Max(closes)
	if err != nil {
		return nil, fmt.Errorf("failed to compute max price: %w", err)
	}

	snapshot, err := h.IndicatorsService.Compute(series)
	if err != nil {
		return nil, fmt.Errorf("failed to compute indicators for %s: %w", normalized, err)
	}

	// fundamentals are decoration on the report, not a requirement
	fundamentals, err := h.MarketDataRepository.Fundamentals(normalized)
	if err != nil {
		h.Logger.Warnf("continuing analysis of %s without fundamentals: %v", normalized, err)
		fundamentals = nil
	}

	volatility := 0.0
	if meanPrice != 0 {
		volatility = (maxPrice - minPrice) / meanPrice * 100
	}
	dailyChange := 0.0
	if prev := closes[len(closes)-2]; prev != 0 {
		dailyChange = (closes[len(closes)-1] - prev) / prev * 100
	}

	return &domain.AnalysisReport{
		Symbol:    normalized,
		Period:    period,
		Bars:      len(series),
		LastPrice: snapshot.LastPrice,
		Stats: domain.AnalysisStats{
			MeanPrice:          meanPrice,
			MinPrice:           minPrice,
			MaxPrice:           maxPrice,
			DailyChangePercent: dailyChange,
			Volatility:         volatility,
			LastVolume:         series.Last().Volume,
			MeanVolume:         snapshot.MeanVolume,
		},
		Indicators:   *snapshot,
		Signal:       h.SignalService.Evaluate(*snapshot),
		Fundamentals: fundamentals,
		GeneratedAt:  time.Now().UTC(),
	}, nil
}

// RenderText formats the report for the terminal and for the advisor
// prompt. Missing fundamentals render as N/A.
func (h analysisServiceHandler) RenderText(report *domain.AnalysisReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s analysis (%s, %d bars)\n", report.Symbol, report.Period, report.Bars)
	fmt.Fprintf(&b, "generated at %s\n\n", report.GeneratedAt.Format(time.RFC3339))

	fmt.Fprintf(&b, "price: last %.2f, mean %.2f, min %.2f, max %.2f\n",
		report.LastPrice, report.Stats.MeanPrice, report.Stats.MinPrice, report.Stats.MaxPrice)
	fmt.Fprintf(&b, "daily change: %.2f%%  volatility: %.2f%%\n",
		report.Stats.DailyChangePercent, report.Stats.Volatility)
	fmt.Fprintf(&b, "volume: last %d, mean %.0f\n\n", report.Stats.LastVolume, report.Stats.MeanVolume)

	ind := report.Indicators
	fmt.Fprintf(&b, "RSI(14): %.2f  Stoch %%K: %.2f\n", ind.RSI, ind.StochK)
	fmt.Fprintf(&b, "MACD: %.4f  signal: %.4f\n", ind.MACD, ind.MACDSignal)
	fmt.Fprintf(&b, "EMA20: %.2f  SMA50: %.2f  EMA200: %.2f\n", ind.EMA20, ind.SMA50, ind.EMA200)
	fmt.Fprintf(&b, "Bollinger: lower %.2f, middle %.2f, upper %.2f\n", ind.BBLower, ind.BBMiddle, ind.BBUpper)
	fmt.Fprintf(&b, "OBV: %.0f\n\n", ind.OBV)

	if f := report.Fundamentals; f != nil {
		fmt.Fprintf(&b, "market cap: %s\n", renderInt64(f.MarketCap))
		fmt.Fprintf(&b, "P/E: forward %s, trailing %s\n", renderFloat(f.ForwardPE, "%.2f"), renderFloat(f.TrailingPE, "%.2f"))
		fmt.Fprintf(&b, "dividend yield: %s\n", renderYield(f.DividendYield))
		fmt.Fprintf(&b, "52w range: %s - %s\n\n", renderFloat(f.FiftyTwoWeekLow, "%.2f"), renderFloat(f.FiftyTwoWeekHigh, "%.2f"))
	} else {
		fmt.Fprintf(&b, "fundamentals: N/A\n\n")
	}

	fmt.Fprintf(&b, "signal score: %d/7 (%s)\n", report.Signal.Score, report.Signal.Classification)
	for _, reason := range report.Signal.Reasons {
		fmt.Fprintf(&b, "  - %s\n", reason)
	}

	return b.String()
}

func renderInt64(v *int64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *v)
}

func renderFloat(v *float64, layout string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf(layout, *v)
}

func renderYield(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}
