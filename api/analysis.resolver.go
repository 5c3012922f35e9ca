package api

import (
	"time"

	"bistdesk/internal/domain"

	"github.com/gin-gonic/gin"
)

type analysisStatsResponse struct {
	MeanPrice          float64 `json:"meanPrice"`
	MinPrice           float64 `json:"minPrice"`
	MaxPrice           float64 `json:"maxPrice"`
	DailyChangePercent float64 `json:"dailyChangePercent"`
	Volatility         float64 `json:"volatility"`
	LastVolume         int64   `json:"lastVolume"`
	MeanVolume         float64 `json:"meanVolume"`
}

type indicatorsResponse struct {
	RSI        float64 `json:"rsi"`
	StochK     float64 `json:"stochK"`
	MACD       float64 `json:"macd"`
	MACDSignal float64 `json:"macdSignal"`
	EMA20      float64 `json:"ema20"`
	SMA50      float64 `json:"sma50"`
	EMA200     float64 `json:"ema200"`
	BBUpper    float64 `json:"bbUpper"`
	BBMiddle   float64 `json:"bbMiddle"`
	BBLower    float64 `json:"bbLower"`
	OBV        float64 `json:"obv"`
}

type signalResponse struct {
	Score          int      `json:"score"`
	Classification string   `json:"classification"`
	Reasons        []string `json:"reasons"`
}

type fundamentalsResponse struct {
	MarketCap        *int64   `json:"marketCap"`
	ForwardPE        *float64 `json:"forwardPE"`
	TrailingPE       *float64 `json:"trailingPE"`
	DividendYield    *float64 `json:"dividendYield"`
	FiftyTwoWeekHigh *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  *float64 `json:"fiftyTwoWeekLow"`
}

type analysisResponse struct {
	Symbol       string                `json:"symbol"`
	Period       string                `json:"period"`
	Bars         int                   `json:"bars"`
	LastPrice    float64               `json:"lastPrice"`
	Stats        analysisStatsResponse `json:"stats"`
	Indicators   indicatorsResponse    `json:"indicators"`
	Signal       signalResponse        `json:"signal"`
	Fundamentals *fundamentalsResponse `json:"fundamentals"`
	Text         string                `json:"text"`
	GeneratedAt  time.Time             `json:"generatedAt"`
}

func toSignalResponse(s domain.SignalReport) signalResponse {
	return signalResponse{
		Score:          s.Score,
		Classification: string(s.Classification),
		Reasons:        s.Reasons,
	}
}

func toAnalysisResponse(report *domain.AnalysisReport, text string) analysisResponse {
	out := analysisResponse{
		Symbol:    report.Symbol,
		Period:    report.Period,
		Bars:      report.Bars,
		LastPrice: report.LastPrice,
		Stats: analysisStatsResponse{
			MeanPrice:          report.Stats.MeanPrice,
			MinPrice:           report.Stats.MinPrice,
			MaxPrice:           report.Stats.MaxPrice,
			DailyChangePercent: report.Stats.DailyChangePercent,
			Volatility:         report.Stats.Volatility,
			LastVolume:         report.Stats.LastVolume,
			MeanVolume:         report.Stats.MeanVolume,
		},
		Indicators: indicatorsResponse{
			RSI:        report.Indicators.RSI,
			StochK:     report.Indicators.StochK,
			MACD:       report.Indicators.MACD,
			MACDSignal: report.Indicators.MACDSignal,
			EMA20:      report.Indicators.EMA20,
			SMA50:      report.Indicators.SMA50,
			EMA200:     report.Indicators.EMA200,
			BBUpper:    report.Indicators.BBUpper,
			BBMiddle:   report.Indicators.BBMiddle,
			BBLower:    report.Indicators.BBLower,
			OBV:        report.Indicators.OBV,
		},
		Signal:      toSignalResponse(report.Signal),
		Text:        text,
		GeneratedAt: report.GeneratedAt,
	}
	if f := report.Fundamentals; f != nil {
		out.Fundamentals = &fundamentalsResponse{
			MarketCap:        f.MarketCap,
			ForwardPE:        f.ForwardPE,
			TrailingPE:       f.TrailingPE,
			DividendYield:    f.DividendYield,
			FiftyTwoWeekHigh: f.FiftyTwoWeekHigh,
			FiftyTwoWeekLow:  f.FiftyTwoWeekLow,
		}
	}
	return out
}

func (m ApiHandler) analyze(c *gin.Context) {
	symbol := c.Query("symbol")
	period := c.DefaultQuery("period", "3mo")

	report, err := m.AnalysisService.Analyze(symbol, period)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, toAnalysisResponse(report, m.AnalysisService.RenderText(report)))
}
