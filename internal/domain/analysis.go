package domain

import "time"

// AnalysisStats summarizes the raw price and volume series over the
// requested period.
type AnalysisStats struct {
	MeanPrice          float64
	MinPrice           float64
	MaxPrice           float64
	DailyChangePercent float64 // last close vs the close before it
	Volatility         float64 // (max - min) / mean, as a percentage
	LastVolume         int64
	MeanVolume         float64
}

// AnalysisReport is the full per-symbol study: series statistics, the
// indicator snapshot, the buy-signal score, and best-effort fundamentals.
type AnalysisReport struct {
	Symbol       string
	Period       string
	Bars         int
	LastPrice    float64
	Stats        AnalysisStats
	Indicators   IndicatorSnapshot
	Signal       SignalReport
	Fundamentals *Fundamentals
	GeneratedAt  time.Time
}

// AdvisorOpinions collects the rule-based expert readings of a report.
// Commentary is only set when a language model is configured.
type AdvisorOpinions struct {
	TechnicalExpert   string
	FundamentalExpert string
	VolumeExpert      string
	Commentary        *string
}
