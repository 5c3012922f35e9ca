package domain

// IndicatorSnapshot carries the last-bar value of every indicator the
// evaluator looks at, plus the volume context. An indicator whose
// lookback does not fit the series is left at zero, meaning no reading.
type IndicatorSnapshot struct {
	LastPrice  float64
	RSI        float64
	StochK     float64
	MACD       float64
	MACDSignal float64
	EMA20      float64
	SMA50      float64
	EMA200     float64
	BBUpper    float64
	BBMiddle   float64
	BBLower    float64
	OBV        float64
	Volume     float64
	MeanVolume float64
}

type SignalClassification string

const (
	SignalClassification_StrongBuy    SignalClassification = "strong buy"
	SignalClassification_ModerateBuy  SignalClassification = "moderate buy"
	SignalClassification_WeakBuy      SignalClassification = "weak buy"
	SignalClassification_SellPressure SignalClassification = "sell pressure"
)

// SignalReport is the outcome of the additive seven-rule scorer.
type SignalReport struct {
	Score          int
	Classification SignalClassification
	Reasons        []string
}
