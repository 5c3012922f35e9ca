package domain

// Fundamentals are the optional valuation figures from the quote feed.
// Nil means the provider did not report the field; callers render those
// as "N/A" rather than zero.
type Fundamentals struct {
	MarketCap        *int64
	ForwardPE        *float64
	TrailingPE       *float64
	DividendYield    *float64
	FiftyTwoWeekHigh *float64
	FiftyTwoWeekLow  *float64
}
