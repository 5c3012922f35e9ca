package service

import (
	"fmt"

	"bistdesk/internal/domain"

	"github.com/shopspring/decimal"
)

// SignalService is the stateless evaluator: it scores an indicator
// snapshot against seven additive rules and checks alarms against
// prices. Neither method reads or writes storage.
type SignalService interface {
	Evaluate(snapshot domain.IndicatorSnapshot) domain.SignalReport
	CheckAlarms(alarms []domain.Alarm, prices map[string]decimal.Decimal) []domain.TriggeredAlarm
}

type signalServiceHandler struct{}

func NewSignalService() SignalService {
	return signalServiceHandler{}
}

const (
	rsiOversoldThreshold  = 35.0
	volumeSpikeMultiplier = 1.5
)

// Evaluate grants one point per satisfied rule. Indicators left at zero
// by an undersized window never grant their point, so a short series
// can only lower the score.
func (h signalServiceHandler) Evaluate(snapshot domain.IndicatorSnapshot) domain.SignalReport {
	score := 0
	reasons := []string{}
	grant := func(reason string) {
		score++
		reasons = append(reasons, reason)
	}

	if snapshot.RSI > 0 && snapshot.RSI < rsiOversoldThreshold {
		grant(fmt.Sprintf("RSI %.1f is below %.0f (oversold)", snapshot.RSI, rsiOversoldThreshold))
	}
	if snapshot.MACD > snapshot.MACDSignal {
		grant("MACD is above its signal line")
	}
	if snapshot.EMA20 > 0 && snapshot.LastPrice > snapshot.EMA20 {
		grant("price is above the 20-day EMA")
	}
	if snapshot.SMA50 > 0 && snapshot.LastPrice > snapshot.SMA50 {
		grant("price is above the 50-day SMA")
	}
	if snapshot.EMA200 > 0 && snapshot.LastPrice > snapshot.EMA200 {
		grant("price is above the 200-day EMA")
	}
	if snapshot.BBLower > 0 && snapshot.LastPrice < snapshot.BBLower {
		grant("price is below the lower Bollinger band")
	}
	if snapshot.MeanVolume > 0 && snapshot.Volume > volumeSpikeMultiplier*snapshot.MeanVolume {
		grant(fmt.Sprintf("volume is more than %.1fx the period average", volumeSpikeMultiplier))
	}

	return domain.SignalReport{
		Score:          score,
		Classification: classify(score),
		Reasons:        reasons,
	}
}

func classify(score int) domain.SignalClassification {
	switch {
	case score >= 4:
		return domain.SignalClassification_StrongBuy
	case score >= 2:
		return domain.SignalClassification_ModerateBuy
	case score == 1:
		return domain.SignalClassification_WeakBuy
	}
	return domain.SignalClassification_SellPressure
}

// CheckAlarms evaluates each active alarm against the price map.
// Alarms whose symbol has no price are skipped, inactive alarms never
// fire, and both threshold boundaries are inclusive.
func (h signalServiceHandler) CheckAlarms(alarms []domain.Alarm, prices map[string]decimal.Decimal) []domain.TriggeredAlarm {
	triggered := []domain.TriggeredAlarm{}
	for _, a := range alarms {
		if !a.Active {
			continue
		}
		price, ok := prices[a.Symbol]
		if !ok {
			continue
		}
		if a.Triggered(price) {
			triggered = append(triggered, domain.TriggeredAlarm{Alarm: a, CurrentPrice: price})
		}
	}
	return triggered
}
