package service

import (
	"bistdesk/internal/domain"
	"bistdesk/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AlarmService runs the alarm sweep: fetch a quote per watched symbol,
// evaluate every active alarm, and deactivate the ones that fired.
type AlarmService interface {
	Sweep() ([]domain.TriggeredAlarm, error)
}

type alarmServiceHandler struct {
	LedgerService        LedgerService
	SignalService        SignalService
	MarketDataRepository repository.MarketDataRepository
	Logger               *zap.SugaredLogger
}

func NewAlarmService(
	ledgerService LedgerService,
	signalService SignalService,
	marketDataRepository repository.MarketDataRepository,
	logger *zap.SugaredLogger,
) AlarmService {
	return alarmServiceHandler{
		LedgerService:        ledgerService,
		SignalService:        signalService,
		MarketDataRepository: marketDataRepository,
		Logger:               logger,
	}
}

// Sweep tolerates per-symbol quote failures: those alarms stay active
// and are re-checked on the next sweep.
func (h alarmServiceHandler) Sweep() ([]domain.TriggeredAlarm, error) {
	alarms, err := h.LedgerService.ListAlarms(true)
	if err != nil {
		return nil, err
	}
	if len(alarms) == 0 {
		return []domain.TriggeredAlarm{}, nil
	}

	prices := map[string]decimal.Decimal{}
	for _, a := range alarms {
		if _, done := prices[a.Symbol]; done {
			continue
		}
		quote, err := h.MarketDataRepository.Quote(a.Symbol)
		if err != nil {
			h.Logger.Warnf("skipping alarms on %s this sweep: %v", a.Symbol, err)
			continue
		}
		prices[a.Symbol] = quote.Price
	}

	triggered := h.SignalService.CheckAlarms(alarms, prices)
	for _, t := range triggered {
		if err := h.LedgerService.DeactivateAlarm(t.ID); err != nil {
			return nil, err
		}
	}

	return triggered, nil
}
