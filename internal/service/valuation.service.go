package service

import (
	"bistdesk/internal/domain"
	"bistdesk/internal/repository"
	"bistdesk/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ValuationService marks ledger state to market: open positions and
// watchlist entries joined with live quotes. A failed quote degrades
// that row to ledger-only data instead of failing the whole view.
type ValuationService interface {
	ValuePositions() ([]domain.ValuationRow, error)
	WatchlistQuotes() ([]domain.WatchlistQuoteRow, error)
}

type valuationServiceHandler struct {
	LedgerService        LedgerService
	MarketDataRepository repository.MarketDataRepository
	Logger               *zap.SugaredLogger
}

func NewValuationService(
	ledgerService LedgerService,
	marketDataRepository repository.MarketDataRepository,
	logger *zap.SugaredLogger,
) ValuationService {
	return valuationServiceHandler{
		LedgerService:        ledgerService,
		MarketDataRepository: marketDataRepository,
		Logger:               logger,
	}
}

func (h valuationServiceHandler) ValuePositions() ([]domain.ValuationRow, error) {
	positions, err := h.LedgerService.ListPositions()
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ValuationRow, len(positions))
	totalValue := decimal.Zero
	for i, p := range positions {
		rows[i] = domain.ValuationRow{Position: p}

		quote, err := h.MarketDataRepository.Quote(p.Symbol)
		if err != nil {
			h.Logger.Warnf("valuing %s from ledger only: %v", p.Symbol, err)
			continue
		}

		value := quote.Price.Mul(decimal.NewFromInt(p.Quantity))
		profitLoss := value.Sub(p.TotalCost)
		rows[i].CurrentPrice = util.DecimalPointer(quote.Price)
		rows[i].CurrentValue = util.DecimalPointer(value)
		rows[i].ProfitLoss = util.DecimalPointer(profitLoss)
		if p.TotalCost.IsPositive() {
			rows[i].ProfitLossPercent = util.DecimalPointer(
				profitLoss.Div(p.TotalCost).Mul(decimal.NewFromInt(100)),
			)
		}
		totalValue = totalValue.Add(value)
	}

	// weights only over the rows that actually have a market value
	if totalValue.IsPositive() {
		for i := range rows {
			if rows[i].CurrentValue != nil {
				rows[i].Weight = util.DecimalPointer(
					rows[i].CurrentValue.Div(totalValue).Mul(decimal.NewFromInt(100)),
				)
			}
		}
	}

	return rows, nil
}

func (h valuationServiceHandler) WatchlistQuotes() ([]domain.WatchlistQuoteRow, error) {
	entries, err := h.LedgerService.ListWatchlist()
	if err != nil {
		return nil, err
	}

	rows := make([]domain.WatchlistQuoteRow, len(entries))
	for i, e := range entries {
		rows[i] = domain.WatchlistQuoteRow{WatchlistEntry: e}

		quote, err := h.MarketDataRepository.Quote(e.Symbol)
		if err != nil {
			h.Logger.Warnf("listing %s without quote: %v", e.Symbol, err)
			continue
		}

		change := quote.Price.Sub(quote.PrevClose)
		rows[i].Price = util.DecimalPointer(quote.Price)
		rows[i].Change = util.DecimalPointer(change)
		if quote.PrevClose.IsPositive() {
			rows[i].ChangePercent = util.DecimalPointer(
				change.Div(quote.PrevClose).Mul(decimal.NewFromInt(100)),
			)
		}
		rows[i].Volume = util.Int64Pointer(quote.Volume)
	}

	return rows, nil
}
