package api

import (
	"time"

	"bistdesk/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type positionResponse struct {
	Symbol              string          `json:"symbol"`
	Quantity            int64           `json:"quantity"`
	TotalCost           decimal.Decimal `json:"totalCost"`
	AverageCost         decimal.Decimal `json:"averageCost"`
	LastTransactionDate time.Time       `json:"lastTransactionDate"`
}

func toPositionResponse(p domain.Position) positionResponse {
	return positionResponse{
		Symbol:              p.Symbol,
		Quantity:            p.Quantity,
		TotalCost:           p.TotalCost,
		AverageCost:         p.AverageCost,
		LastTransactionDate: p.LastTransactionDate,
	}
}

func (m ApiHandler) listPositions(c *gin.Context) {
	positions, err := m.LedgerService.ListPositions()
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := make([]positionResponse, len(positions))
	for i, p := range positions {
		out[i] = toPositionResponse(p)
	}

	c.JSON(200, out)
}

type portfolioSummaryResponse struct {
	DistinctSymbols int64           `json:"distinctSymbols"`
	TotalCost       decimal.Decimal `json:"totalCost"`
	TotalShares     int64           `json:"totalShares"`
}

func (m ApiHandler) portfolioSummary(c *gin.Context) {
	summary, err := m.LedgerService.Summary()
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, portfolioSummaryResponse{
		DistinctSymbols: summary.DistinctSymbols,
		TotalCost:       summary.TotalCost,
		TotalShares:     summary.TotalShares,
	})
}

type valuationRowResponse struct {
	positionResponse
	CurrentPrice      *decimal.Decimal `json:"currentPrice"`
	CurrentValue      *decimal.Decimal `json:"currentValue"`
	ProfitLoss        *decimal.Decimal `json:"profitLoss"`
	ProfitLossPercent *decimal.Decimal `json:"profitLossPercent"`
	Weight            *decimal.Decimal `json:"weight"`
}

func (m ApiHandler) portfolioValuation(c *gin.Context) {
	rows, err := m.ValuationService.ValuePositions()
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := make([]valuationRowResponse, len(rows))
	for i, r := range rows {
		out[i] = valuationRowResponse{
			positionResponse:  toPositionResponse(r.Position),
			CurrentPrice:      r.CurrentPrice,
			CurrentValue:      r.CurrentValue,
			ProfitLoss:        r.ProfitLoss,
			ProfitLossPercent: r.ProfitLossPercent,
			Weight:            r.Weight,
		}
	}

	c.JSON(200, out)
}
