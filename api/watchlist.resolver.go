package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type watchlistEntryResponse struct {
	ID      int64     `json:"id"`
	Symbol  string    `json:"symbol"`
	AddedAt time.Time `json:"addedAt"`
}

func (m ApiHandler) listWatchlist(c *gin.Context) {
	entries, err := m.LedgerService.ListWatchlist()
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := make([]watchlistEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = watchlistEntryResponse{ID: e.ID, Symbol: e.Symbol, AddedAt: e.AddedAt}
	}

	c.JSON(200, out)
}

type addToWatchlistRequest struct {
	Symbol string `json:"symbol"`
}

func (m ApiHandler) addToWatchlist(c *gin.Context) {
	var requestBody addToWatchlistRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(fmt.Errorf("failed to read request body: %w", err), c)
		return
	}

	added, err := m.LedgerService.AddToWatchlist(requestBody.Symbol)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{"added": added})
}

func (m ApiHandler) removeFromWatchlist(c *gin.Context) {
	if err := m.LedgerService.RemoveFromWatchlist(c.Param("symbol")); err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{"removed": true})
}

type watchlistQuoteResponse struct {
	watchlistEntryResponse
	Price         *decimal.Decimal `json:"price"`
	Change        *decimal.Decimal `json:"change"`
	ChangePercent *decimal.Decimal `json:"changePercent"`
	Volume        *int64           `json:"volume"`
}

func (m ApiHandler) watchlistQuotes(c *gin.Context) {
	rows, err := m.ValuationService.WatchlistQuotes()
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := make([]watchlistQuoteResponse, len(rows))
	for i, r := range rows {
		out[i] = watchlistQuoteResponse{
			watchlistEntryResponse: watchlistEntryResponse{ID: r.ID, Symbol: r.Symbol, AddedAt: r.AddedAt},
			Price:                  r.Price,
			Change:                 r.Change,
			ChangePercent:          r.ChangePercent,
			Volume:                 r.Volume,
		}
	}

	c.JSON(200, out)
}
