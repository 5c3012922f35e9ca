package api

import (
	"fmt"
	"time"

	"bistdesk/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type recordTransactionRequest struct {
	Symbol    string          `json:"symbol"`
	Operation string          `json:"operation"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Date      string          `json:"date"` // RFC3339, optional
}

type transactionResponse struct {
	ID        int64           `json:"id"`
	Symbol    string          `json:"symbol"`
	Operation string          `json:"operation"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Date      time.Time       `json:"date"`
}

func toTransactionResponse(t domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:        t.ID,
		Symbol:    t.Symbol,
		Operation: string(t.Operation),
		Price:     t.Price,
		Quantity:  t.Quantity,
		Date:      t.Date,
	}
}

func (m ApiHandler) recordTransaction(c *gin.Context) {
	var requestBody recordTransactionRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(fmt.Errorf("failed to read request body: %w", err), c)
		return
	}

	operation, err := domain.ParseTransactionOperation(requestBody.Operation)
	if err != nil {
		returnErrorJson(domain.ValidationError{Field: "operation", Reason: err.Error()}, c)
		return
	}

	transaction := domain.Transaction{
		Symbol:    requestBody.Symbol,
		Operation: operation,
		Price:     requestBody.Price,
		Quantity:  requestBody.Quantity,
	}
	if requestBody.Date != "" {
		date, err := time.Parse(time.RFC3339, requestBody.Date)
		if err != nil {
			returnErrorJson(domain.ValidationError{Field: "date", Reason: "must be RFC3339"}, c)
			return
		}
		transaction.Date = date
	}

	inserted, err := m.LedgerService.RecordTransaction(transaction)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, toTransactionResponse(*inserted))
}

func (m ApiHandler) listTransactions(c *gin.Context) {
	var symbol *string
	if s := c.Query("symbol"); s != "" {
		symbol = &s
	}

	transactions, err := m.LedgerService.ListTransactions(symbol)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := make([]transactionResponse, len(transactions))
	for i, t := range transactions {
		out[i] = toTransactionResponse(t)
	}

	c.JSON(200, out)
}

func (m ApiHandler) exportTransactions(c *gin.Context) {
	var symbol *string
	if s := c.Query("symbol"); s != "" {
		symbol = &s
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)
	if err := m.LedgerService.ExportTransactionsCsv(c.Writer, symbol); err != nil {
		returnErrorJson(err, c)
		return
	}
}
