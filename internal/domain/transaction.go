package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionOperation string

const (
	TransactionOperation_Buy  TransactionOperation = "BUY"
	TransactionOperation_Sell TransactionOperation = "SELL"
)

func ParseTransactionOperation(s string) (TransactionOperation, error) {
	switch TransactionOperation(strings.ToUpper(strings.TrimSpace(s))) {
	case TransactionOperation_Buy:
		return TransactionOperation_Buy, nil
	case TransactionOperation_Sell:
		return TransactionOperation_Sell, nil
	}
	return "", fmt.Errorf("unknown transaction operation %q", s)
}

// Transaction is one recorded buy or sell. Rows are append-only;
// everything else about the portfolio is derived from them.
type Transaction struct {
	ID        int64
	Symbol    string
	Operation TransactionOperation
	Price     decimal.Decimal
	Quantity  int64
	Date      time.Time
}

// SignedQuantity is positive for buys and negative for sells.
func (t Transaction) SignedQuantity() int64 {
	if t.Operation == TransactionOperation_Sell {
		return -t.Quantity
	}
	return t.Quantity
}

// SignedCost is price*quantity, negative for sells.
func (t Transaction) SignedCost() decimal.Decimal {
	cost := t.Price.Mul(decimal.NewFromInt(t.Quantity))
	if t.Operation == TransactionOperation_Sell {
		return cost.Neg()
	}
	return cost
}
