package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"bistdesk/internal/domain"
	"bistdesk/internal/repository"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// LedgerService owns the durable state: the transaction journal, the
// watchlist, and price alarms. All symbol input is normalized here so
// the repositories only ever see canonical upper-case codes.
type LedgerService interface {
	RecordTransaction(t domain.Transaction) (*domain.Transaction, error)
	ListTransactions(symbol *string) ([]domain.Transaction, error)
	ListPositions() ([]domain.Position, error)
	Summary() (*domain.PortfolioSummary, error)
	ExportTransactionsCsv(w io.Writer, symbol *string) error

	AddToWatchlist(symbol string) (bool, error)
	RemoveFromWatchlist(symbol string) error
	ListWatchlist() ([]domain.WatchlistEntry, error)

	CreateAlarm(symbol string, targetPrice decimal.Decimal, condition string) (*domain.Alarm, error)
	ListAlarms(activeOnly bool) ([]domain.Alarm, error)
	DeactivateAlarm(id int64) error
}

type ledgerServiceHandler struct {
	TransactionRepository repository.TransactionRepository
	WatchlistRepository   repository.WatchlistRepository
	AlarmRepository       repository.AlarmRepository
}

func NewLedgerService(
	transactionRepository repository.TransactionRepository,
	watchlistRepository repository.WatchlistRepository,
	alarmRepository repository.AlarmRepository,
) LedgerService {
	return ledgerServiceHandler{
		TransactionRepository: transactionRepository,
		WatchlistRepository:   watchlistRepository,
		AlarmRepository:       alarmRepository,
	}
}

// NormalizeSymbol canonicalizes user input to an upper-case BIST code.
func NormalizeSymbol(symbol string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(symbol))
	if normalized == "" {
		return "", domain.ValidationError{Field: "symbol", Reason: "must not be empty"}
	}
	return normalized, nil
}

func (h ledgerServiceHandler) RecordTransaction(t domain.Transaction) (*domain.Transaction, error) {
	symbol, err := NormalizeSymbol(t.Symbol)
	if err != nil {
		return nil, err
	}
	t.Symbol = symbol

	if t.Operation != domain.TransactionOperation_Buy && t.Operation != domain.TransactionOperation_Sell {
		return nil, domain.ValidationError{Field: "operation", Reason: fmt.Sprintf("must be BUY or SELL, got %q", t.Operation)}
	}
	if !t.Price.IsPositive() {
		return nil, domain.ValidationError{Field: "price", Reason: "must be greater than zero"}
	}
	if t.Quantity <= 0 {
		return nil, domain.ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if t.Date.IsZero() {
		t.Date = time.Now().UTC()
	}

	inserted, err := h.TransactionRepository.Add(t)
	if err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	return inserted, nil
}

func (h ledgerServiceHandler) ListTransactions(symbol *string) ([]domain.Transaction, error) {
	if symbol != nil {
		normalized, err := NormalizeSymbol(*symbol)
		if err != nil {
			return nil, err
		}
		symbol = &normalized
	}
	return h.TransactionRepository.List(symbol)
}

func (h ledgerServiceHandler) ListPositions() ([]domain.Position, error) {
	return h.TransactionRepository.ListPositions()
}

func (h ledgerServiceHandler) Summary() (*domain.PortfolioSummary, error) {
	return h.TransactionRepository.Summary()
}

type transactionCsvRow struct {
	ID        int64  `csv:"id"`
	Symbol    string `csv:"symbol"`
	Operation string `csv:"operation"`
	Price     string `csv:"price"`
	Quantity  int64  `csv:"quantity"`
	Date      string `csv:"date"`
}

func (h ledgerServiceHandler) ExportTransactionsCsv(w io.Writer, symbol *string) error {
	transactions, err := h.ListTransactions(symbol)
	if err != nil {
		return err
	}

	rows := make([]transactionCsvRow, len(transactions))
	for i, t := range transactions {
		rows[i] = transactionCsvRow{
			ID:        t.ID,
			Symbol:    t.Symbol,
			Operation: string(t.Operation),
			Price:     t.Price.String(),
			Quantity:  t.Quantity,
			Date:      t.Date.UTC().Format(time.RFC3339),
		}
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write transaction csv: %w", err)
	}

	return nil
}

func (h ledgerServiceHandler) AddToWatchlist(symbol string) (bool, error) {
	normalized, err := NormalizeSymbol(symbol)
	if err != nil {
		return false, err
	}
	return h.WatchlistRepository.Add(normalized, time.Now().UTC())
}

func (h ledgerServiceHandler) RemoveFromWatchlist(symbol string) error {
	normalized, err := NormalizeSymbol(symbol)
	if err != nil {
		return err
	}
	return h.WatchlistRepository.Remove(normalized)
}

func (h ledgerServiceHandler) ListWatchlist() ([]domain.WatchlistEntry, error) {
	return h.WatchlistRepository.List()
}

func (h ledgerServiceHandler) CreateAlarm(symbol string, targetPrice decimal.Decimal, condition string) (*domain.Alarm, error) {
	normalized, err := NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	parsedCondition, err := domain.ParseAlarmCondition(condition)
	if err != nil {
		return nil, domain.ValidationError{Field: "condition", Reason: err.Error()}
	}
	if !targetPrice.IsPositive() {
		return nil, domain.ValidationError{Field: "targetPrice", Reason: "must be greater than zero"}
	}

	return h.AlarmRepository.Add(domain.Alarm{
		Symbol:      normalized,
		TargetPrice: targetPrice,
		Condition:   parsedCondition,
		CreatedAt:   time.Now().UTC(),
	})
}

func (h ledgerServiceHandler) ListAlarms(activeOnly bool) ([]domain.Alarm, error) {
	return h.AlarmRepository.List(activeOnly)
}

func (h ledgerServiceHandler) DeactivateAlarm(id int64) error {
	return h.AlarmRepository.Deactivate(id)
}
