package repository

import (
	"database/sql"
	"fmt"
	"time"

	"bistdesk/internal/domain"

	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	Add(t domain.Transaction) (*domain.Transaction, error)
	List(symbol *string) ([]domain.Transaction, error)
	ListPositions() ([]domain.Position, error)
	Summary() (*domain.PortfolioSummary, error)
}

type transactionRepositoryHandler struct {
	Db *sql.DB
}

func NewTransactionRepository(db *sql.DB) TransactionRepository {
	return transactionRepositoryHandler{Db: db}
}

// dates are stored as RFC3339 UTC strings so MAX() and ORDER BY sort
// chronologically
const dateLayout = time.RFC3339

func (h transactionRepositoryHandler) Add(t domain.Transaction) (*domain.Transaction, error) {
	result, err := h.Db.Exec(
		`INSERT INTO transactions (symbol, operation, price, quantity, date) VALUES (?, ?, ?, ?, ?)`,
		t.Symbol, string(t.Operation), t.Price, t.Quantity, t.Date.UTC().Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted transaction id: %w", err)
	}
	t.ID = id

	return &t, nil
}

func (h transactionRepositoryHandler) List(symbol *string) ([]domain.Transaction, error) {
	query := `SELECT id, symbol, operation, price, quantity, date FROM transactions ORDER BY date DESC, id DESC`
	args := []interface{}{}
	if symbol != nil {
		query = `SELECT id, symbol, operation, price, quantity, date FROM transactions WHERE symbol = ? ORDER BY date DESC, id DESC`
		args = append(args, *symbol)
	}

	rows, err := h.Db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	out := []domain.Transaction{}
	for rows.Next() {
		var (
			t       domain.Transaction
			op      string
			dateStr string
		)
		if err := rows.Scan(&t.ID, &t.Symbol, &op, &t.Price, &t.Quantity, &dateStr); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Operation = domain.TransactionOperation(op)
		t.Date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transaction date %q: %w", dateStr, err)
		}
		out = append(out, t)
	}

	return out, rows.Err()
}

// ListPositions aggregates the whole history per symbol: signed quantity
// and cost sums, most recent transaction date, average cost. Symbols with
// net quantity <= 0 are excluded here but still counted by Summary.
func (h transactionRepositoryHandler) ListPositions() ([]domain.Position, error) {
	rows, err := h.Db.Query(`
		WITH portfolio AS (
			SELECT
				symbol,
				SUM(CASE WHEN operation = 'BUY' THEN quantity ELSE -quantity END) AS net_quantity,
				SUM(CASE WHEN operation = 'BUY' THEN price * quantity ELSE -price * quantity END) AS total_cost,
				MAX(date) AS last_transaction_date
			FROM transactions
			GROUP BY symbol
			HAVING net_quantity > 0
		)
		SELECT
			symbol,
			net_quantity,
			ABS(total_cost) AS total_cost,
			last_transaction_date,
			ABS(total_cost / net_quantity) AS avg_cost
		FROM portfolio
		ORDER BY last_transaction_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	out := []domain.Position{}
	for rows.Next() {
		var (
			p       domain.Position
			dateStr string
		)
		if err := rows.Scan(&p.Symbol, &p.Quantity, &p.TotalCost, &dateStr, &p.AverageCost); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		p.LastTransactionDate, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse position date %q: %w", dateStr, err)
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (h transactionRepositoryHandler) Summary() (*domain.PortfolioSummary, error) {
	row := h.Db.QueryRow(`
		SELECT
			COUNT(DISTINCT symbol),
			COALESCE(SUM(CASE WHEN operation = 'BUY' THEN price * quantity ELSE -price * quantity END), 0),
			COALESCE(SUM(CASE WHEN operation = 'BUY' THEN quantity ELSE -quantity END), 0)
		FROM transactions
	`)

	out := domain.PortfolioSummary{TotalCost: decimal.Zero}
	if err := row.Scan(&out.DistinctSymbols, &out.TotalCost, &out.TotalShares); err != nil {
		return nil, fmt.Errorf("failed to compute portfolio summary: %w", err)
	}

	return &out, nil
}
