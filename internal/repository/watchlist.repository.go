package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bistdesk/internal/domain"

	"github.com/mattn/go-sqlite3"
)

type WatchlistRepository interface {
	Add(symbol string, addedAt time.Time) (bool, error)
	Remove(symbol string) error
	List() ([]domain.WatchlistEntry, error)
}

type watchlistRepositoryHandler struct {
	Db *sql.DB
}

func NewWatchlistRepository(db *sql.DB) WatchlistRepository {
	return watchlistRepositoryHandler{Db: db}
}

// Add returns false when the symbol is already watched; the UNIQUE
// violation is absorbed here rather than surfaced as an error.
func (h watchlistRepositoryHandler) Add(symbol string, addedAt time.Time) (bool, error) {
	_, err := h.Db.Exec(
		`INSERT INTO watchlist (symbol, added_at) VALUES (?, ?)`,
		symbol, addedAt.UTC().Format(dateLayout),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert watchlist entry: %w", err)
	}

	return true, nil
}

func (h watchlistRepositoryHandler) Remove(symbol string) error {
	if _, err := h.Db.Exec(`DELETE FROM watchlist WHERE symbol = ?`, symbol); err != nil {
		return fmt.Errorf("failed to remove watchlist entry: %w", err)
	}
	return nil
}

func (h watchlistRepositoryHandler) List() ([]domain.WatchlistEntry, error) {
	rows, err := h.Db.Query(`SELECT id, symbol, added_at FROM watchlist ORDER BY added_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	defer rows.Close()

	out := []domain.WatchlistEntry{}
	for rows.Next() {
		var (
			e       domain.WatchlistEntry
			dateStr string
		)
		if err := rows.Scan(&e.ID, &e.Symbol, &dateStr); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist entry: %w", err)
		}
		e.AddedAt, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse watchlist date %q: %w", dateStr, err)
		}
		out = append(out, e)
	}

	return out, rows.Err()
}
