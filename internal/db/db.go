package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (or creates) the SQLite file and applies migrations.
// WAL and a busy timeout keep the single shared handle well behaved;
// all access is serialized through this one connection.
func Open(path string) (*sql.DB, error) {
	dbConn, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_fk=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open db at %s: %w", path, err)
	}

	if err := Migrate(dbConn); err != nil {
		dbConn.Close()
		return nil, err
	}

	return dbConn, nil
}

func Migrate(dbConn *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS transactions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  symbol TEXT NOT NULL,
  operation TEXT NOT NULL CHECK (operation IN ('BUY', 'SELL')),
  price REAL NOT NULL,
  quantity INTEGER NOT NULL,
  date TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_symbol ON transactions (symbol);

CREATE TABLE IF NOT EXISTS watchlist (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  symbol TEXT NOT NULL UNIQUE,
  added_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS alarms (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  symbol TEXT NOT NULL,
  target_price REAL NOT NULL,
  condition TEXT NOT NULL CHECK (condition IN ('ABOVE', 'BELOW')),
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL
);
`
	if _, err := dbConn.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}
