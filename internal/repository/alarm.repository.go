package repository

import (
	"database/sql"
	"fmt"
	"time"

	"bistdesk/internal/domain"
)

type AlarmRepository interface {
	Add(a domain.Alarm) (*domain.Alarm, error)
	List(activeOnly bool) ([]domain.Alarm, error)
	Deactivate(id int64) error
}

type alarmRepositoryHandler struct {
	Db *sql.DB
}

func NewAlarmRepository(db *sql.DB) AlarmRepository {
	return alarmRepositoryHandler{Db: db}
}

func (h alarmRepositoryHandler) Add(a domain.Alarm) (*domain.Alarm, error) {
	result, err := h.Db.Exec(
		`INSERT INTO alarms (symbol, target_price, condition, active, created_at) VALUES (?, ?, ?, 1, ?)`,
		a.Symbol, a.TargetPrice, string(a.Condition), a.CreatedAt.UTC().Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert alarm: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted alarm id: %w", err)
	}
	a.ID = id
	a.Active = true

	return &a, nil
}

func (h alarmRepositoryHandler) List(activeOnly bool) ([]domain.Alarm, error) {
	query := `SELECT id, symbol, target_price, condition, active, created_at FROM alarms ORDER BY created_at DESC, id DESC`
	if activeOnly {
		query = `SELECT id, symbol, target_price, condition, active, created_at FROM alarms WHERE active = 1 ORDER BY created_at DESC, id DESC`
	}

	rows, err := h.Db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list alarms: %w", err)
	}
	defer rows.Close()

	out := []domain.Alarm{}
	for rows.Next() {
		var (
			a         domain.Alarm
			condition string
			dateStr   string
		)
		if err := rows.Scan(&a.ID, &a.Symbol, &a.TargetPrice, &condition, &a.Active, &dateStr); err != nil {
			return nil, fmt.Errorf("failed to scan alarm: %w", err)
		}
		a.Condition = domain.AlarmCondition(condition)
		a.CreatedAt, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse alarm date %q: %w", dateStr, err)
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

// Deactivate is idempotent; deactivating an already inactive alarm is a
// no-op, and alarms are never deleted.
func (h alarmRepositoryHandler) Deactivate(id int64) error {
	if _, err := h.Db.Exec(`UPDATE alarms SET active = 0 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to deactivate alarm %d: %w", id, err)
	}
	return nil
}
