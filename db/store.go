// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/focusmate/models"
)

// OrderUpdate is one display_order delta produced by the deadline reconciler
// (or supplied verbatim by the reorder endpoint).
type OrderUpdate struct {
	ID     int64
	UserID int64
	Order  int
}

// Store wraps the persistence primitives the core algorithms contract for.
// Handlers keep their one-off queries inline; anything the reconciler or
// bucketizer depends on lives here so the dialect differences stay in one
// place.
type Store struct {
	db     *sql.DB
	dbType string
}

func NewStore(db *sql.DB, dbType string) *Store {
	return &Store{db: db, dbType: dbType}
}

// DB exposes the underlying handle for handler-level queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Begin() (*sql.Tx, error) {
	return s.db.Begin()
}

// ListDeadlines returns one user's items in ascending display_order, ties
// broken by id so reconciliation input is deterministic.
func (s *Store) ListDeadlines(userID int64) ([]models.Deadline, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, deadline_date, task, is_done, display_order, current_doing
		FROM deadlines
		WHERE user_id = $1
		ORDER BY display_order ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list deadlines: %w", err)
	}
	defer rows.Close()

	items := []models.Deadline{}
	for rows.Next() {
		var d models.Deadline
		var date sql.NullString
		if err := rows.Scan(&d.ID, &d.UserID, &date, &d.Task, &d.IsDone, &d.DisplayOrder, &d.CurrentDoing); err != nil {
			return nil, fmt.Errorf("scan deadline: %w", err)
		}
		if date.Valid {
			d.DeadlineDate = &date.String
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// ApplyOrderUpdates writes a batch of display_order values as one atomic
// unit. Used both for reconciler deltas and for verbatim reorder requests;
// a partial batch is never visible.
func (s *Store) ApplyOrderUpdates(updates []OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin order update: %w", err)
	}
	defer tx.Rollback()

	for _, u := range updates {
		if _, err := tx.Exec(`
			UPDATE deadlines SET display_order = $1
			WHERE id = $2 AND user_id = $3
		`, u.Order, u.ID, u.UserID); err != nil {
			return fmt.Errorf("update display_order for item %d: %w", u.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order update: %w", err)
	}
	return nil
}

// UpsertFocusBucket adds delta minutes to the (user, date, hour) bucket,
// creating it on first contribution. The stored value is clamped to the
// schema's 60-minute ceiling so overlapping sessions cannot overflow an hour.
func (s *Store) UpsertFocusBucket(tx *sql.Tx, userID int64, date string, hour, delta int) error {
	var query string
	if s.dbType == TypePostgres {
		query = `
			INSERT INTO focus_time (user_id, record_date, record_hour, focus_minutes)
			VALUES ($1, $2, $3, LEAST(60, $4))
			ON CONFLICT (user_id, record_date, record_hour)
			DO UPDATE SET focus_minutes = LEAST(60, focus_time.focus_minutes + EXCLUDED.focus_minutes)
		`
	} else {
		query = `
			INSERT INTO focus_time (user_id, record_date, record_hour, focus_minutes)
			VALUES ($1, $2, $3, MIN(60, $4))
			ON CONFLICT (user_id, record_date, record_hour)
			DO UPDATE SET focus_minutes = MIN(60, focus_time.focus_minutes + excluded.focus_minutes)
		`
	}

	if _, err := tx.Exec(query, userID, date, hour, delta); err != nil {
		return fmt.Errorf("upsert focus bucket %s/%02d: %w", date, hour, err)
	}
	return nil
}

// IncrementBadge adds delta to the user's badge counter, treating NULL as 0.
func (s *Store) IncrementBadge(tx *sql.Tx, userID int64, delta int) error {
	res, err := tx.Exec(`
		UPDATE users SET badge = COALESCE(badge, 0) + $1
		WHERE user_id = $2
	`, delta, userID)
	if err != nil {
		return fmt.Errorf("increment badge: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment badge: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
