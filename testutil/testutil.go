// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/focusmate/cliparse"
	"github.com/danielhkuo/focusmate/db"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full schema.
// It is closed automatically when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore wraps SetupTestDB in a Store.
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()
	return db.NewStore(SetupTestDB(t), db.TypeSQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          8000,
		DatabaseURL:   ":memory:",
		DatabaseType:  "sqlite",
		MaxImageBytes: 1 << 20,
	}
}

// CreateTestUser inserts a user and returns its id
func CreateTestUser(t *testing.T, conn *sql.DB, name string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO users (name, is_studying, badge)
		VALUES ($1, FALSE, 0)
		RETURNING user_id
	`, name).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return id
}

// SetTestBadge sets a user's badge balance directly
func SetTestBadge(t *testing.T, conn *sql.DB, userID int64, badge int) {
	t.Helper()

	if _, err := conn.Exec(`UPDATE users SET badge = $1 WHERE user_id = $2`, badge, userID); err != nil {
		t.Fatalf("Failed to set badge: %v", err)
	}
}

// AddTestDeadline inserts a deadline row with an explicit display_order and
// returns its id. Orders are written verbatim so tests can stage gaps and
// duplicates for the reconciler.
func AddTestDeadline(t *testing.T, conn *sql.DB, userID int64, task string, order int, done bool) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO deadlines (user_id, task, is_done, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, userID, task, done, order).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test deadline: %v", err)
	}
	return id
}

// GetDisplayOrder reads one item's stored display_order
func GetDisplayOrder(t *testing.T, conn *sql.DB, itemID int64) int {
	t.Helper()

	var order int
	if err := conn.QueryRow(`SELECT display_order FROM deadlines WHERE id = $1`, itemID).Scan(&order); err != nil {
		t.Fatalf("Failed to read display_order: %v", err)
	}
	return order
}

// GetBucketMinutes reads one focus bucket's stored minutes, -1 if absent
func GetBucketMinutes(t *testing.T, conn *sql.DB, userID int64, date string, hour int) int {
	t.Helper()

	var minutes int
	err := conn.QueryRow(`
		SELECT focus_minutes FROM focus_time
		WHERE user_id = $1 AND record_date = $2 AND record_hour = $3
	`, userID, date, hour).Scan(&minutes)
	if err == sql.ErrNoRows {
		return -1
	}
	if err != nil {
		t.Fatalf("Failed to read focus bucket: %v", err)
	}
	return minutes
}

// GetBadge reads a user's badge balance
func GetBadge(t *testing.T, conn *sql.DB, userID int64) int {
	t.Helper()

	var badge int
	if err := conn.QueryRow(`SELECT COALESCE(badge, 0) FROM users WHERE user_id = $1`, userID).Scan(&badge); err != nil {
		t.Fatalf("Failed to read badge: %v", err)
	}
	return badge
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
