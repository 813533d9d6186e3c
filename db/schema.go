// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	var ddl string
	switch dbType {
	case TypePostgres:
		ddl = schemaPostgres
	case TypeSQLite:
		ddl = schemaSQLite
	default:
		return fmt.Errorf("unsupported database type %q", dbType)
	}

	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Dates (deadline_date, record_date) are stored as 'YYYY-MM-DD' text in both
// dialects so rows scan identically under lib/pq and modernc sqlite.
//
// deadlines carries no UNIQUE(user_id, display_order): every completed item
// shares the -1 sentinel and reorder writes may be transiently non-dense.
// Density of the incomplete ranks is the reconciler's read-time invariant.

const schemaPostgres = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    user_id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    is_studying BOOLEAN NOT NULL DEFAULT FALSE,
    title TEXT,
    badge INTEGER DEFAULT 0
);

-- Friends (mutual: one row per direction)
CREATE TABLE IF NOT EXISTS friends (
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    friend_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    PRIMARY KEY (user_id, friend_id)
);

-- Deadlines
CREATE TABLE IF NOT EXISTS deadlines (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    deadline_date TEXT,
    task TEXT NOT NULL,
    is_done BOOLEAN NOT NULL DEFAULT FALSE,
    display_order INTEGER NOT NULL DEFAULT -1,
    current_doing BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_deadlines_user ON deadlines(user_id);

-- Focus time buckets
CREATE TABLE IF NOT EXISTS focus_time (
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    record_date TEXT NOT NULL,
    record_hour INTEGER NOT NULL CHECK (record_hour BETWEEN 0 AND 23),
    focus_minutes INTEGER NOT NULL DEFAULT 0 CHECK (focus_minutes BETWEEN 0 AND 60),
    UNIQUE (user_id, record_date, record_hour)
);

CREATE INDEX IF NOT EXISTS idx_focus_time_user_date ON focus_time(user_id, record_date);

-- Messages
CREATE TABLE IF NOT EXISTS messages (
    id SERIAL PRIMARY KEY,
    sender_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    receiver_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    content TEXT NOT NULL,
    is_read BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_messages_receiver ON messages(receiver_id, is_read);

-- Pictures
CREATE TABLE IF NOT EXISTS pictures (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    img BYTEA
);

CREATE INDEX IF NOT EXISTS idx_pictures_user ON pictures(user_id);

-- Legacy scaffold items (web frontend demo)
CREATE TABLE IF NOT EXISTS items (
    id SERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    done BOOLEAN NOT NULL DEFAULT FALSE
);
`

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS users (
    user_id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    is_studying BOOLEAN NOT NULL DEFAULT FALSE,
    title TEXT,
    badge INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS friends (
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    friend_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    PRIMARY KEY (user_id, friend_id)
);

CREATE TABLE IF NOT EXISTS deadlines (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    deadline_date TEXT,
    task TEXT NOT NULL,
    is_done BOOLEAN NOT NULL DEFAULT FALSE,
    display_order INTEGER NOT NULL DEFAULT -1,
    current_doing BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_deadlines_user ON deadlines(user_id);

CREATE TABLE IF NOT EXISTS focus_time (
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    record_date TEXT NOT NULL,
    record_hour INTEGER NOT NULL CHECK (record_hour BETWEEN 0 AND 23),
    focus_minutes INTEGER NOT NULL DEFAULT 0 CHECK (focus_minutes BETWEEN 0 AND 60),
    UNIQUE (user_id, record_date, record_hour)
);

CREATE INDEX IF NOT EXISTS idx_focus_time_user_date ON focus_time(user_id, record_date);

CREATE TABLE IF NOT EXISTS messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    sender_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    receiver_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    content TEXT NOT NULL,
    is_read BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_messages_receiver ON messages(receiver_id, is_read);

CREATE TABLE IF NOT EXISTS pictures (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    img BLOB
);

CREATE INDEX IF NOT EXISTS idx_pictures_user ON pictures(user_id);

CREATE TABLE IF NOT EXISTS items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    done BOOLEAN NOT NULL DEFAULT FALSE
);
`
