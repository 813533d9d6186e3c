// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation, and the store
primitives the core algorithms rely on.

# Connections

Open supports both backing stores behind database/sql:

	conn, err := db.Open("postgres", "postgres://...")
	conn, err := db.Open("sqlite", "focusmate.db")

SQLite connections get foreign key enforcement via the DSN, and in-memory
databases are pinned to a single pooled connection.

# Schema

CreateSchema creates all tables, one DDL constant per dialect:

	err := db.CreateSchema(conn, cfg.DatabaseType)

Tables: users, friends, deadlines, focus_time, messages, pictures, items.
All statements use IF NOT EXISTS and are safe to rerun.

# Store

Store carries the four persistence operations with algorithmic contracts:

  - ListDeadlines: deterministic read order (display_order, then id)
  - ApplyOrderUpdates: atomic batch of display_order writes
  - UpsertFocusBucket: additive, clamped at 60 minutes per hour
  - IncrementBadge: NULL-safe counter increment

Everything else is plain inline SQL in the handlers.
*/
package db
