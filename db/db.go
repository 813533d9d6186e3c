// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types, matching cliparse.Config.DatabaseType.
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

// Open opens a database connection for the given type. For sqlite the URL is
// a file path (or ":memory:"); foreign key enforcement is switched on via the
// DSN since sqlite leaves it off per connection by default.
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case TypePostgres:
		conn, err := sql.Open("postgres", url)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return conn, nil

	case TypeSQLite:
		dsn := url
		if strings.Contains(dsn, "?") {
			dsn += "&_pragma=foreign_keys(1)"
		} else {
			dsn += "?_pragma=foreign_keys(1)"
		}
		conn, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if strings.Contains(url, ":memory:") {
			// Each pooled connection would otherwise get its own empty
			// in-memory database
			conn.SetMaxOpenConns(1)
		}
		return conn, nil

	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}
