// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the FocusMate API server.

FocusMate is a personal productivity backend: it tracks focus sessions in
hourly minute buckets, keeps a reorderable deadline list per user, manages
friend relationships with live study status, delivers direct messages paid
for with earned badges, and stores user photos.

# Starting the Server

The server runs against SQLite by default and needs no configuration:

	go run main.go

Or against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 8000 -t postgres -d "postgres://..."

# Configuration

Optional settings:

  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - DATABASE_URL (-d): connection string or sqlite path (default: focusmate.db)
  - MAX_IMAGE_BYTES (-max-image-bytes): decoded picture size limit

A .env file in the working directory is loaded before flags are read.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (users, deadlines, focus, friends,
    messages, pictures, items) plus the deadline reconciler and the
    focus-time bucketizer
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - db: Connection setup, schema creation, store primitives
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
