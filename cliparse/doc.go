// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded before flags are parsed.

# Config Fields

  - Port: Server listen port (default: 8000)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - DatabaseURL: connection string, or sqlite file path (default: focusmate.db)
  - MaxImageBytes: decoded picture upload limit (default: 5 MiB)

# CLI Flags

	-p                Server port
	-d                Database URL or sqlite path
	-t                Database type
	-max-image-bytes  Picture size limit

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	MAX_IMAGE_BYTES → -max-image-bytes

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - DATABASE_TYPE is neither sqlite nor postgres
  - DATABASE_URL is missing while DATABASE_TYPE is postgres
  - PORT or MAX_IMAGE_BYTES cannot be parsed
*/
package cliparse
