// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = 8000
	defaultSQLitePath    = "focusmate.db"
	defaultMaxImageBytes = 5 << 20 // 5 MiB decoded
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	MaxImageBytes int
}

// ParseFlags validates flags and fills defaults from the environment.
// A .env file in the working directory is loaded first if present.
func ParseFlags(args []string) (Config, error) {
	// Missing .env is the normal case outside dev
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("focusmate", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (or sqlite path)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.IntVar(&cfg.MaxImageBytes, "max-image-bytes", 0, "Max decoded picture size in bytes")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = defaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = defaultSQLitePath
	}

	if cfg.MaxImageBytes == 0 {
		if sizeStr := os.Getenv("MAX_IMAGE_BYTES"); sizeStr != "" {
			size, err := strconv.Atoi(sizeStr)
			if err != nil {
				return Config{}, errors.New("invalid MAX_IMAGE_BYTES env variable")
			}
			cfg.MaxImageBytes = size
		} else {
			cfg.MaxImageBytes = defaultMaxImageBytes
		}
	}
	if cfg.MaxImageBytes < 0 {
		return Config{}, errors.New("max image bytes must be positive")
	}

	return cfg, nil
}
