// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/focusmate/cliparse"
	"github.com/danielhkuo/focusmate/db"
	"github.com/danielhkuo/focusmate/middleware"
	"github.com/danielhkuo/focusmate/models"
)

// ItemHandler serves the legacy /items scaffold the web frontend still uses.
type ItemHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewItemHandler(store *db.Store, cfg cliparse.Config) *ItemHandler {
	return &ItemHandler{db: store.DB(), cfg: cfg}
}

// List handles GET /items
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`SELECT id, title, done FROM items ORDER BY id`)
	if err != nil {
		slog.Error("failed to query items", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Title, &item.Done); err != nil {
			slog.Error("failed to scan item", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		items = append(items, item)
	}

	middleware.JSONResponse(w, http.StatusOK, items)
}

// Create handles POST /items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	var id int64
	err := h.db.QueryRow(`
		INSERT INTO items (title, done) VALUES ($1, $2)
		RETURNING id
	`, req.Title, req.Done).Scan(&id)
	if err != nil {
		slog.Error("failed to insert item", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create item")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.Item{
		ID:    id,
		Title: req.Title,
		Done:  req.Done,
	})
}
