// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/focusmate/cliparse"
	"github.com/danielhkuo/focusmate/db"
	"github.com/danielhkuo/focusmate/middleware"
	"github.com/danielhkuo/focusmate/models"
)

type FriendHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewFriendHandler(store *db.Store, cfg cliparse.Config) *FriendHandler {
	return &FriendHandler{db: store.DB(), cfg: cfg}
}

// ListFriendIDs handles GET /api/v1/new-friends/{id}
func (h *FriendHandler) ListFriendIDs(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || userID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a positive integer")
		return
	}
	if !checkUserExists(w, h.db, userID) {
		return
	}

	rows, err := h.db.Query(`
		SELECT friend_id FROM friends WHERE user_id = $1 ORDER BY friend_id
	`, userID)
	if err != nil {
		slog.Error("failed to query friends", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			slog.Error("failed to scan friend id", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		ids = append(ids, id)
	}

	middleware.JSONResponse(w, http.StatusOK, models.FriendIDsResponse{FriendIDs: ids})
}

// Status handles GET /api/v1/friends/status?ids=1,2,3
// Returns each listed user's name, studying flag, and in-progress task
// (exposed as current_timer). Unknown ids are silently omitted.
func (h *FriendHandler) Status(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("ids"))
	if raw == "" {
		middleware.JSONResponse(w, http.StatusOK, []models.FriendStatus{})
		return
	}

	parts := strings.Split(raw, ",")
	ids := make([]interface{}, 0, len(parts))
	placeholders := make([]string, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil || id <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "ids must be positive integers")
			return
		}
		ids = append(ids, id)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(ids)))
	}

	query := fmt.Sprintf(`
		SELECT user_id, name, is_studying, title
		FROM users
		WHERE user_id IN (%s)
		ORDER BY user_id
	`, strings.Join(placeholders, ", "))

	rows, err := h.db.Query(query, ids...)
	if err != nil {
		slog.Error("failed to query friend statuses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	statuses := []models.FriendStatus{}
	for rows.Next() {
		var s models.FriendStatus
		var title sql.NullString
		if err := rows.Scan(&s.FriendID, &s.Name, &s.IsStudying, &title); err != nil {
			slog.Error("failed to scan friend status", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if title.Valid {
			s.CurrentTimer = &title.String
		}
		statuses = append(statuses, s)
	}

	middleware.JSONResponse(w, http.StatusOK, statuses)
}

// AddFriend handles POST /api/v1/friends
// Friendship is mutual: one row per direction, inserted atomically.
func (h *FriendHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseFriendPair(w, r)
	if !ok {
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	for _, pair := range [][2]int64{{req.UserID, req.FriendID}, {req.FriendID, req.UserID}} {
		if _, err := tx.Exec(`
			INSERT INTO friends (user_id, friend_id) VALUES ($1, $2)
			ON CONFLICT (user_id, friend_id) DO NOTHING
		`, pair[0], pair[1]); err != nil {
			slog.Error("failed to insert friendship", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add friend")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit friendship", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add friend")
		return
	}

	slog.Info("friendship added", "user_id", req.UserID, "friend_id", req.FriendID)
	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{Message: "friend added"})
}

// RemoveFriend handles POST /api/v1/friends/remove
func (h *FriendHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseFriendPair(w, r)
	if !ok {
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	for _, pair := range [][2]int64{{req.UserID, req.FriendID}, {req.FriendID, req.UserID}} {
		if _, err := tx.Exec(`
			DELETE FROM friends WHERE user_id = $1 AND friend_id = $2
		`, pair[0], pair[1]); err != nil {
			slog.Error("failed to delete friendship", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove friend")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit unfriend", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove friend")
		return
	}

	slog.Info("friendship removed", "user_id", req.UserID, "friend_id", req.FriendID)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "friend removed"})
}

func (h *FriendHandler) parseFriendPair(w http.ResponseWriter, r *http.Request) (models.FriendRequest, bool) {
	var req models.FriendRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return req, false
	}
	if req.UserID <= 0 || req.FriendID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id and friend_id are required")
		return req, false
	}
	if req.UserID == req.FriendID {
		middleware.ErrorResponse(w, http.StatusBadRequest, "cannot befriend yourself")
		return req, false
	}
	if !checkUserExists(w, h.db, req.UserID) || !checkUserExists(w, h.db, req.FriendID) {
		return req, false
	}
	return req, true
}
