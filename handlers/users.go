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

type UserHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewUserHandler(store *db.Store, cfg cliparse.Config) *UserHandler {
	return &UserHandler{db: store.DB(), cfg: cfg}
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	var id int64
	err := h.db.QueryRow(`
		INSERT INTO users (name, is_studying, badge)
		VALUES ($1, FALSE, 0)
		RETURNING user_id
	`, req.Name).Scan(&id)
	if err != nil {
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	slog.Info("user created", "user_id", id, "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.User{
		UserID: id,
		Name:   req.Name,
	})
}

// SetStatus handles POST /user/status
// The focus timer flips is_studying when a session starts or stops.
func (h *UserHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UserStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	res, err := h.db.Exec(`
		UPDATE users SET is_studying = $1 WHERE user_id = $2
	`, req.IsStudying, req.UserID)
	if err != nil {
		slog.Error("failed to update user status", "error", err, "user_id", req.UserID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	n, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	slog.Info("user status updated", "user_id", req.UserID, "is_studying", req.IsStudying)
	middleware.JSONResponse(w, http.StatusOK, req)
}

// RecordStatus handles GET /api/v1/user/record_status?user_id=N
// Returns the caller's own profile: studying flag, current activity, and
// badge balance.
func (h *UserHandler) RecordStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}

	var resp models.RecordStatusResponse
	var title sql.NullString
	err := h.db.QueryRow(`
		SELECT user_id, name, is_studying, title, COALESCE(badge, 0)
		FROM users
		WHERE user_id = $1
	`, userID).Scan(&resp.UserID, &resp.Name, &resp.IsStudying, &title, &resp.BadgeCount)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if title.Valid {
		resp.CurrentTimer = &title.String
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
