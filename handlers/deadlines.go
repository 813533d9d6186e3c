// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/focusmate/cliparse"
	"github.com/danielhkuo/focusmate/db"
	"github.com/danielhkuo/focusmate/middleware"
	"github.com/danielhkuo/focusmate/models"
)

type DeadlineHandler struct {
	db    *sql.DB
	store *db.Store
	cfg   cliparse.Config
}

func NewDeadlineHandler(store *db.Store, cfg cliparse.Config) *DeadlineHandler {
	return &DeadlineHandler{db: store.DB(), store: store, cfg: cfg}
}

// GetDeadlines handles GET /deadlines/get-deadlines?user_id=N
// Every read runs the reconciler: gaps and duplicates left behind by
// done-toggling or drag reorders are collapsed before the list is returned.
func (h *DeadlineHandler) GetDeadlines(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}

	items, err := h.store.ListDeadlines(userID)
	if err != nil {
		slog.Error("failed to list deadlines", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	ordered, updates := Reconcile(items)
	if len(updates) > 0 {
		if err := h.store.ApplyOrderUpdates(updates); err != nil {
			slog.Error("failed to apply reconciled orders", "error", err, "user_id", userID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		slog.Info("deadlines reconciled", "user_id", userID, "writes", len(updates))
	}

	middleware.JSONResponse(w, http.StatusOK, ordered)
}

// AddItem handles POST /deadlines/add-item
// New items are appended: display_order = current max + 1.
func (h *DeadlineHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddDeadlineRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.Task == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "task is required")
		return
	}
	if !h.userExists(w, req.UserID) {
		return
	}

	var id int64
	var err error
	if req.IsDone {
		err = h.db.QueryRow(`
			INSERT INTO deadlines (user_id, deadline_date, task, is_done, display_order)
			VALUES ($1, $2, $3, TRUE, -1)
			RETURNING id
		`, req.UserID, req.DeadlineDate, req.Task).Scan(&id)
	} else {
		err = h.db.QueryRow(`
			INSERT INTO deadlines (user_id, deadline_date, task, is_done, display_order)
			VALUES ($1, $2, $3, FALSE,
				(SELECT COALESCE(MAX(display_order), 0) + 1 FROM deadlines WHERE user_id = $4))
			RETURNING id
		`, req.UserID, req.DeadlineDate, req.Task, req.UserID).Scan(&id)
	}
	if err != nil {
		slog.Error("failed to insert deadline", "error", err, "user_id", req.UserID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add item")
		return
	}

	slog.Info("deadline added", "user_id", req.UserID, "item_id", id)

	item := models.Deadline{
		ID:           id,
		UserID:       req.UserID,
		DeadlineDate: req.DeadlineDate,
		Task:         req.Task,
		IsDone:       req.IsDone,
		DisplayOrder: models.OrderDone,
	}
	if !req.IsDone {
		// Read back the assigned rank rather than recomputing it
		if err := h.db.QueryRow(`SELECT display_order FROM deadlines WHERE id = $1`, id).Scan(&item.DisplayOrder); err != nil {
			slog.Error("failed to read back display_order", "error", err, "item_id", id)
		}
	}

	middleware.JSONResponse(w, http.StatusCreated, item)
}

// EditItem handles POST /deadlines/edit-item
func (h *DeadlineHandler) EditItem(w http.ResponseWriter, r *http.Request) {
	var req models.EditDeadlineRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID <= 0 || req.ID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id and user_id are required")
		return
	}
	if req.Task == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "task is required")
		return
	}

	res, err := h.db.Exec(`
		UPDATE deadlines SET task = $1, deadline_date = $2
		WHERE id = $3 AND user_id = $4
	`, req.Task, req.DeadlineDate, req.ID, req.UserID)
	if err != nil {
		slog.Error("failed to edit deadline", "error", err, "item_id", req.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to edit item")
		return
	}
	if !requireRows(w, res) {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "item updated"})
}

// ClickDone handles POST /deadlines/click-done
// Both directions of the toggle park the item at order -1; the next read
// reconciles it back into the ranked prefix if it became incomplete.
func (h *DeadlineHandler) ClickDone(w http.ResponseWriter, r *http.Request) {
	var req models.ClickDoneRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID <= 0 || req.ID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id and user_id are required")
		return
	}

	var res sql.Result
	var err error
	if req.IsDone {
		// Completing an item also ends its in-progress state
		res, err = h.db.Exec(`
			UPDATE deadlines SET is_done = TRUE, display_order = -1, current_doing = FALSE
			WHERE id = $1 AND user_id = $2
		`, req.ID, req.UserID)
	} else {
		res, err = h.db.Exec(`
			UPDATE deadlines SET is_done = FALSE, display_order = -1
			WHERE id = $1 AND user_id = $2
		`, req.ID, req.UserID)
	}
	if err != nil {
		slog.Error("failed to toggle deadline", "error", err, "item_id", req.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update item")
		return
	}
	if !requireRows(w, res) {
		return
	}

	slog.Info("deadline toggled", "user_id", req.UserID, "item_id", req.ID, "is_done", req.IsDone)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "item updated"})
}

// DoingItem handles POST /deadlines/doing-item
// A user has at most one in-progress item; its task text is mirrored into
// users.title, which friends see as current_timer.
func (h *DeadlineHandler) DoingItem(w http.ResponseWriter, r *http.Request) {
	var req models.DoingItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID <= 0 || req.ID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id and user_id are required")
		return
	}

	var task string
	err := h.db.QueryRow(`
		SELECT task FROM deadlines WHERE id = $1 AND user_id = $2
	`, req.ID, req.UserID).Scan(&task)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		slog.Error("failed to query deadline", "error", err, "item_id", req.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE deadlines SET current_doing = FALSE WHERE user_id = $1`, req.UserID); err != nil {
		slog.Error("failed to clear current_doing", "error", err, "user_id", req.UserID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update item")
		return
	}

	if req.CurrentDoing {
		if _, err := tx.Exec(`UPDATE deadlines SET current_doing = TRUE WHERE id = $1`, req.ID); err != nil {
			slog.Error("failed to set current_doing", "error", err, "item_id", req.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update item")
			return
		}
		if _, err := tx.Exec(`UPDATE users SET title = $1 WHERE user_id = $2`, task, req.UserID); err != nil {
			slog.Error("failed to set user title", "error", err, "user_id", req.UserID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update item")
			return
		}
	} else {
		if _, err := tx.Exec(`UPDATE users SET title = NULL WHERE user_id = $1`, req.UserID); err != nil {
			slog.Error("failed to clear user title", "error", err, "user_id", req.UserID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update item")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit doing-item", "error", err, "item_id", req.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update item")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "item updated"})
}

// RemoveItem handles POST /deadlines/remove-item
func (h *DeadlineHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req models.RemoveItemRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID <= 0 || req.ID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id and user_id are required")
		return
	}

	res, err := h.db.Exec(`DELETE FROM deadlines WHERE id = $1 AND user_id = $2`, req.ID, req.UserID)
	if err != nil {
		slog.Error("failed to delete deadline", "error", err, "item_id", req.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove item")
		return
	}
	if !requireRows(w, res) {
		return
	}

	slog.Info("deadline removed", "user_id", req.UserID, "item_id", req.ID)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "item removed"})
}

// Reorder handles POST /deadlines/reorder
// Positions from a drag reorder are written verbatim in one transaction with
// no density validation; the reconciler restores the invariant on the next
// read.
func (h *DeadlineHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var entries []models.ReorderEntry
	if err := middleware.ParseJSONBody(r, &entries); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	updates := make([]db.OrderUpdate, 0, len(entries))
	for _, e := range entries {
		if e.ID <= 0 || e.UserID <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "every entry needs id and user_id")
			return
		}
		updates = append(updates, db.OrderUpdate{ID: e.ID, UserID: e.UserID, Order: e.DisplayOrder})
	}

	if err := h.store.ApplyOrderUpdates(updates); err != nil {
		slog.Error("failed to apply reorder", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reorder items")
		return
	}

	slog.Info("deadlines reordered", "entries", len(updates))
	middleware.JSONResponse(w, http.StatusOK, models.ReorderResponse{Updated: len(updates)})
}

// queryUserID extracts and validates the user_id query parameter.
func queryUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("user_id")
	if raw == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id must be a positive integer")
		return 0, false
	}
	return id, true
}

// requireRows converts a zero-row update into a 404.
func requireRows(w http.ResponseWriter, res sql.Result) bool {
	n, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}
	if n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Item not found")
		return false
	}
	return true
}

// userExists writes a 404 and returns false when the user id is unknown.
func (h *DeadlineHandler) userExists(w http.ResponseWriter, userID int64) bool {
	return checkUserExists(w, h.db, userID)
}

func checkUserExists(w http.ResponseWriter, dbc *sql.DB, userID int64) bool {
	var one int
	err := dbc.QueryRow(`SELECT 1 FROM users WHERE user_id = $1`, userID).Scan(&one)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return false
	}
	if err != nil {
		slog.Error("failed to query user", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}
	return true
}
