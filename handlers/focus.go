// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/focusmate/cliparse"
	"github.com/danielhkuo/focusmate/db"
	"github.com/danielhkuo/focusmate/middleware"
	"github.com/danielhkuo/focusmate/models"
)

type FocusHandler struct {
	db    *sql.DB
	store *db.Store
	cfg   cliparse.Config

	// now is swappable in tests so sessions land in known buckets
	now func() time.Time
}

func NewFocusHandler(store *db.Store, cfg cliparse.Config) *FocusHandler {
	return &FocusHandler{db: store.DB(), store: store, cfg: cfg, now: time.Now}
}

// SaveSession handles POST /focus/save
// The session is treated as ending now. Its elapsed time is split into
// hourly buckets, and a session of an hour or more earns one badge. All
// bucket upserts and the badge increment commit atomically; a failed save
// leaves no partial contribution.
func (h *FocusHandler) SaveSession(w http.ResponseWriter, r *http.Request) {
	var req models.FocusSaveRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.DurationSeconds < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "duration_seconds must be non-negative")
		return
	}
	if !checkUserExists(w, h.db, req.UserID) {
		return
	}

	totalMinutes := req.DurationSeconds / 60
	badgeEarned := totalMinutes >= badgeThresholdMinutes
	deltas := SplitSession(h.now(), req.DurationSeconds)

	tx, err := h.store.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	for _, d := range deltas {
		if err := h.store.UpsertFocusBucket(tx, req.UserID, d.Date, d.Hour, d.Minutes); err != nil {
			slog.Error("failed to upsert focus bucket", "error", err, "user_id", req.UserID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save session")
			return
		}
	}

	if badgeEarned {
		if err := h.store.IncrementBadge(tx, req.UserID, 1); err != nil {
			slog.Error("failed to increment badge", "error", err, "user_id", req.UserID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save session")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit focus session", "error", err, "user_id", req.UserID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save session")
		return
	}

	slog.Info("focus session saved",
		"user_id", req.UserID,
		"total_minutes", totalMinutes,
		"segments", len(deltas),
		"badge_earned", badgeEarned,
		"note", req.Note,
	)

	middleware.JSONResponse(w, http.StatusOK, models.FocusSaveResponse{
		TotalMinutes: totalMinutes,
		BadgeEarned:  badgeEarned,
	})
}

// GetRecords handles GET /focus/records?user_id=N&date=YYYY-MM-DD
// Returns the hourly minute buckets recorded for one day.
func (h *FocusHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	rows, err := h.db.Query(`
		SELECT record_hour, focus_minutes
		FROM focus_time
		WHERE user_id = $1 AND record_date = $2
		ORDER BY record_hour
	`, userID, date)
	if err != nil {
		slog.Error("failed to query focus records", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	buckets := []models.FocusBucket{}
	for rows.Next() {
		b := models.FocusBucket{RecordDate: date}
		if err := rows.Scan(&b.RecordHour, &b.FocusMinutes); err != nil {
			slog.Error("failed to scan focus record", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		buckets = append(buckets, b)
	}

	middleware.JSONResponse(w, http.StatusOK, buckets)
}
