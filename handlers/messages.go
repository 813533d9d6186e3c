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

type MessageHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewMessageHandler(store *db.Store, cfg cliparse.Config) *MessageHandler {
	return &MessageHandler{db: store.DB(), cfg: cfg}
}

// Send handles POST /api/v1/messages
// Sending costs one badge; the debit and the insert commit together, so a
// failed send never burns a badge.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.SendMessageRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.SenderID <= 0 || req.ReceiverID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sender_id and receiver_id are required")
		return
	}
	if req.SenderID == req.ReceiverID {
		middleware.ErrorResponse(w, http.StatusBadRequest, "cannot message yourself")
		return
	}
	if req.Content == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "content is required")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var badge int
	err = tx.QueryRow(`
		SELECT COALESCE(badge, 0) FROM users WHERE user_id = $1
	`, req.SenderID).Scan(&badge)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Sender not found")
		return
	}
	if err != nil {
		slog.Error("failed to query sender", "error", err, "sender_id", req.SenderID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if badge < 1 {
		middleware.ErrorResponse(w, http.StatusConflict, "Not enough badges")
		return
	}

	var receiverExists int
	err = tx.QueryRow(`SELECT 1 FROM users WHERE user_id = $1`, req.ReceiverID).Scan(&receiverExists)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Receiver not found")
		return
	}
	if err != nil {
		slog.Error("failed to query receiver", "error", err, "receiver_id", req.ReceiverID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if _, err := tx.Exec(`
		UPDATE users SET badge = COALESCE(badge, 0) - 1 WHERE user_id = $1
	`, req.SenderID); err != nil {
		slog.Error("failed to spend badge", "error", err, "sender_id", req.SenderID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	var messageID int64
	err = tx.QueryRow(`
		INSERT INTO messages (sender_id, receiver_id, content, is_read, created_at)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING id
	`, req.SenderID, req.ReceiverID, req.Content, time.Now()).Scan(&messageID)
	if err != nil {
		slog.Error("failed to insert message", "error", err, "sender_id", req.SenderID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit message", "error", err, "message_id", messageID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	slog.Info("message sent", "message_id", messageID, "sender_id", req.SenderID, "receiver_id", req.ReceiverID)

	middleware.JSONResponse(w, http.StatusCreated, models.SendMessageResponse{
		MessageID:  messageID,
		BadgeCount: badge - 1,
	})
}

// UnreadLatest handles GET /api/v1/messages/unread/latest?user_id=N
// The client polls this endpoint; the delivered message is marked read so a
// restarted client is not re-notified about it.
func (h *MessageHandler) UnreadLatest(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}

	var msg models.UnreadMessage
	err := h.db.QueryRow(`
		SELECT m.id, m.sender_id, u.name, m.content
		FROM messages m
		JOIN users u ON u.user_id = m.sender_id
		WHERE m.receiver_id = $1 AND m.is_read = FALSE
		ORDER BY m.id DESC
		LIMIT 1
	`, userID).Scan(&msg.ID, &msg.SenderID, &msg.SenderName, &msg.Content)
	if err == sql.ErrNoRows {
		middleware.JSONResponse(w, http.StatusOK, models.UnreadLatestResponse{HasUnread: false})
		return
	}
	if err != nil {
		slog.Error("failed to query unread messages", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if _, err := h.db.Exec(`UPDATE messages SET is_read = TRUE WHERE id = $1`, msg.ID); err != nil {
		slog.Error("failed to mark message read", "error", err, "message_id", msg.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UnreadLatestResponse{
		HasUnread: true,
		Data:      &msg,
	})
}
