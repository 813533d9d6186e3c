// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/focusmate/cliparse"
	"github.com/danielhkuo/focusmate/db"
	"github.com/danielhkuo/focusmate/middleware"
	"github.com/danielhkuo/focusmate/models"
)

type PictureHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPictureHandler(store *db.Store, cfg cliparse.Config) *PictureHandler {
	return &PictureHandler{db: store.DB(), cfg: cfg}
}

// Upload handles POST /pictures/upload and POST /camera/upload
// The two clients name the base64 field differently (image_data vs
// image_base64); either is accepted, with or without a data: URI prefix.
func (h *PictureHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req models.UploadPictureRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UserID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "user_id is required")
		return
	}

	payload := req.ImageData
	if payload == "" {
		payload = req.ImageBase64
	}
	if payload == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "image_data is required")
		return
	}

	// Strip a "data:image/...;base64," prefix if the client sent one
	if strings.HasPrefix(payload, "data:") {
		if idx := strings.Index(payload, "base64,"); idx >= 0 {
			payload = payload[idx+len("base64,"):]
		}
	}

	img, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid base64 image data")
		return
	}
	if len(img) > h.cfg.MaxImageBytes {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Image too large")
		return
	}
	if !checkUserExists(w, h.db, req.UserID) {
		return
	}

	var id int64
	err = h.db.QueryRow(`
		INSERT INTO pictures (user_id, img) VALUES ($1, $2)
		RETURNING id
	`, req.UserID, img).Scan(&id)
	if err != nil {
		slog.Error("failed to insert picture", "error", err, "user_id", req.UserID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save picture")
		return
	}

	slog.Info("picture uploaded", "picture_id", id, "user_id", req.UserID, "bytes", len(img))

	middleware.JSONResponse(w, http.StatusCreated, models.UploadPictureResponse{PictureID: id})
}

// Latest handles GET /pictures/latest?user_id=N
func (h *PictureHandler) Latest(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUserID(w, r)
	if !ok {
		return
	}

	var id int64
	var img []byte
	err := h.db.QueryRow(`
		SELECT id, img FROM pictures
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT 1
	`, userID).Scan(&id, &img)
	if err == sql.ErrNoRows {
		middleware.JSONResponse(w, http.StatusOK, models.LatestPictureResponse{HasPicture: false})
		return
	}
	if err != nil {
		slog.Error("failed to query picture", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LatestPictureResponse{
		HasPicture: true,
		ID:         id,
		ImageData:  base64.StdEncoding.EncodeToString(img),
	})
}
