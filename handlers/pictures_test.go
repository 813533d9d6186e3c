// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/focusmate/models"
	"github.com/danielhkuo/focusmate/testutil"
)

func TestUploadPicture_Roundtrip(t *testing.T) {
	store := testutil.SetupTestStore(t)
	userID := testutil.CreateTestUser(t, store.DB(), "alice")
	handler := NewPictureHandler(store, testutil.GetTestConfig())

	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02, 0x03}
	req := testutil.MakeRequest("POST", "/pictures/upload", models.UploadPictureRequest{
		UserID:    userID,
		ImageData: base64.StdEncoding.EncodeToString(raw),
	}, nil)
	w := httptest.NewRecorder()
	handler.Upload(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var uploaded models.UploadPictureResponse
	testutil.AssertJSON(t, w, &uploaded)
	if uploaded.PictureID <= 0 {
		t.Fatalf("expected a positive picture_id, got %d", uploaded.PictureID)
	}

	getReq := testutil.MakeRequest("GET", fmt.Sprintf("/pictures/latest?user_id=%d", userID), nil, nil)
	getW := httptest.NewRecorder()
	handler.Latest(getW, getReq)

	testutil.AssertStatus(t, getW, http.StatusOK)

	var latest models.LatestPictureResponse
	testutil.AssertJSON(t, getW, &latest)
	if !latest.HasPicture || latest.ID != uploaded.PictureID {
		t.Errorf("expected the uploaded picture back, got %+v", latest)
	}

	decoded, err := base64.StdEncoding.DecodeString(latest.ImageData)
	if err != nil {
		t.Fatalf("latest image_data is not valid base64: %v", err)
	}
	if !bytes.Equal(decoded, raw) {
		t.Error("expected image bytes to survive the roundtrip")
	}
}

func TestUploadPicture_AcceptsDataURIPrefix(t *testing.T) {
	store := testutil.SetupTestStore(t)
	userID := testutil.CreateTestUser(t, store.DB(), "alice")
	handler := NewPictureHandler(store, testutil.GetTestConfig())

	encoded := base64.StdEncoding.EncodeToString([]byte("pixels"))
	req := testutil.MakeRequest("POST", "/camera/upload", models.UploadPictureRequest{
		UserID:      userID,
		ImageBase64: "data:image/png;base64," + encoded,
	}, nil)
	w := httptest.NewRecorder()
	handler.Upload(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var img []byte
	if err := store.DB().QueryRow(`
		SELECT img FROM pictures WHERE user_id = $1 ORDER BY id DESC LIMIT 1
	`, userID).Scan(&img); err != nil {
		t.Fatal(err)
	}
	if string(img) != "pixels" {
		t.Errorf("expected decoded bytes stored, got %q", img)
	}
}

func TestUploadPicture_InvalidBase64(t *testing.T) {
	store := testutil.SetupTestStore(t)
	userID := testutil.CreateTestUser(t, store.DB(), "alice")
	handler := NewPictureHandler(store, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/pictures/upload", models.UploadPictureRequest{
		UserID:    userID,
		ImageData: "!!!not-base64!!!",
	}, nil)
	w := httptest.NewRecorder()
	handler.Upload(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestUploadPicture_TooLarge(t *testing.T) {
	store := testutil.SetupTestStore(t)
	userID := testutil.CreateTestUser(t, store.DB(), "alice")

	cfg := testutil.GetTestConfig()
	cfg.MaxImageBytes = 16
	handler := &PictureHandler{db: store.DB(), cfg: cfg}

	req := testutil.MakeRequest("POST", "/pictures/upload", models.UploadPictureRequest{
		UserID:    userID,
		ImageData: base64.StdEncoding.EncodeToString(make([]byte, 17)),
	}, nil)
	w := httptest.NewRecorder()
	handler.Upload(w, req)

	testutil.AssertStatus(t, w, http.StatusRequestEntityTooLarge)
}

func TestUploadPicture_MissingPayload(t *testing.T) {
	store := testutil.SetupTestStore(t)
	userID := testutil.CreateTestUser(t, store.DB(), "alice")
	handler := NewPictureHandler(store, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/pictures/upload", models.UploadPictureRequest{
		UserID: userID,
	}, nil)
	w := httptest.NewRecorder()
	handler.Upload(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestUploadPicture_UnknownUser(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewPictureHandler(store, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/pictures/upload", models.UploadPictureRequest{
		UserID:    999999,
		ImageData: base64.StdEncoding.EncodeToString([]byte("x")),
	}, nil)
	w := httptest.NewRecorder()
	handler.Upload(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestLatestPicture_NoneUploaded(t *testing.T) {
	store := testutil.SetupTestStore(t)
	userID := testutil.CreateTestUser(t, store.DB(), "alice")
	handler := NewPictureHandler(store, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", fmt.Sprintf("/pictures/latest?user_id=%d", userID), nil, nil)
	w := httptest.NewRecorder()
	handler.Latest(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.LatestPictureResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.HasPicture {
		t.Errorf("expected has_picture=false, got %+v", resp)
	}
}

func TestLatestPicture_ReturnsNewest(t *testing.T) {
	store := testutil.SetupTestStore(t)
	userID := testutil.CreateTestUser(t, store.DB(), "alice")
	handler := NewPictureHandler(store, testutil.GetTestConfig())

	var lastID int64
	for _, payload := range []string{"old", "new"} {
		req := testutil.MakeRequest("POST", "/pictures/upload", models.UploadPictureRequest{
			UserID:    userID,
			ImageData: base64.StdEncoding.EncodeToString([]byte(payload)),
		}, nil)
		w := httptest.NewRecorder()
		handler.Upload(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.UploadPictureResponse
		testutil.AssertJSON(t, w, &resp)
		lastID = resp.PictureID
	}

	req := testutil.MakeRequest("GET", fmt.Sprintf("/pictures/latest?user_id=%d", userID), nil, nil)
	w := httptest.NewRecorder()
	handler.Latest(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var latest models.LatestPictureResponse
	testutil.AssertJSON(t, w, &latest)
	if latest.ID != lastID {
		t.Errorf("expected newest picture %d, got %d", lastID, latest.ID)
	}
	decoded, _ := base64.StdEncoding.DecodeString(latest.ImageData)
	if string(decoded) != "new" {
		t.Errorf("expected newest payload, got %q", decoded)
	}
}
