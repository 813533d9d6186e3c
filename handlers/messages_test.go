// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/focusmate/models"
	"github.com/danielhkuo/focusmate/testutil"
)

func TestSendMessage_SpendsBadge(t *testing.T) {
	store := testutil.SetupTestStore(t)
	alice := testutil.CreateTestUser(t, store.DB(), "alice")
	bob := testutil.CreateTestUser(t, store.DB(), "bob")
	testutil.SetTestBadge(t, store.DB(), alice, 2)

	handler := NewMessageHandler(store, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/api/v1/messages", models.SendMessageRequest{
		SenderID: alice, ReceiverID: bob, Content: "keep going!",
	}, nil)
	w := httptest.NewRecorder()
	handler.Send(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.SendMessageResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.MessageID <= 0 {
		t.Errorf("expected a positive message_id, got %d", resp.MessageID)
	}
	if resp.BadgeCount != 1 {
		t.Errorf("expected remaining badge_count 1, got %d", resp.BadgeCount)
	}

	if got := testutil.GetBadge(t, store.DB(), alice); got != 1 {
		t.Errorf("expected stored badge 1, got %d", got)
	}

	var content string
	var isRead bool
	err := store.DB().QueryRow(`
		SELECT content, is_read FROM messages WHERE id = $1
	`, resp.MessageID).Scan(&content, &isRead)
	if err != nil {
		t.Fatal(err)
	}
	if content != "keep going!" {
		t.Errorf("expected stored content, got '%s'", content)
	}
	if isRead {
		t.Error("expected message unread on insert")
	}
}

func TestSendMessage_InsufficientBadges(t *testing.T) {
	store := testutil.SetupTestStore(t)
	alice := testutil.CreateTestUser(t, store.DB(), "alice")
	bob := testutil.CreateTestUser(t, store.DB(), "bob")

	handler := NewMessageHandler(store, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/api/v1/messages", models.SendMessageRequest{
		SenderID: alice, ReceiverID: bob, Content: "hi",
	}, nil)
	w := httptest.NewRecorder()
	handler.Send(w, req)

	testutil.AssertStatus(t, w, http.StatusConflict)

	// Nothing was written
	var count int
	if err := store.DB().QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("expected no messages, got %d", count)
	}
	if got := testutil.GetBadge(t, store.DB(), alice); got != 0 {
		t.Errorf("expected badge untouched at 0, got %d", got)
	}
}

func TestSendMessage_Validation(t *testing.T) {
	store := testutil.SetupTestStore(t)
	alice := testutil.CreateTestUser(t, store.DB(), "alice")
	testutil.SetTestBadge(t, store.DB(), alice, 5)

	handler := NewMessageHandler(store, testutil.GetTestConfig())

	testCases := []struct {
		name     string
		body     models.SendMessageRequest
		expected int
	}{
		{"self message", models.SendMessageRequest{SenderID: alice, ReceiverID: alice, Content: "x"}, http.StatusBadRequest},
		{"empty content", models.SendMessageRequest{SenderID: alice, ReceiverID: alice + 1, Content: ""}, http.StatusBadRequest},
		{"unknown receiver", models.SendMessageRequest{SenderID: alice, ReceiverID: 999999, Content: "x"}, http.StatusNotFound},
		{"unknown sender", models.SendMessageRequest{SenderID: 999999, ReceiverID: alice, Content: "x"}, http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/v1/messages", tc.body, nil)
			w := httptest.NewRecorder()
			handler.Send(w, req)
			testutil.AssertStatus(t, w, tc.expected)
		})
	}
}

func TestUnreadLatest_DeliversNewestAndMarksRead(t *testing.T) {
	store := testutil.SetupTestStore(t)
	alice := testutil.CreateTestUser(t, store.DB(), "alice")
	bob := testutil.CreateTestUser(t, store.DB(), "bob")
	testutil.SetTestBadge(t, store.DB(), alice, 5)

	handler := NewMessageHandler(store, testutil.GetTestConfig())

	for _, content := range []string{"first", "second"} {
		req := testutil.MakeRequest("POST", "/api/v1/messages", models.SendMessageRequest{
			SenderID: alice, ReceiverID: bob, Content: content,
		}, nil)
		w := httptest.NewRecorder()
		handler.Send(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	req := testutil.MakeRequest("GET", fmt.Sprintf("/api/v1/messages/unread/latest?user_id=%d", bob), nil, nil)
	w := httptest.NewRecorder()
	handler.UnreadLatest(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.UnreadLatestResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.HasUnread || resp.Data == nil {
		t.Fatalf("expected an unread message, got %+v", resp)
	}
	if resp.Data.Content != "second" {
		t.Errorf("expected the newest message, got '%s'", resp.Data.Content)
	}
	if resp.Data.SenderName != "alice" {
		t.Errorf("expected sender_name 'alice', got '%s'", resp.Data.SenderName)
	}

	// Delivered message is now read; the next poll surfaces the older one
	w = httptest.NewRecorder()
	handler.UnreadLatest(w, testutil.MakeRequest("GET",
		fmt.Sprintf("/api/v1/messages/unread/latest?user_id=%d", bob), nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var second models.UnreadLatestResponse
	testutil.AssertJSON(t, w, &second)
	if !second.HasUnread || second.Data == nil || second.Data.Content != "first" {
		t.Errorf("expected the older message on second poll, got %+v", second)
	}

	// Third poll finds nothing
	w = httptest.NewRecorder()
	handler.UnreadLatest(w, testutil.MakeRequest("GET",
		fmt.Sprintf("/api/v1/messages/unread/latest?user_id=%d", bob), nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var third models.UnreadLatestResponse
	testutil.AssertJSON(t, w, &third)
	if third.HasUnread || third.Data != nil {
		t.Errorf("expected no unread messages, got %+v", third)
	}
}

func TestUnreadLatest_NoMessages(t *testing.T) {
	store := testutil.SetupTestStore(t)
	bob := testutil.CreateTestUser(t, store.DB(), "bob")

	handler := NewMessageHandler(store, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", fmt.Sprintf("/api/v1/messages/unread/latest?user_id=%d", bob), nil, nil)
	w := httptest.NewRecorder()
	handler.UnreadLatest(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.UnreadLatestResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.HasUnread || resp.Data != nil {
		t.Errorf("expected has_unread=false, got %+v", resp)
	}
}
