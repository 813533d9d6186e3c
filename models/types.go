// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Display order sentinel for completed deadline items. Incomplete items hold
// dense ranks 1..N; done items are parked at -1 and are unordered.
const OrderDone = -1

// Request types

type CreateUserRequest struct {
	Name string `json:"name"`
}

type UserStatusRequest struct {
	UserID     int64 `json:"user_id"`
	IsStudying bool  `json:"is_studying"`
}

type AddDeadlineRequest struct {
	UserID       int64   `json:"user_id"`
	Task         string  `json:"task"`
	DeadlineDate *string `json:"deadline_date"`
	IsDone       bool    `json:"is_done"`
}

type EditDeadlineRequest struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"user_id"`
	Task         string  `json:"task"`
	DeadlineDate *string `json:"deadline_date"`
}

type ClickDoneRequest struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	IsDone bool  `json:"is_done"`
}

type DoingItemRequest struct {
	ID           int64 `json:"id"`
	UserID       int64 `json:"user_id"`
	CurrentDoing bool  `json:"current_doing"`
}

type RemoveItemRequest struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
}

// One entry of a drag-reorder batch; positions are written verbatim.
type ReorderEntry struct {
	ID           int64 `json:"id"`
	UserID       int64 `json:"user_id"`
	DisplayOrder int   `json:"display_order"`
}

type FocusSaveRequest struct {
	UserID          int64  `json:"user_id"`
	DurationSeconds int    `json:"duration_seconds"`
	Note            string `json:"note"`
}

type FriendRequest struct {
	UserID   int64 `json:"user_id"`
	FriendID int64 `json:"friend_id"`
}

type SendMessageRequest struct {
	SenderID   int64  `json:"sender_id"`
	ReceiverID int64  `json:"receiver_id"`
	Content    string `json:"content"`
}

// The camera screen sends image_base64, the picture screen sends image_data;
// both carry the same base64 payload (optionally with a data: URI prefix).
type UploadPictureRequest struct {
	UserID      int64  `json:"user_id"`
	ImageData   string `json:"image_data"`
	ImageBase64 string `json:"image_base64"`
}

type CreateItemRequest struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Response types

type RecordStatusResponse struct {
	UserID       int64   `json:"user_id"`
	Name         string  `json:"name"`
	IsStudying   bool    `json:"is_studying"`
	CurrentTimer *string `json:"current_timer"`
	BadgeCount   int     `json:"badge_count"`
}

type FocusSaveResponse struct {
	TotalMinutes int  `json:"total_minutes"`
	BadgeEarned  bool `json:"badge_earned"`
}

type FriendIDsResponse struct {
	FriendIDs []int64 `json:"friend_ids"`
}

type SendMessageResponse struct {
	MessageID  int64 `json:"message_id"`
	BadgeCount int   `json:"badge_count"`
}

type UnreadLatestResponse struct {
	HasUnread bool           `json:"has_unread"`
	Data      *UnreadMessage `json:"data"`
}

type UploadPictureResponse struct {
	PictureID int64 `json:"picture_id"`
}

type LatestPictureResponse struct {
	HasPicture bool   `json:"has_picture"`
	ID         int64  `json:"id,omitempty"`
	ImageData  string `json:"image_data,omitempty"`
}

type ReorderResponse struct {
	Updated int `json:"updated"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Domain types

type User struct {
	UserID     int64   `json:"user_id"`
	Name       string  `json:"name"`
	IsStudying bool    `json:"is_studying"`
	Title      *string `json:"title,omitempty"`
	Badge      int     `json:"badge"`
}

// The mobile client reads the task text from "thing" in responses even
// though it sends "task" in requests; keep the wire name it expects.
type Deadline struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"user_id"`
	DeadlineDate *string `json:"deadline_date,omitempty"`
	Task         string  `json:"thing"`
	IsDone       bool    `json:"is_done"`
	DisplayOrder int     `json:"display_order"`
	CurrentDoing bool    `json:"current_doing"`
}

type FocusBucket struct {
	RecordDate   string `json:"record_date"`
	RecordHour   int    `json:"record_hour"`
	FocusMinutes int    `json:"focus_minutes"`
}

// current_timer mirrors users.title: the task the friend marked as
// in-progress, or null when idle.
type FriendStatus struct {
	FriendID     int64   `json:"friend_id"`
	Name         string  `json:"name"`
	IsStudying   bool    `json:"is_studying"`
	CurrentTimer *string `json:"current_timer"`
}

type UnreadMessage struct {
	ID         int64  `json:"id"`
	SenderID   int64  `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Content    string `json:"content"`
}

type Item struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
