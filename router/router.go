// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/focusmate/cliparse"
	"github.com/danielhkuo/focusmate/db"
	"github.com/danielhkuo/focusmate/handlers"
	"github.com/danielhkuo/focusmate/middleware"
)

func NewRouter(store *db.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(store, cfg)
	deadlineHandler := handlers.NewDeadlineHandler(store, cfg)
	focusHandler := handlers.NewFocusHandler(store, cfg)
	friendHandler := handlers.NewFriendHandler(store, cfg)
	messageHandler := handlers.NewMessageHandler(store, cfg)
	pictureHandler := handlers.NewPictureHandler(store, cfg)
	itemHandler := handlers.NewItemHandler(store, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database connectivity probe (kept from the original deployment)
	mux.HandleFunc("GET /db-test", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		var one int
		if err := store.DB().QueryRow("SELECT 1").Scan(&one); err != nil {
			middleware.ErrorResponse(w, http.StatusInternalServerError, "database unreachable")
			return
		}
		middleware.JSONResponse(w, http.StatusOK, map[string]string{"db": "connected"})
	}))

	// Users
	mux.HandleFunc("POST /users", middleware.WithLogging(userHandler.CreateUser))
	mux.HandleFunc("POST /user/status", middleware.WithLogging(userHandler.SetStatus))
	mux.HandleFunc("GET /api/v1/user/record_status", middleware.WithLogging(userHandler.RecordStatus))

	// Deadline list
	mux.HandleFunc("GET /deadlines/get-deadlines", middleware.WithLogging(deadlineHandler.GetDeadlines))
	mux.HandleFunc("POST /deadlines/add-item", middleware.WithLogging(deadlineHandler.AddItem))
	mux.HandleFunc("POST /deadlines/edit-item", middleware.WithLogging(deadlineHandler.EditItem))
	mux.HandleFunc("POST /deadlines/click-done", middleware.WithLogging(deadlineHandler.ClickDone))
	mux.HandleFunc("POST /deadlines/doing-item", middleware.WithLogging(deadlineHandler.DoingItem))
	mux.HandleFunc("POST /deadlines/remove-item", middleware.WithLogging(deadlineHandler.RemoveItem))
	mux.HandleFunc("POST /deadlines/reorder", middleware.WithLogging(deadlineHandler.Reorder))

	// Focus sessions
	mux.HandleFunc("POST /focus/save", middleware.WithLogging(focusHandler.SaveSession))
	mux.HandleFunc("GET /focus/records", middleware.WithLogging(focusHandler.GetRecords))

	// Friends
	mux.HandleFunc("GET /api/v1/new-friends/{id}", middleware.WithLogging(friendHandler.ListFriendIDs))
	mux.HandleFunc("GET /api/v1/friends/status", middleware.WithLogging(friendHandler.Status))
	mux.HandleFunc("POST /api/v1/friends", middleware.WithLogging(friendHandler.AddFriend))
	mux.HandleFunc("POST /api/v1/friends/remove", middleware.WithLogging(friendHandler.RemoveFriend))

	// Messages
	mux.HandleFunc("POST /api/v1/messages", middleware.WithLogging(messageHandler.Send))
	mux.HandleFunc("GET /api/v1/messages/unread/latest", middleware.WithLogging(messageHandler.UnreadLatest))

	// Pictures (two upload routes: the camera screen and the picture screen
	// send different field names for the same payload)
	mux.HandleFunc("POST /pictures/upload", middleware.WithLogging(pictureHandler.Upload))
	mux.HandleFunc("POST /camera/upload", middleware.WithLogging(pictureHandler.Upload))
	mux.HandleFunc("GET /pictures/latest", middleware.WithLogging(pictureHandler.Latest))

	// Legacy scaffold items (web frontend demo)
	mux.HandleFunc("GET /items", middleware.WithLogging(itemHandler.List))
	mux.HandleFunc("POST /items", middleware.WithLogging(itemHandler.Create))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("focusmate API v1"))
	})

	return mux
}
