// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the FocusMate API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg)

# Endpoints

Health:

	GET /health
	GET /db-test

Users:

	POST /users                      - Create user
	POST /user/status                - Set is_studying
	GET  /api/v1/user/record_status  - Profile + badge balance

Deadline list:

	GET  /deadlines/get-deadlines - List (reconciled on every read)
	POST /deadlines/add-item      - Append item
	POST /deadlines/edit-item     - Edit task / date
	POST /deadlines/click-done    - Toggle completion
	POST /deadlines/doing-item    - Mark in-progress item
	POST /deadlines/remove-item   - Delete item
	POST /deadlines/reorder       - Verbatim order batch

Focus:

	POST /focus/save    - Save session (buckets + badge)
	GET  /focus/records - Hourly minutes for a date

Friends:

	GET  /api/v1/new-friends/{id}  - Friend id list
	GET  /api/v1/friends/status    - Status for ids=1,2,3
	POST /api/v1/friends           - Befriend (mutual)
	POST /api/v1/friends/remove    - Unfriend

Messages:

	POST /api/v1/messages               - Send (spends one badge)
	GET  /api/v1/messages/unread/latest - Poll latest unread

Pictures:

	POST /pictures/upload - Upload base64 photo
	POST /camera/upload   - Same handler, camera client field names
	GET  /pictures/latest - Newest photo as base64

Legacy:

	GET  /items
	POST /items

# Handler Initialization

The router creates handler instances with dependency injection:

	userHandler := handlers.NewUserHandler(store, cfg)
	deadlineHandler := handlers.NewDeadlineHandler(store, cfg)
	...

All handlers receive the store and configuration.
*/
package router
