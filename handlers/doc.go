// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the FocusMate API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - UserHandler: user creation, studying status, profile/badge lookup
  - DeadlineHandler: the reorderable deadline list
  - FocusHandler: focus session saving and per-day records
  - FriendHandler: mutual friendships and live status
  - MessageHandler: badge-gated direct messages
  - PictureHandler: base64 photo upload/retrieval
  - ItemHandler: legacy /items scaffold

Handlers are created via constructor functions that accept *db.Store and
Config:

	deadlineHandler := handlers.NewDeadlineHandler(store, cfg)

# Deadline Ordering

Incomplete items carry dense display orders 1..N; completed items are parked
at -1. Mutations are allowed to break density (done-toggling, verbatim drag
reorders); every GET /deadlines/get-deadlines run passes the stored rows
through Reconcile, which re-ranks stably, persists only the changed rows in
one transaction, and returns the corrected list. Reconciling twice in a row
writes nothing the second time.

# Focus Bucketization

POST /focus/save treats the session as ending now, splits the elapsed
interval at wall-clock hour boundaries (SplitSession), and adds each
segment's whole minutes to its (user, date, hour) bucket. Buckets clamp at
60 minutes. Sessions of an hour or more earn one badge. Bucket writes and
the badge increment share one transaction.

# Badge Economy

Badges are earned by hour-long focus sessions and spent (one per message) by
POST /api/v1/messages. Sends with a zero balance fail with 409 and write
nothing.
*/
package handlers
