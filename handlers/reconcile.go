// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"github.com/danielhkuo/focusmate/db"
	"github.com/danielhkuo/focusmate/models"
)

// Reconcile restores the deadline ordering invariant for one user's items:
// incomplete items get the dense ranks 1..N, completed items get the
// OrderDone sentinel.
//
// Input must be the user's full item set in ascending (display_order, id)
// order. The re-rank is stable with respect to that input order, so ties and
// gaps left by done-toggling or verbatim reorders collapse without shuffling
// anything else.
//
// Returns the corrected items (incomplete first by rank, then completed) and
// the minimal update set: only items whose stored value differs from the
// computed one. Running Reconcile on already-reconciled input yields zero
// updates.
func Reconcile(items []models.Deadline) ([]models.Deadline, []db.OrderUpdate) {
	ordered := make([]models.Deadline, 0, len(items))
	updates := []db.OrderUpdate{}

	rank := 0
	for _, item := range items {
		if item.IsDone {
			continue
		}
		rank++
		if item.DisplayOrder != rank {
			updates = append(updates, db.OrderUpdate{ID: item.ID, UserID: item.UserID, Order: rank})
			item.DisplayOrder = rank
		}
		ordered = append(ordered, item)
	}

	for _, item := range items {
		if !item.IsDone {
			continue
		}
		if item.DisplayOrder != models.OrderDone {
			updates = append(updates, db.OrderUpdate{ID: item.ID, UserID: item.UserID, Order: models.OrderDone})
			item.DisplayOrder = models.OrderDone
		}
		ordered = append(ordered, item)
	}

	return ordered, updates
}
