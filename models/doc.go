// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the FocusMate
API.

# Conventions

All types use json tags matching the wire names the mobile and web clients
already send. Two legacy quirks are preserved deliberately:

  - Deadline responses expose the task text as "thing" while add/edit
    requests send "task".
  - Friend status exposes the users.title column as "current_timer".

Optional columns map to pointer fields (nil ↔ SQL NULL ↔ JSON null/absent).

# Ordering Sentinel

OrderDone (-1) is the display_order value for completed deadline items.
Incomplete items hold the dense ranks 1..N maintained by the reconciler.
*/
package models
