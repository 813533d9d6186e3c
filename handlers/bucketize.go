// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import "time"

const dateLayout = "2006-01-02"

// Sessions at least this many whole minutes long earn one badge.
const badgeThresholdMinutes = 60

// BucketDelta is one hour-aligned contribution produced from a focus session.
type BucketDelta struct {
	Date    string
	Hour    int
	Minutes int
}

// SplitSession distributes a session over calendar-hour buckets. The session
// covers [end-duration, end); it is cut at every wall-clock hour boundary and
// each segment contributes floor(seconds/60) minutes to the bucket of its
// starting hour. Segments under a minute contribute nothing, so a short
// session can produce no deltas at all.
//
// Boundaries are computed from the wall clock of end's location, not from
// absolute time, so non-UTC zones split on their own hour marks.
func SplitSession(end time.Time, durationSeconds int) []BucketDelta {
	if durationSeconds <= 0 {
		return nil
	}

	deltas := []BucketDelta{}
	cur := end.Add(-time.Duration(durationSeconds) * time.Second)

	for cur.Before(end) {
		year, month, day := cur.Date()
		boundary := time.Date(year, month, day, cur.Hour(), 0, 0, 0, cur.Location()).Add(time.Hour)

		segEnd := boundary
		if end.Before(boundary) {
			segEnd = end
		}

		minutes := int(segEnd.Sub(cur) / time.Minute)
		if minutes > 0 {
			deltas = append(deltas, BucketDelta{
				Date:    cur.Format(dateLayout),
				Hour:    cur.Hour(),
				Minutes: minutes,
			})
		}

		cur = segEnd
	}

	return deltas
}
