// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package stats aggregates platform-wide totals for the admin dashboard.
The numbers are row counts, not the denormalized counters kept on the
comic rows, so the dashboard always shows the authoritative figures.
*/
package stats

// Overview carries the dashboard headline totals.
type Overview struct {
	Comics    int64 `json:"comics"`
	Chapters  int64 `json:"chapters"`
	Users     int64 `json:"users"`
	Comments  int64 `json:"comments"`
	Bookmarks int64 `json:"bookmarks"`
	Votes     int64 `json:"votes"`
}
