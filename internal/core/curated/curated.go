// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package curated manages the hand-picked popular and recommended comic
lists. Both lists are pure memberships: an entry ties a comic into a
list and carries no state of its own. Popular entries are additionally
tagged with a time window so the frontend can switch between daily,
weekly, monthly and all-time tabs.
*/
package curated

import "time"

// # Time Windows

// Window tags a popular entry with the ranking period it belongs to.
type Window string

const (
	WindowDaily   Window = "daily"
	WindowWeekly  Window = "weekly"
	WindowMonthly Window = "monthly"
	WindowAllTime Window = "all_time"
)

// Windows lists every valid popular window.
var Windows = []Window{WindowDaily, WindowWeekly, WindowMonthly, WindowAllTime}

// IsValid reports whether the window is one of the known periods.
func (window Window) IsValid() bool {
	for _, candidate := range Windows {
		if window == candidate {
			return true
		}
	}
	return false
}

// # Entities

// ComicSummary is the comic card embedded in curated list responses.
type ComicSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	CoverURL  string `json:"cover_url"`
	Status    string `json:"status"`
	ViewCount int64  `json:"view_count"`
	VoteCount int64  `json:"vote_count"`
	Rank      int64  `json:"rank"`
}

// PopularEntry is a comic's membership in one popular window.
type PopularEntry struct {
	ID        string        `json:"id"`
	ComicID   string        `json:"comic_id"`
	Window    Window        `json:"window"`
	CreatedAt time.Time     `json:"created_at"`
	Comic     *ComicSummary `json:"comic,omitempty"`
}

// RecommendedEntry is a comic's membership in the recommended list.
type RecommendedEntry struct {
	ID        string        `json:"id"`
	ComicID   string        `json:"comic_id"`
	CreatedAt time.Time     `json:"created_at"`
	Comic     *ComicSummary `json:"comic,omitempty"`
}
