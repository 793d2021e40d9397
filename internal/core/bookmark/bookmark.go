// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark

import "time"

// # Bookmark Domain Model

// Bookmark links a user to a comic in their library.
type Bookmark struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	ComicID   string        `json:"comic_id"`
	CreatedAt time.Time     `json:"created_date"`
	Comic     *ComicSummary `json:"comic,omitempty"`
}

// ComicSummary is the comic card shown in library listings.
type ComicSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	CoverURL      string `json:"cover_url,omitempty"`
	Status        string `json:"status"`
	ViewCount     int64  `json:"view_count"`
	BookmarkCount int64  `json:"bookmark_count"`
}

// LatestChapter is the freshest chapter of a bookmarked comic, used by
// the detailed library view to show unread activity.
type LatestChapter struct {
	ID          string     `json:"id"`
	Number      float64    `json:"chapter_number"`
	Title       string     `json:"title,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
}

// DetailedBookmark extends a bookmark with the comic's latest chapter.
// LatestChapter is nil for comics without chapters.
type DetailedBookmark struct {
	Bookmark
	LatestChapter *LatestChapter `json:"latest_chapter,omitempty"`
}
