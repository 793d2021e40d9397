// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import "time"

// # Chapter Domain Model

// Chapter represents a single release inside a comic.
//
// Numbers are floats so that extras and side stories (10.5) can slot
// between regular releases. ReleaseDate is optional and distinct from
// CreatedAt: it reflects the publication date shown to readers.
type Chapter struct {
	ID          string     `json:"id"`
	ComicID     string     `json:"comic_id"`
	Number      float64    `json:"chapter_number"`
	Title       string     `json:"title,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	ViewCount   int64      `json:"view_count"`
	VoteCount   int64      `json:"vote_count"`
	CreatedAt   time.Time  `json:"created_date"`
	UpdatedAt   time.Time  `json:"updated_date"`
}

// Page is a single image inside a chapter. Page numbers are unique and
// contiguous per chapter, starting at 1.
type Page struct {
	ID         string `json:"id"`
	ChapterID  string `json:"chapter_id"`
	PageNumber int    `json:"page_number"`
	ImageURL   string `json:"image_url"`
}

// ComicRef is the lightweight comic summary embedded in chapter views.
type ComicRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	CoverURL string `json:"cover_url,omitempty"`
}

// NavEntry points at an adjacent chapter in reading order.
type NavEntry struct {
	ID     string  `json:"id"`
	Number float64 `json:"chapter_number"`
}

// Navigation carries the previous and next chapters by chapter number.
// Either side is nil at the edges of the comic.
type Navigation struct {
	Previous *NavEntry `json:"previous,omitempty"`
	Next     *NavEntry `json:"next,omitempty"`
}

// Detail is the standard chapter read payload.
type Detail struct {
	*Chapter
	Comic      *ComicRef  `json:"comic"`
	Navigation Navigation `json:"navigation"`
}

// UserState captures the requesting reader's relationship to a chapter.
type UserState struct {
	IsVoted bool `json:"is_voted"`
	IsRead  bool `json:"is_read"`
}

// CompleteView bundles everything a reader page needs in one response.
type CompleteView struct {
	*Chapter
	Comic      *ComicRef  `json:"comic"`
	Navigation Navigation `json:"navigation"`
	Pages      []*Page    `json:"pages"`
	UserState  *UserState `json:"user_state,omitempty"`
}
