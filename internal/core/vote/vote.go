// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package vote

import "time"

// # Vote Domain Model

// Vote target kinds accepted by the API.
const (
	TargetComic   = "comic"
	TargetChapter = "chapter"
)

// Vote is a single user's upvote on a comic or a chapter. Exactly one of
// ComicID and ChapterID is set.
type Vote struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ComicID   string    `json:"comic_id,omitempty"`
	ChapterID string    `json:"chapter_id,omitempty"`
	CreatedAt time.Time `json:"created_date"`
}

// Target returns which kind of entity the vote points at.
func (vote *Vote) Target() string {
	if vote.ChapterID != "" {
		return TargetChapter
	}
	return TargetComic
}
