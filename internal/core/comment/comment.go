// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "time"

// # Comment Domain Model

// Comment target kinds accepted by the API.
const (
	TargetComic   = "comic"
	TargetChapter = "chapter"
)

// Comment is a threaded remark on a comic or a chapter. Exactly one of
// ComicID and ChapterID is set; ParentID links replies to their
// top-level comment (one level deep).
type Comment struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	ComicID   string         `json:"comic_id,omitempty"`
	ChapterID string         `json:"chapter_id,omitempty"`
	ParentID  string         `json:"parent_id,omitempty"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"created_date"`
	UpdatedAt time.Time      `json:"updated_date"`
	Author    *AuthorSummary `json:"author,omitempty"`
	Replies   []*Comment     `json:"replies,omitempty"`
}

// AuthorSummary is the public slice of the commenting account.
type AuthorSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      string `json:"role"`
}
