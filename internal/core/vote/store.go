// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package vote

import "context"

// # Vote Data Access

// Repository defines the data access contract for comic and chapter votes.
type Repository interface {

	/*
		ComicExists reports whether the comic is present in the catalogue.
	*/
	ComicExists(context context.Context, comicID string) (bool, error)

	/*
		ChapterExists reports whether the chapter is present.
	*/
	ChapterExists(context context.Context, chapterID string) (bool, error)

	/*
		CreateComicVote persists a comic vote.

		Returns:
		  - error: apperr.Conflict carrying the comic_id when the user
		    already voted for this comic
	*/
	CreateComicVote(context context.Context, vote *Vote) error

	/*
		CreateChapterVote persists a chapter vote.

		Returns:
		  - error: apperr.Conflict carrying the chapter_id on a duplicate
	*/
	CreateChapterVote(context context.Context, vote *Vote) error

	/*
		DeleteComicVote removes the user's vote on a comic.

		Returns:
		  - error: apperr.NotFound when no vote exists
	*/
	DeleteComicVote(context context.Context, userID, comicID string) error

	/*
		DeleteChapterVote removes the user's vote on a chapter.
	*/
	DeleteChapterVote(context context.Context, userID, chapterID string) error
}
