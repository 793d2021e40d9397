// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark

import "context"

// # Bookmark Data Access

// Repository defines the data access contract for library bookmarks.
type Repository interface {

	/*
		ListByUser returns one page of a user's bookmarks with comic
		summaries, newest bookmark first.

		Returns:
		  - []*Bookmark: Bookmarks with embedded comic cards
		  - int: Total bookmark count for the user
		  - error: Storage failures
	*/
	ListByUser(context context.Context, userID string, limit, offset int) ([]*Bookmark, int, error)

	/*
		ListDetailed returns one page of a user's bookmarks, each joined
		to its comic's single latest chapter.
	*/
	ListDetailed(context context.Context, userID string, limit, offset int) ([]*DetailedBookmark, int, error)

	/*
		ComicExists reports whether the comic is present in the catalogue.
	*/
	ComicExists(context context.Context, comicID string) (bool, error)

	/*
		Create persists a new bookmark.

		Returns:
		  - error: apperr.Conflict carrying the comic_id when the user
		    already bookmarked this comic
	*/
	Create(context context.Context, bookmark *Bookmark) error

	/*
		Delete removes the user's bookmark for a comic.

		Returns:
		  - error: apperr.NotFound when no bookmark exists
	*/
	Delete(context context.Context, userID, comicID string) error
}
