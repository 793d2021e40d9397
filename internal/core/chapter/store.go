// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import "context"

// # Chapter & Page Data Access

// Repository defines the data access contract for chapters and pages.
type Repository interface {

	/*
		FindByID returns the chapter with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Chapter: Hydrated metadata
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Chapter, error)

	/*
		ComicRef returns the owning comic's summary.

		Returns:
		  - *ComicRef: ID, title, slug and cover
		  - error: apperr.NotFound if the comic is missing
	*/
	ComicRef(context context.Context, comicID string) (*ComicRef, error)

	/*
		Neighbors resolves the chapters adjacent to the given number
		within a comic, ordered by chapter number.

		Returns:
		  - *NavEntry: Previous chapter, nil at the start
		  - *NavEntry: Next chapter, nil at the end
		  - error: Storage failures
	*/
	Neighbors(context context.Context, comicID string, number float64) (*NavEntry, *NavEntry, error)

	/*
		Create persists a new chapter.

		Returns:
		  - error: apperr.Conflict on a duplicate chapter number,
		    apperr.ValidationError on an unknown comic
	*/
	Create(context context.Context, chapter *Chapter) error

	/*
		CreateBatch persists a set of chapters atomically. Either every
		chapter in the batch is created or none are.
	*/
	CreateBatch(context context.Context, chapters []*Chapter) error

	/*
		Update overwrites a chapter's mutable fields.
	*/
	Update(context context.Context, chapter *Chapter) error

	/*
		Delete removes a chapter and all of its pages.
	*/
	Delete(context context.Context, id string) error

	// # Pages

	/*
		ListPages returns a chapter's pages ordered by page number.
	*/
	ListPages(context context.Context, chapterID string) ([]*Page, error)

	/*
		MaxPageNumber returns the highest page number in a chapter,
		or zero for an empty chapter.
	*/
	MaxPageNumber(context context.Context, chapterID string) (int, error)

	/*
		InsertPages appends pre-numbered pages in one batch.
	*/
	InsertPages(context context.Context, pages []*Page) error

	/*
		DeletePage removes one page and renumbers the following pages
		down by one in the same transaction, keeping the sequence
		contiguous.

		Returns:
		  - error: apperr.NotFound when the page does not exist
	*/
	DeletePage(context context.Context, chapterID string, pageNumber int) error

	/*
		SwapPages exchanges the numbers of two pages atomically.

		Returns:
		  - error: apperr.NotFound when either page is missing
	*/
	SwapPages(context context.Context, chapterID string, first, second int) error

	// # Reader State

	/*
		UserState reports whether the user voted for and has read the
		chapter.
	*/
	UserState(context context.Context, chapterID, userID string) (*UserState, error)

	/*
		RecordReading upserts the user's reading history for a comic,
		moving the pointer to the given chapter.
	*/
	RecordReading(context context.Context, userID, comicID, chapterID string) error
}
