// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import "context"

// # Comic Data Access

// Repository defines the data access contract for the comic domain.
type Repository interface {
	LatestChapterLister

	/*
		List returns a filtered, paginated slice of comics and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Criteria for search, genre, format, country, sort)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Comic: Slice of matching publication records, genres attached
		  - int: Total count of records matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Comic, int, error)

	/*
		FindByID returns the comic with the given ID, metadata attached.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Comic: The hydrated domain entity
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Comic, error)

	/*
		FindBySlug returns the comic matching the unique SEO identifier.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Comic: The hydrated domain entity
		  - error: ErrNotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Comic, error)

	/*
		Create persists a new comic and its initial junction rows in one
		transaction.

		Parameters:
		  - context: context.Context
		  - comic: *Comic (Metadata and junction ID sets)

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, comic *Comic) error

	/*
		Update persists changes to an existing comic's mutable fields.
		Zero-valued fields are left untouched.

		Parameters:
		  - context: context.Context
		  - comic: *Comic (Target ID and modified attributes)

		Returns:
		  - error: ErrNotFound or storage failures
	*/
	Update(context context.Context, comic *Comic) error

	/*
		Delete removes a comic. Chapters, pages, and junction rows cascade.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: ErrNotFound or storage failures
	*/
	Delete(context context.Context, id string) error

	/*
		ReplaceMetadata atomically swaps all four junction sets of a comic.
		Existing rows are deleted and the submitted sets reinserted inside a
		single transaction, so a re-read returns exactly the submitted IDs.

		Parameters:
		  - context: context.Context
		  - comicID: string (UUID)
		  - metadata: Metadata (Full replacement sets)

		Returns:
		  - error: ErrNotFound, constraint, or storage failures
	*/
	ReplaceMetadata(context context.Context, comicID string, metadata Metadata) error

	/*
		ListChapters returns one page of a comic's chapters.

		Parameters:
		  - context: context.Context
		  - comicID: string (UUID)
		  - sort: string ("chapter_number" or "release_date")
		  - order: string ("asc" or "desc")
		  - limit: int
		  - offset: int

		Returns:
		  - []ChapterSummary: The requested page
		  - int: Total chapter count for the comic
		  - error: ErrNotFound if the comic is missing
	*/
	ListChapters(context context.Context, comicID, sort, order string, limit, offset int) ([]ChapterSummary, int, error)

	/*
		UserState returns the per-user flags for a comic detail response.

		Parameters:
		  - context: context.Context
		  - comicID: string (UUID)
		  - userID: string (UUID)

		Returns:
		  - *UserState: Bookmark/vote flags and last read chapter
		  - error: Storage failures
	*/
	UserState(context context.Context, comicID, userID string) (*UserState, error)

	/*
		TopByViews returns the highest view-count comics for the discover
		page's popular rail.
	*/
	TopByViews(context context.Context, limit int) ([]*Comic, error)

	/*
		TopByRank returns the best-ranked comics for the discover page's
		recommended rail.
	*/
	TopByRank(context context.Context, limit int) ([]*Comic, error)
}
