// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comic defines the core domain entities for the Hikari catalogue.

It manages the lifecycle of serialised publications (Manhwa, Manga, Manhua)
including metadata, the home/discover feeds, and reading metrics.

Core Responsibility:

  - Catalogue: Defines statuses (Ongoing, Completed) and origin countries.
  - Discovery: Drives the home feed, discover page, and filtered browsing.
  - Metadata: Flattens genre/author/artist/format junctions into the API shape.

This package acts as the source of truth for all content-related data models.
*/
package comic

import "time"

// # Domain Enums

// Status represents the publication status of a comic.
type Status string

const (
	// StatusOngoing indicates the publication is actively updating.
	StatusOngoing Status = "ongoing"

	// StatusCompleted indicates no further chapters are expected.
	StatusCompleted Status = "completed"

	// StatusHiatus indicates the publication is paused indefinitely.
	StatusHiatus Status = "hiatus"

	// StatusCancelled indicates the publication has been permanently discontinued.
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case
		StatusOngoing,
		StatusCompleted,
		StatusHiatus,
		StatusCancelled:
		return true
	}
	return false
}

// Country is the origin country code of a publication.
type Country string

const (
	CountryKorea Country = "KR"
	CountryJapan Country = "JPN"
	CountryChina Country = "CN"
)

// IsValid reports whether c is in the accepted origin whitelist.
// Filter handling ignores (rather than rejects) values outside this set.
func (c Country) IsValid() bool {
	switch c {
	case CountryKorea, CountryJapan, CountryChina:
		return true
	}
	return false
}

// # Core Entities

// Comic is the central aggregate of the Hikari domain.
// It represents a single serialised publication in the catalogue.
type Comic struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	TitleAlt    string  `json:"title_alt,omitempty"` // Alternative/romanised title
	Slug        string  `json:"slug"`                // URL-safe identifier
	Description string  `json:"description"`
	CoverURL    string  `json:"cover_url"`
	Country     Country `json:"country"`
	Status      Status  `json:"status"`
	Year        *int    `json:"year,omitempty"`

	// # Flattened Metadata
	// Junction rows are projected to {id, name} pairs and never leak
	// their storage shape into the API.
	Genres  []NameRef `json:"genres,omitempty"`
	Authors []NameRef `json:"authors,omitempty"`
	Artists []NameRef `json:"artists,omitempty"`
	Formats []NameRef `json:"formats,omitempty"`

	// # Feed Attachments
	ChapterCount   int              `json:"chapter_count"`
	LatestChapters []ChapterSummary `json:"latest_chapters"`

	// # Computed Metrics
	// These counters are owned by database stored procedures and updated
	// asynchronously; the API never writes them directly.
	ViewCount     int64 `json:"view_count"`
	VoteCount     int64 `json:"vote_count"`
	BookmarkCount int64 `json:"bookmark_count"`
	Rank          int64 `json:"rank"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// # Junction IDs (Input only)
	GenreIDs  []string `json:"genre_ids,omitempty"`
	AuthorIDs []string `json:"author_ids,omitempty"`
	ArtistIDs []string `json:"artist_ids,omitempty"`
	FormatIDs []string `json:"format_ids,omitempty"`
}

// NameRef is the flat {id, name} projection of a metadata entity
// (genre, author, artist, format) attached to a [Comic].
type NameRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ChapterSummary is the condensed chapter shape embedded in comic
// responses (feed attachments and chapter listings).
type ChapterSummary struct {
	ID          string     `json:"id"`
	ComicID     string     `json:"comic_id,omitempty"`
	Number      float64    `json:"chapter_number"`
	Title       string     `json:"title,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	ViewCount   int64      `json:"view_count"`
}

// UserState carries the per-user flags attached to a comic detail
// response for authenticated readers.
type UserState struct {
	IsBookmarked    bool            `json:"is_bookmarked"`
	IsVoted         bool            `json:"is_voted"`
	LastReadChapter *ChapterSummary `json:"last_read_chapter,omitempty"`
}

// Metadata groups the four junction ID sets replaced atomically by the
// admin metadata endpoint.
type Metadata struct {
	GenreIDs  []string `json:"genre_ids"`
	AuthorIDs []string `json:"author_ids"`
	ArtistIDs []string `json:"artist_ids"`
	FormatIDs []string `json:"format_ids"`
}

// # Search & Filtering

// Filter holds the parameters for a filtered comic list query.
type Filter struct {
	Search  string `json:"search,omitempty"`  // Title / alt-title substring search
	Genre   string `json:"genre,omitempty"`   // Genre UUID
	Format  string `json:"format,omitempty"`  // Format UUID
	Country string `json:"country,omitempty"` // Whitelisted origin code; others ignored
	Sort    string `json:"sort,omitempty"`    // Whitelisted column; see sortColumn
	Order   string `json:"order,omitempty"`   // "asc" or "desc"
}

// HasExplicitSort reports whether the client asked for a recognised sort
// column. The home feed only reorders in memory when this is false.
func (f Filter) HasExplicitSort() bool {
	switch f.Sort {
	case SortTitle, SortCreatedDate, SortViewCount, SortVoteCount, SortBookmarkCount, SortRank:
		return true
	}
	return false
}

// Recognised sort keys for comic listings.
const (
	SortTitle         = "title"
	SortCreatedDate   = "created_date"
	SortViewCount     = "view_count"
	SortVoteCount     = "vote_count"
	SortBookmarkCount = "bookmark_count"
	SortRank          = "rank"
)

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldTitleAlt    = "title_alt"
	FieldSlug        = "slug"
	FieldDescription = "description"
	FieldCoverURL    = "cover_url"
	FieldCountry     = "country"
	FieldStatus      = "status"
	FieldYear        = "year"
	FieldGenreIDs    = "genre_ids"
	FieldAuthorIDs   = "author_ids"
	FieldArtistIDs   = "artist_ids"
	FieldFormatIDs   = "format_ids"
)
