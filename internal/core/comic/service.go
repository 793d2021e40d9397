// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"context"
	"log/slog"

	"github.com/taibuivan/hikari/internal/platform/counter"
	"github.com/taibuivan/hikari/internal/platform/validate"
	"github.com/taibuivan/hikari/pkg/slug"
	"github.com/taibuivan/hikari/pkg/uuid"
)

// # Service Layer

// discoverRailSize is how many comics each discover side rail carries.
const discoverRailSize = 10

// CounterSink accepts fire-and-forget counter events.
// [*counter.Dispatcher] satisfies it.
type CounterSink interface {
	Dispatch(event counter.Event)
}

// Service orchestrates the business logic for the comic catalogue.
// It acts as the primary entry point for feeds and content management.
type Service struct {
	repository Repository
	counters   CounterSink
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(repository Repository, counters CounterSink, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		counters:   counters,
		logger:     logger,
	}
}

// # Feeds & Discovery

/*
ListComics retrieves a paginated and filtered collection of comics.

Description: Sanitizes the filter (country whitelist, sort fallback) and
delegates to the repository for database-level filtering and sorting.

Parameters:
  - context: context.Context
  - filter: Filter (Criteria for search, genre, format, country, sort)
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Comic: Slice of matching publication records
  - int: Total count of records matching the filter
  - error: System or repository level errors
*/
func (service *Service) ListComics(context context.Context, filter Filter, limit, offset int) ([]*Comic, int, error) {
	filter = sanitizeFilter(filter)
	return service.repository.List(context, filter, limit, offset)
}

/*
HomeFeed builds the landing page: one comic page decorated with the two
most recent chapters per comic.

Description: Lists the page, attaches latest chapters via a single batched
query, then reorders in memory by reading activity unless the caller asked
for an explicit sort column (an explicit sort means the database ordering
already reflects the client's intent).

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Comic: The decorated, ordered page
  - int: Total count for pagination metadata
  - error: List or batched chapter fetch failures (the feed fails whole)
*/
func (service *Service) HomeFeed(context context.Context, filter Filter, limit, offset int) ([]*Comic, int, error) {
	filter = sanitizeFilter(filter)
	explicitSort := filter.HasExplicitSort()

	// Without an explicit sort the page is staged by creation time, newest
	// first; the in-memory reorder below decides the final order. Rank stays
	// the default for the plain catalogue listing only.
	staged := filter
	if !explicitSort {
		staged.Sort = SortCreatedDate
		staged.Order = "desc"
	}

	comics, total, err := service.repository.List(context, staged, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if err := AttachLatestChapters(context, service.repository, comics); err != nil {
		return nil, 0, err
	}

	if !explicitSort {
		SortByRecency(comics)
	}

	return comics, total, nil
}

// DiscoverResult is the payload of the discover page: two curated rails
// plus the filtered search results.
type DiscoverResult struct {
	Popular       []*Comic `json:"popular"`
	Recommended   []*Comic `json:"recommended"`
	SearchResults []*Comic `json:"search_results"`
}

/*
Discover assembles the discover page payload.

Parameters:
  - context: context.Context
  - filter: Filter (Applied to the search results only)
  - limit: int
  - offset: int

Returns:
  - *DiscoverResult: Popular rail, recommended rail, and search results
  - int: Total search result count
  - error: Any rail or search failure fails the page
*/
func (service *Service) Discover(context context.Context, filter Filter, limit, offset int) (*DiscoverResult, int, error) {
	popular, err := service.repository.TopByViews(context, discoverRailSize)
	if err != nil {
		return nil, 0, err
	}

	recommended, err := service.repository.TopByRank(context, discoverRailSize)
	if err != nil {
		return nil, 0, err
	}

	results, total, err := service.ListComics(context, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return &DiscoverResult{
		Popular:       popular,
		Recommended:   recommended,
		SearchResults: results,
	}, total, nil
}

// # Comic Lookups

/*
GetComic fetches a single publication record by UUID or SEO Slug and
signals a view to the counter pipeline.

Description: If the identifier matches the UUID format a primary key
lookup runs; otherwise it resolves via the unique URL slug. The view
counter is dispatched after a successful read and never delays or fails
the response.

Parameters:
  - context: context.Context
  - identifier: string (UUID or Slug)

Returns:
  - *Comic: The hydrated domain entity
  - error: ErrNotFound if no match is found
*/
func (service *Service) GetComic(context context.Context, identifier string) (*Comic, error) {
	comic, err := service.lookup(context, identifier)
	if err != nil {
		return nil, err
	}

	service.counters.Dispatch(counter.ComicView(comic.ID))

	return comic, nil
}

/*
GetComicComplete fetches a comic plus the per-user state for an
authenticated reader. An empty userID yields the comic without state.
*/
func (service *Service) GetComicComplete(context context.Context, identifier, userID string) (*Comic, *UserState, error) {
	comic, err := service.lookup(context, identifier)
	if err != nil {
		return nil, nil, err
	}

	var state *UserState
	if userID != "" {
		state, err = service.repository.UserState(context, comic.ID, userID)
		if err != nil {
			return nil, nil, err
		}
	}

	service.counters.Dispatch(counter.ComicView(comic.ID))

	return comic, state, nil
}

/*
ListChapters returns one page of a comic's chapters.

Description: The sort key is restricted to chapter_number (default) and
release_date; anything else falls back to chapter_number.
*/
func (service *Service) ListChapters(context context.Context, comicID, sort, order string, limit, offset int) ([]ChapterSummary, int, error) {
	if sort != "release_date" {
		sort = "chapter_number"
	}

	// Comic existence gate so an unknown ID yields 404, not an empty page
	if _, err := service.repository.FindByID(context, comicID); err != nil {
		return nil, 0, err
	}

	return service.repository.ListChapters(context, comicID, sort, order, limit, offset)
}

// # Comic Management

/*
CreateComic initialises a new publication record in the system.

Description: Performs deep business validation on the metadata, generates
a stable UUID v7 identity and an SEO-friendly slug, then persists the
comic and its junction sets in one transaction.

Parameters:
  - context: context.Context
  - comic: *Comic (The entity to be persisted)

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) CreateComic(context context.Context, comic *Comic) error {

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldTitle, comic.Title).MaxLen(FieldTitle, comic.Title, 500)

	// Lifecycle state validation
	validator.Required(FieldStatus, string(comic.Status)).
		Custom(FieldStatus, comic.Status != "" && !comic.Status.IsValid(), "Unknown publication status")

	// Origin country is mandatory on creation and strictly whitelisted
	validator.Required(FieldCountry, string(comic.Country)).
		Custom(FieldCountry, comic.Country != "" && !comic.Country.IsValid(), "Unknown origin country")

	if comic.CoverURL != "" {
		validator.URL(FieldCoverURL, comic.CoverURL)
	}

	// Identity & Slug generation
	if comic.ID == "" {
		comic.ID = uuid.New()
	}
	if comic.Slug == "" {
		comic.Slug = slug.From(comic.Title)
	}

	// Return validation errors if any constraints failed
	if err := validator.Err(); err != nil {
		return err
	}

	// Persistence via Repository
	if err := service.repository.Create(context, comic); err != nil {
		return err
	}

	service.logger.Info("comic_created",
		slog.String("comic_id", comic.ID),
		slog.String("title", comic.Title),
	)

	return nil
}

/*
UpdateComic applies modifications to an existing publication.

Description: Supports partial updates. Non-empty fields in the input
entity overwrite existing values; zero-valued fields are untouched.
*/
func (service *Service) UpdateComic(context context.Context, comic *Comic) error {

	// Integrity validation for updated fields
	validator := &validate.Validator{}

	if comic.Title != "" {
		validator.MaxLen(FieldTitle, comic.Title, 500)
	}
	if comic.Slug != "" {
		validator.Slug(FieldSlug, comic.Slug)
	}
	if comic.Status != "" {
		validator.Custom(FieldStatus, !comic.Status.IsValid(), "Unknown publication status")
	}
	if comic.Country != "" {
		validator.Custom(FieldCountry, !comic.Country.IsValid(), "Unknown origin country")
	}
	if comic.CoverURL != "" {
		validator.URL(FieldCoverURL, comic.CoverURL)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	// Execute storage update
	if err := service.repository.Update(context, comic); err != nil {
		return err
	}

	service.logger.Info("comic_updated", slog.String("comic_id", comic.ID))

	return nil
}

/*
DeleteComic removes a comic and all dependent rows.
*/
func (service *Service) DeleteComic(context context.Context, id string) error {
	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("comic_deleted", slog.String("comic_id", id))

	return nil
}

/*
ReplaceMetadata atomically swaps a comic's genre/author/artist/format sets.

Description: The submitted sets fully replace the existing junctions; a
subsequent read returns exactly the submitted IDs.
*/
func (service *Service) ReplaceMetadata(context context.Context, comicID string, metadata Metadata) error {
	validator := &validate.Validator{}
	validator.UUID(FieldID, comicID)
	for _, genreID := range metadata.GenreIDs {
		validator.UUID(FieldGenreIDs, genreID)
	}
	for _, authorID := range metadata.AuthorIDs {
		validator.UUID(FieldAuthorIDs, authorID)
	}
	for _, artistID := range metadata.ArtistIDs {
		validator.UUID(FieldArtistIDs, artistID)
	}
	for _, formatID := range metadata.FormatIDs {
		validator.UUID(FieldFormatIDs, formatID)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repository.ReplaceMetadata(context, comicID, metadata); err != nil {
		return err
	}

	service.logger.Info("comic_metadata_replaced", slog.String("comic_id", comicID))

	return nil
}

// # Internal Helpers

// lookup resolves an identifier as UUID first, slug second.
func (service *Service) lookup(context context.Context, identifier string) (*Comic, error) {
	if isUUID(identifier) {
		return service.repository.FindByID(context, identifier)
	}
	return service.repository.FindBySlug(context, identifier)
}

// sanitizeFilter drops out-of-whitelist country values and normalizes the
// sort key. Invalid countries are ignored, not rejected.
func sanitizeFilter(filter Filter) Filter {
	if filter.Country != "" && !Country(filter.Country).IsValid() {
		filter.Country = ""
	}
	if !filter.HasExplicitSort() {
		filter.Sort = ""
	}
	return filter
}

// isUUID returns true if the string matches the standard UUID length.
func isUUID(s string) bool {
	return len(s) == 36
}
