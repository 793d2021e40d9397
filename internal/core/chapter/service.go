// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/hikari/internal/platform/counter"
	"github.com/taibuivan/hikari/internal/platform/validate"
	"github.com/taibuivan/hikari/pkg/uuid"
)

// # Service Layer

// maxBulkRange caps how many chapters a single bulk request may create.
const maxBulkRange = 200

// Directions accepted by MovePage.
const (
	MoveUp   = "up"
	MoveDown = "down"
)

// CounterSink accepts fire-and-forget counter events.
// [*counter.Dispatcher] satisfies it.
type CounterSink interface {
	Dispatch(event counter.Event)
}

// Service orchestrates chapter reading and management flows.
type Service struct {
	repository Repository
	counters   CounterSink
	logger     *slog.Logger
}

// NewService constructs a new chapter [Service].
func NewService(repository Repository, counters CounterSink, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		counters:   counters,
		logger:     logger,
	}
}

// # Reading

/*
GetChapter returns a chapter with its comic summary and prev/next
navigation. A view event is dispatched off the request path.

Parameters:
  - context: context.Context
  - id: string (Chapter UUID)

Returns:
  - *Detail: Chapter, comic summary and navigation
  - error: apperr.NotFound for unknown chapters
*/
func (service *Service) GetChapter(context context.Context, id string) (*Detail, error) {

	chapter, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	comicRef, err := service.repository.ComicRef(context, chapter.ComicID)
	if err != nil {
		return nil, err
	}

	previous, next, err := service.repository.Neighbors(context, chapter.ComicID, chapter.Number)
	if err != nil {
		return nil, err
	}

	service.counters.Dispatch(counter.ChapterView(chapter.ID))

	return &Detail{
		Chapter:    chapter,
		Comic:      comicRef,
		Navigation: Navigation{Previous: previous, Next: next},
	}, nil
}

/*
GetChapterComplete returns everything the reader page needs: the chapter,
its comic summary, navigation, ordered pages, and for authenticated users
their vote/read state. Opening the view moves the user's reading history
pointer to this chapter.

Parameters:
  - context: context.Context
  - id: string (Chapter UUID)
  - userID: string (Empty for anonymous readers)

Returns:
  - *CompleteView: The assembled reader payload
  - error: apperr.NotFound for unknown chapters
*/
func (service *Service) GetChapterComplete(context context.Context, id, userID string) (*CompleteView, error) {

	chapter, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	comicRef, err := service.repository.ComicRef(context, chapter.ComicID)
	if err != nil {
		return nil, err
	}

	previous, next, err := service.repository.Neighbors(context, chapter.ComicID, chapter.Number)
	if err != nil {
		return nil, err
	}

	pages, err := service.repository.ListPages(context, chapter.ID)
	if err != nil {
		return nil, err
	}

	view := &CompleteView{
		Chapter:    chapter,
		Comic:      comicRef,
		Navigation: Navigation{Previous: previous, Next: next},
		Pages:      pages,
	}

	if userID != "" {
		state, err := service.repository.UserState(context, chapter.ID, userID)
		if err != nil {
			return nil, err
		}
		view.UserState = state

		// History is a convenience; a failed write must not break reading.
		if err := service.repository.RecordReading(context, userID, chapter.ComicID, chapter.ID); err != nil {
			service.logger.Warn("reading_history_record_failed",
				slog.String("chapter_id", chapter.ID),
				slog.String("user_id", userID),
				slog.Any("error", err))
		}
	}

	service.counters.Dispatch(counter.ChapterView(chapter.ID))

	return view, nil
}

/*
ListPages returns a chapter's ordered pages.

Returns:
  - []*Page: Pages in reading order
  - error: apperr.NotFound for unknown chapters
*/
func (service *Service) ListPages(context context.Context, chapterID string) ([]*Page, error) {

	if _, err := service.repository.FindByID(context, chapterID); err != nil {
		return nil, err
	}

	return service.repository.ListPages(context, chapterID)
}

// # Chapter Management

/*
CreateChapter validates and persists a single new chapter.

Returns:
  - error: apperr.ValidationError on bad input, apperr.Conflict on a
    duplicate chapter number
*/
func (service *Service) CreateChapter(context context.Context, chapter *Chapter) error {

	validator := &validate.Validator{}
	validator.UUID("comic_id", chapter.ComicID).
		Custom("chapter_number", chapter.Number < 0, "Chapter number must not be negative").
		MaxLen("title", chapter.Title, 500)
	if err := validator.Err(); err != nil {
		return err
	}

	chapter.ID = uuid.New()
	if err := service.repository.Create(context, chapter); err != nil {
		return err
	}

	service.logger.Info("chapter_created",
		slog.String("chapter_id", chapter.ID),
		slog.String("comic_id", chapter.ComicID),
		slog.Float64("number", chapter.Number))

	return nil
}

/*
CreateRange creates one chapter per integer in the inclusive range
start..end, all sharing the release date. The range 5..8 creates exactly
the four chapters numbered 5, 6, 7 and 8, atomically.

Parameters:
  - context: context.Context
  - comicID: string (UUID)
  - start: int (First chapter number, inclusive)
  - end: int (Last chapter number, inclusive)
  - releaseDate: *time.Time (Shared by the whole range, optional)

Returns:
  - []*Chapter: The created chapters in ascending order
  - error: apperr.ValidationError for an inverted or oversized range,
    apperr.Conflict when any number in the range already exists
*/
func (service *Service) CreateRange(context context.Context, comicID string, start, end int, releaseDate *time.Time) ([]*Chapter, error) {

	validator := &validate.Validator{}
	validator.UUID("comic_id", comicID).
		Custom("start", start < 0, "Start must not be negative").
		Custom("end", end < start, "End must not be smaller than start").
		Custom("end", end-start+1 > maxBulkRange, "Range is too large")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	chapters := make([]*Chapter, 0, end-start+1)
	for number := start; number <= end; number++ {
		chapters = append(chapters, &Chapter{
			ID:          uuid.New(),
			ComicID:     comicID,
			Number:      float64(number),
			ReleaseDate: releaseDate,
		})
	}

	if err := service.repository.CreateBatch(context, chapters); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_range_created",
		slog.String("comic_id", comicID),
		slog.Int("start", start),
		slog.Int("end", end))

	return chapters, nil
}

/*
UpdateChapter applies a partial update to a chapter's number, title and
release date.

Returns:
  - *Chapter: The updated chapter
  - error: apperr.NotFound for unknown chapters
*/
func (service *Service) UpdateChapter(context context.Context, update *Chapter) (*Chapter, error) {

	existing, err := service.repository.FindByID(context, update.ID)
	if err != nil {
		return nil, err
	}

	if update.Number > 0 {
		existing.Number = update.Number
	}
	if update.Title != "" {
		existing.Title = update.Title
	}
	if update.ReleaseDate != nil {
		existing.ReleaseDate = update.ReleaseDate
	}

	if err := service.repository.Update(context, existing); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_updated", slog.String("chapter_id", existing.ID))
	return existing, nil
}

/*
DeleteChapter removes a chapter and, by cascade, its pages.
*/
func (service *Service) DeleteChapter(context context.Context, id string) error {

	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("chapter_deleted", slog.String("chapter_id", id))
	return nil
}

// # Page Management

/*
AddPages appends images to a chapter, numbering them after the current
last page. Submitting three URLs to a ten-page chapter yields pages 11,
12 and 13 in submission order.

Parameters:
  - context: context.Context
  - chapterID: string (UUID)
  - imageURLs: []string (At least one absolute URL)

Returns:
  - []*Page: The created pages
  - error: apperr.ValidationError on bad input, apperr.NotFound for an
    unknown chapter
*/
func (service *Service) AddPages(context context.Context, chapterID string, imageURLs []string) ([]*Page, error) {

	validator := &validate.Validator{}
	validator.Custom("image_urls", len(imageURLs) == 0, "At least one image URL is required")
	for _, imageURL := range imageURLs {
		validator.URL("image_urls", imageURL)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.repository.FindByID(context, chapterID); err != nil {
		return nil, err
	}

	highest, err := service.repository.MaxPageNumber(context, chapterID)
	if err != nil {
		return nil, err
	}

	pages := make([]*Page, 0, len(imageURLs))
	for index, imageURL := range imageURLs {
		pages = append(pages, &Page{
			ID:         uuid.New(),
			ChapterID:  chapterID,
			PageNumber: highest + index + 1,
			ImageURL:   imageURL,
		})
	}

	if err := service.repository.InsertPages(context, pages); err != nil {
		return nil, err
	}

	service.logger.Info("pages_added",
		slog.String("chapter_id", chapterID),
		slog.Int("count", len(pages)))

	return pages, nil
}

/*
DeletePage removes one page and renumbers the rest of the chapter so the
sequence stays contiguous.
*/
func (service *Service) DeletePage(context context.Context, chapterID string, pageNumber int) error {

	validator := &validate.Validator{}
	validator.Custom("page_number", pageNumber < 1, "Page number must be at least 1")
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repository.DeletePage(context, chapterID, pageNumber); err != nil {
		return err
	}

	service.logger.Info("page_deleted",
		slog.String("chapter_id", chapterID),
		slog.Int("page_number", pageNumber))

	return nil
}

/*
MovePage swaps a page with its neighbor in the given direction.

Parameters:
  - context: context.Context
  - chapterID: string (UUID)
  - pageNumber: int
  - direction: string (MoveUp or MoveDown)

Returns:
  - error: apperr.ValidationError for a bad direction or a move past the
    first page, apperr.NotFound when either page is missing
*/
func (service *Service) MovePage(context context.Context, chapterID string, pageNumber int, direction string) error {

	validator := &validate.Validator{}
	validator.OneOf("direction", direction, MoveUp, MoveDown).
		Custom("page_number", pageNumber < 1, "Page number must be at least 1").
		Custom("page_number", direction == MoveUp && pageNumber == 1, "First page cannot move up")
	if err := validator.Err(); err != nil {
		return err
	}

	neighbor := pageNumber + 1
	if direction == MoveUp {
		neighbor = pageNumber - 1
	}

	if err := service.repository.SwapPages(context, chapterID, pageNumber, neighbor); err != nil {
		return err
	}

	service.logger.Info("page_moved",
		slog.String("chapter_id", chapterID),
		slog.Int("page_number", pageNumber),
		slog.String("direction", direction))

	return nil
}
