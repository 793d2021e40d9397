// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark

import (
	"context"
	"log/slog"

	"github.com/taibuivan/hikari/internal/platform/apperr"
	"github.com/taibuivan/hikari/internal/platform/counter"
	"github.com/taibuivan/hikari/internal/platform/validate"
	"github.com/taibuivan/hikari/pkg/uuid"
)

// # Service Layer

// CounterSink accepts fire-and-forget counter events.
// [*counter.Dispatcher] satisfies it.
type CounterSink interface {
	Dispatch(event counter.Event)
}

// Service orchestrates a user's library of bookmarked comics.
type Service struct {
	repository Repository
	counters   CounterSink
	logger     *slog.Logger
}

// NewService constructs a new bookmark [Service].
func NewService(repository Repository, counters CounterSink, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		counters:   counters,
		logger:     logger,
	}
}

/*
List returns one page of the user's bookmarks with comic summaries.
*/
func (service *Service) List(context context.Context, userID string, limit, offset int) ([]*Bookmark, int, error) {
	return service.repository.ListByUser(context, userID, limit, offset)
}

/*
ListDetailed returns one page of the user's bookmarks, each carrying the
comic's latest chapter for unread-activity display.
*/
func (service *Service) ListDetailed(context context.Context, userID string, limit, offset int) ([]*DetailedBookmark, int, error) {
	return service.repository.ListDetailed(context, userID, limit, offset)
}

/*
Add bookmarks a comic for the user.

Description: Unknown comics map to 404 rather than a foreign key surprise,
and duplicates to a conflict carrying the comic_id so clients can
reconcile their state. A successful write schedules a bookmark count
refresh off the request path.

Parameters:
  - context: context.Context
  - userID: string (UUID)
  - comicID: string (UUID)

Returns:
  - *Bookmark: The created bookmark
  - error: apperr.NotFound, apperr.Conflict, or validation failures
*/
func (service *Service) Add(context context.Context, userID, comicID string) (*Bookmark, error) {

	validator := &validate.Validator{}
	validator.UUID("comic_id", comicID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	exists, err := service.repository.ComicExists(context, comicID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Comic")
	}

	bookmark := &Bookmark{
		ID:      uuid.New(),
		UserID:  userID,
		ComicID: comicID,
	}

	if err := service.repository.Create(context, bookmark); err != nil {
		return nil, err
	}

	service.counters.Dispatch(counter.ComicBookmark(comicID))
	service.logger.Info("bookmark_added",
		slog.String("user_id", userID),
		slog.String("comic_id", comicID))

	return bookmark, nil
}

/*
Remove deletes the user's bookmark for a comic and schedules a bookmark
count refresh.

Returns:
  - error: apperr.NotFound when the bookmark does not exist
*/
func (service *Service) Remove(context context.Context, userID, comicID string) error {

	if err := service.repository.Delete(context, userID, comicID); err != nil {
		return err
	}

	service.counters.Dispatch(counter.ComicBookmark(comicID))
	service.logger.Info("bookmark_removed",
		slog.String("user_id", userID),
		slog.String("comic_id", comicID))

	return nil
}
