// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package curated

import (
	"context"
	"log/slog"

	"github.com/taibuivan/hikari/internal/platform/validate"
	"github.com/taibuivan/hikari/pkg/uuid"
)

// # Service Layer

// Service orchestrates the curated popular and recommended lists.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new curated [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

/*
Popular returns the popular list for one window.

Description: An empty window selects all_time. Anything else must be one
of the four known windows, otherwise the request is rejected before any
store call.

Parameters:
  - context: context.Context
  - rawWindow: string (Caller-supplied window, may be empty)

Returns:
  - []*PopularEntry: Entries joined to comic summaries, newest first
  - error: apperr.ValidationError on an unknown window
*/
func (service *Service) Popular(context context.Context, rawWindow string) ([]*PopularEntry, error) {

	window := WindowAllTime
	if rawWindow != "" {
		window = Window(rawWindow)
		if !window.IsValid() {
			validator := &validate.Validator{}
			validator.OneOf("type", rawWindow,
				string(WindowDaily), string(WindowWeekly), string(WindowMonthly), string(WindowAllTime))
			return nil, validator.Err()
		}
	}

	return service.repository.ListPopular(context, window)
}

/*
Recommended returns the recommended list, newest entry first.
*/
func (service *Service) Recommended(context context.Context) ([]*RecommendedEntry, error) {
	return service.repository.ListRecommended(context)
}

/*
AddPopular places a comic into one popular window.

Returns:
  - *PopularEntry: The created entry
  - error: apperr.ValidationError, apperr.NotFound or apperr.Conflict
*/
func (service *Service) AddPopular(context context.Context, comicID, rawWindow string) (*PopularEntry, error) {

	validator := &validate.Validator{}
	validator.Required("comic_id", comicID)
	validator.UUID("comic_id", comicID)
	validator.OneOf("window", rawWindow,
		string(WindowDaily), string(WindowWeekly), string(WindowMonthly), string(WindowAllTime))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entry := &PopularEntry{
		ID:      uuid.New(),
		ComicID: comicID,
		Window:  Window(rawWindow),
	}

	if err := service.repository.CreatePopular(context, entry); err != nil {
		return nil, err
	}

	service.logger.Info("popular_entry_added",
		slog.String("entry_id", entry.ID),
		slog.String("comic_id", comicID),
		slog.String("window", rawWindow),
	)

	return entry, nil
}

/*
RemovePopular removes a popular entry by its identifier.
*/
func (service *Service) RemovePopular(context context.Context, id string) error {

	validator := &validate.Validator{}
	validator.Required("id", id)
	validator.UUID("id", id)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repository.DeletePopular(context, id); err != nil {
		return err
	}

	service.logger.Info("popular_entry_removed", slog.String("entry_id", id))

	return nil
}

/*
AddRecommended places a comic into the recommended list.

Returns:
  - *RecommendedEntry: The created entry
  - error: apperr.ValidationError, apperr.NotFound or apperr.Conflict
*/
func (service *Service) AddRecommended(context context.Context, comicID string) (*RecommendedEntry, error) {

	validator := &validate.Validator{}
	validator.Required("comic_id", comicID)
	validator.UUID("comic_id", comicID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entry := &RecommendedEntry{
		ID:      uuid.New(),
		ComicID: comicID,
	}

	if err := service.repository.CreateRecommended(context, entry); err != nil {
		return nil, err
	}

	service.logger.Info("recommended_entry_added",
		slog.String("entry_id", entry.ID),
		slog.String("comic_id", comicID),
	)

	return entry, nil
}

/*
RemoveRecommended removes a recommended entry by its identifier.
*/
func (service *Service) RemoveRecommended(context context.Context, id string) error {

	validator := &validate.Validator{}
	validator.Required("id", id)
	validator.UUID("id", id)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repository.DeleteRecommended(context, id); err != nil {
		return err
	}

	service.logger.Info("recommended_entry_removed", slog.String("entry_id", id))

	return nil
}
