// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package vote

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

// Service orchestrates voting on comics and chapters.
type Service struct {
	repository Repository
	counters   CounterSink
	logger     *slog.Logger
}

// NewService constructs a new vote [Service].
func NewService(repository Repository, counters CounterSink, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		counters:   counters,
		logger:     logger,
	}
}

/*
Cast records a vote on exactly one target.

Description: A request naming both or neither of comic_id/chapter_id is a
validation failure. The target must exist (404 otherwise) and be unvoted
by this user (409 with the conflicting id otherwise). Comic votes refresh
the vote count and the derived rank; chapter votes refresh the chapter
vote count. All refreshes run off the request path.

Parameters:
  - context: context.Context
  - userID: string (UUID)
  - comicID: string (Empty unless voting a comic)
  - chapterID: string (Empty unless voting a chapter)

Returns:
  - *Vote: The created vote
  - error: apperr.ValidationError, apperr.NotFound or apperr.Conflict
*/
func (service *Service) Cast(context context.Context, userID, comicID, chapterID string) (*Vote, error) {

	validator := &validate.Validator{}
	validator.Custom("comic_id",
		(comicID == "") == (chapterID == ""),
		"Exactly one of comic_id and chapter_id is required")
	if comicID != "" {
		validator.UUID("comic_id", comicID)
	}
	if chapterID != "" {
		validator.UUID("chapter_id", chapterID)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	vote := &Vote{
		ID:        uuid.New(),
		UserID:    userID,
		ComicID:   comicID,
		ChapterID: chapterID,
	}

	if vote.Target() == TargetComic {
		if err := service.castComicVote(context, vote); err != nil {
			return nil, err
		}
	} else {
		if err := service.castChapterVote(context, vote); err != nil {
			return nil, err
		}
	}

	service.logger.Info("vote_cast",
		slog.String("user_id", userID),
		slog.String("target", vote.Target()))

	return vote, nil
}

func (service *Service) castComicVote(context context.Context, vote *Vote) error {

	exists, err := service.repository.ComicExists(context, vote.ComicID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Comic")
	}

	if err := service.repository.CreateComicVote(context, vote); err != nil {
		return err
	}

	// Rank derives from vote counts, so both refresh together.
	service.counters.Dispatch(counter.ComicVote(vote.ComicID))
	service.counters.Dispatch(counter.ComicRank(vote.ComicID))
	return nil
}

func (service *Service) castChapterVote(context context.Context, vote *Vote) error {

	exists, err := service.repository.ChapterExists(context, vote.ChapterID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Chapter")
	}

	if err := service.repository.CreateChapterVote(context, vote); err != nil {
		return err
	}

	service.counters.Dispatch(counter.ChapterVote(vote.ChapterID))
	return nil
}

/*
Retract removes the user's vote on a target.

Parameters:
  - context: context.Context
  - userID: string (UUID)
  - targetID: string (Comic or chapter UUID)
  - targetType: string (TargetComic or TargetChapter)

Returns:
  - error: apperr.ValidationError for an unknown type, apperr.NotFound
    when no vote exists
*/
func (service *Service) Retract(context context.Context, userID, targetID, targetType string) error {

	validator := &validate.Validator{}
	validator.OneOf("type", targetType, TargetComic, TargetChapter)
	if err := validator.Err(); err != nil {
		return err
	}

	switch targetType {
	case TargetComic:
		if err := service.repository.DeleteComicVote(context, userID, targetID); err != nil {
			return err
		}
		service.counters.Dispatch(counter.ComicVote(targetID))
		service.counters.Dispatch(counter.ComicRank(targetID))
	case TargetChapter:
		if err := service.repository.DeleteChapterVote(context, userID, targetID); err != nil {
			return err
		}
		service.counters.Dispatch(counter.ChapterVote(targetID))
	}

	service.logger.Info("vote_retracted",
		slog.String("user_id", userID),
		slog.String("target", targetType))

	return nil
}
