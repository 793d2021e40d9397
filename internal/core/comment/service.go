// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"

	"github.com/taibuivan/hikari/internal/platform/apperr"
	"github.com/taibuivan/hikari/internal/platform/sec"
	"github.com/taibuivan/hikari/internal/platform/validate"
	"github.com/taibuivan/hikari/pkg/uuid"
)

// # Service Layer

// maxContentLength caps a single comment's size.
const maxContentLength = 5000

// Service orchestrates threaded discussion on comics and chapters.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new comment [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

/*
ListThread returns one page of a target's comment threads.

Description: Pagination counts top-level comments. Unless parentOnly is
set, one batched query attaches each thread's replies, oldest first.

Parameters:
  - context: context.Context
  - targetType: string (TargetComic or TargetChapter)
  - targetID: string (UUID)
  - parentOnly: bool (Skip reply hydration)
  - limit: int
  - offset: int

Returns:
  - []*Comment: Threads, newest first
  - int: Total top-level count
  - error: apperr.ValidationError for an unknown type
*/
func (service *Service) ListThread(context context.Context, targetType, targetID string, parentOnly bool, limit, offset int) ([]*Comment, int, error) {

	validator := &validate.Validator{}
	validator.OneOf("type", targetType, TargetComic, TargetChapter)
	if err := validator.Err(); err != nil {
		return nil, 0, err
	}

	comments, total, err := service.repository.ListTopLevel(context, targetType, targetID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if parentOnly || len(comments) == 0 {
		return comments, total, nil
	}

	parentIDs := make([]string, 0, len(comments))
	byID := make(map[string]*Comment, len(comments))
	for _, comment := range comments {
		parentIDs = append(parentIDs, comment.ID)
		byID[comment.ID] = comment
		comment.Replies = []*Comment{}
	}

	replies, err := service.repository.ListReplies(context, parentIDs)
	if err != nil {
		return nil, 0, err
	}

	for _, reply := range replies {
		if parent, ok := byID[reply.ParentID]; ok {
			parent.Replies = append(parent.Replies, reply)
		}
	}

	return comments, total, nil
}

/*
Post publishes a comment on exactly one target, optionally as a reply.

Description: Content is required, the target must be named exactly once,
and a reply's parent must exist (404 otherwise).

Parameters:
  - context: context.Context
  - userID: string (UUID of the author)
  - comment: *Comment (Content, target and optional parent)

Returns:
  - error: apperr.ValidationError or apperr.NotFound
*/
func (service *Service) Post(context context.Context, userID string, comment *Comment) error {

	validator := &validate.Validator{}
	validator.Required("content", comment.Content).
		MaxLen("content", comment.Content, maxContentLength).
		Custom("comic_id",
			(comment.ComicID == "") == (comment.ChapterID == ""),
			"Exactly one of comic_id and chapter_id is required")
	if comment.ParentID != "" {
		validator.UUID("parent_id", comment.ParentID)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if comment.ParentID != "" {
		parent, err := service.repository.FindByID(context, comment.ParentID)
		if err != nil {
			return err
		}
		// One indentation level: replying to a reply attaches to its root.
		if parent.ParentID != "" {
			comment.ParentID = parent.ParentID
		}
	}

	comment.ID = uuid.New()
	comment.UserID = userID

	if err := service.repository.Create(context, comment); err != nil {
		return err
	}

	service.logger.Info("comment_posted",
		slog.String("comment_id", comment.ID),
		slog.String("user_id", userID))

	return nil
}

/*
Remove deletes a comment and its replies.

Description: Allowed for the comment's author and for moderators and
above. Everyone else gets a 403 without learning whether the comment
exists beyond the lookup.

Parameters:
  - context: context.Context
  - commentID: string (UUID)
  - userID: string (Requesting user)
  - role: sec.UserRole (Requesting user's role)

Returns:
  - error: apperr.NotFound or apperr.Forbidden
*/
func (service *Service) Remove(context context.Context, commentID, userID string, role sec.UserRole) error {

	comment, err := service.repository.FindByID(context, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID && !role.AtLeast(sec.RoleModerator) {
		return apperr.Forbidden("You cannot delete this comment")
	}

	if err := service.repository.Delete(context, commentID); err != nil {
		return err
	}

	service.logger.Info("comment_deleted",
		slog.String("comment_id", commentID),
		slog.String("deleted_by", userID))

	return nil
}
