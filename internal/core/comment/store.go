// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// # Comment Data Access

// Repository defines the data access contract for threaded comments.
type Repository interface {

	/*
		ListTopLevel returns one page of a target's top-level comments
		with author summaries, newest first.

		Parameters:
		  - context: context.Context
		  - targetType: string (TargetComic or TargetChapter)
		  - targetID: string (UUID)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Comment: Top-level comments, replies not attached
		  - int: Total top-level count for the target
		  - error: Storage failures
	*/
	ListTopLevel(context context.Context, targetType, targetID string, limit, offset int) ([]*Comment, int, error)

	/*
		ListReplies returns every reply whose parent is in parentIDs,
		oldest first, with author summaries.
	*/
	ListReplies(context context.Context, parentIDs []string) ([]*Comment, error)

	/*
		FindByID returns a single comment without author decoration.

		Returns:
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		Create persists a new comment.

		Returns:
		  - error: apperr.ValidationError on a broken target reference
	*/
	Create(context context.Context, comment *Comment) error

	/*
		Delete removes a comment and, through the cascade, its replies.

		Returns:
		  - error: apperr.NotFound if missing
	*/
	Delete(context context.Context, id string) error
}
