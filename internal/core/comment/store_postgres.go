// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hikari/internal/platform/apperr"
	"github.com/taibuivan/hikari/internal/platform/database/schema"
	"github.com/taibuivan/hikari/internal/platform/dberr"
)

// # PostgreSQL Repository

// commentRepository implements the [Repository] interface using pgx.
type commentRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed comment store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &commentRepository{pool: pool}
}

// targetColumn maps a target type onto its comment column.
func targetColumn(targetType string) string {
	if targetType == TargetChapter {
		return schema.SocialComment.ChapterID
	}
	return schema.SocialComment.ComicID
}

// commentSelect is the shared SELECT head joining author summaries.
func commentSelect(extra string) string {
	commentTable := schema.SocialComment
	accountTable := schema.UserAccount
	return fmt.Sprintf(`
		SELECT
			cm.%s, cm.%s, cm.%s, cm.%s, cm.%s, cm.%s, cm.%s, cm.%s,
			u.%s, u.%s, u.%s, u.%s%s
		FROM %s cm
		JOIN %s u ON cm.%s = u.%s`,
		commentTable.ID, commentTable.UserID, commentTable.ComicID, commentTable.ChapterID,
		commentTable.ParentID, commentTable.Content, commentTable.CreatedAt, commentTable.UpdatedAt,
		accountTable.ID, accountTable.Username, accountTable.AvatarURL, accountTable.Role, extra,
		commentTable.Table,
		accountTable.Table, commentTable.UserID, accountTable.ID)
}

// scanDecorated reads one joined comment row into a decorated entity.
func scanDecorated(rows pgx.Rows, extra ...any) (*Comment, error) {
	var comment Comment
	var author AuthorSummary
	var comicID, chapterID, parentID, avatarURL *string

	targets := []any{
		&comment.ID, &comment.UserID, &comicID, &chapterID,
		&parentID, &comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
		&author.ID, &author.Username, &avatarURL, &author.Role,
	}
	targets = append(targets, extra...)

	if err := rows.Scan(targets...); err != nil {
		return nil, err
	}

	if comicID != nil {
		comment.ComicID = *comicID
	}
	if chapterID != nil {
		comment.ChapterID = *chapterID
	}
	if parentID != nil {
		comment.ParentID = *parentID
	}
	if avatarURL != nil {
		author.AvatarURL = *avatarURL
	}
	comment.Author = &author

	return &comment, nil
}

/*
ListTopLevel returns one page of a target's root comments, newest first.

Description: Replies are excluded here and fetched in a second batched
query so pagination counts threads, not individual messages.
*/
func (repository *commentRepository) ListTopLevel(context context.Context, targetType, targetID string, limit, offset int) ([]*Comment, int, error) {

	commentTable := schema.SocialComment
	query := commentSelect(",\n\t\t\tCOUNT(*) OVER() AS total_count") + fmt.Sprintf(`
		WHERE cm.%s = $1 AND cm.%s IS NULL
		ORDER BY cm.%s DESC
		LIMIT $2 OFFSET $3`,
		targetColumn(targetType), commentTable.ParentID,
		commentTable.CreatedAt)

	rows, err := repository.pool.Query(context, query, targetID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []*Comment{}
	var totalCount int
	for rows.Next() {
		comment, err := scanDecorated(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, totalCount, nil
}

/*
ListReplies returns the replies of a set of parent comments in one
round-trip, oldest first so threads read top-down.
*/
func (repository *commentRepository) ListReplies(context context.Context, parentIDs []string) ([]*Comment, error) {

	if len(parentIDs) == 0 {
		return []*Comment{}, nil
	}

	commentTable := schema.SocialComment
	query := commentSelect("") + fmt.Sprintf(`
		WHERE cm.%s = ANY($1)
		ORDER BY cm.%s ASC`,
		commentTable.ParentID, commentTable.CreatedAt)

	rows, err := repository.pool.Query(context, query, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list replies: %w", err)
	}
	defer rows.Close()

	replies := []*Comment{}
	for rows.Next() {
		reply, err := scanDecorated(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan reply: %w", err)
		}
		replies = append(replies, reply)
	}

	return replies, nil
}

/*
FindByID returns one comment without author decoration.
*/
func (repository *commentRepository) FindByID(context context.Context, id string) (*Comment, error) {

	commentTable := schema.SocialComment
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s WHERE %s = $1`,
		commentTable.ID, commentTable.UserID, commentTable.ComicID, commentTable.ChapterID,
		commentTable.ParentID, commentTable.Content, commentTable.CreatedAt, commentTable.UpdatedAt,
		commentTable.Table, commentTable.ID)

	var comment Comment
	var comicID, chapterID, parentID *string
	err := repository.pool.QueryRow(context, query, id).Scan(
		&comment.ID, &comment.UserID, &comicID, &chapterID,
		&parentID, &comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres: failed to find comment: %w", err)
	}

	if comicID != nil {
		comment.ComicID = *comicID
	}
	if chapterID != nil {
		comment.ChapterID = *chapterID
	}
	if parentID != nil {
		comment.ParentID = *parentID
	}

	return &comment, nil
}

/*
Create persists a comment row. Optional references are stored as NULL.
*/
func (repository *commentRepository) Create(context context.Context, comment *Comment) error {

	commentTable := schema.SocialComment
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		commentTable.Table,
		commentTable.ID, commentTable.UserID, commentTable.ComicID,
		commentTable.ChapterID, commentTable.ParentID, commentTable.Content)

	_, err := repository.pool.Exec(context, query,
		comment.ID, comment.UserID,
		nullable(comment.ComicID), nullable(comment.ChapterID), nullable(comment.ParentID),
		comment.Content)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.ValidationError("Comment target does not exist")
		}
		return fmt.Errorf("postgres: failed to create comment: %w", err)
	}

	return nil
}

/*
Delete removes a comment; replies follow through ON DELETE CASCADE.
*/
func (repository *commentRepository) Delete(context context.Context, id string) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.SocialComment.Table, schema.SocialComment.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete comment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

// nullable converts empty strings to NULL parameters.
func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
