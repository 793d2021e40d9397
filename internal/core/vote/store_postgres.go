// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package vote

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hikari/internal/platform/apperr"
	"github.com/taibuivan/hikari/internal/platform/database/schema"
	"github.com/taibuivan/hikari/internal/platform/dberr"
)

// # PostgreSQL Repository

// voteRepository implements the [Repository] interface using pgx.
type voteRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed vote store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &voteRepository{pool: pool}
}

/*
ComicExists reports whether a comic row exists.
*/
func (repository *voteRepository) ComicExists(context context.Context, comicID string) (bool, error) {
	return repository.exists(context, schema.CoreComic.Table, schema.CoreComic.ID, comicID)
}

/*
ChapterExists reports whether a chapter row exists.
*/
func (repository *voteRepository) ChapterExists(context context.Context, chapterID string) (bool, error) {
	return repository.exists(context, schema.CoreChapter.Table, schema.CoreChapter.ID, chapterID)
}

func (repository *voteRepository) exists(context context.Context, table, column, id string) (bool, error) {

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, table, column)

	var exists bool
	if err := repository.pool.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check %s existence: %w", table, err)
	}

	return exists, nil
}

/*
CreateComicVote persists a vote on a comic.
*/
func (repository *voteRepository) CreateComicVote(context context.Context, vote *Vote) error {

	voteTable := schema.LibraryComicVote
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		voteTable.Table, voteTable.ID, voteTable.UserID, voteTable.ComicID)

	_, err := repository.pool.Exec(context, query, vote.ID, vote.UserID, vote.ComicID)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Comic is already voted",
				apperr.FieldError{Field: "comic_id", Message: vote.ComicID})
		}
		return fmt.Errorf("postgres: failed to create comic vote: %w", err)
	}

	return nil
}

/*
CreateChapterVote persists a vote on a chapter.
*/
func (repository *voteRepository) CreateChapterVote(context context.Context, vote *Vote) error {

	voteTable := schema.LibraryChapterVote
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		voteTable.Table, voteTable.ID, voteTable.UserID, voteTable.ChapterID)

	_, err := repository.pool.Exec(context, query, vote.ID, vote.UserID, vote.ChapterID)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Chapter is already voted",
				apperr.FieldError{Field: "chapter_id", Message: vote.ChapterID})
		}
		return fmt.Errorf("postgres: failed to create chapter vote: %w", err)
	}

	return nil
}

/*
DeleteComicVote removes the user's vote on a comic.
*/
func (repository *voteRepository) DeleteComicVote(context context.Context, userID, comicID string) error {

	voteTable := schema.LibraryComicVote
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		voteTable.Table, voteTable.UserID, voteTable.ComicID)

	result, err := repository.pool.Exec(context, query, userID, comicID)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete comic vote: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Vote")
	}

	return nil
}

/*
DeleteChapterVote removes the user's vote on a chapter.
*/
func (repository *voteRepository) DeleteChapterVote(context context.Context, userID, chapterID string) error {

	voteTable := schema.LibraryChapterVote
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		voteTable.Table, voteTable.UserID, voteTable.ChapterID)

	result, err := repository.pool.Exec(context, query, userID, chapterID)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete chapter vote: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Vote")
	}

	return nil
}
