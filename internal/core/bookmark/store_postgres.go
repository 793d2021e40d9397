// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hikari/internal/platform/apperr"
	"github.com/taibuivan/hikari/internal/platform/database/schema"
	"github.com/taibuivan/hikari/internal/platform/dberr"
)

// # PostgreSQL Repository

// bookmarkRepository implements the [Repository] interface using pgx.
type bookmarkRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed bookmark store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &bookmarkRepository{pool: pool}
}

/*
ListByUser returns one page of a user's bookmarks joined to comic cards.

Description: A window function supplies the total count without a second
round-trip, newest bookmark first.
*/
func (repository *bookmarkRepository) ListByUser(context context.Context, userID string, limit, offset int) ([]*Bookmark, int, error) {

	bookmarkTable := schema.LibraryBookmark
	comicTable := schema.CoreComic

	query := fmt.Sprintf(`
		SELECT
			b.%s, b.%s, b.%s, b.%s,
			c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			COUNT(*) OVER() AS total_count
		FROM %s b
		JOIN %s c ON b.%s = c.%s
		WHERE b.%s = $1
		ORDER BY b.%s DESC
		LIMIT $2 OFFSET $3`,
		bookmarkTable.ID, bookmarkTable.UserID, bookmarkTable.ComicID, bookmarkTable.CreatedAt,
		comicTable.ID, comicTable.Title, comicTable.Slug, comicTable.CoverURL,
		comicTable.Status, comicTable.ViewCount, comicTable.BookmarkCount,
		bookmarkTable.Table,
		comicTable.Table, bookmarkTable.ComicID, comicTable.ID,
		bookmarkTable.UserID,
		bookmarkTable.CreatedAt)

	rows, err := repository.pool.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []*Bookmark{}
	var totalCount int
	for rows.Next() {
		var bookmark Bookmark
		var comic ComicSummary
		err := rows.Scan(
			&bookmark.ID, &bookmark.UserID, &bookmark.ComicID, &bookmark.CreatedAt,
			&comic.ID, &comic.Title, &comic.Slug, &comic.CoverURL,
			&comic.Status, &comic.ViewCount, &comic.BookmarkCount,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan bookmark: %w", err)
		}
		bookmark.Comic = &comic
		bookmarks = append(bookmarks, &bookmark)
	}

	return bookmarks, totalCount, nil
}

/*
ListDetailed returns bookmarks with the comic's single freshest chapter.

Description: A LEFT JOIN LATERAL picks each comic's latest chapter in the
same statement, preferring releasedate and breaking ties by id. Comics
without chapters keep a NULL chapter side.
*/
func (repository *bookmarkRepository) ListDetailed(context context.Context, userID string, limit, offset int) ([]*DetailedBookmark, int, error) {

	bookmarkTable := schema.LibraryBookmark
	comicTable := schema.CoreComic
	chapterTable := schema.CoreChapter

	query := fmt.Sprintf(`
		SELECT
			b.%s, b.%s, b.%s, b.%s,
			c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			latest.%s, latest.%s, latest.%s, latest.%s,
			COUNT(*) OVER() AS total_count
		FROM %s b
		JOIN %s c ON b.%s = c.%s
		LEFT JOIN LATERAL (
			SELECT ch.%s, ch.%s, ch.%s, ch.%s
			FROM %s ch
			WHERE ch.%s = c.%s
			ORDER BY ch.%s DESC NULLS LAST, ch.%s DESC
			LIMIT 1
		) latest ON TRUE
		WHERE b.%s = $1
		ORDER BY b.%s DESC
		LIMIT $2 OFFSET $3`,
		bookmarkTable.ID, bookmarkTable.UserID, bookmarkTable.ComicID, bookmarkTable.CreatedAt,
		comicTable.ID, comicTable.Title, comicTable.Slug, comicTable.CoverURL,
		comicTable.Status, comicTable.ViewCount, comicTable.BookmarkCount,
		chapterTable.ID, chapterTable.Number, chapterTable.Title, chapterTable.ReleaseDate,
		bookmarkTable.Table,
		comicTable.Table, bookmarkTable.ComicID, comicTable.ID,
		chapterTable.ID, chapterTable.Number, chapterTable.Title, chapterTable.ReleaseDate,
		chapterTable.Table,
		chapterTable.ComicID, comicTable.ID,
		chapterTable.ReleaseDate, chapterTable.ID,
		bookmarkTable.UserID,
		bookmarkTable.CreatedAt)

	rows, err := repository.pool.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list detailed bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []*DetailedBookmark{}
	var totalCount int
	for rows.Next() {
		var bookmark DetailedBookmark
		var comic ComicSummary
		var chapterID, chapterTitle *string
		var chapterNumber *float64
		var releaseDate *time.Time

		err := rows.Scan(
			&bookmark.ID, &bookmark.UserID, &bookmark.ComicID, &bookmark.CreatedAt,
			&comic.ID, &comic.Title, &comic.Slug, &comic.CoverURL,
			&comic.Status, &comic.ViewCount, &comic.BookmarkCount,
			&chapterID, &chapterNumber, &chapterTitle, &releaseDate,
			&totalCount,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan detailed bookmark: %w", err)
		}

		bookmark.Comic = &comic
		if chapterID != nil {
			latest := &LatestChapter{
				ID:          *chapterID,
				Number:      *chapterNumber,
				ReleaseDate: releaseDate,
			}
			if chapterTitle != nil {
				latest.Title = *chapterTitle
			}
			bookmark.LatestChapter = latest
		}
		bookmarks = append(bookmarks, &bookmark)
	}

	return bookmarks, totalCount, nil
}

/*
ComicExists reports whether a comic row exists.
*/
func (repository *bookmarkRepository) ComicExists(context context.Context, comicID string) (bool, error) {

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CoreComic.Table, schema.CoreComic.ID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, comicID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check comic existence: %w", err)
	}

	return exists, nil
}

/*
Create persists a bookmark row.

Returns:
  - error: apperr.Conflict carrying the comic_id on a duplicate
*/
func (repository *bookmarkRepository) Create(context context.Context, bookmark *Bookmark) error {

	bookmarkTable := schema.LibraryBookmark
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)`,
		bookmarkTable.Table, bookmarkTable.ID, bookmarkTable.UserID, bookmarkTable.ComicID)

	_, err := repository.pool.Exec(context, query, bookmark.ID, bookmark.UserID, bookmark.ComicID)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Comic is already bookmarked",
				apperr.FieldError{Field: "comic_id", Message: bookmark.ComicID})
		}
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Comic")
		}
		return fmt.Errorf("postgres: failed to create bookmark: %w", err)
	}

	return nil
}

/*
Delete removes the user's bookmark for a comic.
*/
func (repository *bookmarkRepository) Delete(context context.Context, userID, comicID string) error {

	bookmarkTable := schema.LibraryBookmark
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		bookmarkTable.Table, bookmarkTable.UserID, bookmarkTable.ComicID)

	result, err := repository.pool.Exec(context, query, userID, comicID)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete bookmark: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Bookmark")
	}

	return nil
}
