// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

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

// chapterRepository implements the [Repository] interface using pgx.
type chapterRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed chapter store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &chapterRepository{pool: pool}
}

// chapterColumns is the canonical scan order for chapter rows.
func chapterColumns() string {
	chapterTable := schema.CoreChapter
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
		chapterTable.ID, chapterTable.ComicID, chapterTable.Number, chapterTable.Title,
		chapterTable.ReleaseDate, chapterTable.ViewCount, chapterTable.VoteCount,
		chapterTable.CreatedAt, chapterTable.UpdatedAt)
}

func scanChapter(row pgx.Row) (*Chapter, error) {
	var chapter Chapter
	err := row.Scan(
		&chapter.ID,
		&chapter.ComicID,
		&chapter.Number,
		&chapter.Title,
		&chapter.ReleaseDate,
		&chapter.ViewCount,
		&chapter.VoteCount,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

// # Chapter Reads

/*
FindByID returns the chapter with the given ID.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Chapter: Hydrated metadata
  - error: apperr.NotFound on absent rows
*/
func (repository *chapterRepository) FindByID(context context.Context, id string) (*Chapter, error) {

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		chapterColumns(), schema.CoreChapter.Table, schema.CoreChapter.ID)

	chapter, err := scanChapter(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Chapter")
		}
		return nil, fmt.Errorf("postgres: failed to find chapter by id: %w", err)
	}

	return chapter, nil
}

/*
ComicRef returns the summary of the comic owning a chapter's comic ID.
*/
func (repository *chapterRepository) ComicRef(context context.Context, comicID string) (*ComicRef, error) {

	comicTable := schema.CoreComic
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		comicTable.ID, comicTable.Title, comicTable.Slug, comicTable.CoverURL,
		comicTable.Table, comicTable.ID)

	var ref ComicRef
	err := repository.pool.QueryRow(context, query, comicID).Scan(&ref.ID, &ref.Title, &ref.Slug, &ref.CoverURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comic")
		}
		return nil, fmt.Errorf("postgres: failed to load comic summary: %w", err)
	}

	return &ref, nil
}

/*
Neighbors resolves the chapters directly before and after the given
chapter number within a comic.

Description: Two indexed point lookups on (comicid, chapternumber).
A missing neighbor produces a nil entry, not an error.
*/
func (repository *chapterRepository) Neighbors(context context.Context, comicID string, number float64) (*NavEntry, *NavEntry, error) {

	chapterTable := schema.CoreChapter

	previousQuery := fmt.Sprintf(`
		SELECT %s, %s FROM %s
		WHERE %s = $1 AND %s < $2
		ORDER BY %s DESC LIMIT 1`,
		chapterTable.ID, chapterTable.Number, chapterTable.Table,
		chapterTable.ComicID, chapterTable.Number, chapterTable.Number)

	nextQuery := fmt.Sprintf(`
		SELECT %s, %s FROM %s
		WHERE %s = $1 AND %s > $2
		ORDER BY %s ASC LIMIT 1`,
		chapterTable.ID, chapterTable.Number, chapterTable.Table,
		chapterTable.ComicID, chapterTable.Number, chapterTable.Number)

	scanEntry := func(query string) (*NavEntry, error) {
		var entry NavEntry
		err := repository.pool.QueryRow(context, query, comicID, number).Scan(&entry.ID, &entry.Number)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &entry, nil
	}

	previous, err := scanEntry(previousQuery)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: failed to resolve previous chapter: %w", err)
	}

	next, err := scanEntry(nextQuery)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: failed to resolve next chapter: %w", err)
	}

	return previous, next, nil
}

// # Chapter Writes

/*
Create persists a new chapter row.

Returns:
  - error: apperr.Conflict on a duplicate (comic, number) pair,
    apperr.ValidationError on an unknown comic
*/
func (repository *chapterRepository) Create(context context.Context, chapter *Chapter) error {

	chapterTable := schema.CoreChapter
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)`,
		chapterTable.Table,
		chapterTable.ID, chapterTable.ComicID, chapterTable.Number,
		chapterTable.Title, chapterTable.ReleaseDate)

	_, err := repository.pool.Exec(context, query,
		chapter.ID, chapter.ComicID, chapter.Number, chapter.Title, chapter.ReleaseDate)
	if err != nil {
		return classifyChapterWrite(err, "create")
	}

	return nil
}

/*
CreateBatch persists a set of chapters in one transaction.

Description: Uses a pgx batch inside an explicit transaction so a bulk
range is created completely or not at all. A duplicate number anywhere
in the range aborts the whole batch with a conflict.
*/
func (repository *chapterRepository) CreateBatch(context context.Context, chapters []*Chapter) error {

	if len(chapters) == 0 {
		return nil
	}

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin chapter batch: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	chapterTable := schema.CoreChapter
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)`,
		chapterTable.Table,
		chapterTable.ID, chapterTable.ComicID, chapterTable.Number,
		chapterTable.Title, chapterTable.ReleaseDate)

	batch := &pgx.Batch{}
	for _, chapter := range chapters {
		batch.Queue(insertQuery,
			chapter.ID, chapter.ComicID, chapter.Number, chapter.Title, chapter.ReleaseDate)
	}

	results := transaction.SendBatch(context, batch)
	for range chapters {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return classifyChapterWrite(err, "batch create")
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("postgres: failed to close chapter batch: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit chapter batch: %w", err)
	}

	return nil
}

/*
Update overwrites a chapter's number, title and release date.
*/
func (repository *chapterRepository) Update(context context.Context, chapter *Chapter) error {

	chapterTable := schema.CoreChapter
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = NOW()
		WHERE %s = $4`,
		chapterTable.Table,
		chapterTable.Number, chapterTable.Title, chapterTable.ReleaseDate, chapterTable.UpdatedAt,
		chapterTable.ID)

	result, err := repository.pool.Exec(context, query,
		chapter.Number, chapter.Title, chapter.ReleaseDate, chapter.ID)
	if err != nil {
		return classifyChapterWrite(err, "update")
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Chapter")
	}

	return nil
}

/*
Delete removes a chapter. Pages are removed by the ON DELETE CASCADE
constraint on core.page.
*/
func (repository *chapterRepository) Delete(context context.Context, id string) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreChapter.Table, schema.CoreChapter.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete chapter: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Chapter")
	}

	return nil
}

// classifyChapterWrite maps constraint violations onto domain errors.
func classifyChapterWrite(err error, action string) error {
	if dberr.IsUniqueViolation(err) {
		return apperr.Conflict("A chapter with this number already exists")
	}
	if dberr.IsForeignKeyViolation(err) {
		return apperr.ValidationError("Comic does not exist")
	}
	return fmt.Errorf("postgres: failed to %s chapter: %w", action, err)
}

// # Page Management

/*
ListPages retrieves images associated with a specific chapter.

Returns:
  - []*Page: Collection of page records sorted by sequence
*/
func (repository *chapterRepository) ListPages(context context.Context, chapterID string) ([]*Page, error) {

	pageTable := schema.CorePage
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC`,
		pageTable.ID, pageTable.ChapterID, pageTable.Number, pageTable.ImageURL,
		pageTable.Table,
		pageTable.ChapterID,
		pageTable.Number)

	rows, err := repository.pool.Query(context, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list pages: %w", err)
	}
	defer rows.Close()

	pages := []*Page{}
	for rows.Next() {
		var page Page
		if err := rows.Scan(&page.ID, &page.ChapterID, &page.PageNumber, &page.ImageURL); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan page: %w", err)
		}
		pages = append(pages, &page)
	}

	return pages, nil
}

/*
MaxPageNumber returns the current highest page number, zero when the
chapter has no pages yet.
*/
func (repository *chapterRepository) MaxPageNumber(context context.Context, chapterID string) (int, error) {

	query := fmt.Sprintf(`SELECT COALESCE(MAX(%s), 0) FROM %s WHERE %s = $1`,
		schema.CorePage.Number, schema.CorePage.Table, schema.CorePage.ChapterID)

	var max int
	if err := repository.pool.QueryRow(context, query, chapterID).Scan(&max); err != nil {
		return 0, fmt.Errorf("postgres: failed to read max page number: %w", err)
	}

	return max, nil
}

/*
InsertPages persists chapter images in a high-performance batch.

Description: Uses Postgres batching (pipelining) to reduce round-trips
for multi-page uploads.
*/
func (repository *chapterRepository) InsertPages(context context.Context, pages []*Page) error {

	if len(pages) == 0 {
		return nil
	}

	pageTable := schema.CorePage
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)`,
		pageTable.Table, pageTable.ID, pageTable.ChapterID, pageTable.Number, pageTable.ImageURL)

	batch := &pgx.Batch{}
	for _, page := range pages {
		batch.Queue(insertQuery, page.ID, page.ChapterID, page.PageNumber, page.ImageURL)
	}

	results := repository.pool.SendBatch(context, batch)
	defer results.Close()

	for index := 0; index < len(pages); index++ {
		if _, err := results.Exec(); err != nil {
			if dberr.IsUniqueViolation(err) {
				return apperr.Conflict("A page with this number already exists")
			}
			if dberr.IsForeignKeyViolation(err) {
				return apperr.ValidationError("Chapter does not exist")
			}
			return fmt.Errorf("postgres: failed to batch insert page %d: %w", index, err)
		}
	}

	return nil
}

/*
DeletePage removes one page and shifts the following pages down.

Description: One transaction so the sequence never shows a gap. The
renumber update keeps page numbers contiguous without touching the
pages before the removed one.
*/
func (repository *chapterRepository) DeletePage(context context.Context, chapterID string, pageNumber int) error {

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin page delete: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	pageTable := schema.CorePage

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		pageTable.Table, pageTable.ChapterID, pageTable.Number)

	result, err := transaction.Exec(context, deleteQuery, chapterID, pageNumber)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete page: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Page")
	}

	renumberQuery := fmt.Sprintf(`
		UPDATE %s SET %s = %s - 1
		WHERE %s = $1 AND %s > $2`,
		pageTable.Table, pageTable.Number, pageTable.Number,
		pageTable.ChapterID, pageTable.Number)

	if _, err := transaction.Exec(context, renumberQuery, chapterID, pageNumber); err != nil {
		return fmt.Errorf("postgres: failed to renumber pages: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit page delete: %w", err)
	}

	return nil
}

/*
SwapPages exchanges the numbers of two pages in one transaction.

Description: Routes one page through a sentinel number so the unique
(chapterid, pagenumber) constraint holds at every step.
*/
func (repository *chapterRepository) SwapPages(context context.Context, chapterID string, first, second int) error {

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin page swap: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	pageTable := schema.CorePage
	moveQuery := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2 AND %s = $3`,
		pageTable.Table, pageTable.Number, pageTable.ChapterID, pageTable.Number)

	// Park the first page outside the valid range
	result, err := transaction.Exec(context, moveQuery, -1, chapterID, first)
	if err != nil {
		return fmt.Errorf("postgres: failed to swap pages: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Page")
	}

	result, err = transaction.Exec(context, moveQuery, first, chapterID, second)
	if err != nil {
		return fmt.Errorf("postgres: failed to swap pages: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Page")
	}

	if _, err := transaction.Exec(context, moveQuery, second, chapterID, -1); err != nil {
		return fmt.Errorf("postgres: failed to swap pages: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit page swap: %w", err)
	}

	return nil
}

// # Reader State

/*
UserState reports vote and read flags for a chapter and user in one
round-trip.
*/
func (repository *chapterRepository) UserState(context context.Context, chapterID, userID string) (*UserState, error) {

	voteTable := schema.LibraryChapterVote
	historyTable := schema.LibraryReadingHistory

	query := fmt.Sprintf(`
		SELECT
			EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2),
			EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		voteTable.Table, voteTable.ChapterID, voteTable.UserID,
		historyTable.Table, historyTable.ChapterID, historyTable.UserID)

	var state UserState
	err := repository.pool.QueryRow(context, query, chapterID, userID).Scan(&state.IsVoted, &state.IsRead)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to load chapter user state: %w", err)
	}

	return &state, nil
}

/*
RecordReading moves the user's reading pointer for a comic to the given
chapter.

Description: Uses an 'ON CONFLICT' upsert keyed on (user, comic) so
re-reading never creates duplicate history rows.
*/
func (repository *chapterRepository) RecordReading(context context.Context, userID, comicID, chapterID string) error {

	historyTable := schema.LibraryReadingHistory
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES (gen_random_uuid(), $1, $2, $3)
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = NOW()`,
		historyTable.Table,
		historyTable.ID, historyTable.UserID, historyTable.ComicID, historyTable.ChapterID,
		historyTable.UserID, historyTable.ComicID,
		historyTable.ChapterID, historyTable.ChapterID, historyTable.ReadAt)

	if _, err := repository.pool.Exec(context, query, userID, comicID, chapterID); err != nil {
		return fmt.Errorf("postgres: failed to record reading history: %w", err)
	}

	return nil
}
