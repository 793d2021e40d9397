// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package curated

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hikari/internal/platform/apperr"
	"github.com/taibuivan/hikari/internal/platform/database/schema"
	"github.com/taibuivan/hikari/internal/platform/dberr"
)

// # PostgreSQL Repository

// curatedRepository implements the [Repository] interface using pgx.
type curatedRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed curated list store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &curatedRepository{pool: pool}
}

// comicSummarySelect lists the comic card columns with the given alias.
func comicSummarySelect(alias string) string {
	comicTable := schema.CoreComic
	columns := []string{
		comicTable.ID, comicTable.Title, comicTable.Slug, comicTable.CoverURL,
		comicTable.Status, comicTable.ViewCount, comicTable.VoteCount, comicTable.Rank,
	}
	qualified := make([]string, len(columns))
	for index, column := range columns {
		qualified[index] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}

/*
ListPopular returns the popular entries of one window, newest first.
*/
func (repository *curatedRepository) ListPopular(context context.Context, window Window) ([]*PopularEntry, error) {

	popularTable := schema.CuratedPopular
	comicTable := schema.CoreComic

	query := fmt.Sprintf(`
		SELECT
			p.%s, p.%s, p.%s, p.%s,
			%s
		FROM %s p
		JOIN %s c ON p.%s = c.%s
		WHERE p.%s = $1
		ORDER BY p.%s DESC`,
		popularTable.ID, popularTable.ComicID, popularTable.Window, popularTable.CreatedAt,
		comicSummarySelect("c"),
		popularTable.Table,
		comicTable.Table, popularTable.ComicID, comicTable.ID,
		popularTable.Window,
		popularTable.CreatedAt)

	rows, err := repository.pool.Query(context, query, string(window))
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list popular entries: %w", err)
	}
	defer rows.Close()

	entries := []*PopularEntry{}
	for rows.Next() {
		var entry PopularEntry
		var comic ComicSummary
		err := rows.Scan(
			&entry.ID, &entry.ComicID, &entry.Window, &entry.CreatedAt,
			&comic.ID, &comic.Title, &comic.Slug, &comic.CoverURL,
			&comic.Status, &comic.ViewCount, &comic.VoteCount, &comic.Rank,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan popular entry: %w", err)
		}
		entry.Comic = &comic
		entries = append(entries, &entry)
	}

	return entries, nil
}

/*
ListRecommended returns every recommended entry, newest first.
*/
func (repository *curatedRepository) ListRecommended(context context.Context) ([]*RecommendedEntry, error) {

	recommendedTable := schema.CuratedRecommended
	comicTable := schema.CoreComic

	query := fmt.Sprintf(`
		SELECT
			r.%s, r.%s, r.%s,
			%s
		FROM %s r
		JOIN %s c ON r.%s = c.%s
		ORDER BY r.%s DESC`,
		recommendedTable.ID, recommendedTable.ComicID, recommendedTable.CreatedAt,
		comicSummarySelect("c"),
		recommendedTable.Table,
		comicTable.Table, recommendedTable.ComicID, comicTable.ID,
		recommendedTable.CreatedAt)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list recommended entries: %w", err)
	}
	defer rows.Close()

	entries := []*RecommendedEntry{}
	for rows.Next() {
		var entry RecommendedEntry
		var comic ComicSummary
		err := rows.Scan(
			&entry.ID, &entry.ComicID, &entry.CreatedAt,
			&comic.ID, &comic.Title, &comic.Slug, &comic.CoverURL,
			&comic.Status, &comic.ViewCount, &comic.VoteCount, &comic.Rank,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan recommended entry: %w", err)
		}
		entry.Comic = &comic
		entries = append(entries, &entry)
	}

	return entries, nil
}

/*
CreatePopular persists a popular entry.
*/
func (repository *curatedRepository) CreatePopular(context context.Context, entry *PopularEntry) error {

	popularTable := schema.CuratedPopular
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)`,
		popularTable.Table, popularTable.ID, popularTable.ComicID, popularTable.Window)

	_, err := repository.pool.Exec(context, query, entry.ID, entry.ComicID, string(entry.Window))
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Comic is already in this popular window",
				apperr.FieldError{Field: "comic_id", Message: entry.ComicID})
		}
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Comic")
		}
		return fmt.Errorf("postgres: failed to create popular entry: %w", err)
	}

	return nil
}

/*
DeletePopular removes a popular entry.
*/
func (repository *curatedRepository) DeletePopular(context context.Context, id string) error {

	popularTable := schema.CuratedPopular
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		popularTable.Table, popularTable.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete popular entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Popular entry")
	}

	return nil
}

/*
CreateRecommended persists a recommended entry.
*/
func (repository *curatedRepository) CreateRecommended(context context.Context, entry *RecommendedEntry) error {

	recommendedTable := schema.CuratedRecommended
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)`,
		recommendedTable.Table, recommendedTable.ID, recommendedTable.ComicID)

	_, err := repository.pool.Exec(context, query, entry.ID, entry.ComicID)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Comic is already recommended",
				apperr.FieldError{Field: "comic_id", Message: entry.ComicID})
		}
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Comic")
		}
		return fmt.Errorf("postgres: failed to create recommended entry: %w", err)
	}

	return nil
}

/*
DeleteRecommended removes a recommended entry.
*/
func (repository *curatedRepository) DeleteRecommended(context context.Context, id string) error {

	recommendedTable := schema.CuratedRecommended
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		recommendedTable.Table, recommendedTable.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete recommended entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Recommended entry")
	}

	return nil
}
