// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comic provides the PostgreSQL implementation for the catalogue's data access.

It utilizes advanced Postgres features to deliver a high-performance discovery experience:
  - JSON Aggregation: Retrieves nested metadata (genres, authors) in a single round-trip.
  - Window Functions: Calculates total result counts without a separate 'COUNT' query.
  - Batched Set Queries: Fetches chapter rows for a whole feed page with one ANY($n) call.
  - ACID Transactions: Ensures atomicity when replacing a comic's junction tables.
*/
package comic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hikari/internal/platform/apperr"
	"github.com/taibuivan/hikari/internal/platform/database/schema"
	"github.com/taibuivan/hikari/internal/platform/dberr"
)

// # PostgreSQL Repository

// comicRepository implements the [Repository] interface using pgx.
type comicRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed comic store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &comicRepository{pool: pool}
}

// comicColumns lists the scalar columns selected for every comic row.
func comicColumns() string {
	c := schema.CoreComic
	return fmt.Sprintf("c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s",
		c.ID, c.Title, c.AltTitle, c.Slug, c.Description, c.CoverURL,
		c.Country, c.Status, c.Year, c.ViewCount, c.VoteCount,
		c.BookmarkCount, c.Rank, c.CreatedAt, c.UpdatedAt,
	)
}

// genreAggregation is the JSON sub-select flattening the genre junction.
func genreAggregation() string {
	return fmt.Sprintf(`COALESCE((
			SELECT json_agg(json_build_object('id', g.%s, 'name', g.%s))
			FROM %s g
			JOIN %s cg ON g.%s = cg.%s
			WHERE cg.%s = c.%s
		), '[]')`,
		schema.CoreGenre.ID, schema.CoreGenre.Name,
		schema.CoreGenre.Table,
		schema.CoreComicGenre.Table, schema.CoreGenre.ID, schema.CoreComicGenre.GenreID,
		schema.CoreComicGenre.ComicID, schema.CoreComic.ID,
	)
}

// chapterCountSubselect counts a comic's chapters inline.
func chapterCountSubselect() string {
	return fmt.Sprintf(`(SELECT COUNT(*) FROM %s ch WHERE ch.%s = c.%s)`,
		schema.CoreChapter.Table, schema.CoreChapter.ComicID, schema.CoreComic.ID,
	)
}

// scanComicScalars destructures the shared scalar column set into a Comic.
func scanComicScalars(row pgx.Row, comic *Comic, extra ...any) error {
	targets := []any{
		&comic.ID, &comic.Title, &comic.TitleAlt, &comic.Slug,
		&comic.Description, &comic.CoverURL, &comic.Country, &comic.Status,
		&comic.Year, &comic.ViewCount, &comic.VoteCount,
		&comic.BookmarkCount, &comic.Rank, &comic.CreatedAt, &comic.UpdatedAt,
	}
	targets = append(targets, extra...)
	return row.Scan(targets...)
}

/*
List returns a filtered, paginated slice of comics and the total count.

Description: A single query backed by Postgres window functions:
  - COUNT(*) OVER() supplies the total without a second round-trip.
  - A JSON sub-select flattens the genre junction into {id, name} pairs.
  - A correlated sub-select supplies the chapter count (0 when none).

The country filter is applied only when the value is in the origin
whitelist; anything else is silently dropped before this method runs.

Parameters:
  - context: context.Context
  - filter: Filter (Search, genre, format, country, sorting)
  - limit: int
  - offset: int

Returns:
  - []*Comic: Slice of hydrated comic entities
  - int: Total count matching filters
  - error: Database execution errors
*/
func (repository *comicRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Comic, int, error) {

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s,
			COUNT(*) OVER() AS total_count,
			%s AS genres,
			%s AS chapter_count
		FROM %s c
		WHERE 1=1
	`,
		comicColumns(),
		genreAggregation(),
		chapterCountSubselect(),
		schema.CoreComic.Table,
	))

	// Title search (title OR alternative title)
	if filter.Search != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND (c.%s ILIKE $%d OR c.%s ILIKE $%d)",
			schema.CoreComic.Title, argID, schema.CoreComic.AltTitle, argID))
		args = append(args, "%"+filter.Search+"%")
		argID++
	}

	// Genre filtering via junction existence
	if filter.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (SELECT 1 FROM %s cg WHERE cg.%s = c.%s AND cg.%s = $%d)`,
			schema.CoreComicGenre.Table, schema.CoreComicGenre.ComicID, schema.CoreComic.ID,
			schema.CoreComicGenre.GenreID, argID))
		args = append(args, filter.Genre)
		argID++
	}

	// Format filtering via junction existence
	if filter.Format != "" {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (SELECT 1 FROM %s cf WHERE cf.%s = c.%s AND cf.%s = $%d)`,
			schema.CoreComicFormat.Table, schema.CoreComicFormat.ComicID, schema.CoreComic.ID,
			schema.CoreComicFormat.FormatID, argID))
		args = append(args, filter.Format)
		argID++
	}

	// Origin country, whitelist enforced upstream
	if Country(filter.Country).IsValid() {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s = $%d", schema.CoreComic.Country, argID))
		args = append(args, filter.Country)
		argID++
	}

	// Apply sorting (whitelisted columns only, unknown keys fall back)
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s, c.%s DESC",
		sortColumn(filter.Sort), sortDirection(filter.Order), schema.CoreComic.ID))

	// Pagination injection
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	// Query Execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list comics: %w", err)
	}
	defer rows.Close()

	var comics []*Comic
	var totalCount int

	for rows.Next() {
		comic := &Comic{LatestChapters: []ChapterSummary{}}
		var genresJSON []byte

		err := scanComicScalars(rows, comic, &totalCount, &genresJSON, &comic.ChapterCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan comic: %w", err)
		}

		if err := json.Unmarshal(genresJSON, &comic.Genres); err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to unmarshal genres: %w", err)
		}

		comics = append(comics, comic)
	}

	return comics, totalCount, nil
}

// findOne resolves a comic by an arbitrary unique column, with all four
// metadata junctions flattened to JSON in the same round-trip.
func (repository *comicRepository) findOne(context context.Context, column string, value string) (*Comic, error) {
	namePair := func(entityTable, entityID, entityName, junction, junctionComic, junctionEntity string) string {
		return fmt.Sprintf(`COALESCE((
				SELECT json_agg(json_build_object('id', e.%s, 'name', e.%s))
				FROM %s e
				JOIN %s j ON e.%s = j.%s
				WHERE j.%s = c.%s
			), '[]')`,
			entityID, entityName, entityTable,
			junction, entityID, junctionEntity,
			junctionComic, schema.CoreComic.ID,
		)
	}

	query := fmt.Sprintf(`
		SELECT %s,
			%s AS genres,
			%s AS authors,
			%s AS artists,
			%s AS formats,
			%s AS chapter_count
		FROM %s c
		WHERE c.%s = $1
	`,
		comicColumns(),
		genreAggregation(),
		namePair(schema.CoreAuthor.Table, schema.CoreAuthor.ID, schema.CoreAuthor.Name, schema.CoreComicAuthor.Table, schema.CoreComicAuthor.ComicID, schema.CoreComicAuthor.AuthorID),
		namePair(schema.CoreArtist.Table, schema.CoreArtist.ID, schema.CoreArtist.Name, schema.CoreComicArtist.Table, schema.CoreComicArtist.ComicID, schema.CoreComicArtist.ArtistID),
		namePair(schema.CoreFormat.Table, schema.CoreFormat.ID, schema.CoreFormat.Name, schema.CoreComicFormat.Table, schema.CoreComicFormat.ComicID, schema.CoreComicFormat.FormatID),
		chapterCountSubselect(),
		schema.CoreComic.Table,
		column,
	)

	comic := &Comic{LatestChapters: []ChapterSummary{}}
	var genresJSON, authorsJSON, artistsJSON, formatsJSON []byte

	row := repository.pool.QueryRow(context, query, value)
	err := scanComicScalars(row, comic, &genresJSON, &authorsJSON, &artistsJSON, &formatsJSON, &comic.ChapterCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comic")
		}
		return nil, fmt.Errorf("postgres: failed to find comic: %w", err)
	}

	for _, pair := range []struct {
		raw    []byte
		target *[]NameRef
	}{
		{genresJSON, &comic.Genres},
		{authorsJSON, &comic.Authors},
		{artistsJSON, &comic.Artists},
		{formatsJSON, &comic.Formats},
	} {
		if err := json.Unmarshal(pair.raw, pair.target); err != nil {
			return nil, fmt.Errorf("postgres: failed to unmarshal metadata: %w", err)
		}
	}

	return comic, nil
}

/*
FindByID retrieves a comic record by its primary key.

Description: Single-row lookup with genres, authors, artists, and formats
aggregated to JSON in the same query, avoiding the N+1 pattern.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Comic: The fully hydrated comic entity
  - error: apperr.NotFound if the comic does not exist
*/
func (repository *comicRepository) FindByID(context context.Context, id string) (*Comic, error) {
	return repository.findOne(context, schema.CoreComic.ID, id)
}

/*
FindBySlug retrieves a comic record by its unique SEO slug.
*/
func (repository *comicRepository) FindBySlug(context context.Context, slug string) (*Comic, error) {
	return repository.findOne(context, schema.CoreComic.Slug, slug)
}

/*
Create persists a new comic and its junction rows in one transaction.

Parameters:
  - context: context.Context
  - comic: *Comic (ID, scalars, and junction ID sets populated)

Returns:
  - error: Conflict on duplicate slug, validation on unknown junction IDs
*/
func (repository *comicRepository) Create(context context.Context, comic *Comic) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	c := schema.CoreComic
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, c.Table, c.ID, c.Title, c.AltTitle, c.Slug, c.Description, c.CoverURL, c.Country, c.Status, c.Year)

	_, err = transaction.Exec(context, insertQuery,
		comic.ID, comic.Title, comic.TitleAlt, comic.Slug,
		comic.Description, comic.CoverURL, comic.Country, comic.Status, comic.Year,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A comic with this slug already exists")
		}
		return fmt.Errorf("postgres: failed to insert comic: %w", err)
	}

	if err := insertJunctions(context, transaction, comic.ID, Metadata{
		GenreIDs:  comic.GenreIDs,
		AuthorIDs: comic.AuthorIDs,
		ArtistIDs: comic.ArtistIDs,
		FormatIDs: comic.FormatIDs,
	}); err != nil {
		return err
	}

	return transaction.Commit(context)
}

/*
Update persists changes to a comic's mutable scalar fields.

Description: Builds a dynamic SET clause so zero-valued input fields are
left untouched (partial update semantics).
*/
func (repository *comicRepository) Update(context context.Context, comic *Comic) error {
	c := schema.CoreComic

	var assignments []string
	var args []any
	argID := 1

	appendSet := func(column string, value any) {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if comic.Title != "" {
		appendSet(c.Title, comic.Title)
	}
	if comic.TitleAlt != "" {
		appendSet(c.AltTitle, comic.TitleAlt)
	}
	if comic.Slug != "" {
		appendSet(c.Slug, comic.Slug)
	}
	if comic.Description != "" {
		appendSet(c.Description, comic.Description)
	}
	if comic.CoverURL != "" {
		appendSet(c.CoverURL, comic.CoverURL)
	}
	if comic.Country != "" {
		appendSet(c.Country, comic.Country)
	}
	if comic.Status != "" {
		appendSet(c.Status, comic.Status)
	}
	if comic.Year != nil {
		appendSet(c.Year, *comic.Year)
	}

	if len(assignments) == 0 {
		return nil
	}

	assignments = append(assignments, fmt.Sprintf("%s = NOW()", c.UpdatedAt))

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		c.Table, strings.Join(assignments, ", "), c.ID, argID)
	args = append(args, comic.ID)

	tag, err := repository.pool.Exec(context, query, args...)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("A comic with this slug already exists")
		}
		return fmt.Errorf("postgres: failed to update comic: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comic")
	}

	return nil
}

/*
Delete removes a comic row. Chapters, pages, junction rows, bookmarks,
votes, and comments cascade at the schema level.
*/
func (repository *comicRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CoreComic.Table, schema.CoreComic.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete comic: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comic")
	}

	return nil
}

/*
ReplaceMetadata atomically swaps a comic's four junction sets.

Description: Inside one transaction: verify the comic exists, delete every
existing junction row, then reinsert the submitted sets. A concurrent read
sees either the old complete sets or the new complete sets, never a mix.
*/
func (repository *comicRepository) ReplaceMetadata(context context.Context, comicID string, metadata Metadata) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	// Existence check inside the transaction
	var exists bool
	existsQuery := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)",
		schema.CoreComic.Table, schema.CoreComic.ID)
	if err := transaction.QueryRow(context, existsQuery, comicID).Scan(&exists); err != nil {
		return fmt.Errorf("postgres: failed to check comic existence: %w", err)
	}
	if !exists {
		return apperr.NotFound("Comic")
	}

	// Delete-then-reinsert keeps the junction tables an exact mirror of the
	// submitted sets, including removals.
	junctionTables := []struct {
		table   string
		comicID string
	}{
		{schema.CoreComicGenre.Table, schema.CoreComicGenre.ComicID},
		{schema.CoreComicAuthor.Table, schema.CoreComicAuthor.ComicID},
		{schema.CoreComicArtist.Table, schema.CoreComicArtist.ComicID},
		{schema.CoreComicFormat.Table, schema.CoreComicFormat.ComicID},
	}
	for _, junction := range junctionTables {
		deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", junction.table, junction.comicID)
		if _, err := transaction.Exec(context, deleteQuery, comicID); err != nil {
			return fmt.Errorf("postgres: failed to clear junction %s: %w", junction.table, err)
		}
	}

	if err := insertJunctions(context, transaction, comicID, metadata); err != nil {
		return err
	}

	return transaction.Commit(context)
}

// insertJunctions inserts the four junction ID sets for a comic.
func insertJunctions(context context.Context, transaction pgx.Tx, comicID string, metadata Metadata) error {
	sets := []struct {
		table    string
		comicCol string
		refCol   string
		ids      []string
	}{
		{schema.CoreComicGenre.Table, schema.CoreComicGenre.ComicID, schema.CoreComicGenre.GenreID, metadata.GenreIDs},
		{schema.CoreComicAuthor.Table, schema.CoreComicAuthor.ComicID, schema.CoreComicAuthor.AuthorID, metadata.AuthorIDs},
		{schema.CoreComicArtist.Table, schema.CoreComicArtist.ComicID, schema.CoreComicArtist.ArtistID, metadata.ArtistIDs},
		{schema.CoreComicFormat.Table, schema.CoreComicFormat.ComicID, schema.CoreComicFormat.FormatID, metadata.FormatIDs},
	}

	for _, set := range sets {
		query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)", set.table, set.comicCol, set.refCol)
		for _, refID := range set.ids {
			if _, err := transaction.Exec(context, query, comicID, refID); err != nil {
				if dberr.IsUniqueViolation(err) {
					return apperr.Conflict("Duplicate metadata reference")
				}
				return apperr.ValidationError("Unknown metadata reference: " + refID)
			}
		}
	}

	return nil
}

/*
ListLatestChapters fetches the most recent chapters across a set of comics
in one round-trip.

Description: One query with comicid = ANY($1), ordered by release date
descending (nulls last) and capped at the provided limit. Grouping per
comic happens in [AttachLatestChapters], not here.

Parameters:
  - context: context.Context
  - comicIDs: []string (The feed page's comic UUIDs)
  - limit: int (Row cap, typically 2x the page size)

Returns:
  - []ChapterSummary: Release-date ordered chapter rows, ComicID populated
  - error: Query failures
*/
func (repository *comicRepository) ListLatestChapters(context context.Context, comicIDs []string, limit int) ([]ChapterSummary, error) {
	ch := schema.CoreChapter
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s DESC NULLS LAST, %s DESC
		LIMIT $2
	`,
		ch.ID, ch.ComicID, ch.Number, ch.Title, ch.ReleaseDate, ch.ViewCount,
		ch.Table,
		ch.ComicID,
		ch.ReleaseDate, ch.ID,
	)

	rows, err := repository.pool.Query(context, query, comicIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list latest chapters: %w", err)
	}
	defer rows.Close()

	var chapters []ChapterSummary
	for rows.Next() {
		var chapter ChapterSummary
		err := rows.Scan(&chapter.ID, &chapter.ComicID, &chapter.Number,
			&chapter.Title, &chapter.ReleaseDate, &chapter.ViewCount)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	return chapters, nil
}

/*
ListChapters returns one page of a comic's chapters with the total count.
*/
func (repository *comicRepository) ListChapters(context context.Context, comicID, sort, order string, limit, offset int) ([]ChapterSummary, int, error) {
	ch := schema.CoreChapter

	sortCol := ch.Number
	if sort == "release_date" {
		sortCol = ch.ReleaseDate
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s,
			COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s %s, %s DESC
		LIMIT $2 OFFSET $3
	`,
		ch.ID, ch.Number, ch.Title, ch.ReleaseDate, ch.ViewCount,
		ch.Table,
		ch.ComicID,
		sortCol, sortDirection(order), ch.ID,
	)

	rows, err := repository.pool.Query(context, query, comicID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres: failed to list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []ChapterSummary
	var totalCount int
	for rows.Next() {
		var chapter ChapterSummary
		err := rows.Scan(&chapter.ID, &chapter.Number, &chapter.Title,
			&chapter.ReleaseDate, &chapter.ViewCount, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres: failed to scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	return chapters, totalCount, nil
}

/*
UserState returns the per-user bookmark/vote flags and last read chapter
for a comic detail response, in a single query.
*/
func (repository *comicRepository) UserState(context context.Context, comicID, userID string) (*UserState, error) {
	bookmark := schema.LibraryBookmark
	vote := schema.LibraryComicVote
	history := schema.LibraryReadingHistory
	ch := schema.CoreChapter

	query := fmt.Sprintf(`
		SELECT
			EXISTS(SELECT 1 FROM %s b WHERE b.%s = $1 AND b.%s = $2) AS is_bookmarked,
			EXISTS(SELECT 1 FROM %s v WHERE v.%s = $1 AND v.%s = $2) AS is_voted,
			last.id, last.chapternumber, last.title, last.releasedate
		FROM (SELECT 1) AS one
		LEFT JOIN LATERAL (
			SELECT c.%s AS id, c.%s AS chapternumber, c.%s AS title, c.%s AS releasedate
			FROM %s h
			JOIN %s c ON c.%s = h.%s
			WHERE h.%s = $1 AND h.%s = $2
			ORDER BY h.%s DESC
			LIMIT 1
		) last ON TRUE
	`,
		bookmark.Table, bookmark.ComicID, bookmark.UserID,
		vote.Table, vote.ComicID, vote.UserID,
		ch.ID, ch.Number, ch.Title, ch.ReleaseDate,
		history.Table,
		ch.Table, ch.ID, history.ChapterID,
		history.ComicID, history.UserID,
		history.ReadAt,
	)

	state := &UserState{}
	var lastID, lastTitle *string
	var lastNumber *float64
	var lastRelease *time.Time

	row := repository.pool.QueryRow(context, query, comicID, userID)
	if err := row.Scan(&state.IsBookmarked, &state.IsVoted, &lastID, &lastNumber, &lastTitle, &lastRelease); err != nil {
		return nil, fmt.Errorf("postgres: failed to load user state: %w", err)
	}

	if lastID != nil {
		state.LastReadChapter = &ChapterSummary{
			ID:          *lastID,
			ReleaseDate: lastRelease,
		}
		if lastNumber != nil {
			state.LastReadChapter.Number = *lastNumber
		}
		if lastTitle != nil {
			state.LastReadChapter.Title = *lastTitle
		}
	}

	return state, nil
}

/*
TopByViews returns the highest view-count comics for the discover rail.
*/
func (repository *comicRepository) TopByViews(context context.Context, limit int) ([]*Comic, error) {
	return repository.topBy(context, schema.CoreComic.ViewCount, limit)
}

/*
TopByRank returns the best-ranked comics for the discover rail.
*/
func (repository *comicRepository) TopByRank(context context.Context, limit int) ([]*Comic, error) {
	return repository.topBy(context, schema.CoreComic.Rank, limit)
}

// topBy runs the shared discover-rail query ordered by the given metric.
func (repository *comicRepository) topBy(context context.Context, metricColumn string, limit int) ([]*Comic, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			%s AS genres,
			%s AS chapter_count
		FROM %s c
		ORDER BY c.%s DESC, c.%s DESC
		LIMIT $1
	`,
		comicColumns(),
		genreAggregation(),
		chapterCountSubselect(),
		schema.CoreComic.Table,
		metricColumn, schema.CoreComic.ID,
	)

	rows, err := repository.pool.Query(context, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list top comics: %w", err)
	}
	defer rows.Close()

	var comics []*Comic
	for rows.Next() {
		comic := &Comic{LatestChapters: []ChapterSummary{}}
		var genresJSON []byte

		if err := scanComicScalars(rows, comic, &genresJSON, &comic.ChapterCount); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan comic: %w", err)
		}
		if err := json.Unmarshal(genresJSON, &comic.Genres); err != nil {
			return nil, fmt.Errorf("postgres: failed to unmarshal genres: %w", err)
		}

		comics = append(comics, comic)
	}

	return comics, nil
}

// # Sorting Helpers

// sortColumn maps a public sort key to its backing column.
// Unknown keys fall back to rank, the default catalogue order.
func sortColumn(sort string) string {
	c := schema.CoreComic
	switch sort {
	case SortTitle:
		return "c." + c.Title
	case SortCreatedDate:
		return "c." + c.CreatedAt
	case SortViewCount:
		return "c." + c.ViewCount
	case SortVoteCount:
		return "c." + c.VoteCount
	case SortBookmarkCount:
		return "c." + c.BookmarkCount
	default:
		return "c." + c.Rank
	}
}

// sortDirection normalizes the order parameter; anything but "asc" is DESC.
func sortDirection(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}
