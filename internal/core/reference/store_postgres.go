// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hikari/internal/platform/apperr"
	"github.com/taibuivan/hikari/internal/platform/database/schema"
	"github.com/taibuivan/hikari/internal/platform/dberr"
)

// # PostgreSQL Repository

// referenceRepository implements the [Repository] interface using pgx.
type referenceRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed reference store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &referenceRepository{pool: pool}
}

// tableFor resolves a kind to its schema definition. Every kind shares
// the id/name/createdat column layout.
func tableFor(kind Kind) (table, id, name, createdAt string) {
	switch kind {
	case KindGenre:
		genre := schema.CoreGenre
		return genre.Table, genre.ID, genre.Name, genre.CreatedAt
	case KindAuthor:
		author := schema.CoreAuthor
		return author.Table, author.ID, author.Name, author.CreatedAt
	case KindArtist:
		artist := schema.CoreArtist
		return artist.Table, artist.ID, artist.Name, artist.CreatedAt
	default:
		format := schema.CoreFormat
		return format.Table, format.ID, format.Name, format.CreatedAt
	}
}

/*
List returns every entry of a kind, sorted by name for stable pickers.
*/
func (repository *referenceRepository) List(context context.Context, kind Kind) ([]*Entry, error) {

	table, id, name, createdAt := tableFor(kind)
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s ORDER BY %s ASC`,
		id, name, createdAt, table, name)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list %s entries: %w", kind, err)
	}
	defer rows.Close()

	entries := []*Entry{}
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan %s entry: %w", kind, err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

/*
Create persists one entry; names are unique per kind.
*/
func (repository *referenceRepository) Create(context context.Context, kind Kind, entry *Entry) error {

	table, id, name, _ := tableFor(kind)
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`, table, id, name)

	_, err := repository.pool.Exec(context, query, entry.ID, entry.Name)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict(fmt.Sprintf("A %s with this name already exists", kind))
		}
		return fmt.Errorf("postgres: failed to create %s entry: %w", kind, err)
	}

	return nil
}

/*
Delete removes one entry; junction rows cascade.
*/
func (repository *referenceRepository) Delete(context context.Context, kind Kind, id string) error {

	table, idColumn, _, _ := tableFor(kind)
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, idColumn)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete %s entry: %w", kind, err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Entry")
	}

	return nil
}
