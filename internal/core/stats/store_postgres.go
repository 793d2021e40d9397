// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// # PostgreSQL Repository

// statsRepository implements the [Repository] interface using pgx.
type statsRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed stats store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &statsRepository{pool: pool}
}

/*
CountRows returns the row count of one table.

Description: The table name is interpolated, never caller-supplied; it
comes from the schema package constants only.
*/
func (repository *statsRepository) CountRows(context context.Context, table string) (int64, error) {

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)

	var count int64
	if err := repository.pool.QueryRow(context, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: failed to count %s rows: %w", table, err)
	}

	return count, nil
}
