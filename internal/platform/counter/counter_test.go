// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package counter_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hikari/internal/platform/counter"
)

// fakeDB records every Exec call and optionally fails them.
type fakeDB struct {
	mu      sync.Mutex
	queries []string
	args    [][]any
	err     error
}

func (db *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.queries = append(db.queries, sql)
	db.args = append(db.args, args)
	return pgconn.CommandTag{}, db.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestDispatcher_AppliesEvents verifies that dispatched events reach the
database as stored procedure calls with the entity ID bound.
*/
func TestDispatcher_AppliesEvents(t *testing.T) {
	db := &fakeDB{}
	dispatcher := counter.NewDispatcher(db, discardLogger(), 16)
	dispatcher.Start()

	dispatcher.Dispatch(counter.ComicView("comic-1"))
	dispatcher.Dispatch(counter.ComicVote("comic-1"))
	dispatcher.Dispatch(counter.ChapterView("chapter-9"))

	// Close drains the queue before returning.
	dispatcher.Close()

	require.Len(t, db.queries, 3)
	assert.Equal(t, "SELECT core.increment_comic_view_count($1)", db.queries[0])
	assert.Equal(t, "SELECT core.update_comic_vote_count($1)", db.queries[1])
	assert.Equal(t, "SELECT core.increment_chapter_view_count($1)", db.queries[2])
	assert.Equal(t, []any{"comic-1"}, db.args[0])
	assert.Equal(t, []any{"chapter-9"}, db.args[2])
}

/*
TestDispatcher_FailuresAreSwallowed verifies that a failing procedure never
propagates beyond the worker: the dispatcher keeps draining the queue.
*/
func TestDispatcher_FailuresAreSwallowed(t *testing.T) {
	db := &fakeDB{err: errors.New("connection refused")}
	dispatcher := counter.NewDispatcher(db, discardLogger(), 16)
	dispatcher.Start()

	dispatcher.Dispatch(counter.ComicBookmark("comic-2"))
	dispatcher.Dispatch(counter.ComicRank("comic-2"))
	dispatcher.Close()

	// Both events were still attempted.
	assert.Len(t, db.queries, 2)
}

/*
TestDispatcher_DropsWhenFull verifies the non-blocking contract: with no
worker running and a full queue, Dispatch returns immediately.
*/
func TestDispatcher_DropsWhenFull(t *testing.T) {
	db := &fakeDB{}
	dispatcher := counter.NewDispatcher(db, discardLogger(), 1)
	// Worker intentionally not started; the queue holds one event.

	dispatcher.Dispatch(counter.ComicView("comic-3"))
	dispatcher.Dispatch(counter.ComicView("comic-4")) // dropped, must not block

	dispatcher.Start()
	dispatcher.Close()

	require.Len(t, db.queries, 1)
	assert.Equal(t, []any{"comic-3"}, db.args[0])
}
