// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package counter dispatches durable counter updates to database stored procedures.

View counts, vote counts, bookmark counts, and ranks are owned by the database.
The API layer only signals that an event happened; the procedures decide how the
numbers move. Updates run off the request path so a slow or failing counter can
never delay a reader.

Delivery Semantics:

  - Fire-and-forget: Dispatch never blocks the caller and never returns an error.
  - Lossy under pressure: A full queue drops the event with a warning log.
  - Observable: Every failed procedure call is logged with the event payload.
*/
package counter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// # Stored Procedures

// Procedure identifiers owned by the database schema.
const (
	ProcComicView     = "core.increment_comic_view_count"
	ProcChapterView   = "core.increment_chapter_view_count"
	ProcComicVote     = "core.update_comic_vote_count"
	ProcChapterVote   = "core.update_chapter_vote_count"
	ProcComicBookmark = "core.update_comic_bookmark_count"
	ProcComicRank     = "core.update_comic_rank"
)

// execTimeout bounds a single procedure invocation.
const execTimeout = 5 * time.Second

// Event is a single counter update destined for a stored procedure.
type Event struct {
	// Proc is one of the Proc* constants.
	Proc string
	// EntityID is the comic or chapter UUID the procedure operates on.
	EntityID string
}

// # Event Constructors

// ComicView signals one additional view on a comic.
func ComicView(comicID string) Event { return Event{Proc: ProcComicView, EntityID: comicID} }

// ChapterView signals one additional view on a chapter.
func ChapterView(chapterID string) Event { return Event{Proc: ProcChapterView, EntityID: chapterID} }

// ComicVote signals that a comic's vote rows changed.
func ComicVote(comicID string) Event { return Event{Proc: ProcComicVote, EntityID: comicID} }

// ChapterVote signals that a chapter's vote rows changed.
func ChapterVote(chapterID string) Event { return Event{Proc: ProcChapterVote, EntityID: chapterID} }

// ComicBookmark signals that a comic's bookmark rows changed.
func ComicBookmark(comicID string) Event { return Event{Proc: ProcComicBookmark, EntityID: comicID} }

// ComicRank signals that a comic's rank should be recomputed.
func ComicRank(comicID string) Event { return Event{Proc: ProcComicRank, EntityID: comicID} }

// # Dispatcher

// DB is the minimal database surface the dispatcher needs.
// [*pgxpool.Pool] satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Dispatcher runs a single background worker draining a bounded event queue.
type Dispatcher struct {
	db     DB
	logger *slog.Logger
	events chan Event

	closeOnce sync.Once
	done      chan struct{}
}

// NewDispatcher constructs a [Dispatcher] with the given queue capacity.
// Call [Dispatcher.Start] before dispatching.
func NewDispatcher(db DB, logger *slog.Logger, queueSize int) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Dispatcher{
		db:     db,
		logger: logger,
		events: make(chan Event, queueSize),
		done:   make(chan struct{}),
	}
}

// Start launches the worker goroutine. The worker exits once the queue is
// closed and drained.
func (dispatcher *Dispatcher) Start() {
	go func() {
		defer close(dispatcher.done)
		for event := range dispatcher.events {
			dispatcher.apply(event)
		}
	}()
}

// Dispatch enqueues a counter event without blocking.
//
// When the queue is full the event is dropped, traded for request latency.
// The drop is logged so sustained pressure is visible in monitoring.
func (dispatcher *Dispatcher) Dispatch(event Event) {
	select {
	case dispatcher.events <- event:
	default:
		dispatcher.logger.Warn("counter_event_dropped",
			slog.String("proc", event.Proc),
			slog.String("entity_id", event.EntityID),
		)
	}
}

// Close stops accepting events and waits for the queued ones to be applied.
// It is safe to call more than once.
func (dispatcher *Dispatcher) Close() {
	dispatcher.closeOnce.Do(func() {
		close(dispatcher.events)
	})
	<-dispatcher.done
}

// apply invokes the stored procedure for a single event.
// Failures are logged, never propagated: counters are best-effort.
func (dispatcher *Dispatcher) apply(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), execTimeout)
	defer cancel()

	// Proc values are package constants, never user input.
	query := fmt.Sprintf("SELECT %s($1)", event.Proc)

	if _, err := dispatcher.db.Exec(ctx, query, event.EntityID); err != nil {
		dispatcher.logger.Error("counter_update_failed",
			slog.String("proc", event.Proc),
			slog.String("entity_id", event.EntityID),
			slog.Any("error", err),
		)
	}
}
