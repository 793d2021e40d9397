// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hikari/internal/platform/apperr"
	"github.com/taibuivan/hikari/internal/platform/counter"
)

// # Test Doubles

type fakeRepository struct {
	comicExists bool
	createErr   error
	deleteErr   error
	created     []*Bookmark
	deleted     [][2]string
}

func (f *fakeRepository) ListByUser(_ context.Context, _ string, _, _ int) ([]*Bookmark, int, error) {
	return nil, 0, nil
}

func (f *fakeRepository) ListDetailed(_ context.Context, _ string, _, _ int) ([]*DetailedBookmark, int, error) {
	return nil, 0, nil
}

func (f *fakeRepository) ComicExists(_ context.Context, _ string) (bool, error) {
	return f.comicExists, nil
}

func (f *fakeRepository) Create(_ context.Context, bookmark *Bookmark) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, bookmark)
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, userID, comicID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, [2]string{userID, comicID})
	return nil
}

type fakeCounters struct {
	events []counter.Event
}

func (f *fakeCounters) Dispatch(event counter.Event) {
	f.events = append(f.events, event)
}

func newTestService(repository *fakeRepository) (*Service, *fakeCounters) {
	counters := &fakeCounters{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repository, counters, logger), counters
}

const testUserID = "0198b000-0000-7000-8000-000000000001"
const testComicID = "0198b000-0000-7000-8000-000000000002"

// # Add

/*
TestAdd_CreatesBookmarkAndDispatchesCounter verifies the happy path:
a bookmark row plus an asynchronous bookmark count refresh.
*/
func TestAdd_CreatesBookmarkAndDispatchesCounter(t *testing.T) {
	repository := &fakeRepository{comicExists: true}
	service, counters := newTestService(repository)

	bookmark, err := service.Add(context.Background(), testUserID, testComicID)
	require.NoError(t, err)

	assert.NotEmpty(t, bookmark.ID)
	assert.Equal(t, testUserID, bookmark.UserID)
	assert.Equal(t, testComicID, bookmark.ComicID)

	require.Len(t, counters.events, 1)
	assert.Equal(t, counter.ProcComicBookmark, counters.events[0].Proc)
	assert.Equal(t, testComicID, counters.events[0].EntityID)
}

/*
TestAdd_UnknownComic verifies that bookmarking a missing comic is a 404,
not a constraint error.
*/
func TestAdd_UnknownComic(t *testing.T) {
	repository := &fakeRepository{comicExists: false}
	service, counters := newTestService(repository)

	_, err := service.Add(context.Background(), testUserID, testComicID)
	require.Error(t, err)

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.Empty(t, counters.events)
}

/*
TestAdd_DuplicateCarriesComicID verifies the conflict body includes the
conflicting comic_id for client reconciliation.
*/
func TestAdd_DuplicateCarriesComicID(t *testing.T) {
	repository := &fakeRepository{
		comicExists: true,
		createErr: apperr.Conflict("Comic is already bookmarked",
			apperr.FieldError{Field: "comic_id", Message: testComicID}),
	}
	service, counters := newTestService(repository)

	_, err := service.Add(context.Background(), testUserID, testComicID)
	require.Error(t, err)

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, testComicID, appErr.Details[0].Message)
	assert.Empty(t, counters.events, "no counter refresh on conflict")
}

/*
TestAdd_RejectsMalformedComicID verifies UUID validation before any
repository access.
*/
func TestAdd_RejectsMalformedComicID(t *testing.T) {
	service, _ := newTestService(&fakeRepository{comicExists: true})

	_, err := service.Add(context.Background(), testUserID, "not-a-uuid")
	require.Error(t, err)
}

// # Remove

/*
TestRemove_DispatchesCounter verifies removal refreshes the bookmark count.
*/
func TestRemove_DispatchesCounter(t *testing.T) {
	repository := &fakeRepository{}
	service, counters := newTestService(repository)

	require.NoError(t, service.Remove(context.Background(), testUserID, testComicID))

	require.Len(t, repository.deleted, 1)
	require.Len(t, counters.events, 1)
	assert.Equal(t, counter.ProcComicBookmark, counters.events[0].Proc)
}

/*
TestRemove_MissingBookmark verifies a 404 passes through untouched and no
counter refresh is scheduled.
*/
func TestRemove_MissingBookmark(t *testing.T) {
	repository := &fakeRepository{deleteErr: apperr.NotFound("Bookmark")}
	service, counters := newTestService(repository)

	err := service.Remove(context.Background(), testUserID, testComicID)
	require.Error(t, err)
	assert.Empty(t, counters.events)
}
