// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package vote

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
	comicExists    bool
	chapterExists  bool
	comicVoteErr   error
	chapterVoteErr error
	comicVotes     []*Vote
	chapterVotes   []*Vote
	deletions      []string
}

func (f *fakeRepository) ComicExists(_ context.Context, _ string) (bool, error) {
	return f.comicExists, nil
}

func (f *fakeRepository) ChapterExists(_ context.Context, _ string) (bool, error) {
	return f.chapterExists, nil
}

func (f *fakeRepository) CreateComicVote(_ context.Context, vote *Vote) error {
	if f.comicVoteErr != nil {
		return f.comicVoteErr
	}
	f.comicVotes = append(f.comicVotes, vote)
	return nil
}

func (f *fakeRepository) CreateChapterVote(_ context.Context, vote *Vote) error {
	if f.chapterVoteErr != nil {
		return f.chapterVoteErr
	}
	f.chapterVotes = append(f.chapterVotes, vote)
	return nil
}

func (f *fakeRepository) DeleteComicVote(_ context.Context, _, comicID string) error {
	f.deletions = append(f.deletions, "comic:"+comicID)
	return nil
}

func (f *fakeRepository) DeleteChapterVote(_ context.Context, _, chapterID string) error {
	f.deletions = append(f.deletions, "chapter:"+chapterID)
	return nil
}

type fakeCounters struct {
	events []counter.Event
}

func (f *fakeCounters) Dispatch(event counter.Event) {
	f.events = append(f.events, event)
}

func (f *fakeCounters) procs() []string {
	procs := make([]string, 0, len(f.events))
	for _, event := range f.events {
		procs = append(procs, event.Proc)
	}
	return procs
}

func newTestService(repository *fakeRepository) (*Service, *fakeCounters) {
	counters := &fakeCounters{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repository, counters, logger), counters
}

const testUserID = "0198c000-0000-7000-8000-000000000001"
const testComicID = "0198c000-0000-7000-8000-000000000002"
const testChapterID = "0198c000-0000-7000-8000-000000000003"

// # Casting

/*
TestCast_ExactlyOneTarget verifies that naming both or neither target is
rejected before any repository access.
*/
func TestCast_ExactlyOneTarget(t *testing.T) {
	repository := &fakeRepository{comicExists: true, chapterExists: true}
	service, counters := newTestService(repository)

	_, err := service.Cast(context.Background(), testUserID, "", "")
	require.Error(t, err, "neither target")

	_, err = service.Cast(context.Background(), testUserID, testComicID, testChapterID)
	require.Error(t, err, "both targets")

	assert.Empty(t, repository.comicVotes)
	assert.Empty(t, repository.chapterVotes)
	assert.Empty(t, counters.events)
}

/*
TestCast_ComicVoteRefreshesRank verifies a comic vote schedules both the
vote count and derived rank refreshes.
*/
func TestCast_ComicVoteRefreshesRank(t *testing.T) {
	repository := &fakeRepository{comicExists: true}
	service, counters := newTestService(repository)

	vote, err := service.Cast(context.Background(), testUserID, testComicID, "")
	require.NoError(t, err)

	assert.Equal(t, TargetComic, vote.Target())
	require.Len(t, repository.comicVotes, 1)
	assert.Equal(t, []string{counter.ProcComicVote, counter.ProcComicRank}, counters.procs())
}

/*
TestCast_ChapterVote verifies chapter votes only refresh the chapter
counter.
*/
func TestCast_ChapterVote(t *testing.T) {
	repository := &fakeRepository{chapterExists: true}
	service, counters := newTestService(repository)

	vote, err := service.Cast(context.Background(), testUserID, "", testChapterID)
	require.NoError(t, err)

	assert.Equal(t, TargetChapter, vote.Target())
	require.Len(t, repository.chapterVotes, 1)
	assert.Equal(t, []string{counter.ProcChapterVote}, counters.procs())
}

/*
TestCast_MissingTarget verifies 404 for votes on unknown entities.
*/
func TestCast_MissingTarget(t *testing.T) {
	service, counters := newTestService(&fakeRepository{})

	_, err := service.Cast(context.Background(), testUserID, testComicID, "")
	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.Empty(t, counters.events)
}

/*
TestCast_DuplicateCarriesConflictingID verifies the 409 detail payload.
*/
func TestCast_DuplicateCarriesConflictingID(t *testing.T) {
	repository := &fakeRepository{
		comicExists: true,
		comicVoteErr: apperr.Conflict("Comic is already voted",
			apperr.FieldError{Field: "comic_id", Message: testComicID}),
	}
	service, counters := newTestService(repository)

	_, err := service.Cast(context.Background(), testUserID, testComicID, "")
	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, testComicID, appErr.Details[0].Message)
	assert.Empty(t, counters.events, "no counter refresh on conflict")
}

// # Retracting

/*
TestRetract_MirrorsCounterDispatch verifies retraction schedules the same
refreshes as casting.
*/
func TestRetract_MirrorsCounterDispatch(t *testing.T) {
	repository := &fakeRepository{}
	service, counters := newTestService(repository)

	require.NoError(t, service.Retract(context.Background(), testUserID, testComicID, TargetComic))
	assert.Equal(t, []string{counter.ProcComicVote, counter.ProcComicRank}, counters.procs())

	counters.events = nil
	require.NoError(t, service.Retract(context.Background(), testUserID, testChapterID, TargetChapter))
	assert.Equal(t, []string{counter.ProcChapterVote}, counters.procs())
}

/*
TestRetract_UnknownType verifies type validation.
*/
func TestRetract_UnknownType(t *testing.T) {
	repository := &fakeRepository{}
	service, _ := newTestService(repository)

	err := service.Retract(context.Background(), testUserID, testComicID, "series")
	require.Error(t, err)
	assert.Empty(t, repository.deletions)
}
