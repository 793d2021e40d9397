// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hikari/internal/core/comic"
)

// fakeChapterLister serves canned chapter rows and records the batched call.
type fakeChapterLister struct {
	chapters []comic.ChapterSummary
	err      error

	calls      int
	gotIDs     []string
	gotLimit   int
	lastComics int
}

func (l *fakeChapterLister) ListLatestChapters(_ context.Context, comicIDs []string, limit int) ([]comic.ChapterSummary, error) {
	l.calls++
	l.gotIDs = comicIDs
	l.gotLimit = limit
	if l.err != nil {
		return nil, l.err
	}
	return l.chapters, nil
}

func datePtr(t time.Time) *time.Time { return &t }

/*
TestAttachLatestChapters verifies the single batched fetch, the 2x cap,
the keep-first-two grouping, and the empty slice default.
*/
func TestAttachLatestChapters(t *testing.T) {
	day := func(n int) time.Time {
		return time.Date(2026, 8, n, 0, 0, 0, 0, time.UTC)
	}

	comics := []*comic.Comic{
		{ID: "a"},
		{ID: "b"},
		{ID: "c"},
	}

	// Release-date descending, as the store contract requires. Comic "a"
	// has three recent chapters; only the first two may survive grouping.
	lister := &fakeChapterLister{chapters: []comic.ChapterSummary{
		{ID: "a3", ComicID: "a", Number: 3, ReleaseDate: datePtr(day(30))},
		{ID: "a2", ComicID: "a", Number: 2, ReleaseDate: datePtr(day(29))},
		{ID: "c1", ComicID: "c", Number: 1, ReleaseDate: datePtr(day(28))},
		{ID: "a1", ComicID: "a", Number: 1, ReleaseDate: datePtr(day(27))},
	}}

	err := comic.AttachLatestChapters(context.Background(), lister, comics)
	require.NoError(t, err)

	// One round-trip, capped at twice the page size
	assert.Equal(t, 1, lister.calls)
	assert.Equal(t, []string{"a", "b", "c"}, lister.gotIDs)
	assert.Equal(t, 6, lister.gotLimit)

	// First two chapters kept, in release order
	require.Len(t, comics[0].LatestChapters, 2)
	assert.Equal(t, "a3", comics[0].LatestChapters[0].ID)
	assert.Equal(t, "a2", comics[0].LatestChapters[1].ID)

	// Chapterless comic gets an explicit empty slice, never nil
	require.NotNil(t, comics[1].LatestChapters)
	assert.Empty(t, comics[1].LatestChapters)

	require.Len(t, comics[2].LatestChapters, 1)
	assert.Equal(t, "c1", comics[2].LatestChapters[0].ID)
}

/*
TestAttachLatestChapters_EmptyPage verifies no query is issued for an
empty comic page.
*/
func TestAttachLatestChapters_EmptyPage(t *testing.T) {
	lister := &fakeChapterLister{}

	err := comic.AttachLatestChapters(context.Background(), lister, nil)

	require.NoError(t, err)
	assert.Zero(t, lister.calls)
}

/*
TestAttachLatestChapters_FetchFailure verifies the feed fails as a whole
when the batched chapter query fails. No partial decoration happens.
*/
func TestAttachLatestChapters_FetchFailure(t *testing.T) {
	comics := []*comic.Comic{{ID: "a"}}
	lister := &fakeChapterLister{err: errors.New("connection reset")}

	err := comic.AttachLatestChapters(context.Background(), lister, comics)

	require.Error(t, err)
	assert.Nil(t, comics[0].LatestChapters)
}

/*
TestSortByRecency covers the feed ordering contract: a comic whose newest
chapter is most recent leads, chapterless comics trail ordered by their own
creation date.

Scenario: comic A created recently with an older chapter, comic B created
before A with no chapters, comic C created long ago whose chapter released
today. Expected order: C, A, B.
*/
func TestSortByRecency(t *testing.T) {
	created := func(n int) time.Time {
		return time.Date(2026, 7, n, 0, 0, 0, 0, time.UTC)
	}
	released := func(n int) *time.Time {
		return datePtr(time.Date(2026, 8, n, 0, 0, 0, 0, time.UTC))
	}

	comicA := &comic.Comic{ID: "A", CreatedAt: created(20), LatestChapters: []comic.ChapterSummary{
		{ID: "a1", ReleaseDate: released(5)},
	}}
	comicB := &comic.Comic{ID: "B", CreatedAt: created(10), LatestChapters: []comic.ChapterSummary{}}
	comicC := &comic.Comic{ID: "C", CreatedAt: created(1), LatestChapters: []comic.ChapterSummary{
		{ID: "c9", ReleaseDate: released(30)},
	}}

	page := []*comic.Comic{comicA, comicB, comicC}
	comic.SortByRecency(page)

	assert.Equal(t, []string{"C", "A", "B"}, ids(page))
}

/*
TestSortByRecency_MissingReleaseDate verifies a chapter without a release
date sorts as the epoch: behind every dated chapter but still ahead of
chapterless comics.
*/
func TestSortByRecency_MissingReleaseDate(t *testing.T) {
	dated := &comic.Comic{ID: "dated", LatestChapters: []comic.ChapterSummary{
		{ReleaseDate: datePtr(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))},
	}}
	undated := &comic.Comic{ID: "undated", LatestChapters: []comic.ChapterSummary{
		{ReleaseDate: nil},
	}}
	bare := &comic.Comic{ID: "bare", CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), LatestChapters: []comic.ChapterSummary{}}

	page := []*comic.Comic{bare, undated, dated}
	comic.SortByRecency(page)

	assert.Equal(t, []string{"dated", "undated", "bare"}, ids(page))
}

/*
TestSortByRecency_Idempotent verifies sorting an already sorted page does
not change the order (the feed is deterministic for unchanged inputs).
*/
func TestSortByRecency_Idempotent(t *testing.T) {
	release := func(n int) *time.Time {
		return datePtr(time.Date(2026, 8, n, 0, 0, 0, 0, time.UTC))
	}

	page := []*comic.Comic{
		{ID: "x", LatestChapters: []comic.ChapterSummary{{ReleaseDate: release(20)}}},
		{ID: "y", LatestChapters: []comic.ChapterSummary{{ReleaseDate: release(10)}}},
		{ID: "z", LatestChapters: []comic.ChapterSummary{}},
	}

	comic.SortByRecency(page)
	first := ids(page)

	comic.SortByRecency(page)
	assert.Equal(t, first, ids(page))
}

func ids(comics []*comic.Comic) []string {
	result := make([]string, len(comics))
	for i, c := range comics {
		result[i] = c.ID
	}
	return result
}
