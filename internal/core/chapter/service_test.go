// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hikari/internal/platform/counter"
)

// # Test Doubles

type fakeRepository struct {
	chapters      map[string]*Chapter
	pages         map[string][]*Page
	maxPage       int
	batched       [][]*Chapter
	inserted      []*Page
	readings      []string
	swapRequests  [][2]int
	deletedPages  []int
	userState     *UserState
	comicRef      *ComicRef
	previous      *NavEntry
	next          *NavEntry
	failUserState error
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*Chapter, error) {
	if chapter, ok := f.chapters[id]; ok {
		return chapter, nil
	}
	return nil, errNotFound
}

func (f *fakeRepository) ComicRef(_ context.Context, _ string) (*ComicRef, error) {
	return f.comicRef, nil
}

func (f *fakeRepository) Neighbors(_ context.Context, _ string, _ float64) (*NavEntry, *NavEntry, error) {
	return f.previous, f.next, nil
}

func (f *fakeRepository) Create(_ context.Context, chapter *Chapter) error {
	if f.chapters == nil {
		f.chapters = map[string]*Chapter{}
	}
	f.chapters[chapter.ID] = chapter
	return nil
}

func (f *fakeRepository) CreateBatch(_ context.Context, chapters []*Chapter) error {
	f.batched = append(f.batched, chapters)
	return nil
}

func (f *fakeRepository) Update(_ context.Context, _ *Chapter) error { return nil }
func (f *fakeRepository) Delete(_ context.Context, _ string) error   { return nil }

func (f *fakeRepository) ListPages(_ context.Context, chapterID string) ([]*Page, error) {
	return f.pages[chapterID], nil
}

func (f *fakeRepository) MaxPageNumber(_ context.Context, _ string) (int, error) {
	return f.maxPage, nil
}

func (f *fakeRepository) InsertPages(_ context.Context, pages []*Page) error {
	f.inserted = append(f.inserted, pages...)
	return nil
}

// DeletePage mirrors the store contract: the row is removed and every
// following page shifts down by one, keeping the sequence contiguous.
func (f *fakeRepository) DeletePage(_ context.Context, chapterID string, pageNumber int) error {
	kept := make([]*Page, 0, len(f.pages[chapterID]))
	found := false
	for _, page := range f.pages[chapterID] {
		if page.PageNumber == pageNumber {
			found = true
			continue
		}
		if page.PageNumber > pageNumber {
			page.PageNumber--
		}
		kept = append(kept, page)
	}
	if !found {
		return errNotFound
	}
	f.pages[chapterID] = kept
	f.deletedPages = append(f.deletedPages, pageNumber)
	return nil
}

func (f *fakeRepository) SwapPages(_ context.Context, _ string, first, second int) error {
	f.swapRequests = append(f.swapRequests, [2]int{first, second})
	return nil
}

func (f *fakeRepository) UserState(_ context.Context, _, _ string) (*UserState, error) {
	if f.failUserState != nil {
		return nil, f.failUserState
	}
	return f.userState, nil
}

func (f *fakeRepository) RecordReading(_ context.Context, userID, _, _ string) error {
	f.readings = append(f.readings, userID)
	return nil
}

var errNotFound = assert.AnError

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

const testChapterID = "0198a000-0000-7000-8000-000000000001"
const testComicID = "0198a000-0000-7000-8000-000000000002"

func seededRepository() *fakeRepository {
	return &fakeRepository{
		chapters: map[string]*Chapter{
			testChapterID: {ID: testChapterID, ComicID: testComicID, Number: 3},
		},
		pages: map[string][]*Page{
			testChapterID: {
				{ID: "p1", ChapterID: testChapterID, PageNumber: 1},
				{ID: "p2", ChapterID: testChapterID, PageNumber: 2},
			},
		},
		comicRef:  &ComicRef{ID: testComicID, Title: "Solo Farming"},
		userState: &UserState{IsVoted: true},
	}
}

// # Bulk Range Creation

/*
TestCreateRange_InclusiveBounds verifies that the range 5..8 creates
exactly four chapters numbered 5, 6, 7, 8 sharing the release date.
*/
func TestCreateRange_InclusiveBounds(t *testing.T) {
	repository := seededRepository()
	service, _ := newTestService(repository)

	release := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	chapters, err := service.CreateRange(context.Background(), testComicID, 5, 8, &release)
	require.NoError(t, err)

	require.Len(t, chapters, 4)
	require.Len(t, repository.batched, 1, "expected one atomic batch")

	for index, expected := range []float64{5, 6, 7, 8} {
		assert.Equal(t, expected, chapters[index].Number)
		assert.Equal(t, testComicID, chapters[index].ComicID)
		require.NotNil(t, chapters[index].ReleaseDate)
		assert.Equal(t, release, *chapters[index].ReleaseDate)
		assert.NotEmpty(t, chapters[index].ID)
	}
}

/*
TestCreateRange_SingleChapter verifies that start == end creates one row.
*/
func TestCreateRange_SingleChapter(t *testing.T) {
	repository := seededRepository()
	service, _ := newTestService(repository)

	chapters, err := service.CreateRange(context.Background(), testComicID, 12, 12, nil)
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, float64(12), chapters[0].Number)
}

/*
TestCreateRange_InvertedRange verifies that end < start is rejected
before any write happens.
*/
func TestCreateRange_InvertedRange(t *testing.T) {
	repository := seededRepository()
	service, _ := newTestService(repository)

	_, err := service.CreateRange(context.Background(), testComicID, 8, 5, nil)
	require.Error(t, err)
	assert.Empty(t, repository.batched)
}

// # Page Management

/*
TestAddPages_AppendsAfterCurrentMax verifies that new pages continue the
sequence: three URLs on a ten page chapter become pages 11, 12, 13.
*/
func TestAddPages_AppendsAfterCurrentMax(t *testing.T) {
	repository := seededRepository()
	repository.maxPage = 10
	service, _ := newTestService(repository)

	pages, err := service.AddPages(context.Background(), testChapterID, []string{
		"https://img.hikari.app/a.jpg",
		"https://img.hikari.app/b.jpg",
		"https://img.hikari.app/c.jpg",
	})
	require.NoError(t, err)

	require.Len(t, pages, 3)
	assert.Equal(t, 11, pages[0].PageNumber)
	assert.Equal(t, 12, pages[1].PageNumber)
	assert.Equal(t, 13, pages[2].PageNumber)
	assert.Len(t, repository.inserted, 3)
}

/*
TestAddPages_RejectsEmptyList verifies the empty submission guard.
*/
func TestAddPages_RejectsEmptyList(t *testing.T) {
	service, _ := newTestService(seededRepository())

	_, err := service.AddPages(context.Background(), testChapterID, nil)
	require.Error(t, err)
}

/*
TestAddPages_RejectsRelativeURL verifies that page URLs must be absolute.
*/
func TestAddPages_RejectsRelativeURL(t *testing.T) {
	service, _ := newTestService(seededRepository())

	_, err := service.AddPages(context.Background(), testChapterID, []string{"/images/a.jpg"})
	require.Error(t, err)
}

/*
TestMovePage_SwapsWithNeighbor verifies the direction to neighbor mapping.
*/
func TestMovePage_SwapsWithNeighbor(t *testing.T) {
	repository := seededRepository()
	service, _ := newTestService(repository)

	require.NoError(t, service.MovePage(context.Background(), testChapterID, 3, MoveUp))
	require.NoError(t, service.MovePage(context.Background(), testChapterID, 3, MoveDown))

	require.Len(t, repository.swapRequests, 2)
	assert.Equal(t, [2]int{3, 2}, repository.swapRequests[0])
	assert.Equal(t, [2]int{3, 4}, repository.swapRequests[1])
}

/*
TestMovePage_FirstPageCannotMoveUp verifies the edge guard at page one.
*/
func TestMovePage_FirstPageCannotMoveUp(t *testing.T) {
	repository := seededRepository()
	service, _ := newTestService(repository)

	err := service.MovePage(context.Background(), testChapterID, 1, MoveUp)
	require.Error(t, err)
	assert.Empty(t, repository.swapRequests)
}

/*
TestDeletePage_RenumbersFollowingPages verifies the contiguity contract:
deleting page 2 of a five-page chapter leaves pages 1..4 with the
surviving images in their original relative order.
*/
func TestDeletePage_RenumbersFollowingPages(t *testing.T) {
	repository := seededRepository()
	repository.pages[testChapterID] = []*Page{
		{ID: "p1", ChapterID: testChapterID, PageNumber: 1},
		{ID: "p2", ChapterID: testChapterID, PageNumber: 2},
		{ID: "p3", ChapterID: testChapterID, PageNumber: 3},
		{ID: "p4", ChapterID: testChapterID, PageNumber: 4},
		{ID: "p5", ChapterID: testChapterID, PageNumber: 5},
	}
	service, _ := newTestService(repository)

	require.NoError(t, service.DeletePage(context.Background(), testChapterID, 2))

	pages, err := service.ListPages(context.Background(), testChapterID)
	require.NoError(t, err)
	require.Len(t, pages, 4)

	for index, wantID := range []string{"p1", "p3", "p4", "p5"} {
		assert.Equal(t, wantID, pages[index].ID)
		assert.Equal(t, index+1, pages[index].PageNumber)
	}
}

/*
TestDeletePage_RejectsNonPositiveNumber verifies the lower-bound guard.
*/
func TestDeletePage_RejectsNonPositiveNumber(t *testing.T) {
	repository := seededRepository()
	service, _ := newTestService(repository)

	err := service.DeletePage(context.Background(), testChapterID, 0)
	require.Error(t, err)
	assert.Empty(t, repository.deletedPages)
}

// # Reader View

/*
TestGetChapterComplete_AnonymousReader verifies that anonymous requests
receive the view without user state and leave no reading history.
*/
func TestGetChapterComplete_AnonymousReader(t *testing.T) {
	repository := seededRepository()
	service, counters := newTestService(repository)

	view, err := service.GetChapterComplete(context.Background(), testChapterID, "")
	require.NoError(t, err)

	assert.Nil(t, view.UserState)
	assert.Empty(t, repository.readings)
	assert.Len(t, view.Pages, 2)

	require.Len(t, counters.events, 1)
	assert.Equal(t, counter.ProcChapterView, counters.events[0].Proc)
}

/*
TestGetChapterComplete_AuthenticatedReader verifies state decoration and
the history write for signed-in readers.
*/
func TestGetChapterComplete_AuthenticatedReader(t *testing.T) {
	repository := seededRepository()
	service, _ := newTestService(repository)

	view, err := service.GetChapterComplete(context.Background(), testChapterID, "user-1")
	require.NoError(t, err)

	require.NotNil(t, view.UserState)
	assert.True(t, view.UserState.IsVoted)
	assert.Equal(t, []string{"user-1"}, repository.readings)
}
