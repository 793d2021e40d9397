// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"context"
	"encoding/json"
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
	comics   []*Comic
	total    int
	chapters []ChapterSummary

	listFilters      []Filter
	replacedComicID  string
	replacedMetadata *Metadata
	replaceErr       error
}

func (f *fakeRepository) List(_ context.Context, filter Filter, _, _ int) ([]*Comic, int, error) {
	f.listFilters = append(f.listFilters, filter)
	return f.comics, f.total, nil
}

func (f *fakeRepository) ListLatestChapters(_ context.Context, _ []string, _ int) ([]ChapterSummary, error) {
	return f.chapters, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*Comic, error) {
	for _, comic := range f.comics {
		if comic.ID == id {
			return comic, nil
		}
	}
	return nil, assert.AnError
}

func (f *fakeRepository) FindBySlug(_ context.Context, _ string) (*Comic, error) {
	return nil, assert.AnError
}

func (f *fakeRepository) Create(_ context.Context, _ *Comic) error { return nil }
func (f *fakeRepository) Update(_ context.Context, _ *Comic) error { return nil }
func (f *fakeRepository) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeRepository) ReplaceMetadata(_ context.Context, comicID string, metadata Metadata) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replacedComicID = comicID
	f.replacedMetadata = &metadata
	return nil
}

func (f *fakeRepository) ListChapters(_ context.Context, _, _, _ string, _, _ int) ([]ChapterSummary, int, error) {
	return f.chapters, len(f.chapters), nil
}

func (f *fakeRepository) UserState(_ context.Context, _, _ string) (*UserState, error) {
	return &UserState{}, nil
}

func (f *fakeRepository) TopByViews(_ context.Context, _ int) ([]*Comic, error) {
	return f.comics, nil
}

func (f *fakeRepository) TopByRank(_ context.Context, _ int) ([]*Comic, error) {
	return f.comics, nil
}

type fakeCounters struct {
	events []counter.Event
}

func (f *fakeCounters) Dispatch(event counter.Event) {
	f.events = append(f.events, event)
}

func newTestService(repository *fakeRepository) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repository, &fakeCounters{}, logger)
}

const testComicID = "0198d000-0000-7000-8000-000000000001"

// # Home Feed Staging

/*
TestHomeFeed_StagesByCreationDate verifies that without an explicit sort
the page is fetched newest-created first; the rank default applies to the
catalogue listing only.
*/
func TestHomeFeed_StagesByCreationDate(t *testing.T) {
	repository := &fakeRepository{
		comics: []*Comic{{ID: testComicID, CreatedAt: time.Now()}},
		total:  1,
	}
	service := newTestService(repository)

	_, _, err := service.HomeFeed(context.Background(), Filter{}, 10, 0)
	require.NoError(t, err)

	require.Len(t, repository.listFilters, 1)
	assert.Equal(t, SortCreatedDate, repository.listFilters[0].Sort)
	assert.Equal(t, "desc", repository.listFilters[0].Order)
}

/*
TestHomeFeed_ExplicitSortKeepsDatabaseOrder verifies that a recognised
sort column passes through untouched and suppresses the in-memory reorder.
*/
func TestHomeFeed_ExplicitSortKeepsDatabaseOrder(t *testing.T) {
	older := &Comic{ID: "older", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &Comic{ID: "newer", CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	repository := &fakeRepository{comics: []*Comic{older, newer}, total: 2}
	service := newTestService(repository)

	comics, _, err := service.HomeFeed(context.Background(), Filter{Sort: SortViewCount}, 10, 0)
	require.NoError(t, err)

	require.Len(t, repository.listFilters, 1)
	assert.Equal(t, SortViewCount, repository.listFilters[0].Sort)

	// The database order survives; recency would have put "newer" first.
	require.Len(t, comics, 2)
	assert.Equal(t, "older", comics[0].ID)
}

/*
TestHomeFeed_ChapterlessComicSerializesEmptyList verifies that a comic
without chapters still carries latest_chapters as an empty JSON array.
*/
func TestHomeFeed_ChapterlessComicSerializesEmptyList(t *testing.T) {
	repository := &fakeRepository{
		comics: []*Comic{{ID: testComicID}},
		total:  1,
	}
	service := newTestService(repository)

	comics, _, err := service.HomeFeed(context.Background(), Filter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, comics, 1)

	encoded, err := json.Marshal(comics[0])
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"latest_chapters":[]`)
}

// # Metadata Replacement

/*
TestReplaceMetadata_PassesExactSets verifies the full-replacement
contract: the repository receives exactly the submitted junction sets.
*/
func TestReplaceMetadata_PassesExactSets(t *testing.T) {
	repository := &fakeRepository{}
	service := newTestService(repository)

	metadata := Metadata{
		GenreIDs:  []string{"0198d000-0000-7000-8000-000000000010", "0198d000-0000-7000-8000-000000000011"},
		AuthorIDs: []string{"0198d000-0000-7000-8000-000000000020"},
		ArtistIDs: []string{},
		FormatIDs: []string{"0198d000-0000-7000-8000-000000000030"},
	}

	require.NoError(t, service.ReplaceMetadata(context.Background(), testComicID, metadata))

	assert.Equal(t, testComicID, repository.replacedComicID)
	require.NotNil(t, repository.replacedMetadata)
	assert.Equal(t, metadata, *repository.replacedMetadata)
}

/*
TestReplaceMetadata_RejectsMalformedIDs verifies that a bad junction ID
fails validation before any store call.
*/
func TestReplaceMetadata_RejectsMalformedIDs(t *testing.T) {
	repository := &fakeRepository{}
	service := newTestService(repository)

	metadata := Metadata{GenreIDs: []string{"not-a-uuid"}}

	err := service.ReplaceMetadata(context.Background(), testComicID, metadata)
	require.Error(t, err)
	assert.Nil(t, repository.replacedMetadata)
}
