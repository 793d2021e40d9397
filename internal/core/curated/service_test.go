// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package curated

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hikari/internal/platform/apperr"
)

// # Test Doubles

type fakeRepository struct {
	listedWindows    []Window
	popular          []*PopularEntry
	recommended      []*RecommendedEntry
	popularErr       error
	recommendedErr   error
	popularDeletes   []string
	recommendDeletes []string
}

func (f *fakeRepository) ListPopular(_ context.Context, window Window) ([]*PopularEntry, error) {
	f.listedWindows = append(f.listedWindows, window)
	return []*PopularEntry{}, nil
}

func (f *fakeRepository) ListRecommended(_ context.Context) ([]*RecommendedEntry, error) {
	return []*RecommendedEntry{}, nil
}

func (f *fakeRepository) CreatePopular(_ context.Context, entry *PopularEntry) error {
	if f.popularErr != nil {
		return f.popularErr
	}
	f.popular = append(f.popular, entry)
	return nil
}

func (f *fakeRepository) DeletePopular(_ context.Context, id string) error {
	f.popularDeletes = append(f.popularDeletes, id)
	return nil
}

func (f *fakeRepository) CreateRecommended(_ context.Context, entry *RecommendedEntry) error {
	if f.recommendedErr != nil {
		return f.recommendedErr
	}
	f.recommended = append(f.recommended, entry)
	return nil
}

func (f *fakeRepository) DeleteRecommended(_ context.Context, id string) error {
	f.recommendDeletes = append(f.recommendDeletes, id)
	return nil
}

func newTestService(repository *fakeRepository) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repository, logger)
}

const testComicID = "0198c000-0000-7000-8000-000000000010"

// # Popular Window Selection

/*
TestPopular_DefaultsToAllTime verifies an omitted type selects the
all_time window.
*/
func TestPopular_DefaultsToAllTime(t *testing.T) {
	repository := &fakeRepository{}
	service := newTestService(repository)

	_, err := service.Popular(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, []Window{WindowAllTime}, repository.listedWindows)
}

/*
TestPopular_AcceptsEveryKnownWindow verifies each window value reaches
the store unchanged.
*/
func TestPopular_AcceptsEveryKnownWindow(t *testing.T) {
	repository := &fakeRepository{}
	service := newTestService(repository)

	for _, window := range Windows {
		_, err := service.Popular(context.Background(), string(window))
		require.NoError(t, err, string(window))
	}

	assert.Equal(t, Windows, repository.listedWindows)
}

/*
TestPopular_RejectsUnknownWindow verifies an unknown type fails before
any store call.
*/
func TestPopular_RejectsUnknownWindow(t *testing.T) {
	repository := &fakeRepository{}
	service := newTestService(repository)

	_, err := service.Popular(context.Background(), "hourly")
	require.Error(t, err)

	var appError *apperr.AppError
	require.True(t, errors.As(err, &appError))
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Empty(t, repository.listedWindows)
}

// # List Management

/*
TestAddPopular_CreatesEntry verifies a valid comic and window produce a
stored entry with a fresh identifier.
*/
func TestAddPopular_CreatesEntry(t *testing.T) {
	repository := &fakeRepository{}
	service := newTestService(repository)

	entry, err := service.AddPopular(context.Background(), testComicID, string(WindowWeekly))
	require.NoError(t, err)

	require.Len(t, repository.popular, 1)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, testComicID, entry.ComicID)
	assert.Equal(t, WindowWeekly, entry.Window)
}

/*
TestAddPopular_RequiresKnownWindow verifies the window is validated on
writes with no all_time fallback.
*/
func TestAddPopular_RequiresKnownWindow(t *testing.T) {
	repository := &fakeRepository{}
	service := newTestService(repository)

	_, err := service.AddPopular(context.Background(), testComicID, "")
	require.Error(t, err)
	assert.Empty(t, repository.popular)
}

/*
TestAddPopular_SurfacesConflict verifies a duplicate membership keeps
the store's conflict untouched.
*/
func TestAddPopular_SurfacesConflict(t *testing.T) {
	conflict := apperr.Conflict("Comic is already in this popular window",
		apperr.FieldError{Field: "comic_id", Message: testComicID})
	repository := &fakeRepository{popularErr: conflict}
	service := newTestService(repository)

	_, err := service.AddPopular(context.Background(), testComicID, string(WindowDaily))

	var appError *apperr.AppError
	require.True(t, errors.As(err, &appError))
	assert.Equal(t, "CONFLICT", appError.Code)
	require.Len(t, appError.Details, 1)
	assert.Equal(t, testComicID, appError.Details[0].Message)
}

/*
TestAddRecommended_CreatesEntry verifies recommended membership needs
only a valid comic identifier.
*/
func TestAddRecommended_CreatesEntry(t *testing.T) {
	repository := &fakeRepository{}
	service := newTestService(repository)

	entry, err := service.AddRecommended(context.Background(), testComicID)
	require.NoError(t, err)

	require.Len(t, repository.recommended, 1)
	assert.Equal(t, testComicID, entry.ComicID)
}

/*
TestRemove_ValidatesIdentifier verifies removals reject malformed
identifiers before touching the store.
*/
func TestRemove_ValidatesIdentifier(t *testing.T) {
	repository := &fakeRepository{}
	service := newTestService(repository)

	require.Error(t, service.RemovePopular(context.Background(), "not-a-uuid"))
	require.Error(t, service.RemoveRecommended(context.Background(), ""))

	assert.Empty(t, repository.popularDeletes)
	assert.Empty(t, repository.recommendDeletes)
}
