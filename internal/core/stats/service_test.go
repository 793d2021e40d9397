// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hikari/internal/platform/database/schema"
)

// # Test Doubles

type fakeRepository struct {
	mu     sync.Mutex
	counts map[string]int64
	errs   map[string]error
	asked  []string
}

func (f *fakeRepository) CountRows(_ context.Context, table string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asked = append(f.asked, table)
	if err := f.errs[table]; err != nil {
		return 0, err
	}
	return f.counts[table], nil
}

func newTestService(repository *fakeRepository) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repository, logger)
}

// # Overview

/*
TestOverview_SumsBothVoteTables verifies the vote total combines comic
and chapter votes while the other totals map one table each.
*/
func TestOverview_SumsBothVoteTables(t *testing.T) {
	repository := &fakeRepository{counts: map[string]int64{
		schema.CoreComic.Table:          12,
		schema.CoreChapter.Table:        340,
		schema.UserAccount.Table:        57,
		schema.SocialComment.Table:      89,
		schema.LibraryBookmark.Table:    23,
		schema.LibraryComicVote.Table:   40,
		schema.LibraryChapterVote.Table: 15,
	}}
	service := newTestService(repository)

	overview, err := service.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), overview.Comics)
	assert.Equal(t, int64(340), overview.Chapters)
	assert.Equal(t, int64(57), overview.Users)
	assert.Equal(t, int64(89), overview.Comments)
	assert.Equal(t, int64(23), overview.Bookmarks)
	assert.Equal(t, int64(55), overview.Votes)
	assert.Len(t, repository.asked, 7)
}

/*
TestOverview_EmptyPlatform verifies zero rows everywhere yields an all
zero overview rather than an error.
*/
func TestOverview_EmptyPlatform(t *testing.T) {
	repository := &fakeRepository{counts: map[string]int64{}}
	service := newTestService(repository)

	overview, err := service.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, &Overview{}, overview)
}

/*
TestOverview_AnyFailureFailsTheRequest verifies a single failing count
surfaces instead of a partial overview.
*/
func TestOverview_AnyFailureFailsTheRequest(t *testing.T) {
	countErr := errors.New("connection reset")
	repository := &fakeRepository{
		counts: map[string]int64{},
		errs:   map[string]error{schema.SocialComment.Table: countErr},
	}
	service := newTestService(repository)

	overview, err := service.Overview(context.Background())
	require.ErrorIs(t, err, countErr)
	assert.Nil(t, overview)
}
