// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/hikari/internal/platform/database/schema"
)

// # Service Layer

// Service assembles the admin dashboard overview.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new stats [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

/*
Overview counts every dashboard total concurrently.

Description: Each total is one COUNT query; the queries run in parallel
on the pool and the first failure cancels the rest and fails the
request. Votes sum the comic and chapter vote tables.

Returns:
  - *Overview: The headline totals
  - error: The first failing count
*/
func (service *Service) Overview(context context.Context) (*Overview, error) {

	var overview Overview
	var votes atomic.Int64

	group, groupContext := errgroup.WithContext(context)

	count := func(table string, target *int64) {
		group.Go(func() error {
			total, err := service.repository.CountRows(groupContext, table)
			if err != nil {
				return err
			}
			*target = total
			return nil
		})
	}

	count(schema.CoreComic.Table, &overview.Comics)
	count(schema.CoreChapter.Table, &overview.Chapters)
	count(schema.UserAccount.Table, &overview.Users)
	count(schema.SocialComment.Table, &overview.Comments)
	count(schema.LibraryBookmark.Table, &overview.Bookmarks)

	// Both vote tables feed one total.
	for _, table := range []string{schema.LibraryComicVote.Table, schema.LibraryChapterVote.Table} {
		table := table
		group.Go(func() error {
			total, err := service.repository.CountRows(groupContext, table)
			if err != nil {
				return err
			}
			votes.Add(total)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	overview.Votes = votes.Load()

	return &overview, nil
}
