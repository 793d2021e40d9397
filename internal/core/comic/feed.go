// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comic

import (
	"context"
	"sort"
	"time"

	"github.com/taibuivan/hikari/pkg/pointer"
	"github.com/taibuivan/hikari/pkg/slice"
)

// # Feed Aggregation

// latestChapterFetchFactor sizes the batched chapter query relative to the
// comic page. Fetching 2x the page size and grouping client-side is a
// deliberate heuristic: a single comic updated many times in a burst can
// starve the tail of the page of its chapter rows. The factor is the
// tuning knob if that trade-off ever bites.
const latestChapterFetchFactor = 2

// latestChaptersPerComic is how many recent chapters each feed card shows.
const latestChaptersPerComic = 2

// LatestChapterLister fetches the most recent chapters across a set of
// comics in one round-trip, ordered by release date descending.
type LatestChapterLister interface {
	ListLatestChapters(context context.Context, comicIDs []string, limit int) ([]ChapterSummary, error)
}

/*
AttachLatestChapters decorates a page of comics with their most recent
chapters using a single batched query.

Description: Collects the page's comic IDs, fetches up to
latestChapterFetchFactor x len(comics) chapter rows in one call, groups them
client-side, and keeps the first two per comic. Comics without chapters get
an explicit empty slice so the JSON field is always present.

Parameters:
  - context: context.Context
  - lister: LatestChapterLister (Batched chapter access)
  - comics: []*Comic (The page to decorate, mutated in place)

Returns:
  - error: Propagated from the batched fetch; the feed fails as a whole
*/
func AttachLatestChapters(context context.Context, lister LatestChapterLister, comics []*Comic) error {
	if len(comics) == 0 {
		return nil
	}

	// Collect the page's comic IDs
	comicIDs := slice.Map(comics, func(comic *Comic) string { return comic.ID })

	// One batched query for the whole page
	chapters, err := lister.ListLatestChapters(context, comicIDs, latestChapterFetchFactor*len(comics))
	if err != nil {
		return err
	}

	// Group by comic, keeping the first rows per comic.
	// The query returns release-date descending order, so "first" means newest.
	grouped := make(map[string][]ChapterSummary, len(comics))
	for _, chapter := range chapters {
		if len(grouped[chapter.ComicID]) < latestChaptersPerComic {
			grouped[chapter.ComicID] = append(grouped[chapter.ComicID], chapter)
		}
	}

	// Attach, defaulting to an empty (non-nil) slice
	for _, comic := range comics {
		if attached, ok := grouped[comic.ID]; ok {
			comic.LatestChapters = attached
		} else {
			comic.LatestChapters = []ChapterSummary{}
		}
	}

	return nil
}

/*
SortByRecency reorders a feed page in memory by reading activity.

Description: Comics with at least one chapter come first, ordered by their
newest chapter's release date descending; a missing release date is treated
as the epoch. Chapterless comics follow, ordered by creation date
descending. The sort is stable and a pure function of its input, so the
same page always yields the same order.

Callers must skip this step when the client asked for an explicit sort
column; the database ordering wins in that case.

Parameters:
  - comics: []*Comic (Mutated in place; [AttachLatestChapters] must have run first)
*/
func SortByRecency(comics []*Comic) {
	sort.SliceStable(comics, func(i, j int) bool {
		left, right := comics[i], comics[j]
		leftHas := len(left.LatestChapters) > 0
		rightHas := len(right.LatestChapters) > 0

		// Comics with chapters outrank chapterless ones
		if leftHas != rightHas {
			return leftHas
		}

		// Both chapterless: newest comic first
		if !leftHas {
			return left.CreatedAt.After(right.CreatedAt)
		}

		// Both have chapters: newest release first
		return releaseInstant(left).After(releaseInstant(right))
	})
}

// releaseInstant returns the comic's newest chapter release date,
// or the epoch when the chapter carries none.
func releaseInstant(comic *Comic) time.Time {
	return pointer.Fallback(comic.LatestChapters[0].ReleaseDate, time.Unix(0, 0).UTC())
}
