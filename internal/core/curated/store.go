// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package curated

import "context"

// # Repository Interface

/*
Repository defines the persistence operations for curated lists.
*/
type Repository interface {
	/*
		ListPopular returns every popular entry for one window, joined to
		its comic summary, newest entry first.
	*/
	ListPopular(context context.Context, window Window) ([]*PopularEntry, error)

	/*
		ListRecommended returns every recommended entry joined to its comic
		summary, newest entry first.
	*/
	ListRecommended(context context.Context) ([]*RecommendedEntry, error)

	/*
		CreatePopular persists a popular entry.

		Returns:
		  - error: apperr.Conflict when the comic is already in the window,
		    apperr.NotFound when the comic does not exist
	*/
	CreatePopular(context context.Context, entry *PopularEntry) error

	/*
		DeletePopular removes a popular entry by its own identifier.
	*/
	DeletePopular(context context.Context, id string) error

	/*
		CreateRecommended persists a recommended entry.

		Returns:
		  - error: apperr.Conflict when the comic is already recommended,
		    apperr.NotFound when the comic does not exist
	*/
	CreateRecommended(context context.Context, entry *RecommendedEntry) error

	/*
		DeleteRecommended removes a recommended entry by its own identifier.
	*/
	DeleteRecommended(context context.Context, id string) error
}
