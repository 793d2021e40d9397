// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/hikari/pkg/pagination"
)

/*
TestNewMeta verifies total_pages and has_more calculations, including the
empty result set and the exact-boundary cases.
*/
func TestNewMeta(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int
		totalPages int
		hasMore    bool
	}{
		{"empty_result", 1, 10, 0, 0, false},
		{"single_partial_page", 1, 10, 3, 1, false},
		{"exact_page_boundary", 1, 10, 10, 1, false},
		{"second_page_exists", 1, 10, 11, 2, true},
		{"middle_page", 2, 10, 35, 4, true},
		{"last_page", 4, 10, 35, 4, false},
		{"past_last_page", 5, 10, 35, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(tt.page, tt.limit, tt.total)

			assert.Equal(t, tt.page, meta.Page)
			assert.Equal(t, tt.limit, meta.Limit)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
			assert.Equal(t, tt.hasMore, meta.HasMore)
		})
	}
}

/*
TestFromRequest checks query parsing and clamping of invalid values.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		page  int
		limit int
	}{
		{"defaults", "", 1, pagination.DefaultLimit},
		{"explicit", "page=3&limit=25", 3, 25},
		{"zero_page", "page=0&limit=25", 1, 25},
		{"negative_page", "page=-2", 1, pagination.DefaultLimit},
		{"limit_too_large", "limit=5000", 1, pagination.DefaultLimit},
		{"garbage_values", "page=abc&limit=xyz", 1, pagination.DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/comics?"+tt.query, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.limit, params.Limit)
		})
	}
}

/*
TestParams_Offset verifies the SQL offset derivation.
*/
func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, pagination.Params{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 40, pagination.Params{Page: 5, Limit: 10}.Offset())
}
