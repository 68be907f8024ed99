// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/recetario/pkg/pagination"
)

/*
TestFromValues clamps invalid input to the defaults.
*/
func TestFromValues(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		page   int
		limit  int
		offset int
	}{
		{"defaults", "", 1, 20, 0},
		{"explicit", "page=3&limit=10", 3, 10, 20},
		{"negative_page", "page=-2", 1, 20, 0},
		{"too_large", "limit=1000", 1, 20, 0},
		{"garbage", "page=x&limit=y", 1, 20, 0},
		{"page_overflow", "page=99999999999999999&limit=100", 1, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			params := pagination.FromValues(values)

			assert.Equal(t, tt.page, params.Page)
			assert.Equal(t, tt.limit, params.Limit)
			assert.Equal(t, tt.offset, params.Offset())
		})
	}
}

/*
TestMeta_Navigation checks page counts and prev/next flags.
*/
func TestMeta_Navigation(t *testing.T) {
	meta := pagination.NewMeta(2, 10, 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasPrev())
	assert.True(t, meta.HasNext())

	last := pagination.NewMeta(3, 10, 25)
	assert.False(t, last.HasNext())

	empty := pagination.NewMeta(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext())
	assert.False(t, empty.HasPrev())
}
