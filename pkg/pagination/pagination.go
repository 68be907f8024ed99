// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for list endpoints.
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered, both in the API envelope and in
// the server-rendered listing.
package pagination

import (
	"net/http"
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata, deriving TotalPages from total and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// HasPrev reports whether a previous page exists.
func (m Meta) HasPrev() bool { return m.Page > 1 }

// HasNext reports whether a following page exists.
func (m Meta) HasNext() bool { return m.Page < m.TotalPages }

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
func FromRequest(r *http.Request) Params {
	return FromValues(r.URL.Query())
}

// FromValues parses "page" and "limit" from already decoded query values.
//
// # Clamping
//
// Invalid, negative, or excessive values fall back to [DefaultPage] and [DefaultLimit].
func FromValues(values url.Values) Params {
	page := parseIntParam(values, "page", DefaultPage)
	limit := parseIntParam(values, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(values url.Values, key string, defaultVal int) int {
	raw := values.Get(key)
	if raw == "" {
		return defaultVal
	}

	// 32 bits keeps (page-1)*limit far from overflowing the OFFSET.
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return defaultVal
	}

	return int(n)
}
