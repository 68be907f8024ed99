// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/taibuivan/recetario/internal/platform/apperr"
	"github.com/taibuivan/recetario/internal/platform/validate"
	"github.com/taibuivan/recetario/pkg/query"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntParam retrieves a named URL parameter and parses it as a numeric identifier.

Returns:
  - int: The parsed identifier
  - error: apperr.InvalidInput if the segment is not a positive integer
*/
func IntParam(request *http.Request, name string) (int, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, apperr.InvalidInput(name, "Identifier must be a positive integer")
	}

	return int(id), nil
}

/*
QueryInts parses a repeated (or comma separated) integer query parameter.

Returns:
  - []int: Parsed values in request order (nil when absent)
  - error: apperr.InvalidInput if any value is not an integer
*/
func QueryInts(request *http.Request, name string) ([]int, error) {
	ids, err := query.Ints(request.URL.Query()[name])
	if err != nil {
		return nil, apperr.InvalidInput(name, "Values must be integers").WithCause(err)
	}
	return ids, nil
}

// QueryInt parses an optional single integer query parameter. Absent yields nil.
func QueryInt(request *http.Request, name string) (*int, error) {
	value, present, err := query.Int(request.URL.Query().Get(name))
	if err != nil {
		return nil, apperr.InvalidInput(name, "Value must be an integer").WithCause(err)
	}
	if !present {
		return nil, nil
	}
	return &value, nil
}
