// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recetario/internal/platform/apperr"
)

/*
TestAppError_Constructors checks status codes and machine codes of each constructor.
*/
func TestAppError_Constructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		code   string
		status int
	}{
		{"not_found", apperr.NotFound("Recipe"), "NOT_FOUND", http.StatusNotFound},
		{"conflict", apperr.Conflict("dup"), "CONFLICT", http.StatusConflict},
		{"validation", apperr.ValidationError("bad"), "VALIDATION_ERROR", http.StatusBadRequest},
		{"invalid_input", apperr.InvalidInput("term", "not a number"), "INVALID_INPUT", http.StatusBadRequest},
		{"unprocessable", apperr.Unprocessable("cycle"), "UNPROCESSABLE", http.StatusUnprocessableEntity},
		{"too_large", apperr.PayloadTooLarge(10), "PAYLOAD_TOO_LARGE", http.StatusRequestEntityTooLarge},
		{"internal", apperr.Internal(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}

	assert.Equal(t, "Recipe not found", apperr.NotFound("Recipe").Error())
}

/*
TestAppError_ChainHelpers verifies As, HasCode and WithCause through wrapped errors.
*/
func TestAppError_ChainHelpers(t *testing.T) {
	cause := errors.New("duplicate key")
	base := apperr.Conflict("Slug already taken")
	wrapped := fmt.Errorf("create recipe: %w", base.WithCause(cause))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.True(t, apperr.HasCode(wrapped, "CONFLICT"))
	assert.False(t, apperr.HasCode(wrapped, "NOT_FOUND"))
	assert.ErrorIs(t, wrapped, cause)

	// The shared sentinel must not be mutated by WithCause
	assert.Nil(t, base.Cause)
	assert.Nil(t, apperr.As(errors.New("plain")))
}
