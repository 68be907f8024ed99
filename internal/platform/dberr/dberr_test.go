// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recetario/internal/platform/apperr"
	"github.com/taibuivan/recetario/internal/platform/dberr"
)

/*
TestWrap_Classification maps driver errors onto application error codes.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"no_rows", pgx.ErrNoRows, "NOT_FOUND"},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, "CONFLICT"},
		{"foreign_key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}, "UNPROCESSABLE"},
		{"check", &pgconn.PgError{Code: pgerrcode.CheckViolation}, "VALIDATION_ERROR"},
		{"other", errors.New("connection reset"), "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae := apperr.As(dberr.Wrap(tt.err, "test_action"))
			require.NotNil(t, ae)
			assert.Equal(t, tt.code, ae.Code)
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "noop"))
}

/*
TestNotFound_NamesResource checks the resource-specific 404 message.
*/
func TestNotFound_NamesResource(t *testing.T) {
	err := dberr.NotFound(pgx.ErrNoRows, "Term", "get_term")
	assert.Equal(t, "Term not found", err.Error())

	passthrough := apperr.Conflict("taken")
	assert.Same(t, passthrough, dberr.NotFound(passthrough, "Term", "get_term"))
}
