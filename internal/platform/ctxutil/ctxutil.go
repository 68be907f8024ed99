// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores and reads the per-request values set by middleware.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/recetario/internal/platform/ctxkey"
	"github.com/taibuivan/recetario/internal/platform/sec"
)

// value reads a typed value, returning the zero value when absent.
func value[T any](ctx context.Context, key any) T {
	v, _ := ctx.Value(key).(T)
	return v
}

// # Correlation

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns "" outside of a request.
func GetRequestID(ctx context.Context) string {
	return value[string](ctx, ctxkey.KeyRequestID)
}

// # Logging

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger falls back to [slog.Default] so background code can log too.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger := value[*slog.Logger](ctx, ctxkey.KeyLogger); logger != nil {
		return logger
	}
	return slog.Default()
}

// # Editors

// WithEditor attaches verified token claims. Anonymous readers carry none.
func WithEditor(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyEditor, claims)
}

// Editor returns the verified claims, or nil for an anonymous reader.
func Editor(ctx context.Context) *sec.AuthClaims {
	return value[*sec.AuthClaims](ctx, ctxkey.KeyEditor)
}

// EditorRole is the caller's role; anonymous readers count as viewers.
func EditorRole(ctx context.Context) sec.UserRole {
	if claims := Editor(ctx); claims != nil {
		return sec.UserRole(claims.Role)
	}
	return sec.RoleViewer
}
