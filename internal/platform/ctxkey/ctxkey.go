// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the unexported key type for request-scoped values.
package ctxkey

type key uint8

const (
	KeyRequestID key = iota + 1
	KeyLogger
	// KeyEditor maps to the verified [sec.AuthClaims] of an admin or editor.
	KeyEditor
)
