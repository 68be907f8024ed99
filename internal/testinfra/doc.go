// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package testinfra starts throwaway PostgreSQL and Redis containers for the
// tests tagged "integration":
//
//	go test -tags integration ./...
//
// Tests skip themselves when no Docker daemon is reachable.
package testinfra
