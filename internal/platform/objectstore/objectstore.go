// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package objectstore stores uploaded recipe images.

Two drivers implement [Store]:

  - [LocalStore]: a directory on disk (through afero), served by the API under MEDIA_URL.
  - [S3Store]: an S3 compatible bucket (AWS, R2, MinIO).

Keys are slash separated relative paths such as "recipes/2026/10/pastel-20261018093000-a1b2c3.png".
*/
package objectstore

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrInvalidKey is returned for keys that are absolute or escape the store root.
var ErrInvalidKey = errors.New("objectstore: invalid key")

// Store persists binary objects under relative keys.
type Store interface {

	// Put writes body under key, replacing any existing object.
	Put(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL clients use to fetch key.
	URL(key string) string

	// Name identifies the driver in logs and metrics.
	Name() string
}

// cleanKey normalises key and rejects anything outside the store root.
func cleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") {
		return "", ErrInvalidKey
	}

	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}

	return cleaned, nil
}

// joinURL joins a base URL and a key with exactly one slash.
func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
