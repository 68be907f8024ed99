// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package objectstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"

	"github.com/spf13/afero"
)

// LocalStore keeps objects in a directory and serves them over HTTP.
type LocalStore struct {
	fs      afero.Fs
	baseURL string
}

// NewLocalStore roots a store at dir on the OS filesystem, creating it if needed.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("objectstore: create media root: %w", err)
	}
	return NewLocalStoreFs(afero.NewBasePathFs(osFs, dir), baseURL), nil
}

// NewLocalStoreFs wraps an existing filesystem (e.g. afero.NewMemMapFs in tests).
func NewLocalStoreFs(fs afero.Fs, baseURL string) *LocalStore {
	return &LocalStore{fs: fs, baseURL: baseURL}
}

func (store *LocalStore) Name() string { return "local" }

func (store *LocalStore) Put(_ context.Context, key string, body io.ReadSeeker, _ int64, _ string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	// Ensure parent directory exists
	if err := store.fs.MkdirAll(path.Dir(key), 0o755); err != nil {
		return fmt.Errorf("objectstore: create directory: %w", err)
	}

	file, err := store.fs.Create(key)
	if err != nil {
		return fmt.Errorf("objectstore: create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, body); err != nil {
		return fmt.Errorf("objectstore: write file: %w", err)
	}

	return nil
}

func (store *LocalStore) Delete(_ context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	if err := store.fs.Remove(key); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("objectstore: remove file: %w", err)
	}
	return nil
}

func (store *LocalStore) URL(key string) string {
	return joinURL(store.baseURL, key)
}

// Handler serves stored objects read-only. Mount it under the base URL path
// with http.StripPrefix.
func (store *LocalStore) Handler() http.Handler {
	return http.FileServer(afero.NewHttpFs(afero.NewReadOnlyFs(store.fs)).Dir("."))
}
