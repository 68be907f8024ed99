// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package objectstore

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taibuivan/recetario/internal/platform/config"
)

// Open builds the store selected by STORAGE_DRIVER.
//
// The returned handler serves the objects when the API itself must host them
// (local driver) and is nil for buckets, which clients read directly.
func Open(ctx context.Context, cfg *config.Config) (Store, http.Handler, error) {
	switch cfg.StorageDriver {
	case config.StorageS3:
		store, err := NewS3Store(ctx, S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil

	case config.StorageLocal:
		store, err := NewLocalStore(cfg.MediaRoot, cfg.MediaBaseURL())
		if err != nil {
			return nil, nil, err
		}
		return store, store.Handler(), nil
	}

	return nil, nil, fmt.Errorf("objectstore: unknown driver %q", cfg.StorageDriver)
}
