// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package objectstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/recetario/internal/platform/config"
)

func TestCleanKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{"recipes/2026/10/a.png", "recipes/2026/10/a.png", false},
		{"recipes//2026/./a.png", "recipes/2026/a.png", false},
		{"", "", true},
		{"/etc/passwd", "", true},
		{"../secret", "", true},
		{"recipes/../../secret", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := cleanKey(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestLocalStore_Lifecycle writes, serves and deletes an object on an in-memory filesystem.
*/
func TestLocalStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	store := NewLocalStoreFs(fs, "/media/")
	key := "recipes/2026/10/pastel-20261018093000-a1b2c3.png"

	// 1. Put
	body := strings.NewReader("png-bytes")
	require.NoError(t, store.Put(ctx, key, body, body.Size(), "image/png"))

	stored, err := afero.ReadFile(fs, key)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(stored))

	// 2. URL and HTTP serving
	assert.Equal(t, "/media/"+key, store.URL(key))

	server := http.StripPrefix("/media", store.Handler())
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/media/"+key, nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	served, _ := io.ReadAll(recorder.Body)
	assert.Equal(t, "png-bytes", string(served))

	// 3. Delete twice
	require.NoError(t, store.Delete(ctx, key))
	require.NoError(t, store.Delete(ctx, key))

	exists, err := afero.Exists(fs, key)
	require.NoError(t, err)
	assert.False(t, exists)

	// 4. Escapes are refused
	assert.ErrorIs(t, store.Put(ctx, "../x", strings.NewReader(""), 0, ""), ErrInvalidKey)
}

func TestS3_PublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/img",
		publicBaseURL(S3Options{Bucket: "b", PublicURL: "https://cdn.example.com/img"}))
	assert.Equal(t, "http://minio:9000/b",
		publicBaseURL(S3Options{Bucket: "b", Endpoint: "http://minio:9000/"}))
	assert.Equal(t, "https://b.s3.eu-west-1.amazonaws.com",
		publicBaseURL(S3Options{Bucket: "b", Region: "eu-west-1"}))
}

func TestS3Store_URL(t *testing.T) {
	store, err := NewS3Store(context.Background(), S3Options{
		Bucket:    "recetario",
		Region:    "auto",
		Endpoint:  "https://account.r2.cloudflarestorage.com",
		AccessKey: "key",
		SecretKey: "secret",
		PublicURL: "https://img.recetario.dev",
	})
	require.NoError(t, err)

	assert.Equal(t, "s3", store.Name())
	assert.Equal(t, "https://img.recetario.dev/recipes/a.jpg", store.URL("recipes/a.jpg"))
}

func TestOpen_Local(t *testing.T) {
	cfg := &config.Config{StorageDriver: config.StorageLocal, MediaRoot: t.TempDir(), MediaURL: "/media/"}

	store, handler, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "local", store.Name())
	assert.NotNil(t, handler)

	cfg.PublicBaseURL = "https://recetario.app"
	store, _, err = Open(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://recetario.app/media/recipes/a.jpg", store.URL("recipes/a.jpg"))

	_, _, err = Open(context.Background(), &config.Config{StorageDriver: "ftp"})
	assert.Error(t, err)
}
