// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisstore "github.com/taibuivan/recetario/internal/platform/redis"
	"github.com/taibuivan/recetario/internal/testinfra"
)

func TestFixedWindowLimiter_Redis(t *testing.T) {
	client := testinfra.RedisClient(t)
	ctx := context.Background()

	require.NoError(t, redisstore.Ping(ctx, client))

	limiter := redisstore.NewFixedWindowLimiter(client, "test:", 3, time.Hour)

	for i := 0; i < 3; i++ {
		allowed, _, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d", i+1)
	}

	allowed, retryAfter, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Positive(t, retryAfter)
	assert.LessOrEqual(t, retryAfter, time.Hour)

	// Keys are independent
	allowed, _, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed)
}
