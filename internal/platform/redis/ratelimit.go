// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindowLimiter counts requests per key in fixed time windows shared by
// every API replica. It satisfies middleware.Limiter.
type FixedWindowLimiter struct {
	client redis.Cmdable
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewFixedWindowLimiter allows limit requests per key and window.
func NewFixedWindowLimiter(client redis.Cmdable, prefix string, limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		client: client,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

// Name identifies the backend in logs and metrics.
func (limiter *FixedWindowLimiter) Name() string { return "redis" }

// Allow increments the counter of the current window and compares it with the limit.
func (limiter *FixedWindowLimiter) Allow(context stdctx.Context, key string) (bool, time.Duration, error) {
	now := limiter.now()
	windowStart := now.Truncate(limiter.window)
	redisKey := limiter.prefix + key + ":" + strconv.FormatInt(windowStart.Unix(), 10)

	var counter *redis.IntCmd
	_, err := limiter.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		counter = pipe.Incr(context, redisKey)
		pipe.Expire(context, redisKey, limiter.window)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("redis: rate limit pipeline: %w", err)
	}

	if counter.Val() > limiter.limit {
		return false, windowStart.Add(limiter.window).Sub(now), nil
	}

	return true, 0, nil
}
