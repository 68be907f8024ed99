// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis holds the state that several API replicas must agree on.

Today that is only the per-IP request budget ([FixedWindowLimiter]). Catalog
data is never cached here: every term expansion reads the store afresh.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout = 3 * time.Second
	ioTimeout   = 2 * time.Second
	pingTimeout = 2 * time.Second

	// The limiter issues one INCR and one EXPIRE per request.
	defaultPoolSize = 8
)

/*
NewClient parses a redis:// or rediss:// URL and verifies the server answers.

Parameters:
  - context: Bounds the initial ping
  - redisURL: Connection URL; a pool_size query parameter overrides the default
  - logger: Receives the redis_connected event

Returns:
  - *redis.Client: Ready client, closed by the caller
  - error: Malformed URL or unreachable server
*/
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	if options.PoolSize == 0 {
		options.PoolSize = defaultPoolSize
	}
	options.DialTimeout = dialTimeout
	options.ReadTimeout = ioTimeout
	options.WriteTimeout = ioTimeout

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)
	return client, nil
}

// Ping reports whether the server answers within pingTimeout.
func Ping(context stdctx.Context, client redis.UniversalClient) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}

// Checker adapts [Ping] to the readiness probe signature.
func Checker(client redis.UniversalClient) func(stdctx.Context) error {
	return func(context stdctx.Context) error {
		return Ping(context, client)
	}
}
