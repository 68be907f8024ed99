// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuer.
  - Catalog: hierarchy and upload limits.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "recetario"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Image uploads go through the same server, hence the generous value.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitWindow is the fixed window used by the shared (Redis) limiter.
	RateLimitWindow = 1 * time.Minute

	// RateLimitPerWindow is the request budget per IP and window for the shared limiter.
	RateLimitPerWindow = 3000

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "recetario"

	// DefaultTokenTTL is the lifetime of tokens minted by recetarioctl.
	DefaultTokenTTL = 24 * time.Hour
)

// # Catalog

const (
	// MaxTreeDepth bounds the recursion of the term tree projection.
	MaxTreeDepth = 32

	// DefaultMaxUploadBytes caps recipe image uploads.
	DefaultMaxUploadBytes = 8 << 20

	// RecipeImagePrefix is the object key prefix for recipe images.
	RecipeImagePrefix = "recipes"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderRetryAfter    = "Retry-After"
)

// # JSON Field Identifiers

const (
	FieldError = "error"
	FieldCode  = "code"
)

// # Database Schemas

const (
	SchemaCore = "core"
)

// # Redis Prefixes

const (
	RedisPrefixRateLimit = "ratelimit:"
)
