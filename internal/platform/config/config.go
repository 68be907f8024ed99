// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and passed to components via constructors.
*/
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/recetario/internal/platform/constants"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// # Configuration Schema

// Config holds all runtime configuration for the Recetario API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Logging sink. Empty LogFile means stdout only.
	LogFile      string `env:"LOG_FILE"`
	LogMaxSizeMB int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	LogMaxFiles  int    `env:"LOG_MAX_FILES"   envDefault:"5"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations"`
	AutoMigrate   bool   `env:"AUTO_MIGRATE"   envDefault:"true"`

	// Key-Value store (Redis). Optional: enables the shared rate limiter.
	RedisURL string `env:"REDIS_URL"`

	// Token verification. The API requires the public key; the private key is
	// only needed by recetarioctl to mint tokens.
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH"`
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`

	// Recipe images
	StorageDriver  string `env:"STORAGE_DRIVER"   envDefault:"local"`
	MediaRoot      string `env:"MEDIA_ROOT"       envDefault:"./media"`
	MediaURL       string `env:"MEDIA_URL"        envDefault:"/media/"`
	PublicBaseURL  string `env:"PUBLIC_BASE_URL"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"8388608"`

	// Object Storage (S3 / R2 compatible), used when StorageDriver is "s3"
	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION"     envDefault:"auto"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct for the API server.
func Load() (*Config, error) {
	cfg, err := LoadTools()
	if err != nil {
		return nil, err
	}

	if cfg.JWTPubKeyPath == "" {
		return nil, errors.New("config: JWT_PUBLIC_KEY_PATH is required")
	}

	return cfg, nil
}

// LoadTools is [Load] without the settings only the API server needs.
// The recetarioctl commands use it.
func LoadTools() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// validate checks cross-field rules env tags cannot express.
func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageLocal:
	case StorageS3:
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.PublicBaseURL != "" {
		base, err := url.Parse(c.PublicBaseURL)
		if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
			return fmt.Errorf("PUBLIC_BASE_URL %q must be an absolute http(s) URL", c.PublicBaseURL)
		}
	}
	if _, err := url.Parse(c.MediaURL); err != nil {
		return fmt.Errorf("MEDIA_URL %q: %w", c.MediaURL, err)
	}

	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = constants.DefaultMaxUploadBytes
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

/*
MediaBaseURL returns the URL locally stored images are published under.

Description: MEDIA_URL is resolved against PUBLIC_BASE_URL, so "/media/" with
"https://recetario.app" becomes "https://recetario.app/media/". An absolute
MEDIA_URL is kept as is, and without PUBLIC_BASE_URL the result stays relative.
*/
func (c *Config) MediaBaseURL() string {
	if c.PublicBaseURL == "" {
		return c.MediaURL
	}

	base, err := url.Parse(c.PublicBaseURL)
	if err != nil {
		return c.MediaURL
	}
	ref, err := url.Parse(c.MediaURL)
	if err != nil {
		return c.MediaURL
	}
	return base.ResolveReference(ref).String()
}

// MediaPath is the router prefix serving local images, e.g. "/media".
func (c *Config) MediaPath() string {
	path := c.MediaURL
	if parsed, err := url.Parse(c.MediaURL); err == nil {
		path = parsed.Path
	}
	return "/" + strings.Trim(path, "/")
}

// CORSOrigins returns the allowed origins, opening everything up in development.
func (c *Config) CORSOrigins() []string {
	if len(c.AllowedOrigins) > 0 {
		return c.AllowedOrigins
	}
	if c.IsDevelopment() {
		return []string{"*"}
	}
	return nil
}
