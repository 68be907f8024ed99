// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package objectstore

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures an [S3Store].
type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string // Custom endpoint for R2 / MinIO; empty uses AWS
	AccessKey string // Empty falls back to the default AWS credential chain
	SecretKey string
	PublicURL string // Base URL objects are served from; derived when empty
}

// S3Store keeps objects in an S3 compatible bucket.
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Store builds the client from opts.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	loaders := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("objectstore: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:    client,
		bucket:    opts.Bucket,
		publicURL: publicBaseURL(opts),
	}, nil
}

// publicBaseURL picks where clients fetch objects from.
func publicBaseURL(opts S3Options) string {
	switch {
	case opts.PublicURL != "":
		return opts.PublicURL
	case opts.Endpoint != "":
		return joinURL(opts.Endpoint, opts.Bucket)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}
}

func (store *S3Store) Name() string { return "s3" }

func (store *S3Store) Put(ctx context.Context, key string, body io.ReadSeeker, size int64, contentType string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(store.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := store.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("objectstore: s3 put %s: %w", key, err)
	}
	return nil
}

// Delete is idempotent: S3 reports success for missing keys.
func (store *S3Store) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	_, err = store.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("objectstore: s3 delete %s: %w", key, err)
	}
	return nil
}

func (store *S3Store) URL(key string) string {
	return joinURL(store.publicURL, key)
}
