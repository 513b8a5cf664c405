package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
)

// Ensure S3Storage implements ObjectStorage
var _ driven.ObjectStorage = (*S3Storage)(nil)

// S3Storage implements ObjectStorage on an S3-compatible bucket.
//
// Objects are content-addressed by the caller-supplied contentID, so Put
// checks for an existing object before uploading and reuses it when found.
type S3Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// Config holds S3 storage settings
type Config struct {
	// Bucket is the target bucket name
	Bucket string

	// Region is the AWS region
	Region string

	// Endpoint overrides the S3 endpoint, for S3-compatible backends
	// (MinIO, Cloudflare R2)
	Endpoint string

	// PublicURL is the base URL objects are served from. Defaults to the
	// virtual-hosted bucket URL.
	PublicURL string
}

// NewS3Storage creates an S3-backed object storage adapter
func NewS3Storage(ctx context.Context, cfg Config) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Storage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Put stores data under folder/contentID and returns the public URL. An
// existing object with the same key is reused without re-uploading.
func (s *S3Storage) Put(ctx context.Context, data []byte, folder, contentID, contentType string) (string, error) {
	key := folder + "/" + contentID + extensionFor(contentType)

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return s.objectURL(key), nil
	}
	var notFound *types.NotFound
	if !errors.As(err, &notFound) {
		return "", fmt.Errorf("failed to check object %s: %w", key, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return s.objectURL(key), nil
}

// Ping checks if the storage backend is reachable
func (s *S3Storage) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("storage bucket unreachable: %w", err)
	}
	return nil
}

func (s *S3Storage) objectURL(key string) string {
	return s.publicURL + "/" + key
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/svg+xml":
		return ".svg"
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "application/pdf":
		return ".pdf"
	default:
		return ""
	}
}
