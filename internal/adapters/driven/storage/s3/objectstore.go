// Package s3 uploads rehosted images to an S3 bucket. Objects are
// immutable by construction (content-addressed keys), so they are
// served with an aggressive cache policy, and public URLs prefer a
// CloudFront distribution when one is configured.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/bloglab/notion-sync/internal/core/domain"
	"github.com/bloglab/notion-sync/internal/core/ports/driven"
	"github.com/bloglab/notion-sync/internal/logger"
)

// Ensure ObjectStore implements the interface.
var _ driven.ObjectStore = (*ObjectStore)(nil)

const (
	// cacheControl marks uploads as immutable; keys embed a content
	// hash, so the same key never holds different bytes.
	cacheControl = "public, max-age=31536000, immutable"

	uploadAttempts   = 3
	uploadBaseDelay  = time.Second
	defaultAWSRegion = "us-east-1"
)

// putObjectAPI is the slice of the S3 client the store uses.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config holds the bucket coordinates and credentials.
type Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string

	// CDNDomain, when set, is used for public URLs instead of the
	// virtual-hosted bucket URL.
	CDNDomain string
}

// ObjectStore uploads objects to one bucket.
type ObjectStore struct {
	client    putObjectAPI
	bucket    string
	region    string
	cdnDomain string
	baseDelay time.Duration
	sleep     func(time.Duration)
}

// New creates an object store from explicit credentials.
func New(ctx context.Context, cfg Config) (*ObjectStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket: %w", domain.ErrMissingConfig)
	}
	if cfg.Region == "" {
		cfg.Region = defaultAWSRegion
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &ObjectStore{
		client:    s3.NewFromConfig(awsCfg),
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		cdnDomain: strings.TrimSuffix(cfg.CDNDomain, "/"),
		baseDelay: uploadBaseDelay,
		sleep:     time.Sleep,
	}, nil
}

// Put uploads body under key and returns the public URL. Transient
// failures are retried with linear backoff before giving up.
func (o *ObjectStore) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:       &o.bucket,
		Key:          &key,
		ContentType:  &contentType,
		CacheControl: strPtr(cacheControl),
	}

	var lastErr error
	for attempt := 1; attempt <= uploadAttempts; attempt++ {
		input.Body = bytes.NewReader(body)

		_, err := o.client.PutObject(ctx, input)
		if err == nil {
			return o.publicURL(key), nil
		}
		lastErr = err

		if attempt < uploadAttempts {
			wait := time.Duration(attempt) * o.baseDelay
			logger.Warn("Upload of %s failed (attempt %d/%d), retrying in %v: %v", key, attempt, uploadAttempts, wait, err)
			o.sleep(wait)
		}
	}

	return "", fmt.Errorf("put object %s: %w: %w", key, domain.ErrUploadFailed, lastErr)
}

// publicURL builds the URL readers will see. The CDN domain wins when
// configured; otherwise the virtual-hosted bucket URL is used.
func (o *ObjectStore) publicURL(key string) string {
	if o.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", o.cdnDomain, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", o.bucket, o.region, key)
}

func strPtr(s string) *string { return &s }
