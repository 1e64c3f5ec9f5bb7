package r2

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmm-municipal/dmm-api/internal/core/domain"
	"github.com/dmm-municipal/dmm-api/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// Config captures the Cloudflare R2 account settings. Endpoint is the account
// endpoint without the bucket name.
type Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
}

// Gateway stores identity-document images in an S3-compatible bucket.
type Gateway struct {
	client *s3.Client
	bucket string
}

func New(cfg Config) (*Gateway, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, errors.New("r2: endpoint and bucket are required")
	}
	client := s3.New(s3.Options{
		Region:       "auto",
		BaseEndpoint: aws.String(cfg.Endpoint),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	})
	return &Gateway{client: client, bucket: cfg.Bucket}, nil
}

var _ ports.DocumentStore = (*Gateway)(nil)

func (g *Gateway) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(g.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return fmt.Errorf("r2 put %s: %w: %w", key, domain.ErrUpstream, err)
	}
	return nil
}

// Get opens key for reading. The caller closes the returned body.
func (g *Gateway) Get(ctx context.Context, key string) (*ports.Document, error) {
	out, err := g.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrImageNotFound
		}
		return nil, fmt.Errorf("r2 get %s: %w: %w", key, domain.ErrUpstream, err)
	}
	return &ports.Document{
		Body:        out.Body,
		ContentType: aws.ToString(out.ContentType),
		Size:        aws.ToInt64(out.ContentLength),
	}, nil
}

func (g *Gateway) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("r2 delete %s: %w: %w", key, domain.ErrUpstream, err)
	}
	return nil
}

// Ping checks that the bucket is reachable with the configured credentials.
func (g *Gateway) Ping(ctx context.Context) error {
	_, err := g.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(g.bucket)})
	if err != nil {
		return fmt.Errorf("r2 head bucket: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound"
}
