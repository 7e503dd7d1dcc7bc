package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// URLLifetime bounds how long a retrieval URL stays valid. Callers must not
// cache resolved URLs past this.
const URLLifetime = 3600 * time.Second

// BlobStore puts, presigns and deletes binary objects by key.
type BlobStore interface {
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) error
	GetURL(ctx context.Context, bucket, key string) (string, error)
	Delete(ctx context.Context, bucket, key string) error
}

// Client implements BlobStore against S3
type Client struct {
	s3      *s3.Client
	presign *s3.PresignClient
}

// NewClient creates a new S3-backed blob store client for the given region
func NewClient(ctx context.Context, region string) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("error loading AWS configuration: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg)
	log.Println("S3 client initialized successfully!")
	return &Client{
		s3:      s3Client,
		presign: s3.NewPresignClient(s3Client),
	}, nil
}

// Put uploads an object
func (c *Client) Put(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %q: %w", key, err)
	}
	return nil
}

// GetURL resolves an object key to a time-limited retrieval URL
func (c *Client) GetURL(ctx context.Context, bucket, key string) (string, error) {
	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(URLLifetime))
	if err != nil {
		return "", fmt.Errorf("failed to presign object %q: %w", key, err)
	}
	return req.URL, nil
}

// Delete removes an object
func (c *Client) Delete(ctx context.Context, bucket, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %q: %w", key, err)
	}
	return nil
}

// NewFileKey generates an opaque random object key
func NewFileKey() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	return hex.EncodeToString(b)
}
