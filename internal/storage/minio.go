package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Options configures the object store connection.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL overrides the base URL used for public object links,
	// e.g. a CDN or reverse proxy in front of the bucket.
	PublicURL string
}

// Store holds uploaded gemstone images and avatars in a MinIO bucket.
type Store struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// New connects to MinIO and ensures the bucket exists.
func New(ctx context.Context, opts Options) (*Store, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect minio: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	publicURL := strings.TrimRight(opts.PublicURL, "/")
	if publicURL == "" {
		scheme := "http"
		if opts.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, opts.Endpoint, opts.Bucket)
	}

	return &Store{
		client:    client,
		bucket:    opts.Bucket,
		publicURL: publicURL,
	}, nil
}

// Upload stores an object and returns its public URL.
func (s *Store) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectName, err)
	}
	return s.PublicURL(objectName), nil
}

// PublicURL returns the public link for an object key.
func (s *Store) PublicURL(objectName string) string {
	return s.publicURL + "/" + objectName
}

// Delete removes an object by key.
func (s *Store) Delete(ctx context.Context, objectName string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}

// ObjectKey extracts the object key from a public URL produced by this
// store, or returns an empty string for foreign URLs.
func (s *Store) ObjectKey(publicURL string) string {
	prefix := s.publicURL + "/"
	if strings.HasPrefix(publicURL, prefix) {
		return strings.TrimPrefix(publicURL, prefix)
	}
	return ""
}
