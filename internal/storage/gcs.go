// =============================================================================
// Order Transformer - Google Cloud Storage Store
// =============================================================================
//
// GCS-backed Store implementation. Credentials resolve through Application
// Default Credentials (service account on the runtime, or
// GOOGLE_APPLICATION_CREDENTIALS); for local use an explicit JSON key can be
// supplied via GCS_CREDENTIALS_JSON.
//
// =============================================================================

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	gstorage "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSStore stores blobs as objects in a single bucket.
type GCSStore struct {
	client *gstorage.Client
	bucket string
}

// NewGCSStore connects to the given bucket and verifies it is accessible.
func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("gcs bucket name is required")
	}

	client, err := newGCSClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcs client: %w", err)
	}

	if _, err := client.Bucket(bucket).Attrs(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("gcs bucket %q not found or not accessible: %w", bucket, err)
	}

	return &GCSStore{client: client, bucket: bucket}, nil
}

// newGCSClient prefers ADC; GCS_CREDENTIALS_JSON overrides it with an
// explicit JSON key.
func newGCSClient(ctx context.Context) (*gstorage.Client, error) {
	if credJSON := os.Getenv("GCS_CREDENTIALS_JSON"); strings.TrimSpace(credJSON) != "" {
		return gstorage.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
	}
	return gstorage.NewClient(ctx)
}

// Close releases the underlying client.
func (s *GCSStore) Close() error {
	return s.client.Close()
}

// List returns the names of every object with the given prefix. GCS already
// yields objects in lexical order.
func (s *GCSStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string

	it := s.client.Bucket(s.bucket).Objects(ctx, &gstorage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects with prefix %s: %w", prefix, err)
		}
		names = append(names, attrs.Name)
	}

	return names, nil
}

// Read downloads the full content of the named object.
func (s *GCSStore) Read(ctx context.Context, name string) ([]byte, error) {
	r, err := s.client.Bucket(s.bucket).Object(name).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open object %s: %w", name, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", name, err)
	}
	return data, nil
}

// Write uploads the data, replacing any existing object.
func (s *GCSStore) Write(ctx context.Context, name string, data []byte) error {
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("failed to write object %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize object %s: %w", name, err)
	}
	return nil
}

// Move copies the object server-side and deletes the source.
func (s *GCSStore) Move(ctx context.Context, src, dst string) error {
	bucket := s.client.Bucket(s.bucket)

	if _, err := bucket.Object(dst).CopierFrom(bucket.Object(src)).Run(ctx); err != nil {
		return fmt.Errorf("failed to copy object %s to %s: %w", src, dst, err)
	}
	if err := bucket.Object(src).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete source object %s: %w", src, err)
	}
	return nil
}
