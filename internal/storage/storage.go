// =============================================================================
// Order Transformer - Blob Storage
// =============================================================================
//
// This package holds the storage abstraction the polling worker runs
// against: a flat namespace of named byte blobs that can be listed by
// prefix, read, written and moved. The transformation core never touches
// storage, it only ever sees raw text and a source name.
//
// Two backends are provided:
//   - local.go : a directory on disk, for development and one-box deployments
//   - gcs.go   : a Google Cloud Storage bucket
//
// =============================================================================

package storage

import (
	"context"
	"strings"
)

// Backend selection tokens, resolved from configuration.
const (
	ProviderLocal = "local"
	ProviderGCS   = "gcs"
)

// Store lists, reads, writes and moves named byte blobs. Names are
// slash-separated keys ("input/orders-42.xml"); a prefix filter matches the
// leading part of the key.
type Store interface {
	// List returns the names of every blob whose key starts with prefix,
	// in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)

	// Read returns the full content of the named blob.
	Read(ctx context.Context, name string) ([]byte, error)

	// Write creates or replaces the named blob.
	Write(ctx context.Context, name string, data []byte) error

	// Move renames a blob, replacing any existing blob at the destination.
	Move(ctx context.Context, src, dst string) error
}

// NormalizeProvider maps a configured provider token onto a known backend,
// defaulting to the local directory store.
func NormalizeProvider(provider string) string {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderGCS:
		return ProviderGCS
	default:
		return ProviderLocal
	}
}
