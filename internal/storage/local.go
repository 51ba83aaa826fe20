// =============================================================================
// Order Transformer - Local Directory Store
// =============================================================================
//
// Directory-backed Store implementation. Blob keys map directly onto paths
// under a root directory, so the worker's input/ processed/ failed/ prefixes
// become plain subdirectories an operator can drop files into.
//
// =============================================================================

package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalStore stores blobs as files beneath a root directory.
type LocalStore struct {
	root string
}

// NewLocalStore returns a store rooted at dir, creating it if necessary.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", dir, err)
	}
	return &LocalStore{root: dir}, nil
}

// List walks the root and returns every file key starting with prefix, in
// lexical order. A missing prefix directory is an empty listing, not an
// error: the worker may poll before any input has arrived.
func (s *LocalStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}

		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			names = append(names, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
	}

	sort.Strings(names)
	return names, nil
}

// Read returns the content of the named blob.
func (s *LocalStore) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", name, err)
	}
	return data, nil
}

// Write creates or replaces the named blob, creating parent directories on
// demand.
func (s *LocalStore) Write(ctx context.Context, name string, data []byte) error {
	path := s.path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write blob %s: %w", name, err)
	}
	return nil
}

// Move renames a blob. If rename fails (e.g. across filesystems), it falls
// back to copy and delete.
func (s *LocalStore) Move(ctx context.Context, src, dst string) error {
	srcPath := s.path(src)
	dstPath := s.path(dst)

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dst, err)
	}

	if err := os.Rename(srcPath, dstPath); err != nil {
		if err := copyFile(srcPath, dstPath); err != nil {
			return fmt.Errorf("failed to move blob %s: %w", src, err)
		}
		if err := os.Remove(srcPath); err != nil {
			return fmt.Errorf("failed to remove original blob %s: %w", src, err)
		}
	}

	return nil
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// copyFile copies a file from src to dst, syncing before returning.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}
