package disk

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/anthanhphan/go-files-manager/internal/api/port"
	"github.com/google/uuid"
)

// BlobStore implements port.BlobStore on the local filesystem. Each blob
// is a single file named by a random UUID under the configured base
// directory. Size variants (<path>_<size>) are produced by the background
// workers; this store only serves them when present.
type BlobStore struct {
	baseDir string
}

var _ port.BlobStore = (*BlobStore)(nil)

// NewBlobStore creates a store rooted at baseDir. The directory is
// created lazily on the first write.
func NewBlobStore(baseDir string) *BlobStore {
	return &BlobStore{baseDir: filepath.Clean(baseDir)}
}

// Write decodes the base64 payload and stores it under a fresh UUID.
// Any failure leaves no blob behind for the caller to reference, so a
// failed write can never be pointed at by a metadata record.
func (s *BlobStore) Write(_ context.Context, encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		// Bad input, not an I/O failure; callers map it accordingly.
		return "", fmt.Errorf("%w: %v", port.ErrInvalidData, err)
	}

	if err := os.MkdirAll(s.baseDir, 0750); err != nil {
		return "", fmt.Errorf("create blob directory: %w", err)
	}

	path := filepath.Join(s.baseDir, uuid.NewString())
	if err := os.WriteFile(path, data, 0640); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return path, nil
}

// Read returns the bytes at path, or at path_<size> when a size variant
// is requested. A missing blob (original or variant) is port.ErrNotFound;
// other I/O failures keep their cause.
func (s *BlobStore) Read(_ context.Context, path, size string) ([]byte, error) {
	realPath := path
	if size != "" {
		realPath = path + "_" + size
	}

	data, err := os.ReadFile(realPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, port.ErrNotFound
		}
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}
