package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"time"
)

// Store persists uploaded image files and serves them back at a public URL.
// Save writes the bytes under a collision-resistant generated name; Delete
// derives the stored name from the trailing URL segment and removes the
// file. Removing a file that is already gone is an error, not a no-op.
type Store interface {
	Save(ctx context.Context, originalName, contentType string, r io.Reader, size int64) (string, error)
	Delete(ctx context.Context, url string) error
}

// objectKey combines a millisecond timestamp with the original filename so
// two uploads of the same file do not collide.
func objectKey(originalName string) string {
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filepath.Base(originalName))
}

// keyFromURL is the trailing path segment of a stored file's URL.
func keyFromURL(url string) string {
	return path.Base(url)
}
