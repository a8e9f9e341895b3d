package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes files into an uploads directory served back at
// <baseURL>/public/images/.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, publicBaseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(publicBaseURL, "/") + "/public/images/",
	}, nil
}

func (s *LocalStore) Save(ctx context.Context, originalName, contentType string, r io.Reader, size int64) (string, error) {
	key := objectKey(originalName)
	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return s.baseURL + key, nil
}

func (s *LocalStore) Delete(ctx context.Context, url string) error {
	return os.Remove(filepath.Join(s.dir, keyFromURL(url)))
}
