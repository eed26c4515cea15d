package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalImageStore writes images under a directory that is served at urlPrefix.
type LocalImageStore struct {
	dir       string
	urlPrefix string
}

func NewLocalImageStore(dir, urlPrefix string) *LocalImageStore {
	return &LocalImageStore{dir: dir, urlPrefix: urlPrefix}
}

func (s *LocalImageStore) Dir() string {
	return s.dir
}

func (s *LocalImageStore) Save(_ context.Context, productID uint, filename string, body io.Reader, _ int64, _ string) (string, error) {
	key, err := objectKey(productID, filename)
	if err != nil {
		return "", err
	}

	target := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", target, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(target)
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(target)
		return "", err
	}
	return s.urlPrefix + "/" + key, nil
}

func (s *LocalImageStore) Remove(_ context.Context, path string) error {
	target := filepath.Join(s.dir, filepath.FromSlash(keyFromPath(path)))
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
