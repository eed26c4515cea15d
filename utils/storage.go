package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedImage = errors.New("unsupported image type, allowed: png, jpg, jpeg, gif")

var allowedImageExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

// ImageStore persists product images. Save returns the path recorded on the ProductImage row.
type ImageStore interface {
	Save(ctx context.Context, productID uint, filename string, body io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, path string) error
}

// ImageExtension returns the lower-cased extension of filename if it is an allowed image type.
func ImageExtension(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !allowedImageExtensions[ext] {
		return "", ErrUnsupportedImage
	}
	return ext, nil
}

// objectKey builds "<product_id>/<uuid>.<ext>" for an uploaded file.
func objectKey(productID uint, filename string) (string, error) {
	ext, err := ImageExtension(filename)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d/%s.%s", productID, uuid.NewString(), ext), nil
}

// keyFromPath recovers the "<product_id>/<name>" key from a stored path or URL.
func keyFromPath(path string) string {
	parts := strings.Split(strings.TrimRight(path, "/"), "/")
	if len(parts) < 2 {
		return path
	}
	return strings.Join(parts[len(parts)-2:], "/")
}
