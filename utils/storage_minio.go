package utils

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioImageStore struct {
	client   *minio.Client
	endpoint string
	bucket   string
	secure   bool
}

func NewMinioImageStore(endpoint, accessKey, secretKey, bucket string, secure bool) (*MinioImageStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to minio %s: %w", endpoint, err)
	}
	return &MinioImageStore{client: client, endpoint: endpoint, bucket: bucket, secure: secure}, nil
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *MinioImageStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

func (s *MinioImageStore) Save(ctx context.Context, productID uint, filename string, body io.Reader, size int64, contentType string) (string, error) {
	key, err := objectKey(productID, filename)
	if err != nil {
		return "", err
	}
	if _, err := s.client.PutObject(ctx, s.bucket, key, body, size,
		minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	scheme := "http"
	if s.secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, key), nil
}

func (s *MinioImageStore) Remove(ctx context.Context, path string) error {
	return s.client.RemoveObject(ctx, s.bucket, keyFromPath(path), minio.RemoveObjectOptions{})
}
