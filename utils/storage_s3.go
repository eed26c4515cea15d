package utils

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3ImageStore uploads images to an S3 bucket and records the object URL.
type S3ImageStore struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
}

// NewS3ImageStore loads the default AWS config (env, shared files, instance role).
func NewS3ImageStore(ctx context.Context, bucket string) (*S3ImageStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3ImageStore{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
	}, nil
}

func (s *S3ImageStore) Save(ctx context.Context, productID uint, filename string, body io.Reader, _ int64, contentType string) (string, error) {
	key, err := objectKey(productID, filename)
	if err != nil {
		return "", err
	}
	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return result.Location, nil
}

func (s *S3ImageStore) Remove(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(keyFromPath(path)),
	})
	return err
}
