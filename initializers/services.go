package initializers

import (
	"context"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/Kariqs/ecommerce-shop-api/models"
	"github.com/Kariqs/ecommerce-shop-api/utils"
	"github.com/redis/go-redis/v9"
)

// UploadsURLPrefix is where the local image store is served.
const UploadsURLPrefix = "/uploads"

// NewImageStore builds the image store selected by IMAGE_STORE.
func NewImageStore(ctx context.Context, cfg Config) (utils.ImageStore, error) {
	switch cfg.ImageStore {
	case "s3":
		store, err := utils.NewS3ImageStore(ctx, cfg.S3Bucket)
		if err != nil {
			return nil, err
		}
		log.Printf("Storing product images in S3 bucket %s", cfg.S3Bucket)
		return store, nil
	case "minio":
		store, err := utils.NewMinioImageStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("prepare minio bucket %s: %w", cfg.MinioBucket, err)
		}
		log.Printf("Storing product images in MinIO at %s", cfg.MinioEndpoint)
		return store, nil
	default:
		log.Printf("Storing product images in %s", path.Clean(cfg.UploadDir))
		return utils.NewLocalImageStore(cfg.UploadDir, UploadsURLPrefix), nil
	}
}

// ConnectRedis returns nil when REDIS_ADDR is not set.
func ConnectRedis(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	log.Printf("Connected to Redis at %s", cfg.RedisAddr)
	return client, nil
}

// NewOrderNotifiers returns the webhook and email notifiers that are configured.
func NewOrderNotifiers(cfg Config, users *models.UsersRepository) utils.Notifiers {
	var notifiers utils.Notifiers
	if cfg.OrderWebhookURL != "" {
		notifiers = append(notifiers, utils.NewWebhookNotifier(cfg.OrderWebhookURL, 10*time.Second))
	}
	if cfg.SMTPHost != "" && cfg.FromEmail != "" {
		notifiers = append(notifiers, utils.NewMailNotifier(utils.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.FromEmail,
		}, func(ctx context.Context, userID uint) (string, string, error) {
			user, err := users.GetByID(ctx, userID)
			if err != nil {
				return "", "", err
			}
			name := user.FirstName
			if name == "" {
				name = user.Username
			}
			return user.Email, name, nil
		}))
	}
	return notifiers
}
