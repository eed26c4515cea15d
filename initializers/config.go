package initializers

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	JWTSecret         string
	JWTTTL            time.Duration
	CheckoutIsolation sql.IsolationLevel

	ImageStore     string
	UploadDir      string
	S3Bucket       string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	CORSOrigins []string

	RedisAddr        string
	RedisPassword    string
	LoginMaxAttempts int
	LoginCooldown    time.Duration

	OrderWebhookURL string
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	FromEmail       string
}

// LoadConfig reads the configuration from environment variables.
func LoadConfig() (Config, error) {
	var errs []error

	cfg := Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      os.Getenv("DB_PORT"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		ImageStore:     strings.ToLower(getEnv("IMAGE_STORE", "local")),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "products"),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		OrderWebhookURL: os.Getenv("ORDER_WEBHOOK_URL"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPUsername:    os.Getenv("SMTP_USERNAME"),
		SMTPPassword:    os.Getenv("SMTP_PASSWORD"),
		FromEmail:       os.Getenv("FROM_EMAIL"),
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "mysql" {
		errs = append(errs, fmt.Errorf("DB_DRIVER must be postgres or mysql, got %q", cfg.DBDriver))
	}
	switch cfg.ImageStore {
	case "local":
	case "s3":
		if cfg.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required when IMAGE_STORE=s3"))
		}
	case "minio":
		if cfg.MinioEndpoint == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT is required when IMAGE_STORE=minio"))
		}
	default:
		errs = append(errs, fmt.Errorf("IMAGE_STORE must be local, s3 or minio, got %q", cfg.ImageStore))
	}

	var err error
	if cfg.JWTTTL, err = getDuration("JWT_TTL", 30*24*time.Hour); err != nil {
		errs = append(errs, err)
	}
	if cfg.CheckoutIsolation, err = ParseIsolation(getEnv("CHECKOUT_ISOLATION", "repeatable_read")); err != nil {
		errs = append(errs, err)
	}
	if cfg.MinioUseSSL, err = getBool("MINIO_USE_SSL", false); err != nil {
		errs = append(errs, err)
	}
	if cfg.LoginMaxAttempts, err = getInt("LOGIN_MAX_ATTEMPTS", 5); err != nil {
		errs = append(errs, err)
	}
	if cfg.LoginCooldown, err = getDuration("LOGIN_COOLDOWN", 15*time.Minute); err != nil {
		errs = append(errs, err)
	}
	if cfg.SMTPPort, err = getInt("SMTP_PORT", 587); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

// ParseIsolation maps a CHECKOUT_ISOLATION value to a transaction isolation level.
func ParseIsolation(value string) (sql.IsolationLevel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "default", "":
		return sql.LevelDefault, nil
	case "read_committed":
		return sql.LevelReadCommitted, nil
	case "repeatable_read":
		return sql.LevelRepeatableRead, nil
	case "serializable":
		return sql.LevelSerializable, nil
	default:
		return sql.LevelDefault, fmt.Errorf("CHECKOUT_ISOLATION must be read_committed, repeatable_read or serializable, got %q", value)
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return value, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 720h: %w", key, err)
	}
	return value, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
