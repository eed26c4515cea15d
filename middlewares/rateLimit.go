package middlewares

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// LoginAttempts tracks failed logins and cooldowns per key.
type LoginAttempts interface {
	Cooldown(ctx context.Context, key string) (time.Duration, error)
	StartCooldown(ctx context.Context, key string, d time.Duration) error
	Failures(ctx context.Context, key string) (int, error)
	RecordFailure(ctx context.Context, key string, window time.Duration) error
	Reset(ctx context.Context, key string) error
}

type RedisLoginAttempts struct {
	client *redis.Client
}

func NewRedisLoginAttempts(client *redis.Client) *RedisLoginAttempts {
	return &RedisLoginAttempts{client: client}
}

func (r *RedisLoginAttempts) Cooldown(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, "login_cooldown:"+key).Result()
	if err != nil {
		return 0, err
	}
	// -2 missing key, -1 no expiry
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (r *RedisLoginAttempts) StartCooldown(ctx context.Context, key string, d time.Duration) error {
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, "login_cooldown:"+key, "1", d)
	pipe.Del(ctx, "login_attempts:"+key)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisLoginAttempts) Failures(ctx context.Context, key string) (int, error) {
	n, err := r.client.Get(ctx, "login_attempts:"+key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (r *RedisLoginAttempts) RecordFailure(ctx context.Context, key string, window time.Duration) error {
	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, "login_attempts:"+key)
	pipe.Expire(ctx, "login_attempts:"+key, window)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisLoginAttempts) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, "login_attempts:"+key, "login_cooldown:"+key).Err()
}

// LoginRateLimit blocks a username for cooldown after maxAttempts failed logins.
// Store errors are logged and never block a login.
func LoginRateLimit(attempts LoginAttempts, maxAttempts int, cooldown time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		bodyBytes, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			ctx.Next()
			return
		}
		ctx.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input struct {
			Username string `json:"username"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || strings.TrimSpace(input.Username) == "" {
			ctx.Next()
			return
		}
		key := strings.ToLower(strings.TrimSpace(input.Username))
		reqCtx := ctx.Request.Context()

		remaining, err := attempts.Cooldown(reqCtx, key)
		if err != nil {
			log.Printf("login rate limit: %v", err)
			ctx.Next()
			return
		}
		if remaining > 0 {
			tooManyAttempts(ctx, remaining)
			return
		}

		failures, err := attempts.Failures(reqCtx, key)
		if err != nil {
			log.Printf("login rate limit: %v", err)
			ctx.Next()
			return
		}
		if failures >= maxAttempts {
			if err := attempts.StartCooldown(reqCtx, key, cooldown); err != nil {
				log.Printf("login rate limit: %v", err)
			}
			tooManyAttempts(ctx, cooldown)
			return
		}

		ctx.Next()

		switch ctx.Writer.Status() {
		case http.StatusUnauthorized:
			if err := attempts.RecordFailure(reqCtx, key, cooldown); err != nil {
				log.Printf("login rate limit: %v", err)
			}
		case http.StatusOK:
			if err := attempts.Reset(reqCtx, key); err != nil {
				log.Printf("login rate limit: %v", err)
			}
		}
	}
}

func tooManyAttempts(ctx *gin.Context, retryAfter time.Duration) {
	seconds := int(retryAfter.Seconds())
	ctx.Header("Retry-After", strconv.Itoa(seconds))
	ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"message":     fmt.Sprintf("Too many failed login attempts, try again in %d minutes", int(retryAfter.Minutes())+1),
		"retry_after": seconds,
	})
}
