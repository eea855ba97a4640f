package database

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis holds short-lived keyed state: OTP codes, refresh tokens, and
// the JWT logout blacklist. Keeping it out of process memory lets the
// state survive restarts and spread across instances.
var Redis *redis.Client

const (
	otpPrefix       = "otp:"
	refreshPrefix   = "refresh:"
	blacklistPrefix = "blacklist:"
)

func ConnectRedis() {
	addr := getRedisAddr()

	Redis = redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection error:", err)
	}

	slog.Info("connected to Redis", "addr", addr)
}

func getRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func SetOTP(ctx context.Context, email, code string, ttl time.Duration) error {
	return Redis.Set(ctx, otpPrefix+email, code, ttl).Err()
}

// GetOTP returns the stored code, or "" when it is absent or expired.
func GetOTP(ctx context.Context, email string) (string, error) {
	code, err := Redis.Get(ctx, otpPrefix+email).Result()
	if err == redis.Nil {
		return "", nil
	}
	return code, err
}

func DeleteOTP(ctx context.Context, email string) error {
	return Redis.Del(ctx, otpPrefix+email).Err()
}

func SetRefreshToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	return Redis.Set(ctx, refreshPrefix+userID, token, ttl).Err()
}

func GetRefreshToken(ctx context.Context, userID string) (string, error) {
	token, err := Redis.Get(ctx, refreshPrefix+userID).Result()
	if err == redis.Nil {
		return "", nil
	}
	return token, err
}

// BlacklistToken parks a logged-out JWT until its natural expiry.
func BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return Redis.Set(ctx, blacklistPrefix+token, "1", ttl).Err()
}

func IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	err := Redis.Get(ctx, blacklistPrefix+token).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
