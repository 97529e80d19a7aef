package cache

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	sharedConfig "coursekit/internal/shared/config"
)

const (
	magicLinkPrefix        = "auth:magiclink:"
	magicLinkRatePrefix    = "auth:magiclink:rate:"
	magicLinkRequestPrefix = "auth:magiclink:req:"
	magicLinkCodeBytes     = 16 // 128 bits of entropy; the code travels in a URL
)

// ErrCodeInvalid is returned when a login code is unknown, expired, or already
// consumed. Callers cannot distinguish the three cases on purpose.
var ErrCodeInvalid = errors.New("login code not found or expired")

// ErrRateLimited is returned when an address or client has exhausted its
// attempt budget.
var ErrRateLimited = errors.New("too many attempts, please try again later")

// MagicLinkStore holds one-time login codes in Redis. Codes are single use:
// verification consumes the key atomically via GETDEL, so a replayed link
// fails the same way an expired one does.
type MagicLinkStore struct {
	client      *redis.Client
	ttl         time.Duration
	maxRequests int
	maxAttempts int
	lockout     time.Duration
}

func NewMagicLinkStore(client *redis.Client, cfg sharedConfig.MagicLinkConfig) *MagicLinkStore {
	return &MagicLinkStore{
		client:      client,
		ttl:         time.Duration(cfg.ExpMinutes) * time.Minute,
		maxRequests: cfg.MaxRequests,
		maxAttempts: cfg.MaxAttempts,
		lockout:     time.Duration(cfg.LockoutMinutes) * time.Minute,
	}
}

// NewRedisClient builds the shared Redis client from config.
func NewRedisClient(ctx context.Context, cfg *sharedConfig.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// Generate creates a fresh login code for the user, throttled per email so a
// flood of requests for one address cannot fill someone's inbox.
func (s *MagicLinkStore) Generate(ctx context.Context, userID uint, email string) (string, error) {
	reqKey := magicLinkRequestPrefix + email
	requests, err := s.client.Get(ctx, reqKey).Int()
	if err != nil && err != redis.Nil {
		return "", fmt.Errorf("failed to check request limit: %w", err)
	}
	if requests >= s.maxRequests {
		return "", ErrRateLimited
	}

	bytes := make([]byte, magicLinkCodeBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	code := hex.EncodeToString(bytes)

	if err := s.client.Set(ctx, magicLinkPrefix+code, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store login code: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Incr(ctx, reqKey)
	pipe.Expire(ctx, reqKey, s.lockout)
	_, _ = pipe.Exec(ctx)

	return code, nil
}

// Verify consumes a login code and returns the user it was issued for.
// Failed attempts are counted per client IP; past the budget every code is
// rejected until the lockout expires.
func (s *MagicLinkStore) Verify(ctx context.Context, code, clientIP string) (uint, error) {
	if code == "" {
		return 0, ErrCodeInvalid
	}

	rateKey := magicLinkRatePrefix + clientIP
	attempts, err := s.client.Get(ctx, rateKey).Int()
	if err != nil && err != redis.Nil {
		return 0, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if attempts >= s.maxAttempts {
		return 0, ErrRateLimited
	}

	val, err := s.client.GetDel(ctx, magicLinkPrefix+code).Result()
	if err != nil {
		if err == redis.Nil {
			s.incrementFailedAttempts(ctx, rateKey)
			return 0, ErrCodeInvalid
		}
		return 0, fmt.Errorf("failed to get login code: %w", err)
	}

	s.client.Del(ctx, rateKey)

	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID in login code: %w", err)
	}

	return uint(userID), nil
}

func (s *MagicLinkStore) incrementFailedAttempts(ctx context.Context, rateKey string) {
	pipe := s.client.Pipeline()
	pipe.Incr(ctx, rateKey)
	pipe.Expire(ctx, rateKey, s.lockout)
	_, _ = pipe.Exec(ctx)
}

// Delete removes a code without consuming it, e.g. when the email send fails.
func (s *MagicLinkStore) Delete(ctx context.Context, code string) error {
	if code == "" {
		return nil
	}
	return s.client.Del(ctx, magicLinkPrefix+code).Err()
}
