package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	UserKeyPrefix         = "user:%d"
	SessionKeyPrefix      = "session:%s"
	UserSessionsKeyPrefix = "session:user:%d"
	ResetTokenKeyPrefix   = "reset:%s"
	SummaryKeyPrefix      = "summary:%d"
	RateLimitKeyPrefix    = "rl:%s:%s"
	ApplicationChannelFmt = "applications:%d"
)

const (
	UserTTL    = 5 * time.Minute
	SummaryTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func SessionKey(id string) string {
	return fmt.Sprintf(SessionKeyPrefix, id)
}

// UserSessionsKey names the set of session ids held by one user.
func UserSessionsKey(userID uint) string {
	return fmt.Sprintf(UserSessionsKeyPrefix, userID)
}

func ResetTokenKey(jti string) string {
	return fmt.Sprintf(ResetTokenKeyPrefix, jti)
}

func SummaryKey(userID uint) string {
	return fmt.Sprintf(SummaryKeyPrefix, userID)
}

func RateLimitKey(resource, id string) string {
	return fmt.Sprintf(RateLimitKeyPrefix, resource, id)
}

// ApplicationChannel is the pub/sub channel carrying one applicant's lifecycle events.
func ApplicationChannel(userID uint) string {
	return fmt.Sprintf(ApplicationChannelFmt, userID)
}

// GetJSON decodes the value at key into dest. It reports false on a miss,
// when no client is connected, or when the stored value cannot be decoded.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	ctx, span := observability.TraceCacheOperation(ctx, "get", keyFamily(key))
	defer span.End()
	raw, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		client.Del(ctx, key)
		return false, nil
	}
	return true, nil
}

// SetJSON stores value at key. A missing client is a no-op.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if client == nil {
		return nil
	}
	ctx, span := observability.TraceCacheOperation(ctx, "set", keyFamily(key))
	defer span.End()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, raw, ttl).Err()
}

// keyFamily is the key up to its first colon, e.g. "summary" for "summary:42".
func keyFamily(key string) string {
	family, _, _ := strings.Cut(key, ":")
	return family
}

// Aside implements cache-aside reads: serve key from Redis when present,
// otherwise call load and store its result. Redis failures fall through to load.
func Aside[T any](ctx context.Context, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if hit, err := GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	_ = SetJSON(ctx, key, value, ttl)
	return value, nil
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateSummary drops the cached print summary for a user.
func InvalidateSummary(ctx context.Context, userID uint) {
	Invalidate(ctx, SummaryKey(userID))
}
