package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/cache"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// FailPolicy decides what happens to a request when Redis cannot be reached.
type FailPolicy int

const (
	FailOpen FailPolicy = iota
	FailClosed
)

var errNoRedis = errors.New("rate limit store not configured")

// RateLimitRule throttles POSTs to one named resource.
type RateLimitRule struct {
	Resource string
	Limit    int
	Window   time.Duration
	Policy   FailPolicy
}

// RateLimiter counts attempts in fixed windows stored in Redis.
type RateLimiter struct {
	rdb     *redis.Client
	enabled bool
}

// NewRateLimiter returns a limiter backed by rdb. A disabled limiter lets
// everything through without touching Redis.
func NewRateLimiter(rdb *redis.Client, enabled bool) *RateLimiter {
	return &RateLimiter{rdb: rdb, enabled: enabled}
}

// Allow records one attempt by id against resource. When the attempt is
// over limit it also returns how long until the window resets.
func (l *RateLimiter) Allow(ctx context.Context, resource, id string, limit int, window time.Duration) (bool, time.Duration, error) {
	if !l.enabled {
		return true, 0, nil
	}
	if l.rdb == nil {
		return false, 0, errNoRedis
	}

	key := cache.RateLimitKey(resource, id)
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		p.ExpireNX(ctx, key, window)
		ttl = p.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	if incr.Val() > int64(limit) {
		return false, max(ttl.Val(), 0), nil
	}
	return true, 0, nil
}

// Handler enforces rule on POST requests, keyed by the session user when
// present and by client IP otherwise. Rendering the form is never throttled.
func (l *RateLimiter) Handler(rule RateLimitRule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}
		ctx := c.UserContext()

		id := "ip:" + c.IP()
		if uid := c.Locals("userID"); uid != nil {
			id = fmt.Sprintf("user:%v", uid)
		}

		allowed, retry, err := l.Allow(ctx, rule.Resource, id, rule.Limit, rule.Window)
		if err != nil {
			if rule.Policy == FailClosed {
				Logger.WarnContext(ctx, "rate limit unavailable, rejecting",
					slog.String("resource", rule.Resource), slog.String("error", err.Error()))
				return fiber.NewError(fiber.StatusServiceUnavailable, "rate limit unavailable")
			}
			return c.Next()
		}
		if !allowed {
			if retry > 0 {
				c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(retry.Round(time.Second)/time.Second)))
			}
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many attempts, please wait a minute and try again")
		}
		return c.Next()
	}
}
