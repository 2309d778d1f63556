package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/wanderlust/listings/internal/config"
)

// MsgTooManyRequests is shown on the error page when a bucket is empty.
const MsgTooManyRequests = "Too many attempts, please slow down"

// takeToken refills the bucket for the whole intervals elapsed since the
// last refill, then tries to take one token.
// Returns {taken (0|1), tokens left, ms until the next refill}.
var takeToken = redis.NewScript(`
local cap, step, every, ttl, now = tonumber(ARGV[1]), tonumber(ARGV[2]), tonumber(ARGV[3]), tonumber(ARGV[4]), tonumber(ARGV[5])
local b = redis.call('HMGET', KEYS[1], 'left', 'at')
local left, at = tonumber(b[1]) or cap, tonumber(b[2]) or now

local n = math.floor(math.max(0, now - at) / every)
if n > 0 then
	left = math.min(cap, left + n * step)
	at = at + n * every
end

local taken = 0
if left > 0 then
	left = left - 1
	taken = 1
end
redis.call('HSET', KEYS[1], 'left', left, 'at', at)
redis.call('EXPIRE', KEYS[1], ttl)
return {taken, left, every - (now - at)}
`)

// TokenBucket is a per-key token bucket kept in Redis.
type TokenBucket struct {
	cfg config.RateLimitConfig
	rdb *redis.Client
	now func() time.Time
}

// grant is the outcome of one take.
type grant struct {
	ok         bool
	left       int64
	retryAfter time.Duration
}

func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) *TokenBucket {
	return &TokenBucket{cfg: cfg, rdb: rdb, now: time.Now}
}

// take removes one token from key's bucket.
func (b *TokenBucket) take(ctx context.Context, key string) (grant, error) {
	res, err := takeToken.Run(ctx, b.rdb, []string{key},
		b.cfg.Capacity,
		b.cfg.RefillTokens,
		b.cfg.RefillInterval.Milliseconds(),
		int64(b.cfg.TTL/time.Second),
		b.now().UnixMilli(),
	).Int64Slice()
	if err != nil {
		return grant{}, err
	}
	if len(res) != 3 {
		return grant{}, fmt.Errorf("ratelimit: script returned %d values", len(res))
	}
	return grant{
		ok:         res[0] == 1,
		left:       res[1],
		retryAfter: time.Duration(max(res[2], 0)) * time.Millisecond,
	}, nil
}

// Middleware limits each caller per route. Logged-in users get their own
// bucket; anonymous callers share one per client address. It passes
// everything through when disabled or without Redis, and fails open when
// Redis errors.
func (b *TokenBucket) Middleware() echo.MiddlewareFunc {
	if b == nil || !b.cfg.Enabled || b.rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := rateKey(b.cfg.Prefix, c)
			t, err := b.take(c.Request().Context(), key)
			if err != nil {
				c.Logger().Warnf("[ratelimit] %s: limiter unavailable, letting request through: %v", key, err)
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(b.cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(t.left, 10))
			if t.ok {
				return next(c)
			}

			secs := int((t.retryAfter + time.Second - 1) / time.Second)
			h.Set("Retry-After", strconv.Itoa(secs))
			if b.cfg.Debug {
				c.Logger().Infof("[ratelimit] %s: empty, retry in %s", key, t.retryAfter)
			}
			return echo.NewHTTPError(http.StatusTooManyRequests, MsgTooManyRequests)
		}
	}
}

// rateKey builds prefix:ip:subject:METHOD /route.
func rateKey(prefix string, c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	return strings.Join([]string{prefix, ip, rateSubject(c), c.Request().Method + " " + c.Path()}, ":")
}
