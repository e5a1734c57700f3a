package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-careers-backend/internal/delivery/http/response"
	"go-careers-backend/pkg/apperror"
	"go-careers-backend/pkg/audit"
	"go-careers-backend/pkg/logger"
	"go-careers-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

const (
	defaultWriteLimit  = 20
	defaultWriteWindow = time.Minute
)

// RateLimitConfig describes one fixed-window limit on a public write route.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	// KeyFunc picks the bucket a request counts against. Defaults to the client IP.
	KeyFunc func(*gin.Context) string
	// KeyPrefix namespaces the buckets, e.g. "rl:apply:".
	KeyPrefix string
	// FailClosed answers 503 instead of counting locally when Redis errors.
	FailClosed bool
	// Client overrides the shared client from pkg/redis.
	Client *goredis.Client
}

// WriteRateLimitConfig limits a candidate or application write route per client IP.
// Non-positive values fall back to 20 requests a minute.
func WriteRateLimitConfig(route string, limit int, window time.Duration) RateLimitConfig {
	if limit <= 0 {
		limit = defaultWriteLimit
	}
	if window <= 0 {
		window = defaultWriteWindow
	}
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:" + route + ":",
		KeyFunc:   (*gin.Context).ClientIP,
	}
}

// windowHit is the state of a bucket after counting one request.
type windowHit struct {
	count   int
	resetAt time.Time
}

// fixedWindowScript increments a bucket and starts its expiry on the first hit.
// It returns the new count and the milliseconds left in the window.
var fixedWindowScript = goredis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
    redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {n, redis.call('PTTL', KEYS[1])}
`)

func hitRedis(ctx context.Context, client *goredis.Client, key string, window time.Duration) (windowHit, error) {
	vals, err := fixedWindowScript.Run(ctx, client, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return windowHit{}, fmt.Errorf("rate limit %s: %w", key, err)
	}
	if len(vals) != 2 {
		return windowHit{}, fmt.Errorf("rate limit %s: unexpected reply %v", key, vals)
	}

	ttl := time.Duration(vals[1]) * time.Millisecond
	if ttl < 0 {
		ttl = window
	}
	return windowHit{count: int(vals[0]), resetAt: time.Now().Add(ttl)}, nil
}

// localWindows counts requests in process while Redis is absent or failing.
// Expired buckets are swept at most once per window.
type localWindows struct {
	mu        sync.Mutex
	window    time.Duration
	buckets   map[string]*windowHit
	nextSweep time.Time
}

func newLocalWindows(window time.Duration) *localWindows {
	return &localWindows{window: window, buckets: make(map[string]*windowHit)}
}

func (l *localWindows) hit(key string, now time.Time) windowHit {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.After(l.nextSweep) {
		for k, b := range l.buckets {
			if now.After(b.resetAt) {
				delete(l.buckets, k)
			}
		}
		l.nextSweep = now.Add(l.window)
	}

	b, ok := l.buckets[key]
	if !ok || now.After(b.resetAt) {
		b = &windowHit{resetAt: now.Add(l.window)}
		l.buckets[key] = b
	}
	b.count++
	return *b
}

// RateLimitMiddleware enforces config on a route. It counts in Redis when a
// client is available and in process otherwise. Rejections are 429 rate_limited
// and are written to the audit trail.
func RateLimitMiddleware(config RateLimitConfig, auditLogger *audit.Logger) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = (*gin.Context).ClientIP
	}
	local := newLocalWindows(config.Window)

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := config.KeyPrefix + config.KeyFunc(c)

		client := config.Client
		if client == nil {
			client = redis.Client()
		}

		var hit windowHit
		if client != nil {
			var err error
			hit, err = hitRedis(ctx, client, key, config.Window)
			if err != nil {
				if config.FailClosed {
					logger.FromContext(ctx).Error("Rate limiter unavailable", "error", err)
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.",
						apperror.KindStorage)
					c.Abort()
					return
				}
				logger.FromContext(ctx).Warn("Rate limiter counting locally", "error", err)
				hit = local.hit(key, time.Now())
			}
		} else {
			hit = local.hit(key, time.Now())
		}

		remaining := config.Limit - hit.count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", hit.resetAt.UTC().Format(time.RFC3339))

		if hit.count <= config.Limit {
			c.Next()
			return
		}

		retryAfter := int(time.Until(hit.resetAt).Round(time.Second).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))

		auditLogger.Log(ctx, audit.Event{
			Event:     audit.EventRateLimitTriggered,
			IP:        c.ClientIP(),
			RequestID: response.RequestID(c),
			Details: map[string]interface{}{
				"route": c.FullPath(),
				"count": hit.count,
			},
		})

		response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.",
			apperror.KindRateLimited)
		c.Abort()
	}
}
