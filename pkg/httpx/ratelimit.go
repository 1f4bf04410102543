package httpx

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/tair/storefront/pkg/logger"
)

var rateLimited = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "storefront_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	},
)

func init() {
	prometheus.MustRegister(rateLimited)
}

// WindowCounter records a hit for key and returns how many hits the key had
// in the window before this one
type WindowCounter interface {
	Hit(ctx context.Context, key string, now time.Time, window time.Duration) (int64, error)
}

// RedisWindow is a sliding window kept in a Redis sorted set per key
type RedisWindow struct {
	client redis.UniversalClient
}

func NewRedisWindow(client redis.UniversalClient) *RedisWindow {
	return &RedisWindow{client: client}
}

func (w *RedisWindow) Hit(ctx context.Context, key string, now time.Time, window time.Duration) (int64, error) {
	windowStart := now.Add(-window)

	pipe := w.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	pipe.Expire(ctx, key, window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return countCmd.Val(), nil
}

// RateLimiter limits requests per client address
type RateLimiter struct {
	counter     WindowCounter
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

// NewRateLimiter creates a limiter allowing maxRequests per window
func NewRateLimiter(counter WindowCounter, maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		counter:     counter,
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
	}
}

// Middleware rejects requests over the limit with 429. Counter failures let
// the request through.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identifier := clientIP(r)
		now := rl.now()
		resetTime := now.Add(rl.window)

		count, err := rl.counter.Hit(r.Context(), "storefront:ratelimit:"+identifier, now, rl.window)
		if err != nil {
			logger.Error(r.Context()).
				Err(err).
				Str("identifier", identifier).
				Msg("Rate limiter error")
			next.ServeHTTP(w, r)
			return
		}

		remaining := rl.maxRequests - int(count) - 1
		if remaining < 0 {
			remaining = 0
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.maxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if count >= int64(rl.maxRequests) {
			rateLimited.Inc()
			logger.Warn(r.Context()).
				Str("identifier", identifier).
				Int("limit", rl.maxRequests).
				Msg("Rate limit exceeded")

			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			RespondError(w, http.StatusTooManyRequests,
				fmt.Sprintf("Too many requests. Try again in %v", rl.window.Round(time.Second)))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
