package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	defaultRPS   = 100.0
	defaultBurst = 200

	// Buckets idle longer than this are dropped on the next sweep so the
	// per-IP map does not grow without bound.
	bucketIdleTTL = 10 * time.Minute
)

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

type limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rps     float64
	burst   float64
}

// allow refills the caller's bucket by elapsed time and takes one token.
// ok=false reports the whole seconds until a token is available again.
func (l *limiter) allow(key string, now time.Time) (ok bool, retryAfter int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, found := l.buckets[key]
	if !found {
		if len(l.buckets) > 0 && len(l.buckets)%1024 == 0 {
			l.sweep(now)
		}
		b = &bucket{tokens: l.burst}
		l.buckets[key] = b
	} else {
		b.tokens += now.Sub(b.lastSeen).Seconds() * l.rps
		if b.tokens > l.burst {
			b.tokens = l.burst
		}
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false, int((1-b.tokens)/l.rps) + 1
	}
	b.tokens--
	return true, 0
}

func (l *limiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > bucketIdleTTL {
			delete(l.buckets, key)
		}
	}
}

// RateLimit caps request throughput per client IP with a token bucket.
// Non-positive rps or burst fall back to the service defaults.
func RateLimit(rps float64, burst int) echo.MiddlewareFunc {
	if rps <= 0 {
		rps = defaultRPS
	}
	if burst <= 0 {
		burst = defaultBurst
	}
	l := &limiter{
		buckets: make(map[string]*bucket),
		rps:     rps,
		burst:   float64(burst),
	}
	limitHeader := strconv.FormatFloat(rps, 'f', -1, 64)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Response().Header()
			header.Set("X-RateLimit-Limit", limitHeader)

			ok, retryAfter := l.allow(c.RealIP(), time.Now())
			if !ok {
				header.Set("Retry-After", strconv.Itoa(retryAfter))
				header.Set("X-RateLimit-Remaining", "0")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
