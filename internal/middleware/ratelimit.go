// Package middleware provides HTTP middleware for the relgraph API.
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// maxTrackedClients bounds the bucket table so an address scan cannot
// exhaust memory.
const maxTrackedClients = 100_000

// Bucket eviction cadence and idle cutoff.
const (
	sweepInterval = 5 * time.Minute
	bucketMaxAge  = 10 * time.Minute
)

// RateLimiter applies a token bucket per client IP. Graph operations are
// expensive relative to request size, so the limit is on request count,
// not bytes.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*tokenBucket
	rate    int
	burst   int
}

type tokenBucket struct {
	tokens int
	filled time.Time
}

// NewRateLimiter creates a limiter allowing ratePerSec requests with the
// given burst. A background sweeper evicts idle buckets until ctx is
// cancelled.
func NewRateLimiter(ctx context.Context, ratePerSec, burst int) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*tokenBucket),
		rate:    ratePerSec,
		burst:   burst,
	}
	go rl.sweep(ctx)

	return rl
}

func (rl *RateLimiter) sweep(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, b := range rl.clients {
				if now.Sub(b.filled) > bucketMaxAge {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// take refills the client's bucket from elapsed wall time and spends one
// token. The second return is false when the client table is full and
// the IP is unknown.
func (rl *RateLimiter) take(ip string, now time.Time) (allowed, tracked bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.clients[ip]
	if !ok {
		if len(rl.clients) >= maxTrackedClients {
			return false, false
		}

		b = &tokenBucket{tokens: rl.burst, filled: now}
		rl.clients[ip] = b
	}

	refill := int(now.Sub(b.filled).Seconds() * float64(rl.rate))
	if refill > 0 {
		b.tokens = min(b.tokens+refill, rl.burst)
		b.filled = now
	}

	if b.tokens == 0 {
		return false, true
	}

	b.tokens--

	return true, true
}

// Handler returns Gin middleware enforcing the per-IP limit.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// c.ClientIP() cannot be spoofed via X-Forwarded-For because the
		// router disables proxy header trust with SetTrustedProxies(nil).
		allowed, tracked := rl.take(c.ClientIP(), time.Now())

		switch {
		case !tracked:
			respondError(c, http.StatusTooManyRequests, "rate_limited", "too many clients")
		case !allowed:
			respondError(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
		default:
			c.Next()
		}
	}
}
