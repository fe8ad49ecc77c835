package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/avtomaktab/avtotest-backend/internal/response"
	"github.com/gin-gonic/gin"
)

// RateLimiter caps requests per client IP over a fixed window. It guards
// the login and contact-form endpoints, the only unauthenticated writes.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*ipBucket
	limit   int
	window  time.Duration

	lastPrune time.Time
}

type ipBucket struct {
	count       int
	windowStart time.Time
}

// NewRateLimiter allows limit requests per window for each client IP.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:   make(map[string]*ipBucket),
		limit:     limit,
		window:    window,
		lastPrune: time.Now(),
	}
}

// Middleware rejects over-limit requests with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.pruneLocked(now)

	b, ok := rl.buckets[ip]
	if !ok || now.Sub(b.windowStart) >= rl.window {
		rl.buckets[ip] = &ipBucket{count: 1, windowStart: now}
		return true
	}
	if b.count >= rl.limit {
		return false
	}
	b.count++
	return true
}

// pruneLocked drops idle buckets. Runs inline on requests, so the limiter
// needs no background goroutine.
func (rl *RateLimiter) pruneLocked(now time.Time) {
	if now.Sub(rl.lastPrune) < time.Minute {
		return
	}
	rl.lastPrune = now
	for ip, b := range rl.buckets {
		if now.Sub(b.windowStart) >= 2*rl.window {
			delete(rl.buckets, ip)
		}
	}
}
