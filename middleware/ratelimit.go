// ABOUTME: Rate limiting middleware with fixed-window counters
// ABOUTME: Provides per-endpoint rate limits keyed by client ID or IP

package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ClientIDHeader lets browser and CLI clients identify their session slot
const ClientIDHeader = "X-Client-ID"

// maxClientIDLength bounds client identifiers used as storage and limiter keys
const maxClientIDLength = 64

// counter tracks requests within a fixed time window.
type counter struct {
	count     int
	expiresAt time.Time
}

// RateLimiter enforces a maximum number of requests per time window.
// Each unique key (client ID or IP) gets an independent counter.
type RateLimiter struct {
	mu           sync.Mutex
	windows      map[string]*counter
	limit        int
	window       time.Duration
	now          func() time.Time
	sweepCounter int // tracks new windows created; triggers sweep every 100
}

// NewRateLimiter creates a rate limiter that allows limit requests per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*counter),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow checks whether a request for the given key should be permitted.
// Returns true if within limits, or false with the duration until the window resets.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	c, exists := rl.windows[key]

	// !now.Before so the boundary instant opens a new window instead of
	// denying with a zero retry-after.
	if !exists || !now.Before(c.expiresAt) {
		rl.windows[key] = &counter{
			count:     1,
			expiresAt: now.Add(rl.window),
		}

		rl.sweepCounter++
		if rl.sweepCounter >= 100 {
			rl.sweep(now)
			rl.sweepCounter = 0
		}

		return true, 0
	}

	if c.count < rl.limit {
		c.count++
		return true, 0
	}

	return false, c.expiresAt.Sub(now)
}

// sweep removes all expired entries from the windows map.
// Must be called while holding rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for k, c := range rl.windows {
		if !now.Before(c.expiresAt) {
			delete(rl.windows, k)
		}
	}
}

// size reports the number of tracked windows.
func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.windows)
}

// ClientIP extracts the client IP from X-Forwarded-For (leftmost) or RemoteAddr.
// X-Forwarded-For is trusted, so the service must sit behind a proxy that sets it.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.SplitN(xff, ",", 2)
		ip := strings.TrimSpace(parts[0])
		if ip != "" && net.ParseIP(ip) != nil {
			return "ip:" + ip
		}
	}

	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return "ip:" + host
}

// ClientKey identifies the caller by a well-formed X-Client-ID header,
// falling back to ClientIP. Used for rate limiting and session scoping.
func ClientKey(r *http.Request) string {
	if id := r.Header.Get(ClientIDHeader); validToken(id, maxClientIDLength) {
		return "client:" + id
	}
	return ClientIP(r)
}

// RateLimit returns middleware that enforces rate limits using the given limiter and key function.
// If limiter is nil, the middleware is a no-op (disabled mode).
// If keyFunc returns an empty string, the request passes through (unidentifiable client).
func RateLimit(limiter *RateLimiter, keyFunc func(*http.Request) string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || keyFunc == nil {
				next(w, r)
				return
			}

			key := keyFunc(r)
			if key == "" {
				next(w, r)
				return
			}

			allowed, retryAfter := limiter.Allow(key)
			if allowed {
				next(w, r)
				return
			}

			retrySeconds := int(math.Ceil(retryAfter.Seconds()))
			slog.Warn("Rate limit exceeded", "key", key, "path", sanitizePath(r.URL.Path), "retry_after", retrySeconds)

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retrySeconds))
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":       "Rate limit exceeded",
				"code":        http.StatusTooManyRequests,
				"retry_after": retrySeconds,
			})
		}
	}
}
