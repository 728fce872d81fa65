// ABOUTME: Token bucket rate limiting for the sync endpoint, keyed by sync
// ABOUTME: key so one noisy client cannot starve other partitions.

package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	syncwire "github.com/lumenote/lumenote/internal/sync"
)

const defaultBucketTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// syncRateLimiter holds one token bucket per client key. Buckets idle for
// longer than ttl are swept opportunistically on the next request; there is
// no background goroutine to leak.
type syncRateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	rps       rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
}

func newSyncRateLimiter(rps float64, burst int, ttl time.Duration) *syncRateLimiter {
	return &syncRateLimiter{
		buckets:   make(map[string]*bucket),
		rps:       rate.Limit(rps),
		burst:     burst,
		ttl:       ttl,
		lastSweep: time.Now(),
	}
}

func (rl *syncRateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastSweep) > rl.ttl {
		for k, b := range rl.buckets {
			if now.Sub(b.lastSeen) > rl.ttl {
				delete(rl.buckets, k)
			}
		}
		rl.lastSweep = now
	}

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.Allow()
}

// clientKey identifies the caller for rate limiting. The sync key is
// preferred: it is what partitions data, and clients behind one NAT must
// not share a budget. Requests without a key fall back to the remote IP.
func clientKey(r *http.Request) string {
	if key := r.Header.Get(syncwire.KeyHeader); key != "" {
		return key
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit returns middleware limiting requests per sync key (per IP for
// requests carrying no key). rps is the sustained rate, burst the bucket
// size.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := newSyncRateLimiter(rps, burst, defaultBucketTTL)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.allow(clientKey(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
