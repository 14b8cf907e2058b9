package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	pnet "playerpulse/internal/platform/net"
)

// RateLimitOptions configures the per-caller token bucket
type RateLimitOptions struct {
	// RPS is the sustained refill rate per key
	RPS float64

	// Burst is the bucket capacity
	Burst float64
}

type rateBucket struct {
	mu     sync.Mutex
	tokens float64
	last   time.Time
}

// RateLimit throttles requests per caller with a token bucket.
// The key is the authenticated client id when present, else the peer address,
// so the key stays stable across requests from the same caller
func RateLimit(o RateLimitOptions, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	if o.RPS <= 0 {
		o.RPS = 10
	}
	if o.Burst <= 0 {
		o.Burst = 20
	}
	buckets := xsync.NewMap[string, *rateBucket]()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := RateKey(r)
			b, _ := buckets.LoadOrCompute(key, func() (*rateBucket, bool) {
				return &rateBucket{tokens: o.Burst, last: time.Now()}, false
			})

			b.mu.Lock()
			now := time.Now()
			b.tokens += now.Sub(b.last).Seconds() * o.RPS
			if b.tokens > o.Burst {
				b.tokens = o.Burst
			}
			b.last = now
			allowed := b.tokens >= 1
			if allowed {
				b.tokens--
			}
			b.mu.Unlock()

			if !allowed {
				w.Header().Set("Retry-After", "1")
				write(w, http.StatusTooManyRequests, pnet.Detail{Detail: "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateKey derives the throttle key for a request
func RateKey(r *http.Request) string {
	if cid := pnet.ClientID(r.Context()); cid != "" {
		return "client:" + cid
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
