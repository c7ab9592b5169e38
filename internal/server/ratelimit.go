package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"musa/internal/metrics"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTimeout   = 10 * time.Minute
	limiterSweepInterval = time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client address.
type RateLimiter struct {
	limiters  map[string]*clientLimiter
	mu        sync.Mutex
	rate      rate.Limit
	burst     int
	lastSweep time.Time
}

// NewRateLimiter allows requestsPerSecond per client with the given burst.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters:  make(map[string]*clientLimiter),
		rate:      rate.Limit(requestsPerSecond),
		burst:     burst,
		lastSweep: time.Now(),
	}
}

// Allow reports whether the client identified by key may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastSweep) > limiterSweepInterval {
		for k, cl := range rl.limiters {
			if now.Sub(cl.lastSeen) > limiterIdleTimeout {
				delete(rl.limiters, k)
			}
		}
		rl.lastSweep = now
	}

	cl, exists := rl.limiters[key]
	if !exists {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastSeen = now

	return cl.limiter.Allow()
}

// rateLimitMiddleware rejects clients exceeding the login rate with 429.
func (ms *MusicServer) rateLimitMiddleware(next http.Handler) http.Handler {
	if ms.loginLimiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ms.loginLimiter.Allow(clientKey(r)) {
			metrics.RateLimitBlocked.WithLabelValues(r.URL.Path).Inc()
			w.Header().Set("Retry-After", "1")
			ms.respondWithError(w, r, http.StatusTooManyRequests, "Too many login attempts", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the client by remote IP. X-Forwarded-For is only
// trusted from loopback, where the ngrok agent forwards public traffic.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		if hop := lastForwardedHop(r); hop != "" {
			return hop
		}
	}
	return host
}

// lastForwardedHop returns the address appended by the nearest proxy.
// Earlier entries are supplied by the client and can be forged.
func lastForwardedHop(r *http.Request) string {
	values := r.Header.Values("X-Forwarded-For")
	if len(values) == 0 {
		return ""
	}

	hops := strings.Split(values[len(values)-1], ",")
	return strings.TrimSpace(hops[len(hops)-1])
}
