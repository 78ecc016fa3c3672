package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	apperrors "github.com/Adithya-Monish-Kumar-K/jobsearch/pkg/errors"
	"golang.org/x/time/rate"
)

// ClientLimiter keeps one token bucket per client address.
type ClientLimiter struct {
	mu      sync.Mutex
	m       map[string]*clientEntry
	r       rate.Limit
	b       int
	idleTTL time.Duration
}

type clientEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func NewClientLimiter(reqPerSec float64, burst int) *ClientLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiter{
		m:       make(map[string]*clientEntry),
		r:       rate.Limit(reqPerSec),
		b:       burst,
		idleTTL: 10 * time.Minute,
	}
}

// Allow consumes one token for client.
func (cl *ClientLimiter) Allow(client string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := time.Now()
	e, ok := cl.m[client]
	if !ok {
		e = &clientEntry{lim: rate.NewLimiter(cl.r, cl.b)}
		cl.m[client] = e
	}
	e.lastSeen = now
	cl.prune(now)
	return e.lim.AllowN(now, 1)
}

// prune drops clients idle for longer than idleTTL. Called with mu held.
func (cl *ClientLimiter) prune(now time.Time) {
	if len(cl.m) < 1024 {
		return
	}
	for k, e := range cl.m {
		if now.Sub(e.lastSeen) > cl.idleTTL {
			delete(cl.m, k)
		}
	}
}

// RateLimit rejects requests over the per-client budget with 429. Health
// endpoints are never limited. onReject, if non-nil, runs for each rejection.
func RateLimit(cl *ClientLimiter, onReject func()) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/health") {
				next.ServeHTTP(w, r)
				return
			}
			if !cl.Allow(clientKey(r)) {
				if onReject != nil {
					onReject()
				}
				w.Header().Set("Retry-After", "1")
				apperrors.Write(w, apperrors.New(apperrors.ErrRateLimited, http.StatusTooManyRequests, "rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
