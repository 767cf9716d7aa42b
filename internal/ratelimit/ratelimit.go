// Package ratelimit throttles authentication attempts per client
// address to slow down credential guessing.
package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Defaults: 10 auth attempts per minute with a burst of 5.
const (
	DefaultRate  = rate.Limit(10.0 / 60.0)
	DefaultBurst = 5

	cleanupInterval = 5 * time.Minute
	entryTTL        = 15 * time.Minute
)

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter tracks a token bucket per client address.
type Limiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*clientLimiter

	stopCh chan struct{}
}

// New creates a Limiter and starts its background cleanup.
func New(limit rate.Limit, burst int) *Limiter {
	l := &Limiter{
		limit:   limit,
		burst:   burst,
		clients: make(map[string]*clientLimiter),
		stopCh:  make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Stop ends the background cleanup goroutine.
func (l *Limiter) Stop() {
	close(l.stopCh)
}

// Allow reports whether the client address may make another attempt.
func (l *Limiter) Allow(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	l.mu.Lock()
	cl, ok := l.clients[host]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[host] = cl
	}
	cl.lastAccess = time.Now()
	l.mu.Unlock()

	return cl.limiter.Allow()
}

// Middleware rejects over-limit requests with 429 before calling next.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(r.RemoteAddr) {
			slog.Warn("auth rate limit exceeded", "addr", r.RemoteAddr)
			http.Error(w, "too many attempts, try again later", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-entryTTL)
			l.mu.Lock()
			for host, cl := range l.clients {
				if cl.lastAccess.Before(cutoff) {
					delete(l.clients, host)
				}
			}
			l.mu.Unlock()
		case <-l.stopCh:
			return
		}
	}
}
