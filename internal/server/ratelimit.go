package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// client is one address's token bucket and when it was last used.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client address. Buckets of
// clients that stay away are dropped by Prune.
type IPRateLimiter struct {
	ips map[string]*client
	mu  sync.Mutex
	r   rate.Limit
	b   int
	now func() time.Time
}

// NewIPRateLimiter allows r requests per second with bursts of b per client.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*client),
		r:   r,
		b:   b,
		now: time.Now,
	}
}

// GetLimiter returns the limiter for ip, creating it on first use.
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, exists := l.ips[ip]
	if !exists {
		c = &client{limiter: rate.NewLimiter(l.r, l.b)}
		l.ips[ip] = c
	}
	c.lastSeen = l.now()

	return c.limiter
}

// Allow reports whether a request from ip may proceed now.
func (l *IPRateLimiter) Allow(ip string) bool {
	return l.GetLimiter(ip).Allow()
}

// Prune drops clients not seen for longer than maxIdle and returns how many
// were removed.
func (l *IPRateLimiter) Prune(maxIdle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-maxIdle)
	removed := 0
	for ip, c := range l.ips {
		if c.lastSeen.Before(cutoff) {
			delete(l.ips, ip)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked clients.
func (l *IPRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ips)
}

// IdleTimeout is how long a client must stay away before its bucket can be
// dropped: at least minIdle, and never before the bucket would have refilled.
func (l *IPRateLimiter) IdleTimeout(minIdle time.Duration) time.Duration {
	if l.r <= 0 || l.r == rate.Inf {
		return minIdle
	}
	refill := float64(l.b) / float64(l.r) * float64(time.Second)
	if refill > float64(24*time.Hour) {
		return 24 * time.Hour
	}
	if d := time.Duration(refill); d > minIdle {
		return d
	}
	return minIdle
}

// PruneEvery runs Prune on every tick of interval until ctx is done.
func (l *IPRateLimiter) PruneEvery(ctx context.Context, interval, maxIdle time.Duration, onPrune func(removed, remaining int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := l.Prune(maxIdle); removed > 0 && onPrune != nil {
				onPrune(removed, l.Len())
			}
		}
	}
}

// clientIP returns the host part of the request's remote address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
