package server

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(0.001, 1)
	if !l.Allow("10.0.0.1") {
		t.Fatal("first request should pass")
	}
	if l.Allow("10.0.0.1") {
		t.Error("second request should be limited")
	}
	if !l.Allow("10.0.0.2") {
		t.Error("other clients have their own bucket")
	}
	if l.GetLimiter("10.0.0.1") != l.GetLimiter("10.0.0.1") {
		t.Error("limiter should be reused per ip")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/times", nil)
	r.RemoteAddr = "192.0.2.7:51234"
	if got := clientIP(r); got != "192.0.2.7" {
		t.Errorf("clientIP = %q", got)
	}
	r.RemoteAddr = "pipe"
	if got := clientIP(r); got != "pipe" {
		t.Errorf("clientIP = %q", got)
	}
}

func TestIPRateLimiterPrune(t *testing.T) {
	now := time.Date(2022, 6, 21, 12, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(1, 1)
	l.now = func() time.Time { return now }

	l.Allow("10.0.0.1")
	l.Allow("10.0.0.2")
	now = now.Add(5 * time.Minute)
	l.Allow("10.0.0.2")
	now = now.Add(6 * time.Minute)

	if removed := l.Prune(10 * time.Minute); removed != 1 {
		t.Errorf("Prune removed %d, want 1", removed)
	}
	if l.Len() != 1 {
		t.Fatalf("Len = %d, want 1", l.Len())
	}
	// The pruned address starts over with a full bucket
	if !l.Allow("10.0.0.1") || l.Len() != 2 {
		t.Error("pruned client should get a new bucket")
	}
	if removed := l.Prune(time.Hour); removed != 0 {
		t.Errorf("Prune removed %d recently seen clients", removed)
	}
}

func TestIPRateLimiterIdleTimeout(t *testing.T) {
	tests := []struct {
		name string
		r    rate.Limit
		b    int
		want time.Duration
	}{
		{"fast refill", 5, 10, 10 * time.Minute},
		{"slow refill", 0.001, 2, 2000 * time.Second},
		{"capped", 1e-9, 10, 24 * time.Hour},
		{"unlimited", rate.Inf, 1, 10 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewIPRateLimiter(tt.r, tt.b).IdleTimeout(10 * time.Minute); got != tt.want {
				t.Errorf("IdleTimeout = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIPRateLimiterPruneEvery(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	start := time.Now()
	l.now = func() time.Time { return start }
	l.Allow("10.0.0.1")
	l.now = func() time.Time { return start.Add(time.Hour) }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pruned := make(chan int, 1)
	go l.PruneEvery(ctx, 5*time.Millisecond, time.Minute, func(removed, remaining int) {
		select {
		case pruned <- remaining:
		default:
		}
	})

	select {
	case remaining := <-pruned:
		if remaining != 0 {
			t.Errorf("remaining = %d, want 0", remaining)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("idle client was never pruned")
	}
}
