// Package server exposes sun times over HTTP: JSON endpoints, a websocket
// elevation stream and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/litescript/ls-suntimes/internal/config"
	"github.com/litescript/ls-suntimes/internal/logging"
)

// Rate limit buckets idle for limiterIdle are dropped every limiterSweep.
const (
	limiterSweep = time.Minute
	limiterIdle  = 10 * time.Minute
)

// Server serves the HTTP API.
type Server struct {
	cfg      *config.Config
	log      *logging.Logger
	metrics  *Metrics
	limiter  *IPRateLimiter
	upgrader websocket.Upgrader
	handler  http.Handler
	now      func() time.Time

	startTime time.Time
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a server for cfg. A nil logger discards output.
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	s := &Server{
		cfg:     cfg,
		log:     logger.Named("server"),
		metrics: NewMetrics(),
		limiter: NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		now:       time.Now,
		startTime: time.Now(),
		done:      make(chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.healthHandler)
	mux.HandleFunc("/api/times", s.timesHandler)
	mux.HandleFunc("/api/days", s.daysHandler)
	mux.HandleFunc("/api/compare", s.compareHandler)
	mux.HandleFunc("/api/elevation", s.elevationHandler)
	mux.HandleFunc("/api/ws", s.wsHandler)
	mux.Handle("/metrics", s.metrics.Handler())

	s.handler = s.instrument(s.rateLimit(mux))
	return s, nil
}

// Handler returns the root handler with rate limiting and metrics applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// ListenAndServe serves on the configured address until ctx is canceled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.cfg.Listen,
		Handler:     s.handler,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
		ErrorLog:    log.New(s.log.Writer(logging.LevelWarn), "", 0),
	}

	// With TLS hosts configured, certificates come from ACME and a plain
	// HTTP listener answers the challenges.
	var challenge *http.Server
	manager := s.certManager()
	if manager != nil {
		srv.TLSConfig = tlsConfig(manager)
		challenge = &http.Server{
			Addr:        acmeChallengeAddr,
			Handler:     manager.HTTPHandler(nil),
			ReadTimeout: 10 * time.Second,
			ErrorLog:    srv.ErrorLog,
		}
	}

	pruneCtx, stopPrune := context.WithCancel(ctx)
	defer stopPrune()
	go s.limiter.PruneEvery(pruneCtx, limiterSweep, s.limiter.IdleTimeout(limiterIdle), func(removed, remaining int) {
		s.log.Debug("dropped %d idle rate limit buckets, %d remain", removed, remaining)
	})

	errCh := make(chan error, 2)
	go func() {
		if manager != nil {
			s.log.Info("listening on %s (TLS for %s)", s.cfg.Listen, strings.Join(s.cfg.TLSHosts, ", "))
			errCh <- srv.ListenAndServeTLS("", "")
			return
		}
		s.log.Info("listening on %s", s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()
	if challenge != nil {
		go func() {
			s.log.Info("answering ACME challenges on %s", acmeChallengeAddr)
			if err := challenge.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("challenge listener: %w", err)
			}
		}()
	}

	select {
	case err := <-errCh:
		s.Close()
		if challenge != nil {
			challenge.Close()
		}
		srv.Close()
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if challenge != nil {
		if err := challenge.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("challenge listener shutdown: %v", err)
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("stopped")
	return nil
}

// Close ends all websocket streams.
func (s *Server) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// rateLimit rejects clients that exceed their token bucket. Health and
// metrics endpoints are exempt.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		if ip := clientIP(r); !s.limiter.Allow(ip) {
			s.metrics.rateLimited.Inc()
			s.log.Debug("rate limited %s on %s", ip, r.URL.Path)
			writeError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// instrument records request counts and latency per route.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if !strings.HasPrefix(path, "/api/") && path != "/metrics" {
			path = "other"
		}
		s.metrics.RecordRequest(path, strconv.Itoa(rec.status), time.Since(start))
	})
}
