package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/acme/autocert"
)

// acmeChallengeAddr serves HTTP-01 challenges and redirects to HTTPS.
const acmeChallengeAddr = ":80"

// ErrHostNotAllowed is returned for certificate requests outside TLSHosts.
var ErrHostNotAllowed = errors.New("host not configured for TLS")

// certManager returns an ACME certificate manager for the configured hosts,
// or nil when TLS is off.
func (s *Server) certManager() *autocert.Manager {
	if len(s.cfg.TLSHosts) == 0 {
		return nil
	}
	if err := os.MkdirAll(s.cfg.CertCache, 0o700); err != nil {
		s.log.Warn("failed to create certificate cache %s: %v", s.cfg.CertCache, err)
	}
	return &autocert.Manager{
		Cache:      autocert.DirCache(s.cfg.CertCache),
		Prompt:     autocert.AcceptTOS,
		HostPolicy: s.hostPolicy,
	}
}

// hostPolicy accepts certificate requests for TLSHosts only.
func (s *Server) hostPolicy(_ context.Context, host string) error {
	for _, h := range s.cfg.TLSHosts {
		if strings.EqualFold(h, host) {
			s.log.Debug("accepting certificate request for %s", host)
			return nil
		}
	}
	s.log.Warn("rejecting certificate request for %s", host)
	return fmt.Errorf("%w: %s", ErrHostNotAllowed, host)
}

func tlsConfig(m *autocert.Manager) *tls.Config {
	cfg := m.TLSConfig()
	cfg.MinVersion = tls.VersionTLS12
	cfg.CurvePreferences = []tls.CurveID{tls.X25519, tls.CurveP256}
	return cfg
}
