// Package config holds the application configuration: observer location,
// backend selection, server and dashboard settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/litescript/ls-suntimes/internal/backend"
)

// Validation errors.
var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
	ErrUnknownBackend   = backend.ErrUnknownBackend
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidZone      = errors.New("invalid time zone")
)

// Duration is a time.Duration that reads "5s"-style strings from JSON.
type Duration time.Duration

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON accepts a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

// Config is the application configuration.
type Config struct {
	// Observer
	Name      string  `json:"name"`      // Display name of the location
	Latitude  float64 `json:"latitude"`  // Degrees, north positive
	Longitude float64 `json:"longitude"` // Degrees, east positive
	Zone      string  `json:"zone"`      // IANA zone for display, "Local" or "UTC"

	// Engine
	Backend string `json:"backend"` // Name from backend.Names()

	// Dashboard and tracker
	RefreshInterval Duration `json:"refresh_interval"`
	HistoryLength   int      `json:"history_length"` // Elevation samples kept
	MaxEvents       int      `json:"max_events"`     // Phase change events kept

	// HTTP server
	Listen         string   `json:"listen"`
	StreamInterval Duration `json:"stream_interval"` // Websocket update period
	RateLimit      float64  `json:"rate_limit"`      // Requests per second per client
	RateBurst      int      `json:"rate_burst"`

	// TLS with ACME certificates, off when TLSHosts is empty
	TLSHosts  []string `json:"tls_hosts,omitempty"`
	CertCache string   `json:"cert_cache"` // Directory for issued certificates

	LogLevel string `json:"log_level"` // debug, info, warn, error
}

// DefaultConfig returns a configuration for Bielefeld with the two-pass
// backend.
func DefaultConfig() *Config {
	return &Config{
		Name:            "Bielefeld",
		Latitude:        52.02182,
		Longitude:       8.53509,
		Zone:            "Local",
		Backend:         backend.NOAA,
		RefreshInterval: Duration(time.Second),
		HistoryLength:   240,
		MaxEvents:       50,
		Listen:          ":8080",
		StreamInterval:  Duration(5 * time.Second),
		RateLimit:       5,
		RateBurst:       10,
		CertCache:       "certs",
		LogLevel:        "info",
	}
}

// Load reads a JSON configuration file on top of the defaults.
func Load(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	return LoadFromReader(file)
}

// LoadFromReader reads a JSON configuration on top of the defaults and
// validates the result.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Write encodes the configuration as indented JSON.
func (c *Config) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config JSON: %w", err)
	}
	return nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w, got: %f", ErrInvalidLatitude, c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w, got: %f", ErrInvalidLongitude, c.Longitude)
	}
	if _, err := backend.Lookup(c.Backend); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh_interval must be greater than 0, got: %s", time.Duration(c.RefreshInterval))
	}
	if c.StreamInterval <= 0 {
		return fmt.Errorf("stream_interval must be greater than 0, got: %s", time.Duration(c.StreamInterval))
	}
	if c.HistoryLength <= 0 {
		return fmt.Errorf("history_length must be greater than 0, got: %d", c.HistoryLength)
	}
	if c.MaxEvents <= 0 {
		return fmt.Errorf("max_events must be greater than 0, got: %d", c.MaxEvents)
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return fmt.Errorf("rate_limit and rate_burst must be greater than 0, got: %v/%d", c.RateLimit, c.RateBurst)
	}
	if len(c.TLSHosts) > 0 && c.CertCache == "" {
		return errors.New("cert_cache is required when tls_hosts is set")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level: %s, must be one of: debug, info, warn, error", c.LogLevel)
	}
	return nil
}

// Location resolves Zone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Zone {
	case "", "Local", "local":
		return time.Local, nil
	case "UTC", "utc":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Zone)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidZone, c.Zone, err)
	}
	return loc, nil
}
