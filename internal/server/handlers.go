package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/litescript/ls-suntimes/internal/backend"
	"github.com/litescript/ls-suntimes/internal/config"
	"github.com/litescript/ls-suntimes/internal/report"
	"github.com/litescript/ls-suntimes/internal/sun"
	"github.com/litescript/ls-suntimes/internal/version"
)

// MaxDays caps the length of a /api/days request.
const MaxDays = 366

// Request parameter errors.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrTooManyDays      = fmt.Errorf("days must be between 1 and %d", MaxDays)
)

// query holds the parsed common request parameters.
type query struct {
	location report.Location
	backend  backend.Backend
	zone     *time.Location
	date     time.Time // UTC day
}

// parseQuery reads lat, lon, name, backend, zone and date, falling back to
// the configured defaults.
func (s *Server) parseQuery(r *http.Request) (query, error) {
	v := r.URL.Query()
	q := query{location: report.Location{
		Name:      s.cfg.Name,
		Latitude:  s.cfg.Latitude,
		Longitude: s.cfg.Longitude,
	}}

	if lat, lon := v.Get("lat"), v.Get("lon"); lat != "" || lon != "" {
		q.location.Name = ""
		var err error
		if q.location.Latitude, err = parseFloat("lat", lat); err != nil {
			return q, err
		}
		if q.location.Longitude, err = parseFloat("lon", lon); err != nil {
			return q, err
		}
	}
	if name := v.Get("name"); name != "" {
		q.location.Name = name
	}
	if q.location.Latitude < -90 || q.location.Latitude > 90 {
		return q, config.ErrInvalidLatitude
	}
	if q.location.Longitude < -180 || q.location.Longitude > 180 {
		return q, config.ErrInvalidLongitude
	}

	name := v.Get("backend")
	if name == "" {
		name = s.cfg.Backend
	}
	b, err := backend.Lookup(name)
	if err != nil {
		return q, err
	}
	q.backend = b

	if zone := v.Get("zone"); zone != "" {
		cfg := *s.cfg
		cfg.Zone = zone
		if q.zone, err = cfg.Location(); err != nil {
			return q, err
		}
	} else if q.zone, err = s.cfg.Location(); err != nil {
		return q, err
	}

	t, err := config.ParseDate(v.Get("date"), s.now(), q.zone)
	if err != nil {
		return q, err
	}
	q.date = sun.LocalDay(t)
	return q, nil
}

func parseFloat(name, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w %s: %q", ErrInvalidParameter, name, s)
	}
	return f, nil
}

// compute runs a backend and records metrics for the result.
func (s *Server) compute(q query, b backend.Backend, date time.Time) sun.SunTimes {
	st := b.Times(q.location.Latitude, q.location.Longitude, date)
	s.metrics.RecordTimes(b.Name, st)
	return st
}

// healthHandler handles the /api/health endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"version":   version.Version,
		"uptime":    time.Since(s.startTime).Round(time.Second).String(),
		"backends":  backend.Names(),
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

// timesHandler handles /api/times: all events of one day.
func (s *Server) timesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q, err := s.parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	st := s.compute(q, q.backend, q.date)
	writeJSON(w, http.StatusOK, report.NewExport(q.location, q.backend.Name, q.date, st, q.zone))
}

// daysHandler handles /api/days: consecutive days starting at date.
func (s *Server) daysHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q, err := s.parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	count := 7
	if d := r.URL.Query().Get("days"); d != "" {
		if count, err = strconv.Atoi(d); err != nil || count < 1 || count > MaxDays {
			writeError(w, http.StatusBadRequest, ErrTooManyDays)
			return
		}
	}

	days := sun.Days(q.date, count)
	queries := make([]sun.Query, len(days))
	for i, d := range days {
		queries[i] = sun.Query{Latitude: q.location.Latitude, Longitude: q.location.Longitude, Date: d}
	}
	results, err := sun.Batch(r.Context(), q.backend.Times, queries, 0)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	exports := make([]*report.Export, len(results))
	for i, st := range results {
		s.metrics.RecordTimes(q.backend.Name, st)
		exports[i] = report.NewExport(q.location, q.backend.Name, days[i], st, q.zone)
	}
	writeJSON(w, http.StatusOK, exports)
}

// compareHandler handles /api/compare: one day from several backends.
func (s *Server) compareHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q, err := s.parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	names := backend.Names()
	if list := r.URL.Query().Get("backends"); list != "" {
		names = strings.Split(list, ",")
	}
	exports := make([]*report.Export, 0, len(names))
	for _, name := range names {
		b, err := backend.Lookup(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		st := s.compute(q, b, q.date)
		exports = append(exports, report.NewExport(q.location, b.Name, q.date, st, q.zone))
	}
	writeJSON(w, http.StatusOK, exports)
}

// ElevationResponse is the body of /api/elevation.
type ElevationResponse struct {
	Time      time.Time `json:"time"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Elevation float64   `json:"elevation"`
	Azimuth   float64   `json:"azimuth"`
	Phase     sun.Phase `json:"phase"`
}

// elevationHandler handles /api/elevation: the sun's position at an
// instant, now by default.
func (s *Server) elevationHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q, err := s.parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	at := s.now()
	if v := r.URL.Query().Get("time"); v != "" {
		if at, err = time.Parse(time.RFC3339, v); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("%w time: %q is not RFC 3339", ErrInvalidParameter, v))
			return
		}
	}

	pos := sun.Position(q.location.Latitude, q.location.Longitude, at)
	elev := pos.Elevation.Deg()
	writeJSON(w, http.StatusOK, ElevationResponse{
		Time:      at.In(q.zone),
		Latitude:  q.location.Latitude,
		Longitude: q.location.Longitude,
		Elevation: elev,
		Azimuth:   pos.Azimuth.Deg(),
		Phase:     sun.PhaseOf(elev),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
