// Package state tracks the sun for one location over time: current
// position, twilight phase, phase change events and elevation history.
package state

import (
	"strings"
	"sync"
	"time"

	"github.com/litescript/ls-suntimes/internal/logging"
	"github.com/litescript/ls-suntimes/internal/sun"
)

// EventType names a phase change, e.g. CIVIL_DAWN.
type EventType string

// TypeOf returns the event type emitted when the sky passes e.
func TypeOf(e sun.Event) EventType {
	return EventType(strings.ToUpper(e.String()))
}

// Event records the sky moving from one phase to a neighboring one.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Event     sun.Event `json:"event"`
	From      sun.Phase `json:"from"`
	To        sun.Phase `json:"to"`
	Elevation float64   `json:"elevation"`
}

// Sample is one point of the elevation history.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Elevation float64   `json:"elevation"`
}

// Config holds configuration for the tracker.
type Config struct {
	Latitude      float64
	Longitude     float64
	Times         sun.TimesFunc
	MaxHistoryLen int
	MaxEvents     int
	Logger        *logging.Logger
}

// DefaultConfig returns a configuration for Bielefeld using the two-pass
// backend.
func DefaultConfig() Config {
	return Config{
		Latitude:      52.02182,
		Longitude:     8.53509,
		Times:         sun.NOAATimes,
		MaxHistoryLen: 240, // 4 minutes at 1 update/s
		MaxEvents:     50,
	}
}

// Tracker holds the live state with thread-safe access.
type Tracker struct {
	mu sync.RWMutex

	latitude  float64
	longitude float64
	times     sun.TimesFunc
	log       *logging.Logger

	// Current state
	updated  time.Time
	position Position
	phase    sun.Phase
	hasData  bool

	// Events of the current and next UTC day
	day      time.Time
	today    sun.SunTimes
	tomorrow sun.SunTimes

	// History buffer
	history       []Sample
	maxHistoryLen int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int
}

// Position is the sun's place in the sky in degrees.
type Position struct {
	Elevation float64 `json:"elevation"`
	Azimuth   float64 `json:"azimuth"`
}

// NewTracker creates a tracker. A nil Times uses sun.NOAATimes.
func NewTracker(cfg Config) *Tracker {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	maxHistory := cfg.MaxHistoryLen
	if maxHistory <= 0 {
		maxHistory = 240
	}
	times := cfg.Times
	if times == nil {
		times = sun.NOAATimes
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Tracker{
		latitude:      cfg.Latitude,
		longitude:     cfg.Longitude,
		times:         times,
		log:           log,
		maxHistoryLen: maxHistory,
		maxEvents:     maxEvents,
		events:        make([]Event, 0, maxEvents),
	}
}

// Update recomputes the state for instant now and returns the phase change
// events it caused. Jumps across several phases emit one event per
// boundary crossed.
func (t *Tracker) Update(now time.Time) []Event {
	pos := sun.Position(t.latitude, t.longitude, now)
	elev := pos.Elevation.Deg()
	phase := sun.PhaseOf(elev)

	t.mu.Lock()
	defer t.mu.Unlock()

	if day := sun.UTCDay(now); !day.Equal(t.day) {
		t.day = day
		t.today = t.times(t.latitude, t.longitude, day)
		t.tomorrow = t.times(t.latitude, t.longitude, day.AddDate(0, 0, 1))
		t.log.Debug("computed events for %s", day.Format(time.DateOnly))
	}

	var emitted []Event
	if t.hasData && phase != t.phase {
		emitted = transitions(t.phase, phase, now, elev)
		for _, e := range emitted {
			t.addEvent(e)
			t.log.Info("%s at %.2f°", e.Type, e.Elevation)
		}
	}

	t.updated = now
	t.position = Position{Elevation: elev, Azimuth: pos.Azimuth.Deg()}
	t.phase = phase
	t.hasData = true

	t.history = append(t.history, Sample{Timestamp: now, Elevation: elev})
	if len(t.history) > t.maxHistoryLen {
		t.history = t.history[1:]
	}
	return emitted
}

// transitions lists the events between two phases, one per boundary.
func transitions(from, to sun.Phase, now time.Time, elev float64) []Event {
	step := sun.Phase(1)
	if to < from {
		step = -1
	}
	var out []Event
	for p := from; p != to; p += step {
		ev, ok := sun.Transition(p, p+step)
		if !ok {
			break
		}
		out = append(out, Event{
			Type:      TypeOf(ev),
			Timestamp: now,
			Event:     ev,
			From:      p,
			To:        p + step,
			Elevation: elev,
		})
	}
	return out
}

// addEvent adds an event to the ring buffer.
func (t *Tracker) addEvent(e Event) {
	if len(t.events) < t.maxEvents {
		t.events = append(t.events, e)
	} else {
		t.events[t.eventWriteAt] = e
		t.eventWriteAt = (t.eventWriteAt + 1) % t.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Updated   time.Time       `json:"updated"`
	Position  Position        `json:"position"`
	Phase     sun.Phase       `json:"phase"`
	Today     sun.SunTimes    `json:"today"`
	Next      *sun.Occurrence `json:"next,omitempty"`
	Events    []Event         `json:"events,omitempty"`
	History   []Sample        `json:"-"`
}

// Snapshot returns a consistent snapshot of current state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	history := make([]Sample, len(t.history))
	copy(history, t.history)

	snap := Snapshot{
		Latitude:  t.latitude,
		Longitude: t.longitude,
		Updated:   t.updated,
		Position:  t.position,
		Phase:     t.phase,
		Today:     t.today,
		Events:    t.getEventsOrdered(),
		History:   history,
	}
	if next, ok := t.nextEvent(t.updated); ok {
		snap.Next = &next
	}
	return snap
}

// nextEvent finds the first event after now in today's and tomorrow's
// times, skipping noon and midnight.
func (t *Tracker) nextEvent(now time.Time) (sun.Occurrence, bool) {
	for _, st := range []sun.SunTimes{t.today, t.tomorrow} {
		for _, o := range st.Ordered() {
			if o.Event == sun.Noon || o.Event == sun.Midnight {
				continue
			}
			if o.Time.After(now) {
				return o, true
			}
		}
	}
	return sun.Occurrence{}, false
}

// getEventsOrdered returns events in chronological order.
func (t *Tracker) getEventsOrdered() []Event {
	if len(t.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(t.events) < t.maxEvents {
		result := make([]Event, len(t.events))
		copy(result, t.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, t.maxEvents)
	for i := 0; i < t.maxEvents; i++ {
		idx := (t.eventWriteAt + i) % t.maxEvents
		result[i] = t.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (t *Tracker) RecentEvents(n int) []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	all := t.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// History returns the elevation history, oldest first.
func (t *Tracker) History() []Sample {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Sample, len(t.history))
	copy(out, t.history)
	return out
}

// Elevations returns the history values only, for sparklines.
func (t *Tracker) Elevations() []float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]float64, len(t.history))
	for i, s := range t.history {
		out[i] = s.Elevation
	}
	return out
}

// SetLocation moves the observer and clears history and cached times.
func (t *Tracker) SetLocation(latitude, longitude float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latitude = latitude
	t.longitude = longitude
	t.day = time.Time{}
	t.history = t.history[:0]
	t.hasData = false
}

// SetTimes switches the backend used for the day's events.
func (t *Tracker) SetTimes(times sun.TimesFunc) {
	if times == nil {
		times = sun.NOAATimes
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.times = times
	t.day = time.Time{}
}

// HasData returns true once Update has been called.
func (t *Tracker) HasData() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.hasData
}
