package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/litescript/ls-suntimes/internal/state"
	"github.com/litescript/ls-suntimes/internal/sun"
)

const writeWait = 5 * time.Second

// StreamMessage is sent to websocket clients on connect and every stream
// interval.
type StreamMessage struct {
	Time      time.Time       `json:"time"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Elevation float64         `json:"elevation"`
	Azimuth   float64         `json:"azimuth"`
	Phase     sun.Phase       `json:"phase"`
	Next      *sun.Occurrence `json:"next,omitempty"`
	Events    []state.Event   `json:"events,omitempty"`
}

// wsHandler streams the sun's position for one location until the client
// disconnects or the server closes.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade: %v", err)
		return
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Time{})

	s.metrics.streamClients.Inc()
	defer s.metrics.streamClients.Dec()
	s.log.Info("stream client %s connected for %s", clientIP(r), q.location)

	tracker := state.NewTracker(state.Config{
		Latitude:      q.location.Latitude,
		Longitude:     q.location.Longitude,
		Times:         q.backend.Times,
		MaxHistoryLen: 1,
		MaxEvents:     s.cfg.MaxEvents,
		Logger:        s.log.Named("stream"),
	})

	// Read until the client goes away; incoming messages are ignored
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.log.Debug("stream read: %v", err)
				}
				return
			}
		}
	}()

	send := func() error {
		events := tracker.Update(s.now())
		snap := tracker.Snapshot()
		msg := StreamMessage{
			Time:      snap.Updated,
			Latitude:  snap.Latitude,
			Longitude: snap.Longitude,
			Elevation: snap.Position.Elevation,
			Azimuth:   snap.Position.Azimuth,
			Phase:     snap.Phase,
			Next:      snap.Next,
			Events:    events,
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(msg)
	}

	if err := send(); err != nil {
		s.log.Warn("stream write: %v", err)
		return
	}

	ticker := time.NewTicker(time.Duration(s.cfg.StreamInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := send(); err != nil {
				s.log.Debug("stream write: %v", err)
				return
			}
		case <-gone:
			s.log.Info("stream client %s disconnected", clientIP(r))
			return
		case <-s.done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		}
	}
}
