package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const (
	eventBuffer = 64
	writeWait   = 10 * time.Second
	pingPeriod  = 30 * time.Second
)

// Events streams the conversation's event feed over a websocket:
// appended messages, loading-state flips, and resets. Events that the
// socket cannot keep up with are dropped; the client re-syncs with a
// transcript fetch.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	// Subscribe before the handshake completes so nothing falls in the
	// gap between the client's dial returning and the feed attaching.
	events, cancel := s.Subscribe(eventBuffer)
	defer cancel()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("gateway: websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Reader only notices the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
