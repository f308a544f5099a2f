package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/jeromeheuze/puzzle-generator/internal/config"
	"github.com/jeromeheuze/puzzle-generator/internal/middleware"
)

// Events fans batch progress out to every connected websocket client,
// so the admin dashboard can watch a run live.
type Events struct {
	logger *slog.Logger
	ws     *config.WebSocket

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewEvents(logger *slog.Logger, ws *config.WebSocket) *Events {
	return &Events{
		logger: logger,
		ws:     ws,
		conns:  make(map[*websocket.Conn]struct{}),
	}
}

// Connect subscribes the caller to the event stream. Batch events carry
// upcoming seeds and schedules, so only the admin may listen.
func (e *Events) Connect(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsAdmin(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	conn, err := e.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		e.logger.Error("unable to upgrade connection", "error", err)
		return
	}

	e.mu.Lock()
	e.conns[conn] = struct{}{}
	e.mu.Unlock()

	// Clients only listen; the read loop exists to notice the close.
	go func() {
		defer e.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (e *Events) drop(conn *websocket.Conn) {
	e.mu.Lock()
	delete(e.conns, conn)
	e.mu.Unlock()
	conn.Close()
}

// Publish sends one JSON event to every subscriber, dropping clients
// whose connection has gone away.
func (e *Events) Publish(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		e.logger.Error("unable to marshal event", "error", err)
		return
	}

	e.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(e.conns))
	for conn := range e.conns {
		conns = append(conns, conn)
	}
	e.mu.Unlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			e.drop(conn)
		}
	}
}
