// Package hub fans dashboard events out to connected websocket clients.
package hub

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	pingInterval = 45 * time.Second
	readTimeout  = 90 * time.Second
	writeTimeout = 10 * time.Second
	outBuffer    = 64
)

// Toast levels mirror the dashboard's notification variants.
const (
	LevelInfo        = "info"
	LevelSuccess     = "success"
	LevelDestructive = "destructive"
)

// Toast is a short notification shown in the browser.
type Toast struct {
	Type        string    `json:"type"`
	Level       string    `json:"level"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Time        time.Time `json:"time"`
}

// NewToast stamps a toast message.
func NewToast(level, title, description string) Toast {
	return Toast{Type: "toast", Level: level, Title: title, Description: description, Time: time.Now()}
}

type statusMsg struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type historyMsg struct {
	Type   string  `json:"type"`
	Toasts []Toast `json:"toasts"`
}

// MessageHandler receives text frames from one client.
type MessageHandler func(ctx context.Context, data []byte)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// Client is one websocket connection.
type Client struct {
	conn *websocket.Conn
	out  chan any
	done chan struct{}
}

// Send queues v for the client and drops it if the client is too slow.
func (c *Client) Send(v any) bool {
	select {
	case c.out <- v:
		return true
	case <-c.done:
		return false
	default:
		return false
	}
}

// Hub tracks clients and the recent toast history.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	history []Toast
	limit   int
	logger  zerolog.Logger
}

// New creates a hub that replays up to limit toasts to new clients.
// A non-positive limit keeps no history.
func New(limit int) *Hub {
	limit = max(limit, 0)
	return &Hub{
		clients: make(map[*Client]struct{}),
		history: make([]Toast, 0, limit),
		limit:   limit,
		logger:  log.With().Str("component", "hub").Logger(),
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// History returns a copy of the toast history, oldest first.
func (h *Hub) History() []Toast {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Toast, len(h.history))
	copy(out, h.history)
	return out
}

// Publish records t in the history and sends it to every client.
func (h *Hub) Publish(t Toast) {
	h.mu.Lock()
	if h.limit > 0 {
		h.history = append(h.history, t)
		if len(h.history) > h.limit {
			h.history = h.history[len(h.history)-h.limit:]
		}
	}
	h.mu.Unlock()
	h.Broadcast(t)
}

// Broadcast sends v to every client without recording it.
func (h *Hub) Broadcast(v any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.Send(v)
	}
}

// ServeWS upgrades the request and runs the connection until it closes.
// newHandler is called once per connection; it may be nil.
func (h *Hub) ServeWS(newHandler func(c *Client) MessageHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		cl := &Client{conn: conn, out: make(chan any, outBuffer), done: make(chan struct{})}
		h.mu.Lock()
		h.clients[cl] = struct{}{}
		h.mu.Unlock()
		h.logger.Debug().Str("remote", r.RemoteAddr).Msg("client connected")

		// writer
		go func() {
			ping := time.NewTicker(pingInterval)
			defer ping.Stop()
			for {
				select {
				case v := <-cl.out:
					_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := conn.WriteJSON(v); err != nil {
						h.logger.Debug().Err(err).Msg("websocket write failed")
					}
				case <-ping.C:
					_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					_ = conn.WriteMessage(websocket.PingMessage, nil)
				case <-cl.done:
					return
				}
			}
		}()

		cl.Send(statusMsg{Type: "status", Text: "connected"})
		cl.Send(historyMsg{Type: "history", Toasts: h.History()})

		var onMessage MessageHandler
		if newHandler != nil {
			onMessage = newHandler(cl)
		}

		// reader
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(readTimeout))
		})
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				break
			}
			if mt == websocket.TextMessage && onMessage != nil {
				onMessage(ctx, data)
			}
		}

		cancel()
		close(cl.done)
		h.mu.Lock()
		delete(h.clients, cl)
		h.mu.Unlock()
		h.logger.Debug().Str("remote", r.RemoteAddr).Msg("client disconnected")
	}
}
