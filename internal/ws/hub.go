package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/readingtime/readingtime/internal/api"
	"github.com/readingtime/readingtime/internal/store"
)

// writeTimeout is the deadline for a single write to a client.
const writeTimeout = 10 * time.Second

// EventResults is the event name of every message the hub sends.
const EventResults = "results"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  512,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Message is the JSON envelope sent to clients.
type Message struct {
	Event string              `json:"event"`
	Data  api.ResultsResponse `json:"data"`
}

// Hub streams the sidebar rows of every locale to connected clients, on each
// tick and whenever Notify is called.
//
// Clients never queue messages. A wake-up marks a client as stale and its
// writer sends the rows as they are when it gets to run, so a burst of
// store writes reaches a slow client as one message.
type Hub struct {
	store    *store.Store
	interval time.Duration

	mu    sync.Mutex
	conns map[*conn]struct{}
}

type conn struct {
	ws   *websocket.Conn
	wake chan struct{} // capacity 1
	done chan struct{}
	once sync.Once
}

func (c *conn) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *conn) stop() { c.once.Do(func() { close(c.done) }) }

// New creates a Hub that reads from st and broadcasts every interval.
func New(st *store.Store, interval time.Duration) *Hub {
	return &Hub{
		store:    st,
		interval: interval,
		conns:    make(map[*conn]struct{}),
	}
}

// Run starts the broadcast ticker. It blocks until ctx is cancelled, then
// closes every connection with a going-away frame.
func (h *Hub) Run(ctx context.Context) {
	t := time.NewTicker(h.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			h.each((*conn).stop)
			return
		case <-t.C:
			h.each((*conn).signal)
		}
	}
}

// Notify wakes every client so the current rows go out without waiting for
// the next tick. It never blocks; the CLI hooks it to store writes.
func (h *Hub) Notify() {
	h.each((*conn).signal)
}

// ServeHTTP upgrades the connection and streams rows until the client goes
// away or Run returns. The current rows are sent immediately.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &conn{ws: ws, wake: make(chan struct{}, 1), done: make(chan struct{})}

	h.mu.Lock()
	h.conns[c] = struct{}{}
	h.mu.Unlock()
	slog.Debug("ws: client connected", "remote", ws.RemoteAddr().String())

	defer func() {
		h.mu.Lock()
		delete(h.conns, c)
		h.mu.Unlock()
		slog.Debug("ws: client disconnected", "remote", ws.RemoteAddr().String())
	}()

	c.signal()
	go discardInput(c)
	h.write(c)
}

// Count returns the number of currently connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) each(fn func(*conn)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		fn(c)
	}
}

// write is the only writer of c.ws.
func (h *Hub) write(c *conn) {
	defer c.ws.Close()
	for {
		select {
		case <-c.done:
			bye := websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down")
			c.ws.WriteControl(websocket.CloseMessage, bye, time.Now().Add(writeTimeout)) //nolint:errcheck
			return

		case <-c.wake:
			data, err := json.Marshal(Message{Event: EventResults, Data: api.BuildResults(h.store)})
			if err != nil {
				slog.Error("ws: encode message", "err", err)
				continue
			}
			c.ws.SetWriteDeadline(time.Now().Add(writeTimeout)) //nolint:errcheck
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				slog.Debug("ws: write failed", "remote", c.ws.RemoteAddr().String(), "err", err)
				return
			}
		}
	}
}

// discardInput reads until the client closes so control frames are handled,
// then stops the writer. Clients have nothing to say.
func discardInput(c *conn) {
	defer c.stop()
	c.ws.SetReadLimit(512)
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}
