package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/supplylens/supplylens/pkg/types"
)

const (
	// writeTimeout is the deadline for a single write to a client.
	writeTimeout = 10 * time.Second

	// pongWait is how long to wait for a pong response before treating the
	// connection as dead.
	pongWait = 60 * time.Second

	// pingPeriod controls how often the server sends WebSocket ping frames.
	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// sendBufSize is the per-client outgoing message buffer depth.
	sendBufSize = 16

	// buildTimeout bounds one dashboard build for a broadcast.
	buildTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 8192,
	// Allow all origins. Apply CORS at the reverse-proxy level.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Builder produces the dashboard for a filter set. dashboard.Service
// satisfies it.
type Builder interface {
	Build(ctx context.Context, f types.FilterOptions) (*types.Dashboard, error)
}

// Message is the JSON envelope sent to clients on every broadcast.
type Message struct {
	Event string           `json:"event"`
	Data  *types.Dashboard `json:"data"`
}

// Hub manages WebSocket client connections and pushes each client the
// dashboard for its own filters every interval, and whenever Notify is
// called.
type Hub struct {
	builder  Builder
	interval time.Duration
	notify   chan struct{}

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// client represents one connected WebSocket client.
type client struct {
	conn    *websocket.Conn
	send    chan []byte
	filters types.FilterOptions
}

// New creates a Hub that builds dashboards with b and broadcasts every interval.
func New(b Builder, interval time.Duration) *Hub {
	return &Hub{
		builder:  b,
		interval: interval,
		notify:   make(chan struct{}, 1),
		clients:  make(map[*client]struct{}),
	}
}

// Run starts the broadcast loop. Run blocks until ctx is cancelled, then
// closes all active connections.
func (h *Hub) Run(ctx context.Context) {
	t := time.NewTicker(h.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-t.C:
			h.broadcast(ctx)
		case <-h.notify:
			h.broadcast(ctx)
		}
	}
}

// Notify schedules an out-of-band broadcast, e.g. after a dataset reload.
// It never blocks; pending notifications coalesce.
func (h *Hub) Notify() {
	select {
	case h.notify <- struct{}{}:
	default:
	}
}

// ServeHTTP upgrades the HTTP connection to WebSocket and serves the client.
// The region, supplier, category and period query parameters select the
// client's filters. The current dashboard is sent immediately on connect.
// Blocks until the connection closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := types.FilterOptions{
		Region:          q.Get("region"),
		Supplier:        q.Get("supplier"),
		ProductCategory: q.Get("category"),
		TimePeriod:      q.Get("period"),
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader has already written the error response.
		return
	}

	c := &client{
		conn:    conn,
		send:    make(chan []byte, sendBufSize),
		filters: f,
	}
	h.register(c)
	defer h.unregister(c)

	// Send the current dashboard immediately so the UI has data right away.
	if data, err := h.buildMessage(r.Context(), f); err == nil {
		h.deliver(c, data)
	}

	go c.writePump()
	c.readPump() // blocks until connection closes
}

// Count returns the number of currently connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// --- internal ---------------------------------------------------------------

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// broadcast builds one message per distinct filter key and fans it out.
func (h *Hub) broadcast(ctx context.Context) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	messages := make(map[string][]byte)
	for _, c := range targets {
		key := c.filters.Key()
		data, ok := messages[key]
		if !ok {
			var err error
			data, err = h.buildMessage(ctx, c.filters)
			if err != nil {
				slog.Warn("ws: build dashboard", "filters", key, "err", err)
				continue
			}
			messages[key] = data
		}
		if !h.deliver(c, data) {
			// Client's outgoing buffer is full, disconnect it.
			h.unregister(c)
		}
	}
}

// deliver queues data for c unless c has already been unregistered, in which
// case its send channel is closed and data is dropped. It reports false only
// when c's buffer is full.
func (h *Hub) deliver(c *client, data []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; !ok {
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (h *Hub) buildMessage(ctx context.Context, f types.FilterOptions) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, buildTimeout)
	defer cancel()
	d, err := h.builder.Build(ctx, f)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Event: "dashboard", Data: d})
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

// writePump drains the client's send channel and forwards messages to the
// WebSocket connection. It also sends periodic ping frames. Runs in its own
// goroutine per client.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				// Channel was closed (hub is shutting down or client removed).
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump reads frames from the connection to process control messages (pong,
// close) and detect disconnects. Blocks until the connection closes.
func (c *client) readPump() {
	defer c.conn.Close()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}
