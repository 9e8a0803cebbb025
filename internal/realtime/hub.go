// Package realtime feeds the waiting-room display board. Mutating handlers
// publish an update event to Redis; the hub subscribes, rebuilds a fresh
// queue snapshot from the engine and pushes it to every connected websocket
// client.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"backend-triage/internal/models"
	"backend-triage/internal/queue"

	"github.com/gofiber/websocket/v2"
	"github.com/redis/go-redis/v9"
)

// UpdateChannel is the Redis pub/sub channel carrying queue-change events.
const UpdateChannel = "triage:queue:updates"

// Debounce broadcast — avoids a burst of DB reads when several mutations
// land close together.
const broadcastDelay = 50 * time.Millisecond

type Snapshot struct {
	Queue  []models.PatientResponse `json:"queue"`
	Served []models.PatientResponse `json:"served"`
}

type client struct {
	conn      *websocket.Conn
	writeMux  sync.Mutex
	closeChan chan struct{}
	closed    bool
	id        string
}

type Hub struct {
	engine  *queue.Engine
	rdb     *redis.Client
	mu      sync.RWMutex
	clients map[*websocket.Conn]*client
	counter uint64

	debounceMu sync.Mutex
	debounce   *time.Timer
}

func NewHub(engine *queue.Engine, rdb *redis.Client) *Hub {
	return &Hub{
		engine:  engine,
		rdb:     rdb,
		clients: make(map[*websocket.Conn]*client),
	}
}

// Publish signals that queue state changed. With no Redis client configured
// the hub short-circuits to a local broadcast so the board still works
// standalone.
func (h *Hub) Publish(ctx context.Context, event string) {
	if h.rdb == nil {
		h.scheduleBroadcast()
		return
	}
	if err := h.rdb.Publish(ctx, UpdateChannel, event).Err(); err != nil {
		log.Printf("[display] publish failed: %v", err)
	}
}

// Run subscribes to the update channel and broadcasts on every event. Blocks
// until the context is cancelled; meant to run in its own goroutine.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb == nil {
		return
	}

	sub := h.rdb.Subscribe(ctx, UpdateChannel)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			_ = msg
			h.scheduleBroadcast()
		}
	}
}

// Handle is the websocket endpoint for display clients.
func (h *Hub) Handle(c *websocket.Conn) {
	id := atomic.AddUint64(&h.counter, 1)
	cl := &client{
		conn:      c,
		closeChan: make(chan struct{}),
		id:        fmt.Sprintf("display-%d", id),
	}

	log.Printf("[display] %s connecting from %s", cl.id, c.RemoteAddr())
	h.register(cl)
	defer h.unregister(cl)

	c.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.SetPongHandler(func(string) error {
		c.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Initial snapshot for this client only
	if data, err := h.snapshot(); err == nil {
		cl.write(data)
	}

	ticker := time.NewTicker(20 * time.Second)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ticker.C:
				cl.writeMux.Lock()
				if cl.closed {
					cl.writeMux.Unlock()
					return
				}
				c.SetWriteDeadline(time.Now().Add(5 * time.Second))
				err := c.WriteMessage(websocket.PingMessage, nil)
				cl.writeMux.Unlock()

				if err != nil {
					log.Printf("[display] %s ping error: %v", cl.id, err)
					return
				}
			case <-cl.closeChan:
				return
			}
		}
	}()

	// Read loop; display clients only listen, so any read result besides a
	// control frame just keeps the connection alive.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure,
			) {
				log.Printf("[display] %s unexpected close: %v", cl.id, err)
			} else {
				log.Printf("[display] %s closed", cl.id)
			}
			return
		}
	}
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	h.clients[cl.conn] = cl
	h.mu.Unlock()
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	delete(h.clients, cl.conn)
	h.mu.Unlock()

	cl.writeMux.Lock()
	if !cl.closed {
		cl.closed = true
		close(cl.closeChan)
	}
	cl.writeMux.Unlock()
}

func (h *Hub) scheduleBroadcast() {
	h.debounceMu.Lock()
	defer h.debounceMu.Unlock()

	if h.debounce != nil {
		h.debounce.Stop()
	}
	h.debounce = time.AfterFunc(broadcastDelay, h.broadcast)
}

func (h *Hub) broadcast() {
	data, err := h.snapshot()
	if err != nil {
		log.Printf("[display] snapshot failed: %v", err)
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	for _, cl := range clients {
		if err := cl.write(data); err != nil {
			log.Printf("[display] %s write error: %v", cl.id, err)
		}
	}
}

func (h *Hub) snapshot() ([]byte, error) {
	queued, err := h.engine.ListQueued()
	if err != nil {
		return nil, err
	}
	served, err := h.engine.ListServed()
	if err != nil {
		return nil, err
	}

	return json.Marshal(Snapshot{
		Queue:  models.ToPatientResponses(queued),
		Served: models.ToPatientResponses(served),
	})
}

func (cl *client) write(data []byte) error {
	cl.writeMux.Lock()
	defer cl.writeMux.Unlock()

	if cl.closed {
		return nil
	}
	cl.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return cl.conn.WriteMessage(websocket.TextMessage, data)
}
