package notify

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans published payloads out to WebSocket subscribers grouped by topic.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*client]struct{}
	logger *slog.Logger
}

type client struct {
	hub   *Hub
	topic string
	conn  *websocket.Conn
	send  chan []byte
}

// NewHub constructs an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		topics: make(map[string]map[*client]struct{}),
		logger: logger,
	}
}

// Subscribe upgrades the HTTP request to a WebSocket connection subscribed to
// a single topic. The connection lives until the peer closes or stops
// answering pings.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, topic string) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{hub: h, topic: topic, conn: conn, send: make(chan []byte, sendBufferSize)}
	h.register(c)

	go c.writePump()
	go c.readPump()
	return nil
}

// Publish marshals payload and delivers it to every subscriber of the topic.
// Slow consumers are dropped rather than blocking the publisher.
func (h *Hub) Publish(topic string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("marshal notification failed", slog.String("topic", topic), slog.String("error", err.Error()))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.topics[topic] {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("subscriber buffer full, dropping message", slog.String("topic", topic))
		}
	}
}

// SubscriberCount reports how many connections listen on a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[c.topic] == nil {
		h.topics[c.topic] = make(map[*client]struct{})
	}
	h.topics[c.topic][c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.topics[c.topic]; ok {
		if _, ok := subs[c]; ok {
			delete(subs, c)
			close(c.send)
			if len(subs) == 0 {
				delete(h.topics, c.topic)
			}
		}
	}
}

// readPump discards inbound frames; the channel is push-only. Reading is still
// required to process pongs and close frames.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("websocket closed", slog.String("topic", c.topic), slog.String("error", err.Error()))
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
