package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"fieldops/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 512 * 1024 // 512 KB
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

// WSEvent is a real-time event pushed to clients
type WSEvent struct {
	Type    string      `json:"type"`
	Channel string      `json:"channel"`
	Payload interface{} `json:"payload,omitempty"`
}

const (
	EventQuoteUpdated = "quote_updated"
)

// LeadChannel names the per-lead channel quote updates fan out on.
func LeadChannel(leadID string) string {
	return "lead:" + leadID
}

// connection represents a single WebSocket client
type connection struct {
	userID   string
	conn     *websocket.Conn
	send     chan []byte
	channels map[string]bool // subscribed channel names
}

// Hub manages all active WebSocket connections. Every client watching a
// lead receives the canonical quote after each mutation and replaces its
// local state wholesale; there is no per-field merge and no versioning,
// the last broadcast wins.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]bool
	log         *logrus.Entry
}

func NewHub(log *logrus.Entry) *Hub {
	return &Hub{
		connections: make(map[*connection]bool),
		log:         log,
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = true
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.connections[c] {
		delete(h.connections, c)
		close(c.send)
	}
}

// PublishQuote broadcasts the canonical quote on the lead's channel.
// Delivery is fire-and-forget; a failed or slow client is skipped.
func (h *Hub) PublishQuote(leadID string, q *domain.Quote) {
	h.Broadcast(LeadChannel(leadID), &WSEvent{
		Type:    EventQuoteUpdated,
		Channel: LeadChannel(leadID),
		Payload: q,
	})
}

// Broadcast sends an event to every connection subscribed to a channel.
func (h *Hub) Broadcast(channel string, event *WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if c.channels[channel] {
			select {
			case c.send <- data:
			default:
				// client too slow, skip
			}
		}
	}
}

// SubscriberCount reports how many connections watch a channel.
func (h *Hub) SubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for c := range h.connections {
		if c.channels[channel] {
			n++
		}
	}
	return n
}

// ServeWS registers a new connection and starts read/write loops
func (h *Hub) ServeWS(conn *websocket.Conn, userID string, initialChannels []string) {
	c := &connection{
		userID:   userID,
		conn:     conn,
		send:     make(chan []byte, 256),
		channels: make(map[string]bool),
	}

	for _, ch := range initialChannels {
		c.channels[ch] = true
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c) // blocks until disconnect
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
		if h.log != nil {
			h.log.WithField("user_id", c.userID).Debug("websocket disconnected")
		}
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var event struct {
			Type    string `json:"type"`
			Channel string `json:"channel"`
		}
		if err := json.Unmarshal(msg, &event); err != nil {
			continue
		}

		switch event.Type {
		case "subscribe":
			h.mu.Lock()
			c.channels[event.Channel] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.channels, event.Channel)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
