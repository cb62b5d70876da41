package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Event types pushed to occupancy feed subscribers.
const (
	EventCheckIn  = "check-in"
	EventCheckOut = "check-out"
)

// Event is one occupancy change broadcast to all subscribers.
type Event struct {
	Type      string    `json:"type"`
	Lot       string    `json:"lot"`
	SpotID    int       `json:"spot_id"`
	Plate     string    `json:"plate"`
	SessionID string    `json:"session_id"`
	Fee       *float64  `json:"fee,omitempty"`
	At        time.Time `json:"at"`
}

const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type subscriber struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *subscriber) send(event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteJSON(event)
}

// Hub fans occupancy events out to connected dashboard clients.
type Hub struct {
	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
	logger      *zap.Logger
}

// NewHub returns an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subscribers: make(map[*subscriber]struct{}),
		logger:      logger,
	}
}

// Handler upgrades the request and keeps the connection subscribed until
// the client goes away.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		sub := &subscriber{conn: conn}
		h.add(sub)
		h.logger.Info("occupancy subscriber connected", zap.String("remote", conn.RemoteAddr().String()))

		// Drain incoming frames to detect disconnects; the feed is one-way.
		go func() {
			defer func() {
				h.remove(sub)
				conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

// Broadcast sends the event to every subscriber, dropping those that fail.
func (h *Hub) Broadcast(event Event) {
	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subscribers))
	for sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		if err := sub.send(event); err != nil {
			h.logger.Warn("dropping occupancy subscriber", zap.Error(err))
			h.remove(sub)
			sub.conn.Close()
		}
	}
}

// Close disconnects all subscribers.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		sub.conn.Close()
		delete(h.subscribers, sub)
	}
}

func (h *Hub) add(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[sub] = struct{}{}
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers, sub)
}
