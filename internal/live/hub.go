package live

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Heartbeat timing in seconds.
const (
	PingInterval = 30
	PongWait     = 60
)

// Events pushed to the shell.
const (
	EventLogout       = "logout"
	EventLookupResult = "lookup_result"
)

// Publisher sends a session event to every console instance.
type Publisher interface {
	PublishSessionEvent(sessionID, event string, payload []byte) error
}

// Subscriber receives session events from every console instance.
type Subscriber interface {
	SubscribeSession(sessionID string, handler func(event string, payload []byte)) (cancel func(), err error)
}

// Hub maps a console session to its open sockets. A session may have
// several tabs open, on several instances.
type Hub struct {
	sessions map[string]map[string]*Client
	subs     map[string]func()
	pending  map[string]bool
	mu       sync.RWMutex
	logger   *zap.Logger
	pub      Publisher
	sub      Subscriber
}

// NewHub creates a hub. pub and sub may be nil for a single instance.
func NewHub(logger *zap.Logger, pub Publisher, sub Subscriber) *Hub {
	return &Hub{
		sessions: make(map[string]map[string]*Client),
		subs:     make(map[string]func()),
		pending:  make(map[string]bool),
		logger:   logger,
		pub:      pub,
		sub:      sub,
	}
}

// Register adds a socket. The first socket of a session subscribes to its
// channel; a failed subscribe is retried by the next socket.
func (h *Hub) Register(c *Client) {
	sid := c.SessionID
	h.mu.Lock()
	if h.sessions[sid] == nil {
		h.sessions[sid] = make(map[string]*Client)
	}
	h.sessions[sid][c.ID] = c
	_, subscribed := h.subs[sid]
	subscribe := h.sub != nil && !subscribed && !h.pending[sid]
	if subscribe {
		h.pending[sid] = true
	}
	h.mu.Unlock()
	h.logger.Debug("socket opened", zap.String("client_id", c.ID), zap.String("session_id", sid))

	if subscribe {
		h.subscribe(sid)
	}
}

// subscribe runs without h.mu held.
func (h *Hub) subscribe(sid string) {
	cancel, err := h.sub.SubscribeSession(sid, func(event string, payload []byte) {
		h.SendToSession(sid, event, json.RawMessage(payload))
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.pending, sid)
	if err != nil {
		h.logger.Warn("session subscribe failed", zap.String("session_id", sid), zap.Error(err))
		return
	}
	if len(h.sessions[sid]) == 0 {
		cancel()
		return
	}
	h.subs[sid] = cancel
}

// Unregister removes a socket. The last socket of a session unsubscribes.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.sessions[c.SessionID]; ok {
		delete(m, c.ID)
		if len(m) == 0 {
			delete(h.sessions, c.SessionID)
			if cancel, ok := h.subs[c.SessionID]; ok {
				cancel()
				delete(h.subs, c.SessionID)
			}
		}
	}
	h.logger.Debug("socket closed", zap.String("client_id", c.ID), zap.String("session_id", c.SessionID))
}

// SendToSession delivers to this instance's sockets of a session.
func (h *Hub) SendToSession(sessionID, event string, payload interface{}) {
	msg, ok := envelope(event, payload)
	if !ok {
		return
	}
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.sessions[sessionID]))
	for _, c := range h.sessions[sessionID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()
	for _, c := range clients {
		c.enqueue(msg)
	}
}

// Publish delivers an event to every socket of the session on every
// instance. With Redis the subscriber callback does the local delivery, so
// each socket gets the event once.
func (h *Hub) Publish(sessionID, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if h.pub != nil {
		if err := h.pub.PublishSessionEvent(sessionID, event, data); err == nil {
			return
		}
		h.logger.Warn("session publish failed, delivering locally", zap.String("session_id", sessionID), zap.String("event", event))
	}
	h.SendToSession(sessionID, event, json.RawMessage(data))
}

// Connections returns how many sockets this instance holds for a session.
func (h *Hub) Connections(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

func envelope(event string, payload interface{}) (WSMessage, bool) {
	var data []byte
	switch v := payload.(type) {
	case nil:
	case []byte:
		data = v
	case json.RawMessage:
		data = v
	default:
		var err error
		if data, err = json.Marshal(payload); err != nil {
			return WSMessage{}, false
		}
	}
	return WSMessage{Event: event, Data: data}, true
}
