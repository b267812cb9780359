package live

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/gateway"
	"github.com/fec-cms/console/internal/lookup"
	"github.com/fec-cms/console/internal/session"
)

// WSMessage is the WebSocket message envelope.
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// LookupRequest is the data of a "lookup" message. Ref names the picker
// so several pickers on one page keep separate searches.
type LookupRequest struct {
	Ref      string   `json:"ref"`
	Kind     string   `json:"kind"`
	Query    string   `json:"q"`
	Selected []string `json:"selected"`
	// Immediate skips the debounce, used when a picker opens.
	Immediate bool `json:"immediate"`
}

// LookupResult is the data of a "lookup_result" message.
type LookupResult struct {
	Ref     string      `json:"ref"`
	Kind    string      `json:"kind"`
	Seq     uint64      `json:"seq"`
	Query   string      `json:"query"`
	Options interface{} `json:"options,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Identity is who a socket belongs to.
type Identity struct {
	SessionID string
	UserID    string
	Role      string
	Store     *session.Store
}

// Authenticator resolves the ?token= of a socket request.
type Authenticator func(ctx context.Context, token string) (*Identity, error)

// Options configures ServeWs.
type Options struct {
	API      *gateway.Client
	Finders  lookup.Registry
	Debounce time.Duration
	Origins  []string
}

// Client is one socket of a console session.
type Client struct {
	ID        string
	SessionID string
	UserID    string
	Role      string
	hub       *Hub
	conn      *websocket.Conn
	send      chan WSMessage
	logger    *zap.Logger

	api      *gateway.Client
	finders  lookup.Registry
	debounce time.Duration

	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	searches map[string]*lookup.LiveSearch[interface{}]
}

func newUpgrader(origins []string) websocket.Upgrader {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed["*"] || allowed[origin]
		},
	}
}

// ServeWs handles GET /ws?token= and runs the socket loop.
func ServeWs(hub *Hub, authenticate Authenticator, opts Options, logger *zap.Logger) gin.HandlerFunc {
	upgrader := newUpgrader(opts.Origins)
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
			return
		}
		id, err := authenticate(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "redirect": "/auth"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		client := &Client{
			ID:        uuid.New().String(),
			SessionID: id.SessionID,
			UserID:    id.UserID,
			Role:      id.Role,
			hub:       hub,
			conn:      conn,
			send:      make(chan WSMessage, 256),
			logger:    logger,
			api:       opts.API.With(id.Store),
			finders:   opts.Finders,
			debounce:  opts.Debounce,
			ctx:       ctx,
			cancel:    cancel,
			searches:  make(map[string]*lookup.LiveSearch[interface{}]),
		}
		hub.Register(client)
		logger.Info("live socket opened",
			zap.String("session_id", client.SessionID),
			zap.Int("connections", hub.Connections(client.SessionID)))
		go client.writePump()
		client.readPump()
	}
}

func (c *Client) enqueue(msg WSMessage) {
	select {
	case c.send <- msg:
	case <-c.ctx.Done():
	default:
		c.logger.Debug("socket buffer full, dropping", zap.String("client_id", c.ID), zap.String("event", msg.Event))
	}
}

func (c *Client) reply(event string, payload interface{}) {
	if msg, ok := envelope(event, payload); ok {
		c.enqueue(msg)
	}
}

func (c *Client) readPump() {
	defer func() {
		c.closeSearches()
		c.cancel()
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(65536)
	_ = c.conn.SetReadDeadline(time.Now().Add(PongWait * time.Second))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(PongWait * time.Second))
		return nil
	})

	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			break
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(PongWait * time.Second))

		switch msg.Event {
		case "lookup":
			var req LookupRequest
			if err := json.Unmarshal(msg.Data, &req); err != nil || req.Ref == "" {
				c.reply(EventLookupResult, LookupResult{Ref: req.Ref, Error: "invalid lookup request"})
				continue
			}
			c.lookup(req)
		case "lookup_close":
			var req LookupRequest
			if err := json.Unmarshal(msg.Data, &req); err == nil {
				c.closeSearch(req.Ref)
			}
		default:
			// ignore
		}
	}
}

func (c *Client) lookup(req LookupRequest) {
	finder, ok := c.finders[req.Kind]
	if !ok {
		c.reply(EventLookupResult, LookupResult{Ref: req.Ref, Kind: req.Kind, Error: "unknown lookup kind"})
		return
	}

	c.mu.Lock()
	search, ok := c.searches[req.Ref]
	if !ok {
		ref, kind := req.Ref, req.Kind
		search = lookup.NewLiveSearch(c.ctx, c.debounce,
			func(ctx context.Context, q string, selected []string) (interface{}, error) {
				return finder.Find(ctx, c.api, q, selected)
			},
			func(r lookup.Result[interface{}]) {
				out := LookupResult{Ref: ref, Kind: kind, Seq: r.Seq, Query: r.Query, Options: r.Value}
				if r.Err != nil {
					out.Options = nil
					out.Error = r.Err.Error()
				}
				c.reply(EventLookupResult, out)
			},
		)
		c.searches[req.Ref] = search
	}
	c.mu.Unlock()

	if req.Immediate {
		search.Now(req.Query, req.Selected)
		return
	}
	search.Query(req.Query, req.Selected)
}

func (c *Client) closeSearch(ref string) {
	c.mu.Lock()
	search, ok := c.searches[ref]
	delete(c.searches, ref)
	c.mu.Unlock()
	if ok {
		search.Close()
	}
}

func (c *Client) closeSearches() {
	c.mu.Lock()
	searches := c.searches
	c.searches = map[string]*lookup.LiveSearch[interface{}]{}
	c.mu.Unlock()
	for _, s := range searches {
		s.Close()
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(PingInterval * time.Second)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
			if msg.Event == EventLogout {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "logged out"))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
