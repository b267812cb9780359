package live

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/gateway"
	"github.com/fec-cms/console/internal/lookup"
	"github.com/fec-cms/console/internal/models"
	"github.com/fec-cms/console/internal/session"
)

type fakeBus struct {
	mu            sync.Mutex
	handlers      map[string]func(string, []byte)
	fail          bool
	subscribeErrs int
	subscribes    int
	gate          chan struct{}
}

func (b *fakeBus) PublishSessionEvent(sid, event string, payload []byte) error {
	b.mu.Lock()
	h := b.handlers[sid]
	fail := b.fail
	b.mu.Unlock()
	if fail {
		return errors.New("redis down")
	}
	if h != nil {
		h(event, payload)
	}
	return nil
}

func (b *fakeBus) SubscribeSession(sid string, handler func(string, []byte)) (func(), error) {
	if b.gate != nil {
		<-b.gate
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribes++
	if b.subscribeErrs > 0 {
		b.subscribeErrs--
		return nil, errors.New("redis down")
	}
	if b.handlers == nil {
		b.handlers = map[string]func(string, []byte){}
	}
	b.handlers[sid] = handler
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, sid)
	}, nil
}

func testClient(sid string) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{ID: uuid.NewString(), SessionID: sid, send: make(chan WSMessage, 8), logger: zap.NewNop(), ctx: ctx, cancel: cancel}
}

func TestPublishReachesSessionOnce(t *testing.T) {
	bus := &fakeBus{}
	hub := NewHub(zap.NewNop(), bus, bus)
	a, b, other := testClient("s1"), testClient("s1"), testClient("s2")
	hub.Register(a)
	hub.Register(b)
	hub.Register(other)

	hub.Publish("s1", EventLogout, map[string]string{"redirect": "/auth"})

	for _, c := range []*Client{a, b} {
		require.Len(t, c.send, 1)
		msg := <-c.send
		assert.Equal(t, EventLogout, msg.Event)
		assert.JSONEq(t, `{"redirect":"/auth"}`, string(msg.Data))
	}
	assert.Empty(t, other.send)
}

func TestPublishFallsBackToLocal(t *testing.T) {
	bus := &fakeBus{fail: true}
	hub := NewHub(zap.NewNop(), bus, bus)
	c := testClient("s1")
	hub.Register(c)

	hub.Publish("s1", EventLogout, nil)
	assert.Len(t, c.send, 1)
}

func TestLastSocketUnsubscribes(t *testing.T) {
	bus := &fakeBus{}
	hub := NewHub(zap.NewNop(), bus, bus)
	a, b := testClient("s1"), testClient("s1")
	hub.Register(a)
	hub.Register(b)
	assert.Equal(t, 2, hub.Connections("s1"))

	hub.Unregister(a)
	assert.Contains(t, bus.handlers, "s1")
	hub.Unregister(b)
	assert.NotContains(t, bus.handlers, "s1")
	assert.Zero(t, hub.Connections("s1"))
}

func TestFailedSubscribeIsRetried(t *testing.T) {
	bus := &fakeBus{subscribeErrs: 1}
	hub := NewHub(zap.NewNop(), bus, bus)
	a, b := testClient("s1"), testClient("s1")

	hub.Register(a)
	assert.NotContains(t, bus.handlers, "s1")
	hub.Register(b)
	assert.Contains(t, bus.handlers, "s1")
	assert.Equal(t, 2, bus.subscribes)

	hub.Publish("s1", EventLogout, nil)
	assert.Len(t, a.send, 1)
	assert.Len(t, b.send, 1)
}

func TestSubscribeDoesNotBlockDelivery(t *testing.T) {
	bus := &fakeBus{gate: make(chan struct{})}
	hub := NewHub(zap.NewNop(), bus, bus)
	other := testClient("s2")
	hub.sessions["s2"] = map[string]*Client{other.ID: other}
	hub.subs["s2"] = func() {}

	registered := make(chan struct{})
	go func() {
		hub.Register(testClient("s1"))
		close(registered)
	}()

	delivered := make(chan struct{})
	go func() {
		hub.SendToSession("s2", EventLogout, nil)
		close(delivered)
	}()
	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("delivery waited on a pending subscribe")
	}
	assert.Len(t, other.send, 1)

	close(bus.gate)
	<-registered
	assert.Equal(t, 1, hub.Connections("s1"))
}

func TestUnregisterDuringSubscribeCancels(t *testing.T) {
	bus := &fakeBus{gate: make(chan struct{})}
	hub := NewHub(zap.NewNop(), bus, bus)
	c := testClient("s1")

	registered := make(chan struct{})
	go func() {
		hub.Register(c)
		close(registered)
	}()
	require.Eventually(t, func() bool { return hub.Connections("s1") == 1 }, time.Second, 5*time.Millisecond)
	hub.Unregister(c)

	close(bus.gate)
	<-registered
	bus.mu.Lock()
	defer bus.mu.Unlock()
	assert.NotContains(t, bus.handlers, "s1")
}

func TestSocketLookupAndLogout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "backend-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(models.List[models.Organization]{Records: []models.Organization{{ID: "o1", Name: "Alpha", Slug: "alpha"}}})
	}))
	defer backend.Close()
	api := gateway.NewClient(backend.URL, gateway.NewHTTPClient(5*time.Second, "", zap.NewNop()), zap.NewNop())

	store := session.NewStore("s1", "k", session.NewMemoryPersister(), zap.NewNop())
	require.NoError(t, store.Hydrate(context.Background()))
	require.NoError(t, store.RefreshToken(context.Background(), "backend-token"))

	hub := NewHub(zap.NewNop(), nil, nil)
	authenticate := func(_ context.Context, token string) (*Identity, error) {
		if token != "good" {
			return nil, errors.New("bad token")
		}
		return &Identity{SessionID: "s1", UserID: "u1", Store: store}, nil
	}
	r := gin.New()
	r.GET("/ws", ServeWs(hub, authenticate, Options{API: api, Finders: lookup.NewRegistry(0), Debounce: 10 * time.Millisecond}, zap.NewNop()))
	srv := httptest.NewServer(r)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token="

	_, resp, err := websocket.DefaultDialer.Dial(wsURL+"bad", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"good", nil)
	require.NoError(t, err)
	defer conn.Close()

	data, _ := json.Marshal(LookupRequest{Ref: "organizer", Kind: "organization", Query: "alp", Immediate: true})
	require.NoError(t, conn.WriteJSON(WSMessage{Event: "lookup", Data: data}))

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var msg WSMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, EventLookupResult, msg.Event)
	var res LookupResult
	require.NoError(t, json.Unmarshal(msg.Data, &res))
	assert.Equal(t, "organizer", res.Ref)
	assert.Equal(t, uint64(1), res.Seq)
	assert.Contains(t, string(msg.Data), `"label":"Alpha (alpha)"`)

	require.Eventually(t, func() bool { return hub.Connections("s1") == 1 }, time.Second, 10*time.Millisecond)
	LogoutNotifier(hub)(context.Background(), "s1")
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, EventLogout, msg.Event)
}
