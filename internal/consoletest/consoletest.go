// Package consoletest provides a signed-in gin engine backed by a fake
// backend for handler tests.
package consoletest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/gateway"
	"github.com/fec-cms/console/internal/middleware"
	"github.com/fec-cms/console/internal/models"
	"github.com/fec-cms/console/internal/session"
)

// SessionID is the console session every Env request runs in.
const SessionID = "sid-test"

// Call is one request the fake backend received.
type Call struct {
	Method string
	Path   string
	Query  map[string][]string
	Auth   string
	Body   map[string]json.RawMessage
}

// Env is a router whose requests carry a signed-in session, and the
// backend it talks to.
type Env struct {
	Router *gin.Engine
	API    *gateway.Client
	Store  *session.Store

	mu    sync.Mutex
	calls []Call
}

// New starts a fake backend served by backend and a router with the session bound.
func New(t *testing.T, backend http.HandlerFunc) *Env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &Env{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := Call{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Auth: r.Header.Get("Authorization")}
		if r.Body != nil {
			var body bytes.Buffer
			_, _ = body.ReadFrom(r.Body)
			_ = json.Unmarshal(body.Bytes(), &call.Body)
			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body.Bytes()))
		}
		env.mu.Lock()
		env.calls = append(env.calls, call)
		env.mu.Unlock()
		backend(w, r)
	}))
	t.Cleanup(srv.Close)

	env.API = gateway.NewClient(srv.URL, gateway.NewHTTPClient(5*time.Second, "", zap.NewNop()), zap.NewNop())

	reg := session.NewRegistry("test", session.NewMemoryPersister(), zap.NewNop())
	store, err := reg.Open(context.Background(), SessionID)
	require.NoError(t, err)
	require.NoError(t, store.Login(context.Background(), models.User{ID: "u1", Email: "staff@example.com", Role: models.RoleAdmin}))
	require.NoError(t, store.RefreshToken(context.Background(), "backend-token"))
	env.Store = store

	env.Router = gin.New()
	env.Router.Use(func(c *gin.Context) {
		session.Bind(c, store)
		c.Set(middleware.ContextSessionID, SessionID)
		c.Set(middleware.ContextUserID, "u1")
		c.Set(middleware.ContextUserRole, models.RoleAdmin)
		c.Next()
	})
	return env
}

// Calls returns the backend requests seen so far.
func (e *Env) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}

// Do sends a JSON request through the router.
func (e *Env) Do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

// Envelope is the decoded response body.
type Envelope struct {
	Success  bool              `json:"success"`
	Data     json.RawMessage   `json:"data"`
	Error    string            `json:"error"`
	Errors   map[string]string `json:"errors"`
	Redirect string            `json:"redirect"`
	Notice   *struct {
		Title   string `json:"title"`
		Message string `json:"message"`
		Level   string `json:"level"`
	} `json:"notice"`
}

// Decode parses a response envelope.
func Decode(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

// JSON writes v as a backend response.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
