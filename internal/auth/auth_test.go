package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/gateway"
	"github.com/fec-cms/console/internal/models"
	"github.com/fec-cms/console/internal/session"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", 1)

	token, err := svc.Generate("sid-1", "u1", "staff@example.com", models.RoleEditor)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleEditor, claims.Role)
}

func TestJWTRejectsForeignSecret(t *testing.T) {
	token, err := NewJWTService("one", 1).Generate("sid-1", "u1", "a@b.c", models.RoleAdmin)
	require.NoError(t, err)

	_, err = NewJWTService("two", 1).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTRejectsMissingSession(t *testing.T) {
	svc := NewJWTService("secret", 1)
	token, err := svc.Generate("", "u1", "a@b.c", models.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

type loginEnv struct {
	router   *gin.Engine
	sessions *session.Registry
	jwt      *JWTService
}

func newLoginEnv(t *testing.T, backend http.HandlerFunc) loginEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	api := gateway.NewClient(srv.URL, gateway.NewHTTPClient(5*time.Second, "", zap.NewNop()), zap.NewNop())
	sessions := session.NewRegistry("test", session.NewMemoryPersister(), zap.NewNop())
	jwt := NewJWTService("secret", 1)
	h := NewHandler(api, sessions, jwt, zap.NewNop())

	r := gin.New()
	r.POST("/auth/login", h.Login)
	return loginEnv{router: r, sessions: sessions, jwt: jwt}
}

func postLogin(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginOpensSessionWithBackendToken(t *testing.T) {
	env := newLoginEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.LoginResult{
			Token: "backend-token",
			User:  models.User{ID: "u1", Email: "staff@example.com", Role: models.RoleAdmin},
		})
	})

	w := postLogin(t, env.router, `{"email":"staff@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data     TokenResponse `json:"data"`
		Redirect string        `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/dashboard", body.Redirect)
	assert.NotContains(t, w.Body.String(), "backend-token")

	claims, err := env.jwt.Validate(body.Data.Token)
	require.NoError(t, err)
	store, err := env.sessions.Open(context.Background(), claims.SessionID)
	require.NoError(t, err)
	assert.True(t, store.Authenticated())
	assert.Equal(t, "backend-token", store.Token())
}

func TestLoginRejectedByBackend(t *testing.T) {
	env := newLoginEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	w := postLogin(t, env.router, `{"email":"staff@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginValidatesBody(t *testing.T) {
	env := newLoginEnv(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("backend must not be called")
	})

	w := postLogin(t, env.router, `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
