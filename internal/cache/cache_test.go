package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/gateway"
)

func TestPaths(t *testing.T) {
	assert.Equal(t, "/fec/2025-jan-bjs-con", EventPath("fec", "2025-jan-bjs-con"))
	assert.Equal(t, "/fec", OrganizationPath("fec"))
}

func TestCleanRejectsRelativePath(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()
	api := gateway.NewClient(srv.URL, srv.Client(), zap.NewNop())

	err := Clean(context.Background(), api, "fec/event")

	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.Zero(t, calls)
}

func TestCleanHandler(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cache/clean", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(gateway.NewClient(srv.URL, srv.Client(), zap.NewNop()), zap.NewNop())
	r.POST("/cache/clean", h.Clean)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cache/clean", bytes.NewBufferString(`{"path":"/fec"}`)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/fec", got["path"])
}
