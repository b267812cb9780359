package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/models"
)

func TestReadyOnlyAfterHydrate(t *testing.T) {
	s := NewStore("sid", "fcc-auth:sid", NewMemoryPersister(), zap.NewNop())
	assert.False(t, s.Ready())

	require.NoError(t, s.Hydrate(context.Background()))

	assert.True(t, s.Ready())
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.User())
}

func TestHydrateRestoresPersistedState(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPersister()
	reg := NewRegistry("fcc-auth", p, zap.NewNop())

	first, err := reg.Open(ctx, "abc")
	require.NoError(t, err)
	require.NoError(t, first.Login(ctx, models.User{ID: "u1", Email: "staff@example.com", Role: models.RoleEditor}))
	require.NoError(t, first.RefreshToken(ctx, "backend-token"))

	again, err := reg.Open(ctx, "abc")
	require.NoError(t, err)

	assert.True(t, again.Ready())
	assert.True(t, again.Authenticated())
	assert.Equal(t, "backend-token", again.Token())
	assert.Equal(t, "u1", again.User().ID)

	st, err := p.Load(ctx, "fcc-auth:abc")
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, "backend-token", st.Token)
}

func TestLogoutClearsEverythingAndRunsHooks(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPersister()
	reg := NewRegistry("fcc-auth", p, zap.NewNop())
	var loggedOut []string
	reg.OnLogout(func(_ context.Context, sid string) { loggedOut = append(loggedOut, sid) })

	s, err := reg.Open(ctx, "abc")
	require.NoError(t, err)
	require.NoError(t, s.Login(ctx, models.User{ID: "u1"}))
	require.NoError(t, s.RefreshToken(ctx, "tok"))

	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Token())
	assert.Equal(t, []string{"abc"}, loggedOut)
	st, err := p.Load(ctx, "fcc-auth:abc")
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestUnauthorizedLogsOut(t *testing.T) {
	ctx := context.Background()
	s := NewStore("sid", "k", NewMemoryPersister(), zap.NewNop())
	require.NoError(t, s.Hydrate(ctx))
	require.NoError(t, s.Login(ctx, models.User{ID: "u1"}))
	require.NoError(t, s.RefreshToken(ctx, "tok"))
	fired := 0
	s.OnLogout(func(context.Context) { fired++ })

	s.Unauthorized(ctx)

	assert.False(t, s.Authenticated())
	assert.Equal(t, 1, fired)
}

func TestUserIsACopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore("sid", "k", NewMemoryPersister(), zap.NewNop())
	require.NoError(t, s.Login(ctx, models.User{ID: "u1", Name: "before"}))

	u := s.User()
	u.Name = "after"

	assert.Equal(t, "before", s.User().Name)
}
