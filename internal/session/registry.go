package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry opens stores for console sessions. Stores are rebuilt from the
// persister on every Open so any instance sees the latest state.
type Registry struct {
	prefix    string
	persister Persister
	logger    *zap.Logger

	mu    sync.RWMutex
	hooks []func(ctx context.Context, sessionID string)
}

// NewRegistry creates a registry whose blobs live under prefix:<sessionID>.
func NewRegistry(prefix string, persister Persister, logger *zap.Logger) *Registry {
	return &Registry{prefix: prefix, persister: persister, logger: logger}
}

// NewID returns a fresh console session id.
func (r *Registry) NewID() string {
	return uuid.NewString()
}

// Key returns the persistence key of a session.
func (r *Registry) Key(sessionID string) string {
	return r.prefix + ":" + sessionID
}

// OnLogout registers fn to run whenever any session logs out.
func (r *Registry) OnLogout(fn func(ctx context.Context, sessionID string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, fn)
}

// Open returns a hydrated store for sessionID.
func (r *Registry) Open(ctx context.Context, sessionID string) (*Store, error) {
	s := NewStore(sessionID, r.Key(sessionID), r.persister, r.logger)
	r.mu.RLock()
	hooks := append([]func(context.Context, string){}, r.hooks...)
	r.mu.RUnlock()
	for _, fn := range hooks {
		fn := fn
		s.OnLogout(func(ctx context.Context) { fn(ctx, sessionID) })
	}
	if err := s.Hydrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
