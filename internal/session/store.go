package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/models"
)

// ErrNotAuthenticated is returned when a session holds no backend token.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// State is the persisted {user, token} blob.
type State struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Store holds the current staff user and backend token for one console
// session. It satisfies gateway.Credentials.
type Store struct {
	id        string
	key       string
	persister Persister
	logger    *zap.Logger

	mu       sync.RWMutex
	user     *models.User
	token    string
	hydrated bool
	hooks    []func(ctx context.Context)
}

// NewStore creates an empty, not yet hydrated store persisted under key.
func NewStore(id, key string, persister Persister, logger *zap.Logger) *Store {
	return &Store{id: id, key: key, persister: persister, logger: logger}
}

// ID returns the console session id.
func (s *Store) ID() string { return s.id }

// Hydrate loads persisted state. Ready reports true afterwards even when
// nothing was persisted.
func (s *Store) Hydrate(ctx context.Context) error {
	st, err := s.persister.Load(ctx, s.key)
	if err != nil {
		return fmt.Errorf("hydrate session: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if st != nil {
		s.user = st.User
		s.token = st.Token
	}
	s.hydrated = true
	return nil
}

// Ready reports whether persisted state has been loaded.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Login records the logged-in user.
func (s *Store) Login(ctx context.Context, user models.User) error {
	s.mu.Lock()
	s.user = &user
	st := s.snapshot()
	s.mu.Unlock()
	return s.save(ctx, st)
}

// RefreshToken replaces the token every later backend call carries.
func (s *Store) RefreshToken(ctx context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	st := s.snapshot()
	s.mu.Unlock()
	return s.save(ctx, st)
}

// Logout clears user and token, drops the persisted blob and runs the
// logout hooks.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	hooks := append([]func(context.Context){}, s.hooks...)
	s.mu.Unlock()

	err := s.persister.Delete(ctx, s.key)
	for _, fn := range hooks {
		fn(ctx)
	}
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// OnLogout registers fn to run after every logout.
func (s *Store) OnLogout(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Token returns the current backend token.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether both a user and a token are held.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// Unauthorized is called by the gateway when the backend answers 401.
func (s *Store) Unauthorized(ctx context.Context) {
	s.logger.Info("backend rejected session token, logging out", zap.String("session_id", s.id))
	if err := s.Logout(ctx); err != nil {
		s.logger.Warn("logout after 401 failed", zap.String("session_id", s.id), zap.Error(err))
	}
}

func (s *Store) snapshot() State {
	st := State{Token: s.token}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

func (s *Store) save(ctx context.Context, st State) error {
	if err := s.persister.Save(ctx, s.key, st); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
