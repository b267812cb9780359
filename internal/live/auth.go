package live

import (
	"context"
	"fmt"

	"github.com/fec-cms/console/internal/auth"
	"github.com/fec-cms/console/internal/session"
)

// TokenAuthenticator accepts console JWTs whose session is still signed in.
func TokenAuthenticator(jwt *auth.JWTService, sessions *session.Registry) Authenticator {
	return func(ctx context.Context, token string) (*Identity, error) {
		claims, err := jwt.Validate(token)
		if err != nil {
			return nil, err
		}
		store, err := sessions.Open(ctx, claims.SessionID)
		if err != nil {
			return nil, err
		}
		if !store.Authenticated() {
			return nil, fmt.Errorf("session %s: %w", claims.SessionID, session.ErrNotAuthenticated)
		}
		return &Identity{SessionID: claims.SessionID, UserID: claims.UserID, Role: claims.Role, Store: store}, nil
	}
}

// LogoutNotifier returns a registry logout hook that tells every open
// socket of the session to go back to the sign-in page.
func LogoutNotifier(hub *Hub) func(ctx context.Context, sessionID string) {
	return func(_ context.Context, sessionID string) {
		hub.Publish(sessionID, EventLogout, map[string]string{"redirect": "/auth"})
	}
}
