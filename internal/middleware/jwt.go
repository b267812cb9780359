package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fec-cms/console/internal/auth"
	"github.com/fec-cms/console/internal/session"
	"github.com/fec-cms/console/pkg/response"
)

const (
	// ContextSessionID is the key for the console session id in gin context.
	ContextSessionID = "session_id"
	// ContextUserID is the key for user ID in gin context.
	ContextUserID = "user_id"
	// ContextUserRole is the key for user role in gin context.
	ContextUserRole = "user_role"
	// ContextUserEmail is the key for user email in gin context.
	ContextUserEmail = "user_email"
)

// JWT validates the console token, opens the session it names and rejects
// sessions that have been logged out.
func JWT(jwtService *auth.JWTService, sessions *session.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}
		claims, err := jwtService.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}
		store, err := sessions.Open(c.Request.Context(), claims.SessionID)
		if err != nil {
			logger.Error("open session", zap.String("session_id", claims.SessionID), zap.Error(err))
			response.Internal(c, "session unavailable")
			c.Abort()
			return
		}
		if !store.Authenticated() {
			response.Unauthorized(c, "session ended")
			c.Abort()
			return
		}

		session.Bind(c, store)
		c.Set(ContextSessionID, claims.SessionID)
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}
