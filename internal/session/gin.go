package session

import (
	"github.com/gin-gonic/gin"

	"github.com/fec-cms/console/internal/gateway"
)

const contextKey = "console_session"

// Bind attaches s to the request context.
func Bind(c *gin.Context, s *Store) {
	c.Set(contextKey, s)
}

// From returns the store attached by Bind, or nil.
func From(c *gin.Context) *Store {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	s, _ := v.(*Store)
	return s
}

// Client returns base authenticated with the request's session, or base
// itself when no session is bound.
func Client(c *gin.Context, base *gateway.Client) *gateway.Client {
	s := From(c)
	if s == nil {
		return base
	}
	return base.With(s)
}
