package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/fec-cms/console/pkg/response"
)

// RequireRole lets through only staff whose console token carries one of
// roles. Must run after JWT.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if role == "" {
			response.Unauthorized(c, "missing user context")
			c.Abort()
			return
		}
		if _, ok := allowed[role]; !ok {
			response.Forbidden(c, "role "+role+" may not open this page")
			c.Abort()
			return
		}
		c.Next()
	}
}
