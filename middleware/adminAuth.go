package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware gates privileged curation routes. The privileged capability
// was resolved once when the session was established; it is read from the
// session here, never re-derived per request.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := CurrentSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !session.Privileged {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
