package middleware

import (
	"net/http"
	"strings"
	"time"

	userRepo "pagex/database/repository/user"
	"pagex/utils"

	"github.com/gin-gonic/gin"
)

// SessionContextKey is where the resolved AuthSession lives on the gin context.
const SessionContextKey = "authSession"

// AuthMiddleware validates the bearer token, matches its hash against the
// store (so a revoked token dies immediately) and attaches the auth session.
// A missing Redis session is rebuilt from the user record: the capability
// set is re-established, never invented.
func AuthMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		u, err := repo.GetByTokenHash(computedHash)
		if err != nil || u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch or user not found"})
			return
		}

		client := utils.GetAuthCacheClient()
		session, err := utils.GetAuthSession(client, u.ID)
		if err != nil || session == nil || session.TokenHash != computedHash {
			rebuilt := utils.AuthSession{
				UserID:             u.ID,
				Email:              u.Email,
				Privileged:         u.Privileged,
				SubscriptionStatus: u.SubscriptionStatus,
				TokenHash:          computedHash,
				CreatedAt:          time.Now(),
			}
			if err := utils.SaveAuthSession(client, rebuilt); err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to establish session"})
				return
			}
			session = &rebuilt
		}

		c.Set(SessionContextKey, session)
		c.Set("userID", u.ID)
		c.Next()
	}
}

// CurrentSession returns the AuthSession attached by AuthMiddleware.
func CurrentSession(c *gin.Context) (*utils.AuthSession, bool) {
	value, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*utils.AuthSession)
	return session, ok
}
