package middleware

import (
	"net/http"

	"pagex/models"

	"github.com/gin-gonic/gin"
)

// SubscriptionMiddleware gates the catalog behind an active subscription.
// Privileged users pass regardless: curation does not require a paid plan.
// The 402 response tells the client to route back into checkout.
func SubscriptionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := CurrentSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if session.Privileged {
			c.Next()
			return
		}
		if session.SubscriptionStatus != models.SubscriptionActive {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error":              "An active subscription is required",
				"subscriptionStatus": session.SubscriptionStatus,
			})
			return
		}
		c.Next()
	}
}
