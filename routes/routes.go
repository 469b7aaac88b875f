package routes

import (
	"net/http"
	"time"

	"pagex/handlers"
	"pagex/middleware"
	"pagex/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers account and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (require authentication)
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("/logout", hb.SignOutHandler)
		api.GET("/session", hb.CurrentSessionHandler)
	}
}

// RegisterSubscriptionRoutes registers the checkout flow. Every endpoint
// needs a signed-in user but none of them needs an active subscription.
func RegisterSubscriptionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/subscription")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.POST("/checkout", hb.StartCheckoutHandler)
		api.GET("/confirm", hb.ConfirmHandler)
		api.POST("/cancel", hb.CancelCheckoutHandler)
	}
}

// RegisterWebhookRoutes registers the processor callback. It is public:
// authentication is the event signature, not a bearer token.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/webhooks/stripe", hb.StripeWebhookHandler)
}

// RegisterCatalogRoutes registers the subscriber-facing catalog. The whole
// group sits behind the subscription gate; privileged users pass it freely.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/grants")
	{
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.Use(middleware.SubscriptionMiddleware())
		api.GET("", hb.ListGrantsHandler)
		api.GET("/saved", hb.ListSavedHandler)
		api.GET("/:id", hb.GetGrantHandler)
		api.POST("/:id/save", hb.SaveGrantHandler)
		api.DELETE("/:id/save", hb.UnsaveGrantHandler)
	}
}

// RegisterAdminRoutes registers the curation surface for privileged accounts.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AuthMiddleware(hb.UserRepo))
		adminGroup.Use(middleware.AdminMiddleware())
		adminGroup.GET("/grants", hb.AdminListGrantsHandler)
		adminGroup.POST("/grants", hb.AdminCreateGrantHandler)
		adminGroup.PUT("/grants/:id", hb.AdminUpdateGrantHandler)
		adminGroup.DELETE("/grants/:id", hb.AdminDeleteGrantHandler)
		adminGroup.POST("/grants/import", hb.AdminImportHandler)
		adminGroup.GET("/users", hb.AdminListUsersHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterSubscriptionRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
