package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pagex/config"
	"pagex/database"
	grantRepoPkg "pagex/database/repository/grant"
	savedRepoPkg "pagex/database/repository/saved"
	userRepoPkg "pagex/database/repository/user"
	"pagex/handlers"
	"pagex/middleware"
	"pagex/routes"
	"pagex/services/admin"
	"pagex/services/catalog"
	"pagex/services/subscription"
	"pagex/services/user"
	"pagex/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	grantRepo := grantRepoPkg.NewMongoGrantRepo()
	savedRepo := savedRepoPkg.NewMongoSavedGrantRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}
	handlers.SetUserService(userService)

	subscriptionService := &subscription.DefaultSubscriptionService{
		Users:    userRepo,
		Payments: subscription.StripePaymentClient{},
		Mailer: subscription.SendGridMailer{
			APIKey: config.AppConfig.SendgridAPIKey,
			From:   config.AppConfig.EmailFrom,
		},
		PriceID:     config.AppConfig.StripePriceID,
		SuccessURL:  config.AppConfig.CheckoutSuccessURL,
		CancelURL:   config.AppConfig.CheckoutCancelURL,
		ConfirmWait: time.Duration(config.AppConfig.ConfirmWaitSeconds) * time.Second,
	}

	catalogService := &catalog.DefaultCatalogService{
		Grants: grantRepo,
		Saved:  savedRepo,
	}

	adminService := &admin.DefaultAdminService{
		Grants: grantRepo,
		Saved:  savedRepo,
		Users:  userService,
	}

	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		// Auth endpoints.
		RegisterUserHandler:     handlers.RegisterUserHandler,
		AuthenticateUserHandler: handlers.AuthenticateUserHandler,
		SignOutHandler:          handlers.SignOutHandler,
		CurrentSessionHandler:   handlers.CurrentSessionHandler,

		// Subscription endpoints.
		StartCheckoutHandler:  subscriptionHandler.StartCheckoutHandler,
		ConfirmHandler:        subscriptionHandler.ConfirmHandler,
		CancelCheckoutHandler: subscriptionHandler.CancelCheckoutHandler,
		StripeWebhookHandler:  subscriptionHandler.StripeWebhookHandler,

		// Catalog endpoints.
		ListGrantsHandler:  catalogHandler.ListGrantsHandler,
		GetGrantHandler:    catalogHandler.GetGrantHandler,
		ListSavedHandler:   catalogHandler.ListSavedHandler,
		SaveGrantHandler:   catalogHandler.SaveGrantHandler,
		UnsaveGrantHandler: catalogHandler.UnsaveGrantHandler,

		// Admin endpoints.
		AdminListGrantsHandler:  adminHandler.ListGrantsHandler,
		AdminCreateGrantHandler: adminHandler.CreateGrantHandler,
		AdminUpdateGrantHandler: adminHandler.UpdateGrantHandler,
		AdminDeleteGrantHandler: adminHandler.DeleteGrantHandler,
		AdminImportHandler:      adminHandler.ImportGrantsHandler,
		AdminListUsersHandler:   adminHandler.ListUsersHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
