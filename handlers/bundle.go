package handlers

import (
	userRepoPkg "pagex/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Auth endpoints
	RegisterUserHandler     gin.HandlerFunc
	AuthenticateUserHandler gin.HandlerFunc
	SignOutHandler          gin.HandlerFunc
	CurrentSessionHandler   gin.HandlerFunc

	// Subscription endpoints
	StartCheckoutHandler  gin.HandlerFunc
	ConfirmHandler        gin.HandlerFunc
	CancelCheckoutHandler gin.HandlerFunc
	StripeWebhookHandler  gin.HandlerFunc

	// Catalog endpoints
	ListGrantsHandler  gin.HandlerFunc
	GetGrantHandler    gin.HandlerFunc
	ListSavedHandler   gin.HandlerFunc
	SaveGrantHandler   gin.HandlerFunc
	UnsaveGrantHandler gin.HandlerFunc

	// Admin endpoints
	AdminListGrantsHandler  gin.HandlerFunc
	AdminCreateGrantHandler gin.HandlerFunc
	AdminUpdateGrantHandler gin.HandlerFunc
	AdminDeleteGrantHandler gin.HandlerFunc
	AdminImportHandler      gin.HandlerFunc
	AdminListUsersHandler   gin.HandlerFunc
}
