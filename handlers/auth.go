package handlers

import (
	"errors"
	"net/http"

	"pagex/middleware"
	"pagex/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var userService user.UserService

// SetUserService injects the identity gate implementation.
func SetUserService(svc user.UserService) {
	userService = svc
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUserHandler creates a new account. Validation failures come back
// per-field so the form can highlight them; no checkout happens here.
func RegisterUserHandler(c *gin.Context) {
	logger := getLogger(c)

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := userService.RegisterUser(req.Email, req.Password)
	if err != nil {
		var vErr user.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "fields": vErr.Fields})
			return
		}
		logger.Error("User registration failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateUserHandler signs a user in.
func AuthenticateUserHandler(c *gin.Context) {
	logger := getLogger(c)

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := userService.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		var aErr user.AuthError
		if errors.As(err, &aErr) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": aErr.Reason})
			return
		}
		logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SignOutHandler revokes the current token and tears down the session.
func SignOutHandler(c *gin.Context) {
	logger := getLogger(c)

	session, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := userService.SignOut(session.UserID); err != nil {
		logger.Error("Sign out failed", zap.String("userID", session.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// CurrentSessionHandler returns the session the auth middleware resolved:
// identity, privileged capability and subscription status.
func CurrentSessionHandler(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"userId":             session.UserID,
		"email":              session.Email,
		"privileged":         session.Privileged,
		"subscriptionStatus": session.SubscriptionStatus,
	})
}
