package handlers

import (
	"errors"
	"io"
	"net/http"

	"pagex/config"
	"pagex/middleware"
	"pagex/models"
	"pagex/services/subscription"
	"pagex/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// Stripe documents 64KB as the cap on webhook payloads.
const maxWebhookBody = 65536

// SubscriptionHandler owns the checkout and webhook endpoints.
type SubscriptionHandler struct {
	Service subscription.SubscriptionService
}

// NewSubscriptionHandler creates a SubscriptionHandler.
func NewSubscriptionHandler(svc subscription.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{Service: svc}
}

// StartCheckoutHandler requests a checkout session and returns the processor
// URL for a full-page redirect.
func (h *SubscriptionHandler) StartCheckoutHandler(c *gin.Context) {
	logger := getLogger(c)

	session, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	checkout, err := h.Service.StartCheckout(c.Request.Context(), session.UserID)
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrAlreadyActive):
			c.JSON(http.StatusConflict, gin.H{"error": "Subscription is already active"})
		case errors.As(err, &subscription.ProcessorError{}):
			logger.Error("Checkout session creation failed", zap.String("userID", session.UserID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment processor unavailable, please try again"})
		default:
			logger.Error("Checkout failed", zap.String("userID", session.UserID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed, please try again"})
		}
		return
	}
	c.JSON(http.StatusOK, checkout)
}

// ConfirmHandler handles the success redirect. It waits, bounded and
// cancellable, for the webhook-settled status; the session_id parameter is
// only the signal to start waiting.
func (h *SubscriptionHandler) ConfirmHandler(c *gin.Context) {
	logger := getLogger(c)

	session, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session_id parameter"})
		return
	}

	err := h.Service.ConfirmRedirect(c.Request.Context(), session.UserID, sessionID)
	if err != nil {
		if errors.Is(err, subscription.ErrConfirmationTimeout) {
			c.JSON(http.StatusAccepted, gin.H{
				"status":  "pending",
				"message": "Payment confirmation is still on its way. Retry in a moment.",
				"retry":   true,
			})
			return
		}
		logger.Error("Subscription confirmation failed", zap.String("userID", session.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify subscription"})
		return
	}

	// Keep the cached session in step with the settled store state.
	if err := utils.UpdateAuthSessionStatus(utils.GetAuthCacheClient(), session.UserID, models.SubscriptionActive); err != nil {
		logger.Warn("Failed to refresh session after confirmation", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"status": "active", "redirect": "/"})
}

// CancelCheckoutHandler handles the processor's cancel redirect.
func (h *SubscriptionHandler) CancelCheckoutHandler(c *gin.Context) {
	logger := getLogger(c)

	session, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.Service.CancelCheckout(session.UserID); err != nil {
		logger.Error("Checkout cancellation failed", zap.String("userID", session.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel checkout"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// StripeWebhookHandler is the server-side settlement endpoint. It verifies
// the event signature before anything else; an unverifiable payload is
// rejected outright.
func (h *SubscriptionHandler) StripeWebhookHandler(c *gin.Context) {
	logger := getLogger(c)

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read payload"})
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		logger.Warn("Webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	settlement, err := h.Service.HandleWebhookEvent(event)
	if err != nil {
		logger.Error("Webhook settlement failed", zap.String("eventID", event.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Settlement failed"})
		return
	}

	if settlement != nil {
		if err := utils.UpdateAuthSessionStatus(utils.GetAuthCacheClient(), settlement.UserID, settlement.Status); err != nil {
			logger.Warn("Failed to refresh session after settlement",
				zap.String("userID", settlement.UserID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
