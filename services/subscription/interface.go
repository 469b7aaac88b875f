package subscription

import (
	"context"
	"time"

	userRepo "pagex/database/repository/user"
	"pagex/models"

	"github.com/stripe/stripe-go/v76"
)

// PaymentClient abstracts checkout session creation at the payment processor.
type PaymentClient interface {
	CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error)
}

// Mailer sends the best-effort activation confirmation email.
type Mailer interface {
	SendSubscriptionActive(toEmail string) error
}

// Settlement records the outcome of a webhook event that changed a user's
// subscription state.
type Settlement struct {
	UserID string
	Status models.SubscriptionStatus
}

// SubscriptionService drives a user from account creation to a confirmed,
// paid, active subscription, tolerating asynchronous external confirmation.
type SubscriptionService interface {
	// StartCheckout requests a checkout session from the processor and marks
	// the user pending. The returned URL is consumed by a full redirect.
	StartCheckout(ctx context.Context, userID string) (*models.CheckoutSession, error)
	// ConfirmRedirect handles the processor's success redirect. The redirect
	// is a hint, never proof: confirmation comes from the store, which only
	// the webhook writes. The wait is bounded and cancelled with ctx.
	ConfirmRedirect(ctx context.Context, userID, sessionID string) error
	// CancelCheckout handles the processor's cancel redirect, returning a
	// pending user to the re-enterable "none" state.
	CancelCheckout(userID string) error
	// HandleWebhookEvent settles subscription state from an authoritative,
	// signature-verified processor event. Idempotent; unknown users are
	// acknowledged so the processor stops retrying.
	HandleWebhookEvent(event stripe.Event) (*Settlement, error)
}

// DefaultSubscriptionService is the production implementation.
type DefaultSubscriptionService struct {
	Users    userRepo.UserRepository
	Payments PaymentClient
	Mailer   Mailer // optional; nil disables the confirmation email

	PriceID    string
	SuccessURL string
	CancelURL  string

	// ConfirmWait bounds the post-redirect confirmation wait; PollInterval is
	// how often the store is re-read during it.
	ConfirmWait  time.Duration
	PollInterval time.Duration
}

const (
	defaultConfirmWait  = 5 * time.Second
	defaultPollInterval = 300 * time.Millisecond
)

func (s *DefaultSubscriptionService) confirmWait() time.Duration {
	if s.ConfirmWait > 0 {
		return s.ConfirmWait
	}
	return defaultConfirmWait
}

func (s *DefaultSubscriptionService) pollInterval() time.Duration {
	if s.PollInterval > 0 {
		return s.PollInterval
	}
	return defaultPollInterval
}
