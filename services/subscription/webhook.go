package subscription

import (
	"encoding/json"
	"fmt"

	"pagex/models"
	"pagex/utils"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

// HandleWebhookEvent settles subscription state from a signature-verified
// processor event. Events referencing unknown users are logged and
// acknowledged (nil, nil) so the processor does not retry forever. Settles
// are idempotent: replays write the same status again.
func (s *DefaultSubscriptionService) HandleWebhookEvent(event stripe.Event) (*Settlement, error) {
	logger := utils.GetLogger()

	switch event.Type {
	case "checkout.session.completed":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			return nil, fmt.Errorf("failed to parse checkout session event: %w", err)
		}
		if cs.Mode != stripe.CheckoutSessionModeSubscription {
			return nil, nil
		}
		userID := checkoutUserID(&cs)
		if userID == "" {
			logger.Warn("webhook: completed checkout session carries no user reference",
				zap.String("eventID", event.ID))
			return nil, nil
		}
		return s.settle(userID, models.SubscriptionActive, event.ID)

	case "checkout.session.expired":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			return nil, fmt.Errorf("failed to parse checkout session event: %w", err)
		}
		userID := checkoutUserID(&cs)
		if userID == "" {
			return nil, nil
		}
		// Only a still-pending checkout is reset; a completed payment that
		// raced this expiry keeps its settled status.
		swapped, err := s.Users.CompareAndSetSubscriptionStatus(userID, models.SubscriptionPending, models.SubscriptionNone)
		if err != nil {
			return nil, fmt.Errorf("failed to reset expired checkout: %w", err)
		}
		if !swapped {
			return nil, nil
		}
		return &Settlement{UserID: userID, Status: models.SubscriptionNone}, nil

	case "invoice.payment_failed":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return nil, fmt.Errorf("failed to parse invoice event: %w", err)
		}
		if inv.SubscriptionDetails == nil {
			return nil, nil
		}
		userID := inv.SubscriptionDetails.Metadata["userId"]
		if userID == "" {
			return nil, nil
		}
		// A failed first payment only unwinds a checkout that never settled.
		swapped, err := s.Users.CompareAndSetSubscriptionStatus(userID, models.SubscriptionPending, models.SubscriptionNone)
		if err != nil {
			return nil, fmt.Errorf("failed to reset failed checkout: %w", err)
		}
		if !swapped {
			return nil, nil
		}
		return &Settlement{UserID: userID, Status: models.SubscriptionNone}, nil

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("failed to parse subscription event: %w", err)
		}
		userID := sub.Metadata["userId"]
		if userID == "" {
			logger.Warn("webhook: deleted subscription carries no user reference",
				zap.String("eventID", event.ID))
			return nil, nil
		}
		return s.settle(userID, models.SubscriptionCancelled, event.ID)

	default:
		logger.Debug("webhook: ignoring event", zap.String("type", string(event.Type)))
		return nil, nil
	}
}

// settle writes the new status and, for activations, sends the best-effort
// confirmation email. A mail failure never fails the settlement.
func (s *DefaultSubscriptionService) settle(userID string, status models.SubscriptionStatus, eventID string) (*Settlement, error) {
	logger := utils.GetLogger()

	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user for settlement: %w", err)
	}
	if u == nil {
		logger.Warn("webhook: event references unknown user",
			zap.String("userID", userID), zap.String("eventID", eventID))
		return nil, nil
	}

	if err := s.Users.SetSubscriptionStatus(userID, status); err != nil {
		return nil, fmt.Errorf("failed to settle subscription status: %w", err)
	}
	logger.Info("subscription status settled",
		zap.String("userID", userID), zap.String("status", string(status)))

	if status == models.SubscriptionActive && s.Mailer != nil {
		if err := s.Mailer.SendSubscriptionActive(u.Email); err != nil {
			logger.Warn("webhook: confirmation email failed",
				zap.String("userID", userID), zap.Error(err))
		}
	}

	return &Settlement{UserID: userID, Status: status}, nil
}

// checkoutUserID resolves the user reference a checkout session carries.
func checkoutUserID(cs *stripe.CheckoutSession) string {
	if cs.ClientReferenceID != "" {
		return cs.ClientReferenceID
	}
	return cs.Metadata["userId"]
}
