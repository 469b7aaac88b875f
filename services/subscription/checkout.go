package subscription

import (
	"context"
	"fmt"

	"pagex/models"
	"pagex/utils"

	"go.uber.org/zap"
)

// StartCheckout moves a registered user into the pending state and requests
// a checkout session from the processor. A processor failure rolls the user
// back to "none" and is reported as a ProcessorError so the caller can retry
// checkout without re-registering.
func (s *DefaultSubscriptionService) StartCheckout(ctx context.Context, userID string) (*models.CheckoutSession, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user for checkout: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	if u.SubscriptionStatus == models.SubscriptionActive {
		return nil, ErrAlreadyActive
	}

	if err := s.Users.SetSubscriptionStatus(userID, models.SubscriptionPending); err != nil {
		return nil, fmt.Errorf("failed to mark checkout pending: %w", err)
	}

	sess, err := s.Payments.CreateCheckoutSession(ctx, models.CheckoutRequest{
		UserID:     userID,
		Email:      u.Email,
		PriceID:    s.PriceID,
		SuccessURL: s.SuccessURL,
		CancelURL:  s.CancelURL,
	})
	if err != nil {
		if _, rbErr := s.Users.CompareAndSetSubscriptionStatus(userID, models.SubscriptionPending, models.SubscriptionNone); rbErr != nil {
			utils.GetLogger().Error("StartCheckout: failed to roll back pending status",
				zap.String("userID", userID), zap.Error(rbErr))
		}
		return nil, ProcessorError{Err: err}
	}

	utils.GetLogger().Info("checkout session created",
		zap.String("userID", userID), zap.String("sessionID", sess.SessionID))
	return sess, nil
}

// CancelCheckout handles the processor's cancel redirect. The user returns to
// "none" and may retry checkout with the same account; a settled status is
// left untouched.
func (s *DefaultSubscriptionService) CancelCheckout(userID string) error {
	swapped, err := s.Users.CompareAndSetSubscriptionStatus(userID, models.SubscriptionPending, models.SubscriptionNone)
	if err != nil {
		return fmt.Errorf("failed to reset checkout state: %w", err)
	}
	if swapped {
		utils.GetLogger().Info("checkout cancelled by user", zap.String("userID", userID))
	}
	return nil
}
