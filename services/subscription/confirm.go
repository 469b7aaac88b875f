package subscription

import (
	"context"
	"fmt"
	"time"

	"pagex/models"
	"pagex/utils"

	"go.uber.org/zap"
)

// ConfirmRedirect handles the processor's success redirect. The opaque
// session id only signals that polling should begin; payment is confirmed
// solely by observing the status the webhook wrote to the store. The wait is
// bounded by ConfirmWait and aborts early when ctx is cancelled (the caller
// navigated away).
func (s *DefaultSubscriptionService) ConfirmRedirect(ctx context.Context, userID, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("missing checkout session id")
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.confirmWait())
	defer cancel()

	ticker := time.NewTicker(s.pollInterval())
	defer ticker.Stop()

	for {
		u, err := s.Users.GetByID(userID)
		if err != nil {
			utils.GetLogger().Warn("ConfirmRedirect: status poll failed",
				zap.String("userID", userID), zap.Error(err))
		} else if u == nil {
			return ErrUserNotFound
		} else if u.SubscriptionStatus == models.SubscriptionActive {
			utils.GetLogger().Info("subscription confirmed",
				zap.String("userID", userID), zap.String("sessionID", sessionID))
			return nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				// The caller cancelled; this is not a confirmation failure.
				return ctx.Err()
			}
			return ErrConfirmationTimeout
		case <-ticker.C:
		}
	}
}
