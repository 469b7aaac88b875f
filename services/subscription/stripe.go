package subscription

import (
	"context"
	"fmt"

	"pagex/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// StripePaymentClient creates checkout sessions against the Stripe API.
// The global stripe.Key is set at startup.
type StripePaymentClient struct{}

// CreateCheckoutSession forwards the checkout parameters to Stripe and
// returns the issued session verbatim. The user id travels as both
// client_reference_id and metadata on the session and the subscription, so
// every later webhook event can be tied back to the account.
func (StripePaymentClient) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		CustomerEmail:     stripe.String(req.Email),
		ClientReferenceID: stripe.String(req.UserID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{"userId": req.UserID},
		},
	}
	params.Context = ctx
	params.AddMetadata("userId", req.UserID)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session creation failed: %w", err)
	}

	return &models.CheckoutSession{
		SessionID: sess.ID,
		URL:       sess.URL,
	}, nil
}
