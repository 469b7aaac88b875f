package models

// CheckoutSession is the externally issued, single-use payment initiation
// handle returned by the processor. It is never persisted locally: the URL is
// consumed once by a full-page redirect and the session id only reappears as
// an opaque query parameter on the success redirect.
type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// CheckoutRequest carries the parameters forwarded to the payment processor
// when a checkout session is created.
type CheckoutRequest struct {
	UserID     string
	Email      string
	PriceID    string
	SuccessURL string
	CancelURL  string
}
