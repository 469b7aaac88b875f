package subscription

import (
	"errors"
	"fmt"
)

// ErrConfirmationTimeout is returned when no authoritative confirmation
// arrives within the bounded post-redirect wait. The caller may retry the
// confirmation or fall back to a fresh checkout.
var ErrConfirmationTimeout = errors.New("subscription confirmation did not arrive in time")

// ErrAlreadyActive is returned when checkout is requested for a user whose
// subscription is already active.
var ErrAlreadyActive = errors.New("subscription is already active")

// ErrUserNotFound is returned when the checkout target does not exist.
var ErrUserNotFound = errors.New("user not found")

// ProcessorError wraps a failure from the external payment processor. It is
// reported distinctly from account-creation failures and from confirmation
// timeouts.
type ProcessorError struct {
	Err error
}

func (e ProcessorError) Error() string {
	return fmt.Sprintf("payment processor error: %v", e.Err)
}

func (e ProcessorError) Unwrap() error {
	return e.Err
}
