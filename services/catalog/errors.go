package catalog

import "fmt"

// NotFoundError indicates the requested grant does not exist.
type NotFoundError struct {
	GrantID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("grant %s not found", e.GrantID)
}

// StoreError wraps a failed store call. The operation is retryable and no
// local state was changed; in particular the caller's filter set survives.
type StoreError struct {
	Err error
}

func (e StoreError) Error() string {
	return fmt.Sprintf("catalog store error: %v", e.Err)
}

func (e StoreError) Unwrap() error {
	return e.Err
}
