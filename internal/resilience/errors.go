package resilience

import (
	"context"
	"errors"
)

// PermanentError wraps an error that retrying cannot fix: missing
// credentials, malformed requests, anything the server will reject the same
// way every time.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// NewPermanentError marks err as not retryable.
func NewPermanentError(err error) *PermanentError {
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err (or anything in its chain) is marked
// permanent or is a context cancellation.
func IsPermanent(err error) bool {
	if err == nil {
		return false
	}
	var pe *PermanentError
	if errors.As(err, &pe) {
		return true
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
