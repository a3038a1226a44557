package zalopay

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPayer = errors.New("payer email missing or malformed")
	ErrBadAmount    = errors.New("payment amount not representable in minor units")
)

// RejectedError is a business failure reported by the gateway itself
// (return_code != 1). Not retryable.
type RejectedError struct {
	Code    int
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("zalopay rejected order (return_code=%d): %s", e.Code, e.Message)
}

// TransportError is a network-level failure talking to the gateway: timeout,
// connection refused, or a non-2xx response without a readable body.
// Eligible for caller-side retry.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("zalopay transport failure: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }
