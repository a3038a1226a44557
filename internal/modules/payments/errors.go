package payments

import "errors"

var (
	ErrNotFound     = errors.New("payment not found")
	ErrPayerMissing = errors.New("payer information unreadable")
)
