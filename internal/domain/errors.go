package domain

import "errors"

var (
	// Validation failures. Recovered locally by rejecting the single
	// operation, never fatal.
	ErrUnsupportedCurrency = errors.New("currency not supported")
	ErrNegativeAmount      = errors.New("amount cannot be negative")
	ErrInvalidAmount       = errors.New("amount is not a valid number")
	ErrNonPositiveRate     = errors.New("rate must be greater than zero")

	// Cache state. Both degrade to compiled-in defaults; they are
	// distinct so callers can tell "no cache yet" from "damaged cache".
	ErrCacheMissing = errors.New("rates cache not found")
	ErrCacheCorrupt = errors.New("rates cache is corrupt")

	// Remote fetch failures. ErrRateServiceDown covers connectivity,
	// timeouts and HTTP-level failures; ErrBadRateResponse means the
	// service answered but broke its response contract.
	ErrRateServiceDown = errors.New("rate service unreachable")
	ErrBadRateResponse = errors.New("rate service returned a malformed response")
)
