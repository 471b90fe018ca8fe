package adapters

import (
	"context"

	"github.com/shopspring/decimal"

	"fxconvert/internal/domain"
)

// RateClient retrieves a fresh rate mapping for a base currency from
// the remote rate service. The result always contains base -> 1 and may
// include currencies outside the supported set; callers filter.
// Failures wrap domain.ErrRateServiceDown (connectivity, timeout, HTTP
// status) or domain.ErrBadRateResponse (contract violation).
type RateClient interface {
	FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error)
}

// CacheStore persists the single rates-cache record. Load reports
// domain.ErrCacheMissing when no record exists yet and
// domain.ErrCacheCorrupt when one exists but cannot be read; callers
// treat both as absent.
type CacheStore interface {
	Load(ctx context.Context) (*domain.CacheRecord, error)
	Save(ctx context.Context, rec *domain.CacheRecord) error
}
