package rates

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
)

type RefreshStatus string

const (
	StatusRefreshed     RefreshStatus = "refreshed"
	StatusQuotaExceeded RefreshStatus = "quota_exceeded"
	StatusFailed        RefreshStatus = "failed"
)

// RefreshResult describes the outcome of one refresh attempt. Quota
// exhaustion is a normal outcome, not an error; Err is set only when
// Status is StatusFailed.
type RefreshResult struct {
	Status    RefreshStatus
	Updated   int // supported currencies whose rate was overwritten
	Remaining int // fetches still allowed today after this attempt
	Err       error
}

// Service orchestrates the rate table, the cache store and the remote
// rate client: applying the cached snapshot at startup and performing
// quota-gated refreshes that persist their result back to the cache.
type Service struct {
	table     *Table
	cache     adapters.CacheStore
	client    adapters.RateClient
	maxPerDay int
}

func NewService(table *Table, cache adapters.CacheStore, client adapters.RateClient, maxPerDay int) *Service {
	return &Service{table: table, cache: cache, client: client, maxPerDay: maxPerDay}
}

// ApplyRecord copies every usable rate from rec into the table.
// Unsupported codes and values that do not parse to a positive decimal
// are skipped, so corruption in one entry never blocks the rest.
// Returns how many entries were applied.
func ApplyRecord(rec *domain.CacheRecord, table *Table) int {
	if rec == nil {
		return 0
	}
	applied := 0
	for code, raw := range rec.Rates {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		if table.Set(code, v) == nil {
			applied++
		}
	}
	return applied
}

// Startup applies the cached rates snapshot, if any, on top of the
// compiled-in defaults. A missing or corrupt cache leaves the defaults
// in place. Applying a cache never counts against the fetch quota.
func (s *Service) Startup(ctx context.Context) int {
	rec, err := s.cache.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCacheCorrupt) {
			logrus.WithError(err).Warn("Ignoring unreadable rates cache, keeping defaults")
		}
		return 0
	}
	return ApplyRecord(rec, s.table)
}

// Refresh attempts one quota-gated remote fetch for the given date.
// On success it applies the fetched rates restricted to the supported
// set, then persists a fresh cache record with the incremented fetch
// count. On fetch failure the table and the cache are left untouched.
// The quota is consumed per successful call, whether or not any rate
// actually changed value.
func (s *Service) Refresh(ctx context.Context, today string) RefreshResult {
	rec, err := s.cache.Load(ctx)
	if err != nil {
		rec = nil
	}

	remaining := RemainingToday(rec, today, s.maxPerDay)
	if remaining == 0 {
		return RefreshResult{Status: StatusQuotaExceeded}
	}

	fetched, err := s.client.FetchRates(ctx, domain.ReferenceCode)
	if err != nil {
		return RefreshResult{Status: StatusFailed, Remaining: remaining, Err: err}
	}

	updated := 0
	for code := range domain.Supported {
		v, ok := fetched[code]
		if !ok {
			continue
		}
		if s.table.Set(code, v) == nil {
			updated++
		}
	}

	count := NextCount(rec, today)
	newRec := &domain.CacheRecord{
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		Day:         today,
		FetchCount:  count,
		Rates:       s.table.Snapshot(),
	}
	if saveErr := s.cache.Save(ctx, newRec); saveErr != nil {
		// Caching is an optimization; a failed write must not fail the
		// refresh that already updated the table.
		logrus.WithError(saveErr).Warn("Failed to persist rates cache")
	}

	remaining = s.maxPerDay - count
	if remaining < 0 {
		remaining = 0
	}
	return RefreshResult{Status: StatusRefreshed, Updated: updated, Remaining: remaining}
}

// SetRate overwrites a single rate in the table without touching the
// persisted cache.
func (s *Service) SetRate(code string, value decimal.Decimal) error {
	return s.table.Set(code, value)
}

// Convert converts amount between two supported currencies at the
// table's current rates.
func (s *Service) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	return s.table.Convert(amount, from, to)
}

// ListRates returns the current table entries sorted by code.
func (s *Service) ListRates() []Entry {
	return entries(s.table)
}

// Status reports the cache's last successful fetch time and the fetches
// still allowed for the given date.
func (s *Service) Status(ctx context.Context, today string) StatusView {
	rec, err := s.cache.Load(ctx)
	if err != nil {
		rec = nil
	}
	view := StatusView{Remaining: RemainingToday(rec, today, s.maxPerDay)}
	if rec != nil {
		view.LastUpdated = rec.LastUpdated
	}
	return view
}
