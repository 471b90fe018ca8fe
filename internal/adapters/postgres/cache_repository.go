package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fxconvert/internal/domain"
)

// CacheRepository keeps the rates-cache record in a single-row table,
// for deployments where the converter runs behind the HTTP surface and
// a local file would not survive the container.
type CacheRepository struct {
	pool *pgxpool.Pool
}

func NewCacheRepository(pool *pgxpool.Pool) *CacheRepository {
	return &CacheRepository{pool: pool}
}

func (r *CacheRepository) Load(ctx context.Context) (*domain.CacheRecord, error) {
	const q = `
		select last_updated, day, fetch_count, rates
		from rates_cache
		where id = 1;
	`

	var (
		lastUpdated *string
		day         string
		fetchCount  int
		rawRates    []byte
	)
	err := r.pool.QueryRow(ctx, q).Scan(&lastUpdated, &day, &fetchCount, &rawRates)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCacheMissing
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCacheCorrupt, err)
	}

	rec := &domain.CacheRecord{Day: day, FetchCount: fetchCount}
	if lastUpdated != nil {
		rec.LastUpdated = *lastUpdated
	}
	if len(rawRates) > 0 {
		if err = json.Unmarshal(rawRates, &rec.Rates); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCacheCorrupt, err)
		}
	}
	return rec, nil
}

func (r *CacheRepository) Save(ctx context.Context, rec *domain.CacheRecord) error {
	ratesJSON, err := json.Marshal(rec.Rates)
	if err != nil {
		return fmt.Errorf("failed to encode rates: %w", err)
	}

	const q = `
		insert into rates_cache (id, last_updated, day, fetch_count, rates)
		values (1, $1, $2, $3, $4)
		on conflict (id) do update
		set last_updated = excluded.last_updated,
		    day          = excluded.day,
		    fetch_count  = excluded.fetch_count,
		    rates        = excluded.rates;
	`

	var lastUpdated *string
	if rec.LastUpdated != "" {
		lastUpdated = &rec.LastUpdated
	}
	if _, err = r.pool.Exec(ctx, q, lastUpdated, rec.Day, rec.FetchCount, ratesJSON); err != nil {
		return fmt.Errorf("failed to save rates cache: %w", err)
	}
	return nil
}
