package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"fxconvert/internal/adapters/postgres"
	"fxconvert/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	tcpg "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const migrationsDir = "../../platform/db/migrations"

var (
	pgSetupOnce sync.Once

	pgContainer *tcpg.PostgresContainer
	pgConnStr   string
)

func TestMain(m *testing.M) {
	code := m.Run()
	if pgContainer != nil {
		_ = pgContainer.Terminate(context.Background())
	}
	os.Exit(code)
}

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pgSetupOnce.Do(func() {
		startPostgres(t)
	})

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, pgConnStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	_, err = pool.Exec(ctx, `truncate table rates_cache`)
	require.NoError(t, err)

	return pool
}

func startPostgres(t *testing.T) {
	ctx := context.Background()
	pg, err := tcpg.Run(ctx,
		"postgres:16-alpine",
		tcpg.WithDatabase("postgres"),
		tcpg.WithUsername("postgres"),
		tcpg.WithPassword("postgres"),
	)
	require.NoError(t, err)

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := goose.OpenDBWithDriver("pgx", dsn)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.Eventually(t, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return db.PingContext(pingCtx) == nil
	}, 15*time.Second, 500*time.Millisecond)

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.UpContext(ctx, db, migrationsDir))

	pgContainer = pg
	pgConnStr = dsn
}

func TestCacheRepository_Load_NoRecordYet(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewCacheRepository(pool)

	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrCacheMissing)
}

func TestCacheRepository_SaveThenLoad_RoundTrips(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewCacheRepository(pool)
	ctx := context.Background()

	rec := &domain.CacheRecord{
		LastUpdated: "2026-08-31T09:30:00Z",
		Day:         "2026-08-31",
		FetchCount:  1,
		Rates: map[string]string{
			"USD": "1",
			"EUR": "0.9174311926605504",
		},
	}
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, rec, got)
}

func TestCacheRepository_Save_OverwritesSingleRow(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewCacheRepository(pool)
	ctx := context.Background()

	first := &domain.CacheRecord{Day: "2026-08-30", FetchCount: 2, Rates: map[string]string{"USD": "1"}}
	require.NoError(t, repo.Save(ctx, first))

	second := &domain.CacheRecord{
		LastUpdated: "2026-08-31T12:00:00Z",
		Day:         "2026-08-31",
		FetchCount:  1,
		Rates:       map[string]string{"USD": "1", "MXN": "20"},
	}
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, second, got)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `select count(*) from rates_cache`).Scan(&count))
	require.Equal(t, 1, count)
}

func TestCacheRepository_Load_EmptyLastUpdated(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewCacheRepository(pool)
	ctx := context.Background()

	rec := &domain.CacheRecord{Day: "2026-08-31", FetchCount: 1, Rates: map[string]string{"USD": "1"}}
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, got.LastUpdated)
}

func TestCacheRepository_Load_DBError(t *testing.T) {
	pool := setupPostgres(t)
	repo := postgres.NewCacheRepository(pool)

	// A canceled context forces an error path distinct from ErrCacheMissing.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := repo.Load(ctx)
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrCacheMissing)
}
