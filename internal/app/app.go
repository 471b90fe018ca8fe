package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"fxconvert/internal/adapters"
	"fxconvert/internal/adapters/cachefile"
	"fxconvert/internal/adapters/postgres"
	"fxconvert/internal/adapters/ratesapi"
	"fxconvert/internal/api"
	"fxconvert/internal/cli"
	"fxconvert/internal/config"
	"fxconvert/internal/platform/db"
	httpserver "fxconvert/internal/platform/http"
	"fxconvert/internal/rates"
	"fxconvert/internal/rates/handler"
)

// App bundles the wired components every command mode needs.
type App struct {
	Cfg     *config.AppConfig
	Service *rates.Service
	cleanup func()
}

func (a *App) Close() {
	if a.cleanup != nil {
		a.cleanup()
	}
}

// New loads configuration, sets up logging and wires the rate table,
// cache store and remote client into a service.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Init()
	if err != nil {
		return nil, err
	}

	logrus.SetOutput(os.Stderr)
	if parsedLvl, parseErr := logrus.ParseLevel(cfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}

	cache, cleanup, err := newCacheStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	httpTimeout := time.Duration(cfg.RatesAPI.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	client := ratesapi.NewClient(&http.Client{Timeout: httpTimeout}, cfg.RatesAPI.BaseURL)

	table := rates.NewTable()
	service := rates.NewService(table, cache, client, cfg.Quota.MaxPerDay)

	return &App{Cfg: cfg, Service: service, cleanup: cleanup}, nil
}

func newCacheStore(ctx context.Context, cfg *config.AppConfig) (adapters.CacheStore, func(), error) {
	switch cfg.Cache.Backend {
	case "postgres":
		pool, err := db.CreatePoolAndPing(ctx, cfg.DbServer)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres cache backend: %w", err)
		}
		return postgres.NewCacheRepository(pool), pool.Close, nil
	case "", "file":
		return cachefile.NewStore(cfg.Cache.Path), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// RunMenu is the default mode: apply the cached snapshot, attempt one
// automatic refresh if quota remains, then drive the interactive menu.
func RunMenu(ctx context.Context) error {
	a, err := New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if applied := a.Service.Startup(ctx); applied > 0 {
		logrus.Debugf("Applied %d cached rates", applied)
	}

	// Startup must not be blocked by network or cache trouble; a failed
	// automatic refresh only leaves the cached or default rates active.
	if a.Service.Status(ctx, rates.Today()).Remaining > 0 {
		fmt.Println("Trying an automatic rate refresh...")
		if res := a.Service.Refresh(ctx, rates.Today()); res.Status == rates.StatusFailed {
			logrus.WithError(res.Err).Debug("Automatic refresh failed")
		}
	}

	cli.NewMenu(a.Service, os.Stdin, os.Stdout).Run(ctx)
	return nil
}

// RunServe exposes the converter over HTTP with a periodic quota-gated
// refresh job.
func RunServe(ctx context.Context) error {
	a, err := New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	a.Service.Startup(ctx)

	scheduler := rates.NewScheduler(a.Service, time.Duration(a.Cfg.Scheduler.IntervalSeconds)*time.Second)
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start refresh scheduler")
		return startErr
	}

	router := api.NewRouter(handler.NewRateHandler(a.Service))
	if serverErr := httpserver.Start(ctx, a.Cfg.HTTPServer, router); serverErr != nil {
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// RunConvert converts once and prints the result, for scripting.
func RunConvert(ctx context.Context, rawAmount, rawFrom, rawTo string) error {
	a, err := New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	a.Service.Startup(ctx)

	from := rates.NormalizeCode(rawFrom)
	if err = rates.ValidateCode(from); err != nil {
		return err
	}
	to := rates.NormalizeCode(rawTo)
	if err = rates.ValidateCode(to); err != nil {
		return err
	}
	amount, err := rates.ParseAmount(rawAmount)
	if err != nil {
		return err
	}

	result, err := a.Service.Convert(amount, from, to)
	if err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", rates.Present(amount, from), rates.Present(result, to))
	return nil
}

// RunRates prints the current rate listing.
func RunRates(ctx context.Context) error {
	a, err := New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	a.Service.Startup(ctx)

	for _, e := range a.Service.ListRates() {
		fmt.Printf("%s %s\n", e.Code, e.Rate.String())
	}
	status := a.Service.Status(ctx, rates.Today())
	if status.LastUpdated != "" {
		fmt.Printf("last updated %s, %d refreshes left today\n", status.LastUpdated, status.Remaining)
	}
	return nil
}

// RunRefresh forces one quota-gated refresh attempt.
func RunRefresh(ctx context.Context) error {
	a, err := New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	a.Service.Startup(ctx)

	res := a.Service.Refresh(ctx, rates.Today())
	switch res.Status {
	case rates.StatusRefreshed:
		fmt.Printf("refreshed %d rates, %d left today\n", res.Updated, res.Remaining)
		return nil
	case rates.StatusQuotaExceeded:
		fmt.Println("daily refresh quota spent")
		return nil
	default:
		return res.Err
	}
}

// RunSetRate overrides one rate for the current run. The override lives
// in the transient table only, so without a following refresh it is
// gone on the next start.
func RunSetRate(ctx context.Context, rawCode, rawRate string) error {
	a, err := New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	a.Service.Startup(ctx)

	code := rates.NormalizeCode(rawCode)
	if err = rates.ValidateCode(code); err != nil {
		return err
	}
	value, err := rates.ParseRate(rawRate)
	if err != nil {
		return err
	}
	if err = a.Service.SetRate(code, value); err != nil {
		return err
	}
	fmt.Printf("1 USD = %s %s\n", value.String(), code)
	return nil
}
