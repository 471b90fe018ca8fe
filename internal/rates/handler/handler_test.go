package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"fxconvert/internal/api"
	"fxconvert/internal/domain"
	"fxconvert/internal/rates"
	"fxconvert/internal/rates/handler"
)

type stubCache struct {
	rec *domain.CacheRecord
}

func (s *stubCache) Load(context.Context) (*domain.CacheRecord, error) {
	if s.rec == nil {
		return nil, domain.ErrCacheMissing
	}
	return s.rec, nil
}

func (s *stubCache) Save(_ context.Context, rec *domain.CacheRecord) error {
	s.rec = rec
	return nil
}

type stubClient struct {
	rates map[string]decimal.Decimal
	err   error
}

func (s *stubClient) FetchRates(context.Context, string) (map[string]decimal.Decimal, error) {
	return s.rates, s.err
}

func newTestRouter(cache *stubCache, client *stubClient) http.Handler {
	svc := rates.NewService(rates.NewTable(), cache, client, 2)
	return api.NewRouter(handler.NewRateHandler(svc))
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestConvert_Success(t *testing.T) {
	router := newTestRouter(&stubCache{}, &stubClient{})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/convert?amount=100&from=usd&to=MXN", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res handler.ConvertResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, "USD", res.From)
	require.Equal(t, "MXN", res.To)
	require.Equal(t, "1980.00 MXN", res.Pretty)
}

func TestConvert_RejectsBadInput(t *testing.T) {
	router := newTestRouter(&stubCache{}, &stubClient{})

	for _, target := range []string{
		"/api/v1/convert?amount=100&from=XXX&to=MXN",
		"/api/v1/convert?amount=100&from=USD&to=XXX",
		"/api/v1/convert?amount=-1&from=USD&to=MXN",
		"/api/v1/convert?amount=abc&from=USD&to=MXN",
	} {
		rec := doRequest(t, router, http.MethodGet, target, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestListRates_IncludesQuotaInfo(t *testing.T) {
	cache := &stubCache{rec: &domain.CacheRecord{
		LastUpdated: "2026-08-31T10:00:00Z",
		Day:         rates.Today(),
		FetchCount:  1,
	}}
	router := newTestRouter(cache, &stubClient{})

	rec := doRequest(t, router, http.MethodGet, "/api/v1/rates", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res handler.ListRatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, "USD", res.Base)
	require.Len(t, res.Rates, 11)
	require.Equal(t, "2026-08-31T10:00:00Z", res.LastUpdated)
	require.Equal(t, 1, res.Remaining)
}

func TestRefresh_Success(t *testing.T) {
	client := &stubClient{rates: map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"MXN": decimal.NewFromInt(20),
	}}
	router := newTestRouter(&stubCache{}, client)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/rates/refresh", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res handler.RefreshResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, "refreshed", res.Status)
	require.Equal(t, 2, res.Updated)
	require.Equal(t, 1, res.Remaining)
}

func TestRefresh_QuotaExceeded(t *testing.T) {
	cache := &stubCache{rec: &domain.CacheRecord{Day: rates.Today(), FetchCount: 2}}
	router := newTestRouter(cache, &stubClient{})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/rates/refresh", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRefresh_UpstreamFailure(t *testing.T) {
	client := &stubClient{err: domain.ErrRateServiceDown}
	router := newTestRouter(&stubCache{}, client)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/rates/refresh", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSetRate_Success(t *testing.T) {
	router := newTestRouter(&stubCache{}, &stubClient{})

	rec := doRequest(t, router, http.MethodPut, "/api/v1/rates/PEN", `{"rate": "3.9"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res handler.SetRateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, "PEN", res.Code)
	require.Equal(t, "3.9", res.Rate)
}

func TestSetRate_RejectsNonPositive(t *testing.T) {
	router := newTestRouter(&stubCache{}, &stubClient{})

	for _, body := range []string{`{"rate": "0"}`, `{"rate": "-2"}`, `{"rate": "abc"}`, `not json`} {
		rec := doRequest(t, router, http.MethodPut, "/api/v1/rates/PEN", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&stubCache{}, &stubClient{})
	rec := doRequest(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
}
