package ratesapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"fxconvert/internal/domain"
)

// Client talks to the remote rate service: GET {base_url}/latest?base=X
// answering a JSON object whose "rates" field maps currency code to a
// numeric rate per one unit of the base.
type Client struct {
	http    *http.Client
	baseURL string
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{http: httpClient, baseURL: baseURL}
}

type ratesResponse struct {
	Rates map[string]json.Number `json:"rates"`
}

// FetchRates retrieves the full rate mapping for the base currency.
// The result always contains base -> 1 and may include currencies the
// converter does not support. Transport, timeout and HTTP-status
// failures wrap domain.ErrRateServiceDown; a response without a usable
// rates object wraps domain.ErrBadRateResponse. Nothing is partially
// applied: any failure returns no rates at all.
func (c *Client) FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: bad base URL: %v", domain.ErrRateServiceDown, err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/latest"
	q := u.Query()
	q.Set("base", base)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request for base %q: %v", domain.ErrRateServiceDown, base, err)
	}
	req.Header.Set("User-Agent", "fxconvert/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request for base %q: %v", domain.ErrRateServiceDown, base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status for base %q: %s", domain.ErrRateServiceDown, base, resp.Status)
	}

	// json.Number keeps the textual form, so rates convert to decimal
	// without a float64 round trip.
	var body ratesResponse
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err = dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response for base %q: %v", domain.ErrBadRateResponse, base, err)
	}
	if body.Rates == nil {
		return nil, fmt.Errorf("%w: response for base %q has no rates", domain.ErrBadRateResponse, base)
	}

	out := make(map[string]decimal.Decimal, len(body.Rates)+1)
	out[base] = decimal.NewFromInt(1)
	for code, num := range body.Rates {
		v, convErr := decimal.NewFromString(num.String())
		if convErr != nil {
			return nil, fmt.Errorf("%w: non-numeric rate for %q: %v", domain.ErrBadRateResponse, code, convErr)
		}
		out[code] = v
	}
	return out, nil
}
