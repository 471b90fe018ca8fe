package rates

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"fxconvert/internal/domain"
)

// divPrecision is the number of fractional digits kept when projecting
// an amount into the USD reference unit. Enough that chained
// conversions do not accumulate visible error at two-decimal display.
const divPrecision = 28

// Table holds the current rate for every supported currency, expressed
// as units per 1 USD. Every supported code has an entry at all times:
// entries are overwritten, never removed. The table is a transient
// projection of defaults plus cache plus fetches and is never persisted
// itself. Safe for concurrent use; in serve mode HTTP handlers and the
// refresh scheduler share one table.
type Table struct {
	mu    sync.RWMutex
	rates map[string]decimal.Decimal
}

// NewTable returns a table seeded with the compiled-in default rates.
func NewTable() *Table {
	return &Table{rates: domain.DefaultRates()}
}

// Rate returns the current rate for code.
func (t *Table) Rate(code string) (decimal.Decimal, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rates[code]
	return r, ok
}

// Set overwrites the rate for code. The code must be supported and the
// value positive; nothing is stored otherwise. The persisted cache is
// not touched.
func (t *Table) Set(code string, value decimal.Decimal) error {
	if !domain.IsSupported(code) {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedCurrency, code)
	}
	if value.Sign() <= 0 {
		return domain.ErrNonPositiveRate
	}
	t.mu.Lock()
	t.rates[code] = value
	t.mu.Unlock()
	return nil
}

// Convert reprojects a non-negative amount from one supported currency
// to another through the USD reference: amount / rate[from] gives the
// amount in USD, multiplied by rate[to] gives the target amount. The
// two-step path is required because rates are stored per-USD, not
// pairwise. No rounding happens here, so chained conversions keep full
// precision until presentation.
func (t *Table) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if amount.Sign() < 0 {
		return decimal.Decimal{}, domain.ErrNegativeAmount
	}
	fromRate, ok := t.Rate(from)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedCurrency, from)
	}
	toRate, ok := t.Rate(to)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedCurrency, to)
	}
	if from == to {
		return amount, nil
	}
	usd := amount.DivRound(fromRate, divPrecision)
	return usd.Mul(toRate), nil
}

// Snapshot returns all rates keyed by code, stringified at full
// precision. This is the shape the cache record persists.
func (t *Table) Snapshot() map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]string, len(t.rates))
	for code, r := range t.rates {
		out[code] = r.String()
	}
	return out
}

// Present renders amount rounded to two fractional digits, ties rounded
// away from zero, followed by the currency code: "1980.00 MXN".
// Rounding is applied only here, never during conversion.
func Present(amount decimal.Decimal, code string) string {
	return amount.StringFixed(2) + " " + code
}
