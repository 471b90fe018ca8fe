package rates

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Entry is one row of the rate listing: units of Code per 1 USD.
type Entry struct {
	Code string
	Rate decimal.Decimal
}

// StatusView summarizes the cache state for list surfaces.
type StatusView struct {
	LastUpdated string // empty if no remote fetch ever succeeded
	Remaining   int
}

func entries(t *Table) []Entry {
	t.mu.RLock()
	out := make([]Entry, 0, len(t.rates))
	for code, r := range t.rates {
		out = append(out, Entry{Code: code, Rate: r})
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
