package domain

// CacheRecord is the single persisted piece of state: the rates snapshot
// from the last successful remote fetch plus the daily quota bookkeeping.
// It is overwritten whole on every successful fetch, never merged.
type CacheRecord struct {
	// LastUpdated is the UTC timestamp of the most recent successful
	// remote fetch, RFC3339. Empty if no fetch ever succeeded.
	LastUpdated string `json:"last_updated,omitempty"`
	// Day is the local calendar date (YYYY-MM-DD) FetchCount accounts for.
	Day string `json:"day"`
	// FetchCount is the number of successful remote fetches consumed on Day.
	FetchCount int `json:"fetch_count"`
	// Rates maps currency code to a stringified decimal rate per 1 USD.
	// Strings keep full precision across the JSON round trip.
	Rates map[string]string `json:"rates"`
}
