package domain

import "github.com/shopspring/decimal"

// Supported is the fixed set of currency codes the converter knows about.
// USD is the reference unit: every rate means "units of the currency per 1 USD".
var Supported = map[string]struct{}{
	"USD": {}, "EUR": {}, "MXN": {}, "ARS": {}, "COP": {}, "CLP": {},
	"PEN": {}, "GBP": {}, "JPY": {}, "BRL": {}, "CAD": {},
}

// DefaultRates returns the compiled-in rates used before any cached or
// remote values are applied. A fresh map is returned on every call so
// callers can mutate their copy freely.
func DefaultRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"USD": decimal.RequireFromString("1"),
		"EUR": decimal.RequireFromString("0.92"),
		"MXN": decimal.RequireFromString("19.8"),
		"ARS": decimal.RequireFromString("980"),
		"COP": decimal.RequireFromString("3940"),
		"CLP": decimal.RequireFromString("910"),
		"PEN": decimal.RequireFromString("3.75"),
		"GBP": decimal.RequireFromString("0.78"),
		"JPY": decimal.RequireFromString("146.5"),
		"BRL": decimal.RequireFromString("5.1"),
		"CAD": decimal.RequireFromString("1.36"),
	}
}

// ReferenceCode is the base currency all rates are expressed against.
const ReferenceCode = "USD"

func IsSupported(code string) bool {
	_, ok := Supported[code]
	return ok
}
