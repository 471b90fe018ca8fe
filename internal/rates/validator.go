package rates

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"fxconvert/internal/domain"
)

// Input normalization and validation shared by the CLI and HTTP
// surfaces. All failures are validation errors: the single operation is
// rejected and the caller decides whether to re-prompt.

// NormalizeCode uppercases and trims a user-entered currency code.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidateCode checks that a normalized code belongs to the supported set.
func ValidateCode(code string) error {
	if code == "" {
		return fmt.Errorf("%w: empty code", domain.ErrUnsupportedCurrency)
	}
	if !domain.IsSupported(code) {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedCurrency, code)
	}
	return nil
}

// ParseAmount parses a monetary amount, accepting either "." or "," as
// the fraction separator. Negative amounts are rejected.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, raw)
	}
	if v.Sign() < 0 {
		return decimal.Decimal{}, domain.ErrNegativeAmount
	}
	return v, nil
}

// ParseRate parses a manual rate override, which must be strictly
// positive.
func ParseRate(raw string) (decimal.Decimal, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, raw)
	}
	if v.Sign() <= 0 {
		return decimal.Decimal{}, domain.ErrNonPositiveRate
	}
	return v, nil
}

// SupportedCodes returns the supported currency codes sorted.
func SupportedCodes() []string {
	codes := slices.Collect(maps.Keys(domain.Supported))
	slices.Sort(codes)
	return codes
}
