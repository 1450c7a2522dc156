package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts are fixed-point decimals with two fractional digits. Arithmetic and
// comparison go through shopspring/decimal, never float64.

// ValidateAmount rejects non-positive amounts and amounts with more than two
// decimal places.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if amount.Exponent() < -2 {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateCurrency enforces a three-letter alphabetic code.
func ValidateCurrency(code string) error {
	if len(code) != 3 {
		return ErrInvalidCurrency
	}
	for _, r := range code {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return ErrInvalidCurrency
		}
	}
	return nil
}

// SameCurrency compares currency codes case-insensitively.
func SameCurrency(a, b string) bool {
	return strings.EqualFold(a, b)
}
