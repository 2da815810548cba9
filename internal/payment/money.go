package payment

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MajorUnits converts an amount in minor units (cents) to a decimal in the
// currency's major unit.
func MajorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Shift(-2)
}

// WholeUnits rounds minor up to a whole major unit, as required by
// providers that reject fractional amounts.
func WholeUnits(minor int64) int64 {
	return MajorUnits(minor).Ceil().IntPart()
}

// ISOCurrency maps the display currency of a tenant to its ISO 4217 code.
func ISOCurrency(display string) string {
	switch strings.ToUpper(strings.TrimSpace(display)) {
	case "KSH", "KES", "":
		return "KES"
	case "R$", "BRL":
		return "BRL"
	case "$", "USD":
		return "USD"
	default:
		return strings.ToUpper(display)
	}
}
