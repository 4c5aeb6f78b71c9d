package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRand renders an amount as South African Rand for report output.
// Example: 1234.5 returns "R1,234.50".
func FormatRand(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	parts := strings.SplitN(fixed, ".", 2)
	intPart := parts[0]

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('R')
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(parts[1])
	return b.String()
}
