package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultDisplayDecimals is how many fractional digits an amount keeps when
// no limit is configured.
const DefaultDisplayDecimals = 6

// FormatAmount renders the magnitude of d with at most maxDecimals fractional
// digits and no trailing zeros. maxDecimals <= 0 means DefaultDisplayDecimals.
// Non-zero values too small to show become "<0.000001" style strings.
func FormatAmount(d decimal.Decimal, maxDecimals int32) string {
	if maxDecimals <= 0 {
		maxDecimals = DefaultDisplayDecimals
	}
	abs := d.Abs()
	if abs.IsZero() {
		return "0"
	}
	smallest := decimal.New(1, -maxDecimals)
	if abs.LessThan(smallest) {
		return "<" + smallest.StringFixed(maxDecimals)
	}
	return abs.RoundDown(maxDecimals).String()
}

// FormatSignedAmount prefixes FormatAmount with "+ " or "- ".
func FormatSignedAmount(d decimal.Decimal, isNegative bool, maxDecimals int32) string {
	sign := "+ "
	if isNegative {
		sign = "- "
	}
	return sign + FormatAmount(d, maxDecimals)
}

// FormatFiatUSD renders a USD value with two fractional digits, e.g. "-$12.34".
func FormatFiatUSD(d decimal.Decimal) string {
	var b strings.Builder
	if d.IsNegative() {
		b.WriteString("-")
	}
	abs := d.Abs()
	cent := decimal.New(1, -2)
	if !abs.IsZero() && abs.LessThan(cent) {
		b.WriteString("<$0.01")
		return b.String()
	}
	b.WriteString("$")
	b.WriteString(abs.StringFixed(2))
	return b.String()
}
