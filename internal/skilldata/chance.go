package skilldata

import (
	"math"
	"strconv"
	"strings"
)

// chanceDigits is the number of decimal places of a displayed percentage.
const chanceDigits = 4

// maxChanceDigits bounds the fallback precision; the smallest subnormal
// float64 needs fewer than 330 decimals.
const maxChanceDigits = 330

// FormatChance renders a 0..1 chance as a percentage: "50%", "0.0123%".
// The value is rounded to four decimal places; a positive chance that would
// round to zero is shown with four significant digits instead.
func FormatChance(chance float64) string {
	pct := chance * 100
	if !(pct > 0) {
		return "0%"
	}

	v := roundTo(pct, chanceDigits)
	if v != 0 {
		return strconv.FormatFloat(v, 'f', -1, 64) + "%"
	}

	digits := min(chanceDigits-1-int(math.Floor(math.Log10(pct))), maxChanceDigits)
	return trimZeros(strconv.FormatFloat(pct, 'f', digits, 64)) + "%"
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	return strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
}

func roundTo(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
