package money

import (
	"math"
	"strconv"
	"strings"
)

// Round2 applies round(amount*100)/100.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Format renders amount rounded to two decimals without any currency symbol.
func Format(amount float64) string {
	return strconv.FormatFloat(Round2(amount), 'f', 2, 64)
}

// Parse reads a store or provider amount. Currency prefixes, thousands separators and
// surrounding whitespace are tolerated; anything unparseable is reported as !ok.
func Parse(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "AED"), "$")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseOrZero is Parse with a zero default.
func ParseOrZero(raw string) float64 {
	v, _ := Parse(raw)
	return v
}

// NonNegative clamps negative amounts to zero.
func NonNegative(amount float64) float64 {
	if amount < 0 {
		return 0
	}
	return amount
}
