package utils

import (
	"math"
	"strconv"
	"strings"
)

// RoundFloat rounds value to the given number of decimal places.
func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// FormatThousands renders an integer amount with comma thousands separators,
// e.g. 1234567 -> "1,234,567". Used for human-readable report highlights.
func FormatThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}
