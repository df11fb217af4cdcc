package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatValue renders a float for report display: "NaN" when the value is
// not a number, one decimal for large magnitudes, nd decimals otherwise.
func FormatValue(v float64, nd int) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.Abs(v) >= 1000 {
		return fmt.Sprintf("%.1f", v)
	}
	return fmt.Sprintf("%.*f", nd, v)
}

// ParseNumber parses the comma-grouped numeric strings the KRX and
// Naver endpoints emit. Blank and dash placeholders read as zero.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "-" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
