package payroll

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts free-text input into a number. Thousands separators are
// dropped; anything that does not parse yields 0.
func ParseAmount(raw string) float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		return 0
	}
	// ParseFloat accepts digit separators ("1_000"); amounts never use them.
	if strings.Contains(cleaned, "_") {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	if isHexLiteral(cleaned) {
		return 0
	}
	return value
}

// ParseFloat accepts hex floats ("0x1p4"); amounts never are.
func isHexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// RoundDays rounds half toward positive infinity.
func RoundDays(v float64) float64 {
	return math.Floor(v + 0.5)
}
