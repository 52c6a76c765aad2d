package payroll

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR renders v with two decimals and en-IN digit grouping
// (1,23,45,678.90).
func FormatINR(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	fixed := decimal.NewFromFloat(v).StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	grouped := groupIndian(intPart)
	if negative && (strings.Trim(intPart, "0") != "" || strings.Trim(fracPart, "0") != "") {
		grouped = "-" + grouped
	}
	return grouped + "." + fracPart
}

func FormatMoney(symbol string, v float64) string {
	if symbol == "" {
		return FormatINR(v)
	}
	return symbol + " " + FormatINR(v)
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
