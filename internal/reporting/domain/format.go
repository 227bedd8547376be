package reporting

import (
	"fmt"
	"strings"
)

// FormatHours renders hours with one fixed fraction digit and the "h"
// suffix used throughout the product.
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.1fh", hours)
}

// FormatCurrency renders a cost with the currency symbol, thousands
// grouping and two fixed fraction digits.
func FormatCurrency(symbol string, amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	text := fmt.Sprintf("%.2f", amount)
	whole, fraction, _ := strings.Cut(text, ".")

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return sign + symbol + grouped.String() + "." + fraction
}
