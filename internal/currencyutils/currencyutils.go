// Package currencyutils provides the amount parsing, formatting and
// percentage helpers shared by the insight rules and the voice executor.
package currencyutils

import (
	"regexp"
	"strings"

	"fjacquet/finsight/internal/apperror"

	"github.com/shopspring/decimal"
)

var (
	hundred       = decimal.NewFromInt(100)
	currencyNoise = regexp.MustCompile(`(?i)[€$£¥\s]|CHF|USD|EUR|GBP|dollars?`)
)

// ParseAmount parses a spoken or typed amount such as "25", "$12.50",
// "1'234.56" or "1.234,56". Empty input is zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(StandardizeAmount(amountStr))
	if err != nil {
		return decimal.Zero, &apperror.ParseError{Component: "currencyutils", Field: "amount", Value: amountStr, Err: err}
	}
	return amount, nil
}

// StandardizeAmount strips currency markers and thousand separators so that
// the result can be parsed by decimal.NewFromString.
func StandardizeAmount(amountStr string) string {
	amountStr = currencyNoise.ReplaceAllString(amountStr, "")
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	switch {
	case strings.Contains(amountStr, ",") && strings.Contains(amountStr, "."):
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case strings.Count(amountStr, ",") == 1:
		parts := strings.Split(amountStr, ",")
		if len(parts[1]) <= 2 {
			amountStr = parts[0] + "." + parts[1]
		} else {
			amountStr = parts[0] + parts[1]
		}
	case strings.Contains(amountStr, ","):
		amountStr = strings.ReplaceAll(amountStr, ",", "")
	}
	return amountStr
}

// FormatAmount renders amount with two decimals after the currency symbol,
// e.g. "$1234.50". The symbol is used verbatim.
func FormatAmount(amount decimal.Decimal, symbol string) string {
	return symbol + amount.StringFixed(2)
}

// Percent returns part/whole*100. The boolean is false when whole is not
// positive.
func Percent(part, whole decimal.Decimal) (decimal.Decimal, bool) {
	if !whole.IsPositive() {
		return decimal.Zero, false
	}
	return part.Div(whole).Mul(hundred), true
}
