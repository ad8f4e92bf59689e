// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// currencySymbols maps ISO currency codes to their display symbol. Unknown
// codes fall back to the code itself with a trailing space.
var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"JPY": "¥",
	"CHF": "CHF ",
}

// CurrencySymbol returns the display symbol for an ISO currency code.
func CurrencySymbol(code string) string {
	if sym, ok := currencySymbols[strings.ToUpper(code)]; ok {
		return sym
	}
	return code + " "
}

// FormatMoney formats an amount in currency units.
// e.g., 1234.5 with "EUR" -> "€1,234.50", -42.0 -> "-€42.00"
func FormatMoney(amount float64, currency string) string {
	sym := CurrencySymbol(currency)
	if amount < 0 {
		return "-" + sym + formatGrouped(-amount)
	}
	return sym + formatGrouped(amount)
}

// FormatSignedMoney is FormatMoney with an explicit "+" on non-negative
// amounts, for balance deltas.
func FormatSignedMoney(amount float64, currency string) string {
	if amount >= 0 {
		return "+" + FormatMoney(amount, currency)
	}
	return FormatMoney(amount, currency)
}

func formatGrouped(amount float64) string {
	whole := int64(math.Floor(amount))
	cents := int64(math.Round((amount - float64(whole)) * 100))
	if cents >= 100 {
		whole++
		cents -= 100
	}
	return fmt.Sprintf("%s.%02d", FormatNumber(whole), cents)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDate renders an ISO day string as "Mon, 02 Jan 2006". Unparseable
// input passes through unchanged.
func FormatDate(isoDay string) string {
	t, err := time.Parse("2006-01-02", isoDay)
	if err != nil {
		return isoDay
	}
	return t.Format("Mon, 02 Jan 2006")
}

// FormatRelativeAge renders the age of a timestamp, e.g. "3h ago".
func FormatRelativeAge(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	age := time.Since(t)
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}
