package aggregate

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencySymbols covers the currencies tenants actually use. Unknown
// codes fall back to the literal code as a prefix, which keeps formatting
// deterministic across environments instead of depending on host locale
// data.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"JPY": "¥",
	"CNY": "¥",
	"AUD": "A$",
	"CAD": "C$",
	"KES": "KSh ",
	"NGN": "₦",
}

// Symbol returns the display prefix for a currency code.
func Symbol(currency string) string {
	if currency == "" {
		return "$"
	}
	if symbol, ok := currencySymbols[strings.ToUpper(currency)]; ok {
		return symbol
	}
	return strings.ToUpper(currency) + " "
}

// FormatAmount renders a money value as symbol-prefixed fixed 2-decimal
// text, e.g. "$500.00".
func FormatAmount(currency string, v decimal.Decimal) string {
	return Symbol(currency) + v.StringFixed(2)
}

// FormatAmountFloat is FormatAmount for raw float cell values. Values that
// fail numeric coercion upstream arrive as 0, so the output is always a
// renderable money string.
func FormatAmountFloat(currency string, v float64) string {
	return FormatAmount(currency, decimal.NewFromFloat(v))
}
