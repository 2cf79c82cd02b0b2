package invoice

import "github.com/shopspring/decimal"

// Currency identifies how a monetary amount is displayed.
type Currency string

// Supported currencies.
const (
	CurrencyUSD    Currency = "USD"
	CurrencyRupees Currency = "Rupees"
)

// FormatPrice renders an amount with its currency for display. Whole
// amounts render without decimal places; fractional amounts render with
// exactly two. An unrecognized currency falls back to the bare number.
func FormatPrice(amount decimal.Decimal, currency Currency) string {
	var s string
	if amount.IsInteger() {
		s = amount.Truncate(0).String()
	} else {
		s = amount.StringFixed(2)
	}

	switch currency {
	case CurrencyUSD:
		return s + " USD"
	case CurrencyRupees:
		return "Rs. " + s
	}
	return s
}
