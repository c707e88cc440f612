package invoice

import "strings"

// CurrencySymbol maps a currency to its display symbol. Unknown and unset
// currencies fall back to "$", so a company that never configured a currency
// renders as USD.
func CurrencySymbol(c Currency) string {
	switch strings.ToUpper(string(c)) {
	case "USD":
		return "$"
	case "EURO":
		return "€"
	default:
		return "$"
	}
}
