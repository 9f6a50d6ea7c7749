package view

import "fmt"

// Currency is a display currency with a fixed conversion rate from the
// catalog's base currency (EUR). Conversion is presentation only: stored
// prices and checkout amounts always stay in the base currency.
type Currency struct {
	Code   string
	Label  string
	Symbol string
	Rate   float64
}

// BaseCurrency is the currency catalog prices are denominated in.
const BaseCurrency = "EUR"

var currencies = []Currency{
	{Code: "EUR", Label: "EUR €", Symbol: "€", Rate: 1},
	{Code: "USD", Label: "USD $", Symbol: "$", Rate: 1.08},
	{Code: "GBP", Label: "GBP £", Symbol: "£", Rate: 0.85},
}

// Currencies lists the supported display currencies.
func Currencies() []Currency {
	out := make([]Currency, len(currencies))
	copy(out, currencies)
	return out
}

func currencyFor(code string) Currency {
	for _, c := range currencies {
		if c.Code == code {
			return c
		}
	}
	return currencies[0]
}

// Convert applies the display rate to a base-currency amount. Unknown
// codes fall back to the base currency.
func Convert(base float64, code string) float64 {
	return base * currencyFor(code).Rate
}

// FormatPrice renders a base-currency amount in the selected display
// currency.
func FormatPrice(base float64, code string) string {
	c := currencyFor(code)
	return fmt.Sprintf("%s%.2f", c.Symbol, base*c.Rate)
}
