package domain

import (
	"errors"
	"strings"
)

var ErrUnknownCurrency = errors.New("unknown currency code")

// Currency is a supported currency code.
type Currency string

const (
	CurrencyUSD  Currency = "USD"
	CurrencyEUR  Currency = "EUR"
	CurrencyAUD  Currency = "AUD"
	CurrencyCAD  Currency = "CAD"
	CurrencyARS  Currency = "ARS"
	CurrencyPLN  Currency = "PLN"
	CurrencyBTC  Currency = "BTC"
	CurrencyETH  Currency = "ETH"
	CurrencyDOGE Currency = "DOGE"
	CurrencyUSDT Currency = "USDT"
)

// currencyExponents maps each supported currency to its minor-unit exponent.
// Amounts are stored as int64 minor units, so USD 10.50 is 1050 and
// BTC 0.00000001 is 1.
var currencyExponents = map[Currency]int32{
	CurrencyUSD:  2,
	CurrencyEUR:  2,
	CurrencyAUD:  2,
	CurrencyCAD:  2,
	CurrencyARS:  2,
	CurrencyPLN:  2,
	CurrencyBTC:  8,
	CurrencyETH:  8,
	CurrencyDOGE: 8,
	CurrencyUSDT: 6,
}

// currencyOrder keeps listings deterministic.
var currencyOrder = []Currency{
	CurrencyUSD, CurrencyEUR, CurrencyAUD, CurrencyCAD, CurrencyARS,
	CurrencyPLN, CurrencyBTC, CurrencyETH, CurrencyDOGE, CurrencyUSDT,
}

// IsValid checks if the currency is supported.
func (c Currency) IsValid() bool {
	_, ok := currencyExponents[c]
	return ok
}

// Exponent returns the number of minor-unit decimal places for the currency.
func (c Currency) Exponent() int32 {
	return currencyExponents[c]
}

// String returns the currency code.
func (c Currency) String() string {
	return string(c)
}

// ParseCurrency normalizes and validates a currency code.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !c.IsValid() {
		return "", ErrUnknownCurrency
	}
	return c, nil
}

// Currencies returns all supported currencies in listing order.
func Currencies() []Currency {
	out := make([]Currency, len(currencyOrder))
	copy(out, currencyOrder)
	return out
}
