// Package rates provides the static exchange rate table used by report
// aggregation. The ledger itself never converts currencies; conversion
// exists only to express weekly totals in USD.
package rates

import (
	"github.com/shopspring/decimal"

	"github.com/AlHudnitskii/walletledger/internal/domain"
)

// StaticProvider implements usecase.RateProvider from a fixed table.
type StaticProvider struct {
	toUSD map[domain.Currency]decimal.Decimal
}

// NewStaticProvider creates a provider with the built-in rate table.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		toUSD: map[domain.Currency]decimal.Decimal{
			domain.CurrencyUSD:  decimal.RequireFromString("1.0"),
			domain.CurrencyEUR:  decimal.RequireFromString("0.9342"),
			domain.CurrencyAUD:  decimal.RequireFromString("0.5447"),
			domain.CurrencyCAD:  decimal.RequireFromString("0.6162"),
			domain.CurrencyARS:  decimal.RequireFromString("0.0009"),
			domain.CurrencyPLN:  decimal.RequireFromString("0.2343"),
			domain.CurrencyBTC:  decimal.RequireFromString("100000.0"),
			domain.CurrencyETH:  decimal.RequireFromString("3557.3476"),
			domain.CurrencyDOGE: decimal.RequireFromString("0.3627"),
			domain.CurrencyUSDT: decimal.RequireFromString("0.9709"),
		},
	}
}

// RateToUSD returns how many USD one unit of the currency is worth.
func (p *StaticProvider) RateToUSD(currency domain.Currency) (decimal.Decimal, error) {
	rate, ok := p.toUSD[currency]
	if !ok {
		return decimal.Zero, domain.ErrUnknownCurrency
	}

	return rate, nil
}
