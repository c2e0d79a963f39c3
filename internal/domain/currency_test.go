package domain

import (
	"errors"
	"testing"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Currency
		wantErr bool
	}{
		{name: "uppercase", input: "USD", want: CurrencyUSD},
		{name: "lowercase", input: "btc", want: CurrencyBTC},
		{name: "whitespace", input: " eth ", want: CurrencyETH},
		{name: "stablecoin", input: "usdt", want: CurrencyUSDT},
		{name: "unsupported", input: "GBP", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCurrency(tt.input)

			if tt.wantErr {
				if !errors.Is(err, ErrUnknownCurrency) {
					t.Errorf("expected ErrUnknownCurrency, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCurrency_Exponent(t *testing.T) {
	tests := []struct {
		currency Currency
		want     int32
	}{
		{CurrencyUSD, 2},
		{CurrencyPLN, 2},
		{CurrencyUSDT, 6},
		{CurrencyBTC, 8},
		{CurrencyDOGE, 8},
	}

	for _, tt := range tests {
		if got := tt.currency.Exponent(); got != tt.want {
			t.Errorf("%s: expected exponent %d, got %d", tt.currency, tt.want, got)
		}
	}
}

func TestCurrencies(t *testing.T) {
	all := Currencies()
	if len(all) != 10 {
		t.Fatalf("expected 10 supported currencies, got %d", len(all))
	}

	for _, c := range all {
		if !c.IsValid() {
			t.Errorf("listed currency %s is not valid", c)
		}
	}

	// Mutating the returned slice must not affect the registry.
	all[0] = Currency("XXX")
	if Currencies()[0] != CurrencyUSD {
		t.Error("Currencies returned a shared slice")
	}
}
