package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Money is an amount of a single currency in integer minor units.
// All ledger arithmetic happens on int64; decimals only appear at the
// edges when parsing and formatting.
type Money struct {
	Currency Currency
	Amount   int64
}

// NewMoney builds a Money value, validating the currency.
func NewMoney(currency Currency, amount int64) (Money, error) {
	if !currency.IsValid() {
		return Money{}, ErrUnknownCurrency
	}
	return Money{Currency: currency, Amount: amount}, nil
}

// ZeroMoney returns the zero amount of a currency.
func ZeroMoney(currency Currency) Money {
	return Money{Currency: currency}
}

// MoneyFromDecimal converts a decimal amount to minor units. Excess
// precision for the currency and values outside the int64 range are
// rejected.
func MoneyFromDecimal(currency Currency, d decimal.Decimal) (Money, error) {
	if !currency.IsValid() {
		return Money{}, ErrUnknownCurrency
	}

	scaled := d.Shift(currency.Exponent())
	if !scaled.IsInteger() {
		return Money{}, fmt.Errorf("%w: more than %d decimal places for %s",
			ErrInvalidAmount, currency.Exponent(), currency)
	}

	if scaled.Cmp(decimal.NewFromInt(math.MaxInt64)) > 0 ||
		scaled.Cmp(decimal.NewFromInt(math.MinInt64)) < 0 {
		return Money{}, ErrAmountTooLarge
	}

	return Money{Currency: currency, Amount: scaled.IntPart()}, nil
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Amount, -m.Currency.Exponent())
}

// String formats the amount with the currency's minor-unit precision.
func (m Money) String() string {
	return m.Decimal().StringFixed(m.Currency.Exponent()) + " " + m.Currency.String()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool { return m.Amount > 0 }

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool { return m.Amount < 0 }

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.Amount == 0 }

// Neg returns the negated amount.
func (m Money) Neg() Money {
	return Money{Currency: m.Currency, Amount: -m.Amount}
}

// Add returns m+other, failing on currency mismatch or int64 overflow.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	sum, err := addInt64(m.Amount, other.Amount)
	if err != nil {
		return Money{}, err
	}
	return Money{Currency: m.Currency, Amount: sum}, nil
}

// Sub returns m-other, failing on currency mismatch or int64 overflow.
func (m Money) Sub(other Money) (Money, error) {
	return m.Add(other.Neg())
}

func addInt64(a, b int64) (int64, error) {
	if b > 0 && a > math.MaxInt64-b {
		return 0, ErrAmountTooLarge
	}
	if b < 0 && a < math.MinInt64-b {
		return 0, ErrAmountTooLarge
	}
	return a + b, nil
}
