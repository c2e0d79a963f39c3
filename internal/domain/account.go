package domain

import "time"

// AccountKind distinguishes user wallets from the per-currency clearing
// accounts that absorb the counterpart side of every transaction.
type AccountKind string

const (
	AccountKindUser     AccountKind = "user"
	AccountKindClearing AccountKind = "clearing"
)

// IsValid checks if the kind is a known account kind.
func (k AccountKind) IsValid() bool {
	return k == AccountKindUser || k == AccountKindClearing
}

// AccountStatus controls whether an account accepts balance changes.
type AccountStatus string

const (
	AccountStatusActive AccountStatus = "active"
	AccountStatusLocked AccountStatus = "locked"
)

// IsValid checks if the status is a known account status.
func (s AccountStatus) IsValid() bool {
	return s == AccountStatusActive || s == AccountStatusLocked
}

// Account holds one user's balance in one currency. Balance is in minor
// units of Currency; Version increments on every balance write and is
// snapshotted into each entry the account participates in.
type Account struct {
	ID        string
	UserID    string
	Currency  Currency
	Kind      AccountKind
	Status    AccountStatus
	Balance   int64
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Money returns the balance as a Money value.
func (a *Account) Money() Money {
	return Money{Currency: a.Currency, Amount: a.Balance}
}

// allowsNegative reports whether the balance may drop below zero.
// Only clearing accounts may: they mirror money entering and leaving
// the system, so a net-positive user side leaves them negative.
func (a *Account) allowsNegative() bool {
	return a.Kind == AccountKindClearing
}

// ValidateMutable checks if the account accepts balance changes at all.
func (a *Account) ValidateMutable() error {
	if a.Status == AccountStatusLocked {
		return ErrAccountLocked
	}
	return nil
}

// ValidateDebit checks if the account can be debited by amount minor units.
func (a *Account) ValidateDebit(amount int64) error {
	if err := a.ValidateMutable(); err != nil {
		return err
	}
	newBalance, err := addInt64(a.Balance, -amount)
	if err != nil {
		return err
	}
	if newBalance < 0 && !a.allowsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// ValidateCredit checks if the account can be credited by amount minor units.
func (a *Account) ValidateCredit(amount int64) error {
	if err := a.ValidateMutable(); err != nil {
		return err
	}
	_, err := addInt64(a.Balance, amount)
	return err
}

// ApplyDebit returns the new balance after a debit.
func (a *Account) ApplyDebit(amount int64) int64 {
	return a.Balance - amount
}

// ApplyCredit returns the new balance after a credit.
func (a *Account) ApplyCredit(amount int64) int64 {
	return a.Balance + amount
}
