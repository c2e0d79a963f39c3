package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountLocked     = errors.New("account is locked")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountExists     = errors.New("account already exists for user and currency")

	// Transaction errors
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrCurrencyMismatch      = errors.New("currency mismatch")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrAlreadyRolledBack     = errors.New("transaction already rolled back")
	ErrTransactionNotApplied = errors.New("transaction is not applied")
	ErrRollbackNotReversible = errors.New("rollback transaction cannot be rolled back")
	ErrNotTransactionOwner   = errors.New("transaction belongs to another user")
	ErrInvalidTransition     = errors.New("invalid transaction status transition")

	// Ledger integrity errors. Integrity violations are reported to the
	// caller, never repaired in place.
	ErrUnbalancedEntries = errors.New("entries do not form a balanced pair")

	// ErrLockTimeout is returned when an account lock cannot be acquired
	// within the configured wait. The operation was not applied and the
	// caller may retry it.
	ErrLockTimeout = errors.New("timed out waiting for account lock")
)
