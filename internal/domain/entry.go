package domain

import "time"

// EntryDirection marks which side of a transaction an entry records.
type EntryDirection string

const (
	EntryDirectionDebit  EntryDirection = "debit"
	EntryDirectionCredit EntryDirection = "credit"
)

// IsValid checks if the direction is a known entry direction.
func (d EntryDirection) IsValid() bool {
	return d == EntryDirectionDebit || d == EntryDirectionCredit
}

// Opposite returns the other direction.
func (d EntryDirection) Opposite() EntryDirection {
	if d == EntryDirectionDebit {
		return EntryDirectionCredit
	}
	return EntryDirectionDebit
}

// Entry is one immutable side of a transaction's double-entry pair.
// Amount is always positive; the signed balance effect comes from
// Direction. PreviousBalance/CurrentBalance snapshot the account around
// the write and AccountVersion the version the write produced, so the
// entry stream replays to the live balance.
type Entry struct {
	ID              string
	TransactionID   string
	AccountID       string
	Currency        Currency
	Direction       EntryDirection
	Amount          int64
	PreviousBalance int64
	CurrentBalance  int64
	AccountVersion  int64
	Seq             int32
	CreatedAt       time.Time
}

// SignedAmount returns the balance delta: positive for credits,
// negative for debits, uniformly for every account kind.
func (e *Entry) SignedAmount() int64 {
	if e.Direction == EntryDirectionDebit {
		return -e.Amount
	}
	return e.Amount
}

// ValidateEntryPair checks that two entries form a balanced double-entry
// pair: same transaction and currency, one debit and one credit, equal
// positive amounts, different accounts.
func ValidateEntryPair(a, b *Entry) error {
	if a.TransactionID != b.TransactionID {
		return ErrUnbalancedEntries
	}
	if a.Currency != b.Currency {
		return ErrCurrencyMismatch
	}
	if a.AccountID == b.AccountID {
		return ErrUnbalancedEntries
	}
	if a.Amount <= 0 || a.Amount != b.Amount {
		return ErrUnbalancedEntries
	}
	if a.Direction == b.Direction || a.SignedAmount()+b.SignedAmount() != 0 {
		return ErrUnbalancedEntries
	}
	return nil
}
