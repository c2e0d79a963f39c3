package domain

import "time"

// TransactionType classifies how a transaction moves money relative to
// the user account.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeRollback   TransactionType = "rollback"
)

// IsValid checks if the type is a known transaction type.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeRollback:
		return true
	}
	return false
}

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusApplied    TransactionStatus = "applied"
	TransactionStatusRolledBack TransactionStatus = "rolled_back"
	TransactionStatusFailed     TransactionStatus = "failed"
)

// validStatusTransitions encodes the lifecycle: pending transactions
// either apply or fail, applied ones may be rolled back, and
// rolled_back/failed are terminal.
var validStatusTransitions = map[TransactionStatus][]TransactionStatus{
	TransactionStatusPending: {TransactionStatusApplied, TransactionStatusFailed},
	TransactionStatusApplied: {TransactionStatusRolledBack},
}

// CanTransitionTo checks if the status may move to next.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range validStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transaction records one deposit, withdrawal or rollback against a user
// account. Amount is in minor units of Currency and always positive; the
// direction of the movement comes from Type. Balance effects live in the
// transaction's entries, never here.
type Transaction struct {
	ID                    string
	UserID                string
	AccountID             string
	Type                  TransactionType
	Status                TransactionStatus
	Currency              Currency
	Amount                int64
	ReversesTransactionID *string
	FailureReason         string
	Metadata              map[string]any
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Money returns the transaction amount as a Money value.
func (t *Transaction) Money() Money {
	return Money{Currency: t.Currency, Amount: t.Amount}
}

// Validate validates a transaction request before it is persisted.
func (t *Transaction) Validate() error {
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !t.Currency.IsValid() {
		return ErrUnknownCurrency
	}
	if !t.Type.IsValid() {
		return ErrInvalidTransition
	}
	if t.Type == TransactionTypeRollback && t.ReversesTransactionID == nil {
		return ErrTransactionNotFound
	}
	return ValidateMetadata(t.Metadata)
}

// TransitionTo moves the transaction to the next status, enforcing the
// lifecycle rules.
func (t *Transaction) TransitionTo(next TransactionStatus) error {
	if !t.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	t.Status = next
	return nil
}

// ValidateRollbackable checks if this transaction can be rolled back.
func (t *Transaction) ValidateRollbackable() error {
	if t.Type == TransactionTypeRollback {
		return ErrRollbackNotReversible
	}
	switch t.Status {
	case TransactionStatusRolledBack:
		return ErrAlreadyRolledBack
	case TransactionStatusApplied:
		return nil
	default:
		return ErrTransactionNotApplied
	}
}

// UserDirection returns the entry direction on the user account side of
// a deposit or withdrawal. A rollback's direction is the opposite of the
// reversed transaction's, so callers resolve it from the original.
func (t *Transaction) UserDirection() EntryDirection {
	if t.Type == TransactionTypeWithdrawal {
		return EntryDirectionDebit
	}
	return EntryDirectionCredit
}

// NewRollback builds the compensating transaction for an applied
// original. The rollback keeps the original's account, currency and
// amount but flips the money flow; Metadata records the link for
// consumers that only see event payloads.
func NewRollback(original *Transaction, requestedBy string, metadata map[string]any) (*Transaction, error) {
	if err := original.ValidateRollbackable(); err != nil {
		return nil, err
	}
	if original.UserID != requestedBy {
		return nil, ErrNotTransactionOwner
	}

	if metadata == nil {
		metadata = make(map[string]any, 1)
	}
	metadata["rollback_of"] = original.ID

	id := original.ID
	return &Transaction{
		UserID:                original.UserID,
		AccountID:             original.AccountID,
		Type:                  TransactionTypeRollback,
		Status:                TransactionStatusPending,
		Currency:              original.Currency,
		Amount:                original.Amount,
		ReversesTransactionID: &id,
		Metadata:              metadata,
	}, nil
}
