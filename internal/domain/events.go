package domain

import (
	"encoding/json"
	"time"
)

// Event types
const (
	EventTypeTransactionApplied    = "transaction.applied"
	EventTypeTransactionRolledBack = "transaction.rolled_back"
	EventTypeAccountCreated        = "account.created"
	EventTypeUserCreated           = "user.created"
)

// Aggregate types
const (
	AggregateTypeTransaction = "transaction"
	AggregateTypeAccount     = "account"
	AggregateTypeUser        = "user"
)

// Outbox event statuses
type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusPublished OutboxStatus = "published"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// OutboxEvent is written in the same database transaction as the change
// it describes and published asynchronously. Events that keep failing
// park as failed once RetryCount passes the publisher's limit.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	Status        OutboxStatus
	RetryCount    int32
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// TransactionAppliedEvent payload
type TransactionAppliedEvent struct {
	TransactionID string `json:"transaction_id"`
	UserID        string `json:"user_id"`
	AccountID     string `json:"account_id"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	EventAt       string `json:"event_at"`
}

// TransactionRolledBackEvent payload
type TransactionRolledBackEvent struct {
	RollbackTransactionID string `json:"rollback_transaction_id"`
	OriginalTransactionID string `json:"original_transaction_id"`
	Amount                string `json:"amount"`
	Currency              string `json:"currency"`
}

// AccountCreatedEvent payload
type AccountCreatedEvent struct {
	AccountID string `json:"account_id"`
	UserID    string `json:"user_id"`
	Currency  string `json:"currency"`
	Kind      string `json:"kind"`
}

// UserCreatedEvent payload
type UserCreatedEvent struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// EventPayload flattens a typed event payload into the map form the
// outbox stores.
func EventPayload(v any) map[string]any {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return map[string]any{"error": "failed to marshal payload"}
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return map[string]any{"error": "failed to unmarshal payload"}
	}

	return result
}
