package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AlHudnitskii/walletledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByUserAndCurrency(ctx context.Context, userID string, currency domain.Currency) (*domain.Account, error)
	// GetForUpdate locks the (user, currency) account row until the
	// surrounding transaction ends. This is the serialization point for
	// every balance change.
	GetForUpdate(ctx context.Context, tx Transaction, userID string, currency domain.Currency) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance, version int64, updatedAt time.Time) error
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// TransactionRepository defines data access for ledger transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	// CreateStandalone writes outside any caller transaction. Used to
	// record failed attempts after the main transaction rolled back.
	CreateStandalone(ctx context.Context, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error)
}

// EntryRepository defines data access for entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	GetByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error)
	GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error)
	// SumByAccount projects the balance purely from the entry stream.
	SumByAccount(ctx context.Context, accountID string) (int64, error)
	BalanceAtTime(ctx context.Context, accountID string, at time.Time) (int64, error)
}

// LedgerRepository defines data access for ledger-wide checks.
type LedgerRepository interface {
	// SumEntriesByCurrency returns the signed entry total per currency.
	// In a closed double-entry ledger every total is zero.
	SumEntriesByCurrency(ctx context.Context) (map[domain.Currency]int64, error)
	// ListUnbalancedTransactions returns IDs of transactions whose
	// entries do not form a balanced pair.
	ListUnbalancedTransactions(ctx context.Context, limit int) ([]string, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, tx Transaction, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateStatus(ctx context.Context, id string, status domain.UserStatus, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// ReportRepository defines the read-only aggregations behind activity reports.
type ReportRepository interface {
	CountUsersRegisteredBefore(ctx context.Context, before time.Time) (int64, error)
	CountUsersWithDeposits(ctx context.Context, from, to time.Time) (int64, error)
	CountUsersWithoutTransactions(ctx context.Context, from, to time.Time) (int64, error)
	CountTransactions(ctx context.Context, txType domain.TransactionType, from, to time.Time) (int64, error)
	SumAmountsByCurrency(ctx context.Context, txType domain.TransactionType, from, to time.Time) (map[domain.Currency]int64, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetPending(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	// MarkFailed bumps the retry counter and parks the event as failed
	// once the counter reaches maxRetries.
	MarkFailed(ctx context.Context, id string, maxRetries int32) error
	GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error)
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries operations that failed with transient errors.
type Retrier interface {
	Do(ctx context.Context, operation string, fn func() error) error
}

// RateProvider converts currency amounts for reporting. The ledger
// itself never converts; only report aggregation does.
type RateProvider interface {
	RateToUSD(currency domain.Currency) (decimal.Decimal, error)
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release frees a claimed key whose request did not produce a
	// response worth replaying.
	Release(ctx context.Context, key string) error
}
