package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlHudnitskii/walletledger/internal/domain"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/postgres/generated"
	"github.com/AlHudnitskii/walletledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create persists a transaction within the caller's database transaction.
// A second live rollback of the same original violates the reversal
// uniqueness constraint and comes back as domain.ErrAlreadyRolledBack.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()
	return r.create(ctx, generated.New(pgxTx), txn)
}

// CreateStandalone persists a transaction outside any caller transaction.
// Used to record failed attempts after the main transaction rolled back.
func (r *TransactionRepository) CreateStandalone(ctx context.Context, txn *domain.Transaction) error {
	return r.create(ctx, r.queries, txn)
}

func (r *TransactionRepository) create(ctx context.Context, queries *generated.Queries, txn *domain.Transaction) error {
	metadata, err := metadataToJSON(txn.Metadata)
	if err != nil {
		return err
	}

	_, err = queries.CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:                    txn.ID,
		UserID:                txn.UserID,
		AccountID:             pgTextFromString(txn.AccountID),
		Type:                  string(txn.Type),
		Status:                string(txn.Status),
		Currency:              string(txn.Currency),
		Amount:                txn.Amount,
		ReversesTransactionID: pgTextFromPtr(txn.ReversesTransactionID),
		FailureReason:         txn.FailureReason,
		Metadata:              metadata,
		CreatedAt:             timeToPgTimestamptz(txn.CreatedAt),
		UpdatedAt:             timeToPgTimestamptz(txn.UpdatedAt),
	})
	if err != nil {
		return translateConstraintError(err)
	}

	return nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToTransaction(row)
}

// GetByIDForUpdate retrieves a transaction by ID with a FOR UPDATE lock.
// Rollbacks lock the original row so its status cannot change underneath
// the compensation.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetTransactionByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		if isLockTimeout(err) {
			return nil, domain.ErrLockTimeout
		}

		return nil, err
	}

	return rowToTransaction(row)
}

// UpdateStatus moves a transaction to a new lifecycle status.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TransactionStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateTransactionStatus(ctx, generated.UpdateTransactionStatusParams{
		ID:        id,
		Status:    string(status),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// ListByUser lists a user's transactions, newest first.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactionsByUser(ctx, generated.ListTransactionsByUserParams{
		UserID: userID,
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	transactions := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		txn, err := rowToTransaction(row)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}

	return transactions, nil
}

func rowToTransaction(row generated.Transaction) (*domain.Transaction, error) {
	metadata, err := metadataFromJSON(row.Metadata)
	if err != nil {
		return nil, err
	}

	return &domain.Transaction{
		ID:                    row.ID,
		UserID:                row.UserID,
		AccountID:             stringFromPgText(row.AccountID),
		Type:                  domain.TransactionType(row.Type),
		Status:                domain.TransactionStatus(row.Status),
		Currency:              domain.Currency(row.Currency),
		Amount:                row.Amount,
		ReversesTransactionID: ptrFromPgText(row.ReversesTransactionID),
		FailureReason:         row.FailureReason,
		Metadata:              metadata,
		CreatedAt:             row.CreatedAt.Time,
		UpdatedAt:             row.UpdatedAt.Time,
	}, nil
}

// pgTextFromString maps the empty string to NULL. A failed transaction
// recorded before any account was resolved carries no account ID.
func pgTextFromString(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}

	return pgtype.Text{String: s, Valid: true}
}

func stringFromPgText(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}

	return t.String
}

func metadataToJSON(metadata map[string]any) ([]byte, error) {
	if metadata == nil {
		return []byte("{}"), nil
	}

	return json.Marshal(metadata)
}

func metadataFromJSON(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var metadata map[string]any
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return nil, err
	}

	return metadata, nil
}
