package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlHudnitskii/walletledger/internal/domain"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/postgres/generated"
	"github.com/AlHudnitskii/walletledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository. Entries are
// append-only; there are no update or delete paths.
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create appends an entry within the caller's transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateEntry(ctx, generated.CreateEntryParams{
		ID:              entry.ID,
		TransactionID:   entry.TransactionID,
		AccountID:       entry.AccountID,
		Currency:        string(entry.Currency),
		Direction:       string(entry.Direction),
		Amount:          entry.Amount,
		PreviousBalance: entry.PreviousBalance,
		CurrentBalance:  entry.CurrentBalance,
		AccountVersion:  entry.AccountVersion,
		Seq:             entry.Seq,
		CreatedAt:       timeToPgTimestamptz(entry.CreatedAt),
	})

	return err
}

// GetByTransaction returns a transaction's entries ordered by seq, so
// the user side always precedes the clearing side.
func (r *EntryRepository) GetByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	rows, err := r.queries.GetEntriesByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

// GetByAccount lists an account's entries, newest first.
func (r *EntryRepository) GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.queries.GetEntriesByAccount(ctx, generated.GetEntriesByAccountParams{
		AccountID: accountID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

// SumByAccount projects the balance purely from the entry stream.
func (r *EntryRepository) SumByAccount(ctx context.Context, accountID string) (int64, error) {
	return r.queries.SumEntriesByAccount(ctx, accountID)
}

// BalanceAtTime projects the balance from entries created up to and
// including the given instant.
func (r *EntryRepository) BalanceAtTime(ctx context.Context, accountID string, at time.Time) (int64, error) {
	return r.queries.SumEntriesByAccountBefore(ctx, generated.SumEntriesByAccountBeforeParams{
		AccountID: accountID,
		CreatedAt: timeToPgTimestamptz(at),
	})
}

func rowsToEntries(rows []generated.Entry) []*domain.Entry {
	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}

	return entries
}

func rowToEntry(row generated.Entry) *domain.Entry {
	return &domain.Entry{
		ID:              row.ID,
		TransactionID:   row.TransactionID,
		AccountID:       row.AccountID,
		Currency:        domain.Currency(row.Currency),
		Direction:       domain.EntryDirection(row.Direction),
		Amount:          row.Amount,
		PreviousBalance: row.PreviousBalance,
		CurrentBalance:  row.CurrentBalance,
		AccountVersion:  row.AccountVersion,
		Seq:             row.Seq,
		CreatedAt:       row.CreatedAt.Time,
	}
}
