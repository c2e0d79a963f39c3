package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlHudnitskii/walletledger/internal/domain"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// SumEntriesByCurrency returns the signed entry total per currency. In a
// closed double-entry ledger every total is zero; a non-zero total means
// some transaction wrote an unbalanced pair.
func (r *LedgerRepository) SumEntriesByCurrency(ctx context.Context) (map[domain.Currency]int64, error) {
	rows, err := r.queries.SumEntriesByCurrency(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[domain.Currency]int64, len(rows))
	for _, row := range rows {
		totals[domain.Currency(row.Currency)] = row.Total
	}

	return totals, nil
}

// ListUnbalancedTransactions returns IDs of transactions whose entries
// do not form a balanced pair.
func (r *LedgerRepository) ListUnbalancedTransactions(ctx context.Context, limit int) ([]string, error) {
	return r.queries.ListUnbalancedTransactions(ctx, int32(limit))
}
