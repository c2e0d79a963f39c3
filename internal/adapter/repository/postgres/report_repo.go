package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlHudnitskii/walletledger/internal/domain"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/postgres/generated"
)

// ReportRepository implements usecase.ReportRepository. All queries are
// read-only aggregations over users and transactions; the system
// clearing owner is excluded from every user count.
type ReportRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CountUsersRegisteredBefore counts users registered strictly before the
// given instant.
func (r *ReportRepository) CountUsersRegisteredBefore(ctx context.Context, before time.Time) (int64, error) {
	return r.queries.CountUsersRegisteredBefore(ctx, generated.CountUsersRegisteredBeforeParams{
		Before:    timeToPgTimestamptz(before),
		ExcludeID: domain.SystemUserID,
	})
}

// CountUsersWithDeposits counts distinct users who deposited within
// [from, to).
func (r *ReportRepository) CountUsersWithDeposits(ctx context.Context, from, to time.Time) (int64, error) {
	return r.queries.CountUsersWithDeposits(ctx, generated.CountUsersWithDepositsParams{
		From: timeToPgTimestamptz(from),
		To:   timeToPgTimestamptz(to),
	})
}

// CountUsersWithoutTransactions counts users registered before the end
// of the window with no transaction activity inside it.
func (r *ReportRepository) CountUsersWithoutTransactions(ctx context.Context, from, to time.Time) (int64, error) {
	return r.queries.CountUsersWithoutTransactions(ctx, generated.CountUsersWithoutTransactionsParams{
		From:      timeToPgTimestamptz(from),
		To:        timeToPgTimestamptz(to),
		ExcludeID: domain.SystemUserID,
	})
}

// CountTransactions counts transactions of one type within [from, to).
// Rolled-back transactions still count; the rollback is separate
// activity, not an erasure.
func (r *ReportRepository) CountTransactions(ctx context.Context, txType domain.TransactionType, from, to time.Time) (int64, error) {
	return r.queries.CountTransactionsByType(ctx, generated.CountTransactionsByTypeParams{
		Type: string(txType),
		From: timeToPgTimestamptz(from),
		To:   timeToPgTimestamptz(to),
	})
}

// SumAmountsByCurrency sums amounts of one transaction type per currency
// within [from, to), in minor units.
func (r *ReportRepository) SumAmountsByCurrency(ctx context.Context, txType domain.TransactionType, from, to time.Time) (map[domain.Currency]int64, error) {
	rows, err := r.queries.SumTransactionAmountsByCurrency(ctx, generated.SumTransactionAmountsByCurrencyParams{
		Type: string(txType),
		From: timeToPgTimestamptz(from),
		To:   timeToPgTimestamptz(to),
	})
	if err != nil {
		return nil, err
	}

	totals := make(map[domain.Currency]int64, len(rows))
	for _, row := range rows {
		totals[domain.Currency(row.Currency)] = row.Total
	}

	return totals, nil
}
