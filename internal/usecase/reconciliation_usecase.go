package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlHudnitskii/walletledger/internal/domain"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/metrics"
)

var (
	// ErrInconsistentLedger is returned when stored balances or entry
	// sums violate double-entry invariants. Inconsistencies are
	// reported to the caller and never repaired in place.
	ErrInconsistentLedger = errors.New("ledger is inconsistent")
)

// ReconciliationUseCase projects balances from the entry stream and
// compares them against stored account balances.
type ReconciliationUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	ledgerRepo  LedgerRepository
	metrics     *metrics.Metrics
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	ledgerRepo LedgerRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// WithMetrics exports the mismatch count from consistency checks.
func (uc *ReconciliationUseCase) WithMetrics(m *metrics.Metrics) *ReconciliationUseCase {
	uc.metrics = m
	return uc
}

// ReconciliationResult represents the result of reconciling one account.
type ReconciliationResult struct {
	AccountID         string
	Currency          domain.Currency
	RecordedBalance   int64
	CalculatedBalance int64
	Difference        int64
	IsReconciled      bool
	LastChecked       time.Time
}

// ProjectBalance recomputes an account's balance purely from its
// entries, ignoring the stored balance.
func (uc *ReconciliationUseCase) ProjectBalance(ctx context.Context, accountID string) (domain.Money, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return domain.Money{}, err
	}

	sum, err := uc.entryRepo.SumByAccount(ctx, accountID)
	if err != nil {
		return domain.Money{}, err
	}

	return domain.Money{Currency: account.Currency, Amount: sum}, nil
}

// ReconcileAccount compares the stored balance against the projection.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, accountID string) (*ReconciliationResult, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	calculated, err := uc.entryRepo.SumByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &ReconciliationResult{
		AccountID:         account.ID,
		Currency:          account.Currency,
		RecordedBalance:   account.Balance,
		CalculatedBalance: calculated,
		Difference:        account.Balance - calculated,
		IsReconciled:      account.Balance == calculated,
		LastChecked:       time.Now().UTC(),
	}, nil
}

// ReconcileAll reconciles every account in the system, page by page.
func (uc *ReconciliationUseCase) ReconcileAll(ctx context.Context) ([]*ReconciliationResult, error) {
	const pageSize = 500

	var results []*ReconciliationResult
	for offset := 0; ; offset += pageSize {
		accounts, err := uc.accountRepo.List(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}

		for _, account := range accounts {
			result, err := uc.ReconcileAccount(ctx, account.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to reconcile account %s: %w", account.ID, err)
			}
			results = append(results, result)
		}

		if len(accounts) < pageSize {
			return results, nil
		}
	}
}

// ConsistencyReport represents a ledger-wide consistency check.
type ConsistencyReport struct {
	CurrencyTotals         map[domain.Currency]int64
	UnbalancedTransactions []string
	MismatchedAccounts     []*ReconciliationResult
	TotalAccounts          int
	Consistent             bool
	CheckedAt              time.Time
}

// CheckConsistency verifies the closed-system invariants: entries sum
// to zero per currency, every transaction's entries balance, and every
// stored balance equals its projection. It returns the report together
// with ErrInconsistentLedger when anything is off.
func (uc *ReconciliationUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	totals, err := uc.ledgerRepo.SumEntriesByCurrency(ctx)
	if err != nil {
		return nil, err
	}

	unbalanced, err := uc.ledgerRepo.ListUnbalancedTransactions(ctx, 100)
	if err != nil {
		return nil, err
	}

	results, err := uc.ReconcileAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &ConsistencyReport{
		CurrencyTotals:         totals,
		UnbalancedTransactions: unbalanced,
		TotalAccounts:          len(results),
		Consistent:             true,
		CheckedAt:              time.Now().UTC(),
	}

	for _, total := range totals {
		if total != 0 {
			report.Consistent = false
			break
		}
	}

	if len(unbalanced) > 0 {
		report.Consistent = false
	}

	for _, result := range results {
		if !result.IsReconciled {
			report.MismatchedAccounts = append(report.MismatchedAccounts, result)
			report.Consistent = false
		}
	}

	if uc.metrics != nil {
		uc.metrics.LedgerMismatches.Set(float64(len(report.MismatchedAccounts)))
	}

	if !report.Consistent {
		return report, ErrInconsistentLedger
	}

	return report, nil
}
