package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/AlHudnitskii/walletledger/internal/domain"
	"github.com/AlHudnitskii/walletledger/internal/usecase"
	"github.com/AlHudnitskii/walletledger/internal/usecase/mocks"
)

// seedBalancedAccount stores an account plus the entries that add up to
// its balance, so projection and stored state agree.
func seedBalancedAccount(accounts *mocks.MockAccountRepository, entries *mocks.MockEntryRepository, id string, currency domain.Currency, balance int64) {
	_ = accounts.Create(context.Background(), &domain.Account{
		ID:       id,
		UserID:   "user-" + id,
		Currency: currency,
		Kind:     domain.AccountKindUser,
		Status:   domain.AccountStatusActive,
		Balance:  balance,
	})
	if balance != 0 {
		_ = entries.Create(context.Background(), nil, &domain.Entry{
			ID: "entry-" + id, TransactionID: "txn-" + id, AccountID: id,
			Currency: currency, Direction: domain.EntryDirectionCredit,
			Amount: balance, Seq: 1,
		})
	}
}

func TestReconciliationUseCase_ProjectBalance(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	entries := mocks.NewMockEntryRepository()

	_ = accounts.Create(context.Background(), &domain.Account{
		ID: "acc-1", UserID: "user-1", Currency: domain.CurrencyUSD,
		Kind: domain.AccountKindUser, Status: domain.AccountStatusActive, Balance: 60,
	})
	_ = entries.Create(context.Background(), nil, &domain.Entry{
		ID: "e-1", TransactionID: "t-1", AccountID: "acc-1",
		Currency: domain.CurrencyUSD, Direction: domain.EntryDirectionCredit, Amount: 100, Seq: 1,
	})
	_ = entries.Create(context.Background(), nil, &domain.Entry{
		ID: "e-2", TransactionID: "t-2", AccountID: "acc-1",
		Currency: domain.CurrencyUSD, Direction: domain.EntryDirectionDebit, Amount: 40, Seq: 1,
	})

	uc := usecase.NewReconciliationUseCase(accounts, entries, nil)

	money, err := uc.ProjectBalance(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if money.Amount != 60 {
		t.Errorf("expected projection 60, got %d", money.Amount)
	}
	if money.Currency != domain.CurrencyUSD {
		t.Errorf("expected USD, got %s", money.Currency)
	}
}

func TestReconciliationUseCase_ReconcileAccount(t *testing.T) {
	t.Run("balances agree", func(t *testing.T) {
		accounts := mocks.NewMockAccountRepository()
		entries := mocks.NewMockEntryRepository()
		seedBalancedAccount(accounts, entries, "acc-1", domain.CurrencyUSD, 500)

		uc := usecase.NewReconciliationUseCase(accounts, entries, nil)

		result, err := uc.ReconcileAccount(context.Background(), "acc-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsReconciled {
			t.Error("expected reconciled account")
		}
		if result.Difference != 0 {
			t.Errorf("expected zero difference, got %d", result.Difference)
		}
	})

	t.Run("stored balance drifted", func(t *testing.T) {
		accounts := mocks.NewMockAccountRepository()
		entries := mocks.NewMockEntryRepository()

		// Stored balance says 600, the entry stream says 500.
		_ = accounts.Create(context.Background(), &domain.Account{
			ID: "acc-1", UserID: "user-1", Currency: domain.CurrencyUSD,
			Kind: domain.AccountKindUser, Status: domain.AccountStatusActive, Balance: 600,
		})
		_ = entries.Create(context.Background(), nil, &domain.Entry{
			ID: "e-1", TransactionID: "t-1", AccountID: "acc-1",
			Currency: domain.CurrencyUSD, Direction: domain.EntryDirectionCredit, Amount: 500, Seq: 1,
		})

		uc := usecase.NewReconciliationUseCase(accounts, entries, nil)

		result, err := uc.ReconcileAccount(context.Background(), "acc-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsReconciled {
			t.Error("expected mismatch")
		}
		if result.RecordedBalance != 600 || result.CalculatedBalance != 500 {
			t.Errorf("wrong balances: recorded %d, calculated %d", result.RecordedBalance, result.CalculatedBalance)
		}
		if result.Difference != 100 {
			t.Errorf("expected difference 100, got %d", result.Difference)
		}

		// Reporting must not touch the stored balance.
		stored, _ := accounts.GetByID(context.Background(), "acc-1")
		if stored.Balance != 600 {
			t.Errorf("stored balance must stay 600, got %d", stored.Balance)
		}
	})

	t.Run("missing account", func(t *testing.T) {
		uc := usecase.NewReconciliationUseCase(mocks.NewMockAccountRepository(), mocks.NewMockEntryRepository(), nil)

		_, err := uc.ReconcileAccount(context.Background(), "nope")
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})
}

func TestReconciliationUseCase_CheckConsistency(t *testing.T) {
	t.Run("consistent ledger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accounts := mocks.NewMockAccountRepository()
		entries := mocks.NewMockEntryRepository()
		seedBalancedAccount(accounts, entries, "acc-1", domain.CurrencyUSD, 100)

		ledger := mocks.NewMockLedgerRepository(ctrl)
		ledger.EXPECT().SumEntriesByCurrency(gomock.Any()).Return(map[domain.Currency]int64{
			domain.CurrencyUSD: 0,
			domain.CurrencyBTC: 0,
		}, nil)
		ledger.EXPECT().ListUnbalancedTransactions(gomock.Any(), gomock.Any()).Return(nil, nil)

		uc := usecase.NewReconciliationUseCase(accounts, entries, ledger)

		report, err := uc.CheckConsistency(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !report.Consistent {
			t.Error("expected consistent report")
		}
		if report.TotalAccounts != 1 {
			t.Errorf("expected 1 account checked, got %d", report.TotalAccounts)
		}
	})

	t.Run("nonzero currency total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ledger := mocks.NewMockLedgerRepository(ctrl)
		ledger.EXPECT().SumEntriesByCurrency(gomock.Any()).Return(map[domain.Currency]int64{
			domain.CurrencyUSD: 250,
		}, nil)
		ledger.EXPECT().ListUnbalancedTransactions(gomock.Any(), gomock.Any()).Return(nil, nil)

		uc := usecase.NewReconciliationUseCase(mocks.NewMockAccountRepository(), mocks.NewMockEntryRepository(), ledger)

		report, err := uc.CheckConsistency(context.Background())
		if !errors.Is(err, usecase.ErrInconsistentLedger) {
			t.Fatalf("expected ErrInconsistentLedger, got %v", err)
		}
		if report == nil {
			t.Fatal("expected report alongside the error")
		}
		if report.Consistent {
			t.Error("expected inconsistent report")
		}
		if report.CurrencyTotals[domain.CurrencyUSD] != 250 {
			t.Errorf("expected USD total 250, got %d", report.CurrencyTotals[domain.CurrencyUSD])
		}
	})

	t.Run("unbalanced transactions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ledger := mocks.NewMockLedgerRepository(ctrl)
		ledger.EXPECT().SumEntriesByCurrency(gomock.Any()).Return(map[domain.Currency]int64{}, nil)
		ledger.EXPECT().ListUnbalancedTransactions(gomock.Any(), gomock.Any()).Return([]string{"txn-7"}, nil)

		uc := usecase.NewReconciliationUseCase(mocks.NewMockAccountRepository(), mocks.NewMockEntryRepository(), ledger)

		report, err := uc.CheckConsistency(context.Background())
		if !errors.Is(err, usecase.ErrInconsistentLedger) {
			t.Fatalf("expected ErrInconsistentLedger, got %v", err)
		}
		if len(report.UnbalancedTransactions) != 1 || report.UnbalancedTransactions[0] != "txn-7" {
			t.Errorf("expected txn-7 flagged, got %v", report.UnbalancedTransactions)
		}
	})

	t.Run("mismatched account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		accounts := mocks.NewMockAccountRepository()
		entries := mocks.NewMockEntryRepository()
		seedBalancedAccount(accounts, entries, "acc-ok", domain.CurrencyUSD, 100)

		// No entries behind this stored balance.
		_ = accounts.Create(context.Background(), &domain.Account{
			ID: "acc-drift", UserID: "user-2", Currency: domain.CurrencyUSD,
			Kind: domain.AccountKindUser, Status: domain.AccountStatusActive, Balance: 999,
		})

		ledger := mocks.NewMockLedgerRepository(ctrl)
		ledger.EXPECT().SumEntriesByCurrency(gomock.Any()).Return(map[domain.Currency]int64{}, nil)
		ledger.EXPECT().ListUnbalancedTransactions(gomock.Any(), gomock.Any()).Return(nil, nil)

		uc := usecase.NewReconciliationUseCase(accounts, entries, ledger)

		report, err := uc.CheckConsistency(context.Background())
		if !errors.Is(err, usecase.ErrInconsistentLedger) {
			t.Fatalf("expected ErrInconsistentLedger, got %v", err)
		}
		if len(report.MismatchedAccounts) != 1 {
			t.Fatalf("expected 1 mismatched account, got %d", len(report.MismatchedAccounts))
		}
		if report.MismatchedAccounts[0].AccountID != "acc-drift" {
			t.Errorf("expected acc-drift flagged, got %s", report.MismatchedAccounts[0].AccountID)
		}
	})
}
