package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AlHudnitskii/walletledger/internal/domain"
	"github.com/AlHudnitskii/walletledger/internal/usecase"
	"github.com/AlHudnitskii/walletledger/internal/usecase/mocks"
)

func TestAccountUseCase_GetBalance(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	_ = accounts.Create(context.Background(), &domain.Account{
		ID:       "acc-1",
		UserID:   "user-1",
		Currency: domain.CurrencyUSD,
		Kind:     domain.AccountKindUser,
		Status:   domain.AccountStatusActive,
		Balance:  12345,
	})

	uc := usecase.NewAccountUseCase(accounts, mocks.NewMockEntryRepository())

	t.Run("held currency", func(t *testing.T) {
		money, err := uc.GetBalance(context.Background(), "user-1", domain.CurrencyUSD)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if money.Amount != 12345 || money.Currency != domain.CurrencyUSD {
			t.Errorf("expected 12345 USD, got %s", money)
		}
	})

	t.Run("currency never touched reads as zero", func(t *testing.T) {
		money, err := uc.GetBalance(context.Background(), "user-1", domain.CurrencyBTC)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !money.IsZero() {
			t.Errorf("expected zero, got %s", money)
		}
		if money.Currency != domain.CurrencyBTC {
			t.Errorf("expected BTC, got %s", money.Currency)
		}
	})

	t.Run("unknown currency", func(t *testing.T) {
		_, err := uc.GetBalance(context.Background(), "user-1", "DOGECOIN")
		if !errors.Is(err, domain.ErrUnknownCurrency) {
			t.Errorf("expected ErrUnknownCurrency, got %v", err)
		}
	})
}

func TestAccountUseCase_SetAccountStatus(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	_ = accounts.Create(context.Background(), &domain.Account{
		ID:       "acc-1",
		UserID:   "user-1",
		Currency: domain.CurrencyUSD,
		Kind:     domain.AccountKindUser,
		Status:   domain.AccountStatusActive,
	})

	uc := usecase.NewAccountUseCase(accounts, mocks.NewMockEntryRepository())

	t.Run("lock", func(t *testing.T) {
		acc, err := uc.SetAccountStatus(context.Background(), usecase.SetAccountStatusInput{
			AccountID: "acc-1",
			Status:    domain.AccountStatusLocked,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if acc.Status != domain.AccountStatusLocked {
			t.Errorf("expected locked, got %s", acc.Status)
		}

		stored, _ := accounts.GetByID(context.Background(), "acc-1")
		if stored.Status != domain.AccountStatusLocked {
			t.Errorf("expected persisted locked, got %s", stored.Status)
		}
	})

	t.Run("unlock", func(t *testing.T) {
		acc, err := uc.SetAccountStatus(context.Background(), usecase.SetAccountStatusInput{
			AccountID: "acc-1",
			Status:    domain.AccountStatusActive,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if acc.Status != domain.AccountStatusActive {
			t.Errorf("expected active, got %s", acc.Status)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := uc.SetAccountStatus(context.Background(), usecase.SetAccountStatusInput{
			AccountID: "acc-1",
			Status:    "frozen",
		})
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("missing account", func(t *testing.T) {
		_, err := uc.SetAccountStatus(context.Background(), usecase.SetAccountStatusInput{
			AccountID: "nope",
			Status:    domain.AccountStatusLocked,
		})
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})
}

func TestAccountUseCase_GetHistoricalBalance(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	entries := mocks.NewMockEntryRepository()

	_ = accounts.Create(context.Background(), &domain.Account{
		ID:       "acc-1",
		UserID:   "user-1",
		Currency: domain.CurrencyUSD,
		Kind:     domain.AccountKindUser,
		Status:   domain.AccountStatusActive,
		Balance:  70,
	})

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	_ = entries.Create(context.Background(), nil, &domain.Entry{
		ID: "e-1", TransactionID: "t-1", AccountID: "acc-1",
		Currency: domain.CurrencyUSD, Direction: domain.EntryDirectionCredit,
		Amount: 100, Seq: 1, CreatedAt: base,
	})
	_ = entries.Create(context.Background(), nil, &domain.Entry{
		ID: "e-2", TransactionID: "t-2", AccountID: "acc-1",
		Currency: domain.CurrencyUSD, Direction: domain.EntryDirectionDebit,
		Amount: 30, Seq: 1, CreatedAt: base.Add(time.Hour),
	})

	uc := usecase.NewAccountUseCase(accounts, entries)

	tests := []struct {
		name string
		at   time.Time
		want int64
	}{
		{"before any entries", base.Add(-time.Minute), 0},
		{"after the credit", base.Add(time.Minute), 100},
		{"after the debit", base.Add(2 * time.Hour), 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			money, err := uc.GetHistoricalBalance(context.Background(), "acc-1", tt.at)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if money.Amount != tt.want {
				t.Errorf("expected %d, got %d", tt.want, money.Amount)
			}
		})
	}

	t.Run("missing account", func(t *testing.T) {
		_, err := uc.GetHistoricalBalance(context.Background(), "nope", base)
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})
}

func TestAccountUseCase_GetUserAccounts(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	_ = accounts.Create(context.Background(), &domain.Account{
		ID: "acc-1", UserID: "user-1", Currency: domain.CurrencyUSD,
		Kind: domain.AccountKindUser, Status: domain.AccountStatusActive,
	})
	_ = accounts.Create(context.Background(), &domain.Account{
		ID: "acc-2", UserID: "user-1", Currency: domain.CurrencyETH,
		Kind: domain.AccountKindUser, Status: domain.AccountStatusActive,
	})
	_ = accounts.Create(context.Background(), &domain.Account{
		ID: "acc-3", UserID: "user-2", Currency: domain.CurrencyUSD,
		Kind: domain.AccountKindUser, Status: domain.AccountStatusActive,
	})

	uc := usecase.NewAccountUseCase(accounts, mocks.NewMockEntryRepository())

	listed, err := uc.GetUserAccounts(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 2 {
		t.Errorf("expected 2 accounts, got %d", len(listed))
	}
	for _, acc := range listed {
		if acc.UserID != "user-1" {
			t.Errorf("expected only user-1 accounts, got %s", acc.UserID)
		}
	}
}
