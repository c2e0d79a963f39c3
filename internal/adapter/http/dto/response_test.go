package dto

import (
	"testing"
	"time"

	"github.com/AlHudnitskii/walletledger/internal/domain"
	"github.com/AlHudnitskii/walletledger/internal/usecase"
)

func TestAccountFromDomain(t *testing.T) {
	now := time.Now()
	account := &domain.Account{
		ID:        "acc-1",
		UserID:    "user-1",
		Currency:  domain.CurrencyUSD,
		Kind:      domain.AccountKindUser,
		Status:    domain.AccountStatusActive,
		Balance:   12345,
		Version:   2,
		CreatedAt: now,
		UpdatedAt: now,
	}

	resp := AccountFromDomain(account)
	if resp.ID != account.ID || resp.Balance.String() != "123.45" || resp.Version != 2 {
		t.Fatalf("unexpected account response: %+v", resp)
	}
	if resp.Currency != "USD" || resp.Kind != "user" {
		t.Fatalf("unexpected account response: %+v", resp)
	}

	list := AccountsFromDomain([]*domain.Account{account})
	if len(list) != 1 || list[0].ID != account.ID {
		t.Fatalf("AccountsFromDomain returned %+v", list)
	}
}

func TestTransactionFromDomain(t *testing.T) {
	now := time.Now()
	reversed := "txn-0"
	txn := &domain.Transaction{
		ID:                    "txn-1",
		UserID:                "user-1",
		AccountID:             "acc-1",
		Type:                  domain.TransactionTypeRollback,
		Status:                domain.TransactionStatusApplied,
		Currency:              domain.CurrencyBTC,
		Amount:                50000000,
		ReversesTransactionID: &reversed,
		Metadata:              map[string]any{"key": "value"},
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	resp := TransactionFromDomain(txn)
	if resp.ID != txn.ID || resp.Amount.String() != "0.5" || resp.ReversesTransactionID == nil {
		t.Fatalf("unexpected transaction response: %+v", resp)
	}
	if resp.Type != "rollback" || resp.Status != "applied" {
		t.Fatalf("unexpected transaction response: %+v", resp)
	}

	list := TransactionsFromDomain([]*domain.Transaction{txn})
	if len(list) != 1 || list[0].ID != txn.ID {
		t.Fatalf("TransactionsFromDomain returned %+v", list)
	}
}

func TestEntryFromDomain(t *testing.T) {
	entry := &domain.Entry{
		ID:              "entry-1",
		TransactionID:   "txn-1",
		AccountID:       "acc-1",
		Currency:        domain.CurrencyUSD,
		Direction:       domain.EntryDirectionCredit,
		Amount:          500,
		PreviousBalance: 1000,
		CurrentBalance:  1500,
		AccountVersion:  3,
		Seq:             1,
		CreatedAt:       time.Now(),
	}

	resp := EntryFromDomain(entry)
	if resp.AccountID != entry.AccountID || resp.AccountVersion != entry.AccountVersion {
		t.Fatalf("unexpected entry response: %+v", resp)
	}
	if resp.Amount.String() != "5" || resp.CurrentBalance.String() != "15" {
		t.Fatalf("unexpected entry response: %+v", resp)
	}

	list := EntriesFromDomain([]*domain.Entry{entry})
	if len(list) != 1 || list[0].ID != entry.ID {
		t.Fatalf("EntriesFromDomain returned %+v", list)
	}
}

func TestUserFromDomain(t *testing.T) {
	now := time.Now()
	user := &domain.User{
		ID:        "user-1",
		Name:      "alice",
		Status:    domain.UserStatusBlocked,
		CreatedAt: now,
		UpdatedAt: now,
	}

	resp := UserFromDomain(user)
	if resp.ID != user.ID || resp.Name != "alice" || resp.Status != "blocked" {
		t.Fatalf("unexpected user response: %+v", resp)
	}
}

func TestConsistencyReportFromUseCase(t *testing.T) {
	now := time.Now()
	report := &usecase.ConsistencyReport{
		Consistent:             false,
		CurrencyTotals:         map[domain.Currency]int64{domain.CurrencyUSD: 100},
		UnbalancedTransactions: []string{"txn-1"},
		MismatchedAccounts: []*usecase.ReconciliationResult{
			{
				AccountID:         "acc-1",
				Currency:          domain.CurrencyUSD,
				RecordedBalance:   1000,
				CalculatedBalance: 900,
				Difference:        100,
				IsReconciled:      false,
				LastChecked:       now,
			},
		},
		TotalAccounts: 5,
		CheckedAt:     now,
	}

	resp := ConsistencyReportFromUseCase(report)
	if resp.Consistent {
		t.Fatalf("expected inconsistent report")
	}
	if resp.CurrencyTotals["USD"] != 100 {
		t.Fatalf("CurrencyTotals = %+v", resp.CurrencyTotals)
	}
	if len(resp.MismatchedAccounts) != 1 || resp.MismatchedAccounts[0].Difference.String() != "1" {
		t.Fatalf("MismatchedAccounts = %+v", resp.MismatchedAccounts)
	}
}

func TestBalanceFromMoney(t *testing.T) {
	resp := BalanceFromMoney(domain.Money{Currency: domain.CurrencyUSDT, Amount: 1500000})
	if resp.Currency != "USDT" || resp.Balance.String() != "1.5" {
		t.Fatalf("unexpected balance response: %+v", resp)
	}
}
