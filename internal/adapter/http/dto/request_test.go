package dto

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/AlHudnitskii/walletledger/internal/domain"
)

func TestMoneyRequest_ToMoney(t *testing.T) {
	tests := []struct {
		name    string
		request MoneyRequest
		want    domain.Money
		wantErr error
	}{
		{
			name:    "usd major units",
			request: MoneyRequest{Currency: "USD", Amount: decimal.RequireFromString("10.50")},
			want:    domain.Money{Currency: domain.CurrencyUSD, Amount: 1050},
		},
		{
			name:    "lowercase currency",
			request: MoneyRequest{Currency: "btc", Amount: decimal.RequireFromString("0.00000001")},
			want:    domain.Money{Currency: domain.CurrencyBTC, Amount: 1},
		},
		{
			name:    "unknown currency",
			request: MoneyRequest{Currency: "XYZ", Amount: decimal.RequireFromString("1")},
			wantErr: domain.ErrUnknownCurrency,
		},
		{
			name:    "excess precision",
			request: MoneyRequest{Currency: "USD", Amount: decimal.RequireFromString("10.505")},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.request.ToMoney()

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ToMoney() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Fatalf("ToMoney() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDepositRequest_ToUseCaseInput(t *testing.T) {
	req := &DepositRequest{
		UserID:       "user-1",
		MoneyRequest: MoneyRequest{Currency: "EUR", Amount: decimal.RequireFromString("25")},
		Metadata:     map[string]any{"source": "topup"},
	}

	got, err := req.ToUseCaseInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.UserID != "user-1" {
		t.Fatalf("UserID = %q, want %q", got.UserID, "user-1")
	}
	if got.Amount != (domain.Money{Currency: domain.CurrencyEUR, Amount: 2500}) {
		t.Fatalf("Amount = %+v", got.Amount)
	}
	if got.Metadata["source"] != "topup" {
		t.Fatalf("Metadata = %+v", got.Metadata)
	}
}

func TestDepositRequest_ToUseCaseInputInvalidCurrency(t *testing.T) {
	req := &DepositRequest{
		UserID:       "user-1",
		MoneyRequest: MoneyRequest{Currency: "GBP", Amount: decimal.RequireFromString("1")},
	}

	if _, err := req.ToUseCaseInput(); !errors.Is(err, domain.ErrUnknownCurrency) {
		t.Fatalf("error = %v, want %v", err, domain.ErrUnknownCurrency)
	}
}

func TestWithdrawRequest_ToUseCaseInput(t *testing.T) {
	req := &WithdrawRequest{
		UserID:       "user-2",
		MoneyRequest: MoneyRequest{Currency: "USDT", Amount: decimal.RequireFromString("0.5")},
	}

	got, err := req.ToUseCaseInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.UserID != "user-2" {
		t.Fatalf("UserID = %q, want %q", got.UserID, "user-2")
	}
	if got.Amount != (domain.Money{Currency: domain.CurrencyUSDT, Amount: 500000}) {
		t.Fatalf("Amount = %+v", got.Amount)
	}
}

func TestRollbackRequest_ToUseCaseInput(t *testing.T) {
	req := &RollbackRequest{
		RequestedBy: "user-1",
		Metadata:    map[string]any{"reason": "duplicate"},
	}

	got := req.ToUseCaseInput("txn-1")

	if got.TransactionID != "txn-1" {
		t.Fatalf("TransactionID = %q, want %q", got.TransactionID, "txn-1")
	}
	if got.RequestedBy != "user-1" {
		t.Fatalf("RequestedBy = %q, want %q", got.RequestedBy, "user-1")
	}
	if got.Metadata["reason"] != "duplicate" {
		t.Fatalf("Metadata = %+v", got.Metadata)
	}
}

func TestCreateUserRequest_ToUseCaseInput(t *testing.T) {
	req := &CreateUserRequest{Name: "alice"}

	if got := req.ToUseCaseInput(); got.Name != "alice" {
		t.Fatalf("ToUseCaseInput() = %+v", got)
	}
}
