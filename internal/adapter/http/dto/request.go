package dto

import (
	"github.com/shopspring/decimal"

	"github.com/AlHudnitskii/walletledger/internal/domain"
	"github.com/AlHudnitskii/walletledger/internal/usecase"
)

// CreateUserRequest represents a request to create a user.
type CreateUserRequest struct {
	Name string `json:"name"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{Name: r.Name}
}

// SetUserStatusRequest represents a request to block or unblock a user.
type SetUserStatusRequest struct {
	Status string `json:"status"`
}

// SetAccountStatusRequest represents a request to lock or unlock an account.
type SetAccountStatusRequest struct {
	Status string `json:"status"`
}

// MoneyRequest carries an amount in major units together with its
// currency. Amounts parse through decimal so "10.50" never touches
// floating point on the way to minor units.
type MoneyRequest struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// ToMoney validates the currency and converts the amount to minor units.
func (r *MoneyRequest) ToMoney() (domain.Money, error) {
	currency, err := domain.ParseCurrency(r.Currency)
	if err != nil {
		return domain.Money{}, err
	}

	return domain.MoneyFromDecimal(currency, r.Amount)
}

// DepositRequest represents a request to credit a user's wallet.
type DepositRequest struct {
	UserID string `json:"user_id"`
	MoneyRequest
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *DepositRequest) ToUseCaseInput() (usecase.DepositInput, error) {
	amount, err := r.ToMoney()
	if err != nil {
		return usecase.DepositInput{}, err
	}

	return usecase.DepositInput{
		UserID:   r.UserID,
		Amount:   amount,
		Metadata: r.Metadata,
	}, nil
}

// WithdrawRequest represents a request to debit a user's wallet.
type WithdrawRequest struct {
	UserID string `json:"user_id"`
	MoneyRequest
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *WithdrawRequest) ToUseCaseInput() (usecase.WithdrawInput, error) {
	amount, err := r.ToMoney()
	if err != nil {
		return usecase.WithdrawInput{}, err
	}

	return usecase.WithdrawInput{
		UserID:   r.UserID,
		Amount:   amount,
		Metadata: r.Metadata,
	}, nil
}

// RollbackRequest represents a request to reverse an applied transaction.
type RollbackRequest struct {
	RequestedBy string         `json:"requested_by"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// ToUseCaseInput converts to use case input for the given transaction.
func (r *RollbackRequest) ToUseCaseInput(transactionID string) usecase.RollbackInput {
	return usecase.RollbackInput{
		TransactionID: transactionID,
		RequestedBy:   r.RequestedBy,
		Metadata:      r.Metadata,
	}
}
