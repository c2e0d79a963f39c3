package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/AlHudnitskii/walletledger/internal/domain"
)

// AccountUseCase handles account read and administration logic. Account
// creation happens through user signup and first use, never directly.
type AccountUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, entryRepo EntryRepository) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetUserAccounts lists all of a user's accounts, one per currency held.
func (uc *AccountUseCase) GetUserAccounts(ctx context.Context, userID string) ([]*domain.Account, error) {
	return uc.accountRepo.ListByUser(ctx, userID)
}

// GetBalance returns the user's balance in one currency. A user who
// never touched the currency holds zero in it.
func (uc *AccountUseCase) GetBalance(ctx context.Context, userID string, currency domain.Currency) (domain.Money, error) {
	if !currency.IsValid() {
		return domain.Money{}, domain.ErrUnknownCurrency
	}

	account, err := uc.accountRepo.GetByUserAndCurrency(ctx, userID, currency)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ZeroMoney(currency), nil
		}
		return domain.Money{}, err
	}

	return account.Money(), nil
}

// SetAccountStatusInput represents input for locking or unlocking an account.
type SetAccountStatusInput struct {
	AccountID string
	Status    domain.AccountStatus
}

// SetAccountStatus locks or unlocks an account. Locked accounts reject
// every balance change but stay readable.
func (uc *AccountUseCase) SetAccountStatus(ctx context.Context, input SetAccountStatusInput) (*domain.Account, error) {
	if !input.Status.IsValid() {
		return nil, domain.ErrInvalidTransition
	}

	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.accountRepo.UpdateStatus(ctx, account.ID, input.Status, now); err != nil {
		return nil, err
	}

	account.Status = input.Status
	account.UpdatedAt = now
	return account, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, limit, offset)
}

// GetEntriesByAccountInput represents input for listing an account's entries.
type GetEntriesByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// GetEntriesByAccount lists an account's entries, newest first.
func (uc *AccountUseCase) GetEntriesByAccount(ctx context.Context, input GetEntriesByAccountInput) ([]*domain.Entry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.entryRepo.GetByAccount(ctx, input.AccountID, limit, offset)
}

// GetHistoricalBalance returns the account balance at a point in time,
// replayed from entries.
func (uc *AccountUseCase) GetHistoricalBalance(ctx context.Context, accountID string, at time.Time) (domain.Money, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return domain.Money{}, err
	}

	balance, err := uc.entryRepo.BalanceAtTime(ctx, accountID, at)
	if err != nil {
		return domain.Money{}, err
	}

	return domain.Money{Currency: account.Currency, Amount: balance}, nil
}
