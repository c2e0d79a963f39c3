package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AlHudnitskii/walletledger/internal/domain"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/postgres/generated"
	"github.com/AlHudnitskii/walletledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new account outside any caller transaction.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return r.create(ctx, r.queries, account)
}

// CreateTx creates a new account within the caller's transaction.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	pgxTx := tx.(*Tx).PgxTx()
	return r.create(ctx, generated.New(pgxTx), account)
}

func (r *AccountRepository) create(ctx context.Context, queries *generated.Queries, account *domain.Account) error {
	_, err := queries.CreateAccount(ctx, generated.CreateAccountParams{
		ID:        account.ID,
		UserID:    account.UserID,
		Currency:  string(account.Currency),
		Kind:      string(account.Kind),
		Status:    string(account.Status),
		Balance:   account.Balance,
		Version:   account.Version,
		CreatedAt: timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(account.UpdatedAt),
	})
	if err != nil {
		return translateConstraintError(err)
	}

	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetByUserAndCurrency retrieves the user's account in one currency.
func (r *AccountRepository) GetByUserAndCurrency(ctx context.Context, userID string, currency domain.Currency) (*domain.Account, error) {
	row, err := r.queries.GetAccountByUserAndCurrency(ctx, generated.GetAccountByUserAndCurrencyParams{
		UserID:   userID,
		Currency: string(currency),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetForUpdate locks the (user, currency) account row with FOR UPDATE
// until the surrounding transaction ends. A lock wait that exceeds the
// pool's lock_timeout surfaces as domain.ErrLockTimeout.
func (r *AccountRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, userID string, currency domain.Currency) (*domain.Account, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetAccountByUserAndCurrencyForUpdate(ctx, generated.GetAccountByUserAndCurrencyForUpdateParams{
		UserID:   userID,
		Currency: string(currency),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		if isLockTimeout(err) {
			return nil, domain.ErrLockTimeout
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// UpdateBalance writes a new balance and version for a locked account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance, version int64, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateAccountBalance(ctx, generated.UpdateAccountBalanceParams{
		ID:        id,
		Balance:   balance,
		Version:   version,
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// UpdateStatus changes the account status.
func (r *AccountRepository) UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error {
	return r.queries.UpdateAccountStatus(ctx, generated.UpdateAccountStatusParams{
		ID:        id,
		Status:    string(status),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// ListByUser lists all accounts of one user ordered by currency.
func (r *AccountRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccountsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccounts(ctx, generated.ListAccountsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:        row.ID,
		UserID:    row.UserID,
		Currency:  domain.Currency(row.Currency),
		Kind:      domain.AccountKind(row.Kind),
		Status:    domain.AccountStatus(row.Status),
		Balance:   row.Balance,
		Version:   row.Version,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

// Type conversion helpers.
func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func pgTextFromPtr(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}

	return pgtype.Text{String: *s, Valid: true}
}

func ptrFromPgText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}

	s := t.String

	return &s
}
