package usecase

import (
	"context"
	"time"

	"github.com/AlHudnitskii/walletledger/internal/domain"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/metrics"
)

// UserUseCase handles user management. Creating a user opens one
// account per supported currency in the same database transaction.
type UserUseCase struct {
	txManager   TransactionManager
	userRepo    UserRepository
	accountRepo AccountRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(
	txManager TransactionManager,
	userRepo UserRepository,
	accountRepo AccountRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *UserUseCase {
	return &UserUseCase{
		txManager:   txManager,
		userRepo:    userRepo,
		accountRepo: accountRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
	}
}

// WithMetrics records user and account creation counters.
func (uc *UserUseCase) WithMetrics(m *metrics.Metrics) *UserUseCase {
	uc.metrics = m
	return uc
}

// CreateUserInput represents input for creating a user.
type CreateUserInput struct {
	Name string
}

// CreateUser creates a user and their per-currency accounts atomically.
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := domain.ValidateUserName(input.Name); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()
	user := &domain.User{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Status:    domain.UserStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.userRepo.Create(txCtx, tx, user); err != nil {
		return nil, err
	}

	for _, currency := range domain.Currencies() {
		account := &domain.Account{
			ID:        uc.idGen.Generate(),
			UserID:    user.ID,
			Currency:  currency,
			Kind:      domain.AccountKindUser,
			Status:    domain.AccountStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.accountRepo.CreateTx(txCtx, tx, account); err != nil {
			return nil, err
		}

		accountEvent := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   account.ID,
			AggregateType: domain.AggregateTypeAccount,
			EventType:     domain.EventTypeAccountCreated,
			Payload: domain.EventPayload(domain.AccountCreatedEvent{
				AccountID: account.ID,
				UserID:    account.UserID,
				Currency:  account.Currency.String(),
				Kind:      string(account.Kind),
			}),
			Status:    domain.OutboxStatusPending,
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, accountEvent); err != nil {
			return nil, err
		}
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   user.ID,
		AggregateType: domain.AggregateTypeUser,
		EventType:     domain.EventTypeUserCreated,
		Payload: domain.EventPayload(domain.UserCreatedEvent{
			UserID: user.ID,
			Name:   user.Name,
		}),
		Status:    domain.OutboxStatusPending,
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.UsersCreated.Inc()
		uc.metrics.AccountsCreated.Add(float64(len(domain.Currencies())))
	}

	return user, nil
}

// GetUser retrieves a user by ID. The reserved system user is hidden.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if id == domain.SystemUserID {
		return nil, domain.ErrUserNotFound
	}
	return uc.userRepo.GetByID(ctx, id)
}

// ListUsers lists users with pagination.
func (uc *UserUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.userRepo.List(ctx, limit, offset)
}

// SetUserStatusInput represents input for blocking or unblocking a user.
type SetUserStatusInput struct {
	UserID string
	Status domain.UserStatus
}

// SetUserStatus blocks or unblocks a user. Blocked users keep their
// balances but cannot move money; the system user cannot be touched.
func (uc *UserUseCase) SetUserStatus(ctx context.Context, input SetUserStatusInput) (*domain.User, error) {
	if input.UserID == domain.SystemUserID {
		return nil, domain.ErrSystemUser
	}

	if !input.Status.IsValid() {
		return nil, domain.ErrInvalidTransition
	}

	user, err := uc.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.userRepo.UpdateStatus(ctx, user.ID, input.Status, now); err != nil {
		return nil, err
	}

	user.Status = input.Status
	user.UpdatedAt = now
	return user, nil
}
