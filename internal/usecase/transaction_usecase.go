package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/AlHudnitskii/walletledger/internal/domain"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/metrics"
)

// TransactionUseCase is the transaction engine: it applies deposits and
// withdrawals as balanced entry pairs and rolls applied transactions
// back with compensating ones.
type TransactionUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	entryRepo       EntryRepository
	userRepo        UserRepository
	outboxRepo      OutboxRepository
	idGen           IDGenerator
	retrier         Retrier
	metrics         *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	entryRepo EntryRepository,
	userRepo UserRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		entryRepo:       entryRepo,
		userRepo:        userRepo,
		outboxRepo:      outboxRepo,
		idGen:           idGen,
	}
}

// WithRetrier retries applies and rollbacks that fail with transient
// database errors. Lock timeouts are not transient in this sense and
// are never retried here.
func (uc *TransactionUseCase) WithRetrier(r Retrier) *TransactionUseCase {
	uc.retrier = r
	return uc
}

// WithMetrics records transaction counters and durations.
func (uc *TransactionUseCase) WithMetrics(m *metrics.Metrics) *TransactionUseCase {
	uc.metrics = m
	return uc
}

// DepositInput represents input for applying a deposit.
type DepositInput struct {
	UserID   string
	Amount   domain.Money
	Metadata map[string]any
}

// WithdrawInput represents input for applying a withdrawal.
type WithdrawInput struct {
	UserID   string
	Amount   domain.Money
	Metadata map[string]any
}

// RollbackInput represents input for rolling back an applied transaction.
type RollbackInput struct {
	TransactionID string
	RequestedBy   string
	Metadata      map[string]any
}

// Deposit credits a user account and debits the currency's clearing
// account in one balanced transaction.
func (uc *TransactionUseCase) Deposit(ctx context.Context, input DepositInput) (*domain.Transaction, error) {
	return uc.apply(ctx, domain.TransactionTypeDeposit, input.UserID, input.Amount, input.Metadata)
}

// Withdraw debits a user account and credits the currency's clearing
// account in one balanced transaction.
func (uc *TransactionUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*domain.Transaction, error) {
	return uc.apply(ctx, domain.TransactionTypeWithdrawal, input.UserID, input.Amount, input.Metadata)
}

func (uc *TransactionUseCase) apply(
	ctx context.Context,
	txnType domain.TransactionType,
	userID string,
	amount domain.Money,
	metadata map[string]any,
) (*domain.Transaction, error) {
	start := time.Now()

	txn := &domain.Transaction{
		UserID:   userID,
		Type:     txnType,
		Status:   domain.TransactionStatusPending,
		Currency: amount.Currency,
		Amount:   amount.Amount,
		Metadata: metadata,
	}

	// Fail fast on malformed input, no transaction row is written.
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.ValidateActive(); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	err = uc.do(txCtx, "transaction.apply", func() error {
		return uc.applyTx(txCtx, txn)
	})
	if err != nil {
		uc.recordFailure(ctx, txn, err)
		uc.observe(txnType, domain.TransactionStatusFailed, start)
		return nil, err
	}

	uc.observe(txnType, domain.TransactionStatusApplied, start)
	return txn, nil
}

// applyTx runs the balance change itself. txn is filled in place so the
// retrier can run it again from a clean slate after a transient failure.
func (uc *TransactionUseCase) applyTx(ctx context.Context, txn *domain.Transaction) error {
	txn.ID = uc.idGen.Generate()
	txn.Status = domain.TransactionStatusPending

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()

	// Lock ordering is fixed system-wide: the user account first, the
	// clearing account second. Acquiring the user row lock is the only
	// serialization point between concurrent operations on the wallet.
	lockStart := time.Now()
	userAccount, err := uc.lockUserAccount(ctx, tx, txn.UserID, txn.Currency, now)
	if err != nil {
		return err
	}

	clearingAccount, err := uc.accountRepo.GetForUpdate(ctx, tx, domain.SystemUserID, txn.Currency)
	if err != nil {
		return err
	}
	uc.observeLockWait(lockStart)

	txn.AccountID = userAccount.ID

	userDir := txn.UserDirection()
	if err := uc.validateSides(userAccount, clearingAccount, userDir, txn.Amount); err != nil {
		return err
	}

	txn.CreatedAt = now
	txn.UpdatedAt = now

	if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
		return err
	}

	if err := uc.writeEntryPair(ctx, tx, txn, userAccount, clearingAccount, userDir, now); err != nil {
		return err
	}

	if err := txn.TransitionTo(domain.TransactionStatusApplied); err != nil {
		return err
	}

	if err := uc.transactionRepo.UpdateStatus(ctx, tx, txn.ID, txn.Status, now); err != nil {
		return err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   txn.ID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeTransactionApplied,
		Payload: domain.EventPayload(domain.TransactionAppliedEvent{
			TransactionID: txn.ID,
			UserID:        txn.UserID,
			AccountID:     txn.AccountID,
			Type:          string(txn.Type),
			Amount:        txn.Money().Decimal().String(),
			Currency:      txn.Currency.String(),
			EventAt:       now.Format(time.RFC3339Nano),
		}),
		Status:    domain.OutboxStatusPending,
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Rollback applies a compensating transaction for an applied original
// and marks the original rolled back. The original's owner is the only
// user allowed to request it.
func (uc *TransactionUseCase) Rollback(ctx context.Context, input RollbackInput) (*domain.Transaction, error) {
	start := time.Now()

	original, err := uc.transactionRepo.GetByID(ctx, input.TransactionID)
	if err != nil {
		return nil, err
	}

	// Cheap pre-checks before taking any locks. They run again under
	// lock: the answer here may be stale by then.
	rollback, err := domain.NewRollback(original, input.RequestedBy, input.Metadata)
	if err != nil {
		return nil, err
	}

	if err := rollback.Validate(); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, input.RequestedBy)
	if err != nil {
		return nil, err
	}

	if err := user.ValidateActive(); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	err = uc.do(txCtx, "transaction.rollback", func() error {
		return uc.rollbackTx(txCtx, rollback, input)
	})
	if err != nil {
		uc.recordFailure(ctx, rollback, err)
		uc.observe(domain.TransactionTypeRollback, domain.TransactionStatusFailed, start)
		return nil, err
	}

	uc.observe(domain.TransactionTypeRollback, domain.TransactionStatusApplied, start)
	return rollback, nil
}

func (uc *TransactionUseCase) rollbackTx(ctx context.Context, rollback *domain.Transaction, input RollbackInput) error {
	rollback.ID = uc.idGen.Generate()
	rollback.Status = domain.TransactionStatusPending

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()

	lockStart := time.Now()
	userAccount, err := uc.accountRepo.GetForUpdate(ctx, tx, rollback.UserID, rollback.Currency)
	if err != nil {
		return err
	}

	clearingAccount, err := uc.accountRepo.GetForUpdate(ctx, tx, domain.SystemUserID, rollback.Currency)
	if err != nil {
		return err
	}
	uc.observeLockWait(lockStart)

	rollback.AccountID = userAccount.ID

	// Re-read the original under lock. A concurrent rollback that won
	// the race has already flipped its status by now.
	original, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, input.TransactionID)
	if err != nil {
		return err
	}

	if err := original.ValidateRollbackable(); err != nil {
		return err
	}

	// The rollback moves money the opposite way to the original.
	userDir := original.UserDirection().Opposite()
	if err := uc.validateSides(userAccount, clearingAccount, userDir, rollback.Amount); err != nil {
		return err
	}

	rollback.CreatedAt = now
	rollback.UpdatedAt = now

	if err := uc.transactionRepo.Create(ctx, tx, rollback); err != nil {
		return err
	}

	if err := uc.writeEntryPair(ctx, tx, rollback, userAccount, clearingAccount, userDir, now); err != nil {
		return err
	}

	if err := rollback.TransitionTo(domain.TransactionStatusApplied); err != nil {
		return err
	}

	if err := uc.transactionRepo.UpdateStatus(ctx, tx, rollback.ID, rollback.Status, now); err != nil {
		return err
	}

	if err := original.TransitionTo(domain.TransactionStatusRolledBack); err != nil {
		return err
	}

	if err := uc.transactionRepo.UpdateStatus(ctx, tx, original.ID, original.Status, now); err != nil {
		return err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   rollback.ID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeTransactionRolledBack,
		Payload: domain.EventPayload(domain.TransactionRolledBackEvent{
			RollbackTransactionID: rollback.ID,
			OriginalTransactionID: original.ID,
			Amount:                rollback.Money().Decimal().String(),
			Currency:              rollback.Currency.String(),
		}),
		Status:    domain.OutboxStatusPending,
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// lockUserAccount locks the user's account row, creating the account on
// first use. The insert happens inside the caller's transaction, so the
// re-read lock below waits out any concurrent creator.
func (uc *TransactionUseCase) lockUserAccount(
	ctx context.Context,
	tx Transaction,
	userID string,
	currency domain.Currency,
	now time.Time,
) (*domain.Account, error) {
	account, err := uc.accountRepo.GetForUpdate(ctx, tx, userID, currency)
	if err == nil {
		return account, nil
	}

	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	created := &domain.Account{
		ID:        uc.idGen.Generate(),
		UserID:    userID,
		Currency:  currency,
		Kind:      domain.AccountKindUser,
		Status:    domain.AccountStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.accountRepo.CreateTx(ctx, tx, created); err != nil {
		if !errors.Is(err, domain.ErrAccountExists) {
			return nil, err
		}
		// Lost the creation race, the other side's row is locked below.
		return uc.accountRepo.GetForUpdate(ctx, tx, userID, currency)
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   created.ID,
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeAccountCreated,
		Payload: domain.EventPayload(domain.AccountCreatedEvent{
			AccountID: created.ID,
			UserID:    created.UserID,
			Currency:  created.Currency.String(),
			Kind:      string(created.Kind),
		}),
		Status:    domain.OutboxStatusPending,
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return uc.accountRepo.GetForUpdate(ctx, tx, userID, currency)
}

func (uc *TransactionUseCase) validateSides(
	userAccount, clearingAccount *domain.Account,
	userDir domain.EntryDirection,
	amount int64,
) error {
	if userAccount.Currency != clearingAccount.Currency {
		return domain.ErrCurrencyMismatch
	}

	if userDir == domain.EntryDirectionDebit {
		if err := userAccount.ValidateDebit(amount); err != nil {
			return err
		}
		return clearingAccount.ValidateCredit(amount)
	}

	if err := userAccount.ValidateCredit(amount); err != nil {
		return err
	}
	return clearingAccount.ValidateDebit(amount)
}

// writeEntryPair writes the user-side entry then the clearing-side
// entry and moves both balances. Seq keeps the user side first when
// entries are read back.
func (uc *TransactionUseCase) writeEntryPair(
	ctx context.Context,
	tx Transaction,
	txn *domain.Transaction,
	userAccount, clearingAccount *domain.Account,
	userDir domain.EntryDirection,
	now time.Time,
) error {
	if err := uc.writeEntry(ctx, tx, txn, userAccount, userDir, 1, now); err != nil {
		return err
	}
	return uc.writeEntry(ctx, tx, txn, clearingAccount, userDir.Opposite(), 2, now)
}

func (uc *TransactionUseCase) writeEntry(
	ctx context.Context,
	tx Transaction,
	txn *domain.Transaction,
	account *domain.Account,
	direction domain.EntryDirection,
	seq int32,
	now time.Time,
) error {
	newBalance := account.ApplyCredit(txn.Amount)
	if direction == domain.EntryDirectionDebit {
		newBalance = account.ApplyDebit(txn.Amount)
	}

	entry := &domain.Entry{
		ID:              uc.idGen.Generate(),
		TransactionID:   txn.ID,
		AccountID:       account.ID,
		Currency:        txn.Currency,
		Direction:       direction,
		Amount:          txn.Amount,
		PreviousBalance: account.Balance,
		CurrentBalance:  newBalance,
		AccountVersion:  account.Version + 1,
		Seq:             seq,
		CreatedAt:       now,
	}

	if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
		return err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, account.Version+1, now); err != nil {
		return err
	}

	account.Balance = newBalance
	account.Version++
	account.UpdatedAt = now

	return nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListTransactionsInput represents input for listing a user's transactions.
type ListTransactionsInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListTransactions lists a user's transactions, newest first.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.transactionRepo.ListByUser(ctx, input.UserID, limit, offset)
}

// ListEntries lists the entry pair of a transaction in seq order.
func (uc *TransactionUseCase) ListEntries(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	if _, err := uc.transactionRepo.GetByID(ctx, transactionID); err != nil {
		return nil, err
	}
	return uc.entryRepo.GetByTransaction(ctx, transactionID)
}

// ListEvents lists the outbox events recorded for a transaction,
// oldest first. Events stay visible after publishing.
func (uc *TransactionUseCase) ListEvents(ctx context.Context, transactionID string, limit, offset int) ([]*domain.OutboxEvent, error) {
	if _, err := uc.transactionRepo.GetByID(ctx, transactionID); err != nil {
		return nil, err
	}
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.outboxRepo.GetByAggregate(ctx, domain.AggregateTypeTransaction, transactionID, limit, offset)
}

func (uc *TransactionUseCase) do(ctx context.Context, operation string, fn func() error) error {
	if uc.retrier == nil {
		return fn()
	}
	return uc.retrier.Do(ctx, operation, fn)
}

// recordFailure keeps a failed transaction row for business-rule
// rejections that happened after a balance was consulted. Best effort:
// the original error is what the caller sees either way.
func (uc *TransactionUseCase) recordFailure(ctx context.Context, txn *domain.Transaction, cause error) {
	if !errors.Is(cause, domain.ErrInsufficientFunds) && !errors.Is(cause, domain.ErrAccountLocked) {
		return
	}

	failed := *txn
	failed.ID = uc.idGen.Generate()
	failed.Status = domain.TransactionStatusFailed
	failed.FailureReason = cause.Error()
	now := time.Now().UTC()
	failed.CreatedAt = now
	failed.UpdatedAt = now

	_ = uc.transactionRepo.CreateStandalone(ctx, &failed)
}

func (uc *TransactionUseCase) observe(txnType domain.TransactionType, status domain.TransactionStatus, start time.Time) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.TransactionsTotal.WithLabelValues(string(txnType), string(status)).Inc()
	uc.metrics.TransactionDuration.WithLabelValues(string(txnType)).Observe(time.Since(start).Seconds())
}

func (uc *TransactionUseCase) observeLockWait(start time.Time) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.LockWait.Observe(time.Since(start).Seconds())
}
