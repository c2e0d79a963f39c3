package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AlHudnitskii/walletledger/internal/adapter/http/handler"
	apimiddleware "github.com/AlHudnitskii/walletledger/internal/adapter/http/middleware"
	"github.com/AlHudnitskii/walletledger/internal/domain"
	"github.com/AlHudnitskii/walletledger/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"user_id":"user-1","currency":"USD","amount":"10.50"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/deposit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
	if !store.updateCalled {
		t.Fatalf("expected successful response to be stored")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/users/",
		"GET /api/v1/users/{id}",
		"PATCH /api/v1/users/{id}/status",
		"GET /api/v1/users/{id}/accounts",
		"GET /api/v1/users/{id}/balances/{currency}",
		"GET /api/v1/users/{id}/transactions",
		"GET /api/v1/accounts/{id}",
		"GET /api/v1/accounts/{id}/entries",
		"POST /api/v1/transactions/deposit",
		"POST /api/v1/transactions/withdraw",
		"POST /api/v1/transactions/{id}/rollback",
		"GET /api/v1/transactions/{id}/events",
		"GET /api/v1/ledger/consistency",
		"GET /api/v1/ledger/reconciliation",
		"GET /api/v1/reports/weekly",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		UserHandler:        handler.NewUserHandler(stubUserService{}),
		AccountHandler:     handler.NewAccountHandler(stubAccountService{}),
		TransactionHandler: handler.NewTransactionHandler(stubTransactionService{}),
		LedgerHandler:      handler.NewLedgerHandler(stubLedgerService{}),
		ReportHandler:      handler.NewReportHandler(stubReportService{}),
		HealthHandler:      &handler.HealthHandler{},
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubUserService struct{}

func (stubUserService) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
	return &domain.User{ID: "user", Name: input.Name}, nil
}

func (stubUserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id}, nil
}

func (stubUserService) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return []*domain.User{}, nil
}

func (stubUserService) SetUserStatus(ctx context.Context, input usecase.SetUserStatusInput) (*domain.User, error) {
	return &domain.User{ID: input.UserID, Status: input.Status}, nil
}

type stubAccountService struct{}

func (stubAccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return &domain.Account{ID: id}, nil
}

func (stubAccountService) GetUserAccounts(ctx context.Context, userID string) ([]*domain.Account, error) {
	return []*domain.Account{}, nil
}

func (stubAccountService) GetBalance(ctx context.Context, userID string, currency domain.Currency) (domain.Money, error) {
	return domain.Money{Currency: currency}, nil
}

func (stubAccountService) GetHistoricalBalance(ctx context.Context, accountID string, at time.Time) (domain.Money, error) {
	return domain.Money{Currency: domain.CurrencyUSD}, nil
}

func (stubAccountService) GetEntriesByAccount(ctx context.Context, input usecase.GetEntriesByAccountInput) ([]*domain.Entry, error) {
	return []*domain.Entry{}, nil
}

func (stubAccountService) SetAccountStatus(ctx context.Context, input usecase.SetAccountStatusInput) (*domain.Account, error) {
	return &domain.Account{ID: input.AccountID, Status: input.Status}, nil
}

func (stubAccountService) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return []*domain.Account{}, nil
}

type stubTransactionService struct{}

func (stubTransactionService) Deposit(ctx context.Context, input usecase.DepositInput) (*domain.Transaction, error) {
	return &domain.Transaction{ID: "txn", UserID: input.UserID}, nil
}

func (stubTransactionService) Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.Transaction, error) {
	return &domain.Transaction{ID: "txn", UserID: input.UserID}, nil
}

func (stubTransactionService) Rollback(ctx context.Context, input usecase.RollbackInput) (*domain.Transaction, error) {
	return &domain.Transaction{ID: "rollback"}, nil
}

func (stubTransactionService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return &domain.Transaction{ID: id}, nil
}

func (stubTransactionService) ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error) {
	return []*domain.Transaction{}, nil
}

func (stubTransactionService) ListEntries(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	return []*domain.Entry{}, nil
}

func (stubTransactionService) ListEvents(ctx context.Context, transactionID string, limit, offset int) ([]*domain.OutboxEvent, error) {
	return []*domain.OutboxEvent{}, nil
}

type stubLedgerService struct{}

func (stubLedgerService) CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error) {
	return &usecase.ConsistencyReport{Consistent: true}, nil
}

func (stubLedgerService) ReconcileAll(ctx context.Context) ([]*usecase.ReconciliationResult, error) {
	return []*usecase.ReconciliationResult{}, nil
}

type stubReportService struct{}

func (stubReportService) WeeklyReport(ctx context.Context, weeksBack int) ([]*usecase.WeeklyReportEntry, error) {
	return []*usecase.WeeklyReportEntry{}, nil
}

type stubIdempotencyStore struct {
	checkCalled  bool
	updateCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.updateCalled = true
	return nil
}

func (s *stubIdempotencyStore) Release(ctx context.Context, key string) error {
	return nil
}
