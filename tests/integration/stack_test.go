package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	adapterhttp "github.com/AlHudnitskii/walletledger/internal/adapter/http"
	"github.com/AlHudnitskii/walletledger/internal/adapter/http/handler"
	"github.com/AlHudnitskii/walletledger/internal/adapter/repository/postgres"
	"github.com/AlHudnitskii/walletledger/internal/infrastructure/rates"
	"github.com/AlHudnitskii/walletledger/internal/usecase"
)

// stack wires repositories, use cases, handlers and the router the same
// way cmd/server does, minus the process-level pieces. Tests go through
// the router and reach into the repositories to verify what the API
// reported.
type stack struct {
	router           http.Handler
	accountRepo      *postgres.AccountRepository
	entryRepo        *postgres.EntryRepository
	transactionRepo  *postgres.TransactionRepository
	outboxRepo       *postgres.OutboxRepository
	userUC           *usecase.UserUseCase
	transactionUC    *usecase.TransactionUseCase
	reconciliationUC *usecase.ReconciliationUseCase
}

// newStack builds the full service on top of pool. store and
// redisClient may be nil; tests that do not exercise idempotency run
// against Postgres alone.
func newStack(t *testing.T, pool *pgxpool.Pool, store usecase.IdempotencyStore, redisClient *goredis.Client) *stack {
	t.Helper()

	txManager := postgres.NewTxManager(pool)
	userRepo := postgres.NewUserRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier()

	userUC := usecase.NewUserUseCase(txManager, userRepo, accountRepo, outboxRepo, idGen)
	accountUC := usecase.NewAccountUseCase(accountRepo, entryRepo)
	transactionUC := usecase.NewTransactionUseCase(
		txManager, accountRepo, transactionRepo, entryRepo, userRepo, outboxRepo, idGen,
	).WithRetrier(retrier)
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, entryRepo, ledgerRepo)
	reportUC := usecase.NewReportUseCase(reportRepo, rates.NewStaticProvider())

	router := adapterhttp.NewRouter(adapterhttp.RouterConfig{
		UserHandler:        handler.NewUserHandler(userUC),
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		LedgerHandler:      handler.NewLedgerHandler(reconciliationUC),
		ReportHandler:      handler.NewReportHandler(reportUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:   store,
	})

	return &stack{
		router:           router,
		accountRepo:      accountRepo,
		entryRepo:        entryRepo,
		transactionRepo:  transactionRepo,
		outboxRepo:       outboxRepo,
		userUC:           userUC,
		transactionUC:    transactionUC,
		reconciliationUC: reconciliationUC,
	}
}

// request sends a JSON request through the router. header may be nil.
func (s *stack) request(t *testing.T, method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	r := httptest.NewRequest(method, path, &buf)
	r.Header.Set("Content-Type", "application/json")
	for k, vals := range header {
		for _, v := range vals {
			r.Header.Set(k, v)
		}
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, r)
	return w
}

// decodeBody unmarshals a recorded response body into v.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "body: %s", w.Body.String())
}
