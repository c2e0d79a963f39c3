package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/AlHudnitskii/walletledger/internal/adapter/http/dto"
	"github.com/AlHudnitskii/walletledger/internal/domain"
	"github.com/AlHudnitskii/walletledger/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	GetUserAccounts(ctx context.Context, userID string) ([]*domain.Account, error)
	GetBalance(ctx context.Context, userID string, currency domain.Currency) (domain.Money, error)
	GetHistoricalBalance(ctx context.Context, accountID string, at time.Time) (domain.Money, error)
	GetEntriesByAccount(ctx context.Context, input usecase.GetEntriesByAccountInput) ([]*domain.Entry, error)
	SetAccountStatus(ctx context.Context, input usecase.SetAccountStatusInput) (*domain.Account, error)
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get account")
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// ListByUser lists one user's accounts across currencies.
func (h *AccountHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	accounts, err := h.accountUC.GetUserAccounts(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, "failed to list accounts")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

// List lists accounts across all users.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	accounts, err := h.accountUC.ListAccounts(r.Context(), usecase.ListAccountsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeDomainError(w, err, "failed to list accounts")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

// GetBalance retrieves a user's balance in one currency. A missing
// account reads as zero rather than 404: every supported currency is a
// valid wallet that simply has not moved yet.
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	currency, err := domain.ParseCurrency(chi.URLParam(r, "currency"))
	if err != nil {
		writeDomainError(w, err, "invalid currency")
		return
	}

	balance, err := h.accountUC.GetBalance(r.Context(), userID, currency)
	if err != nil {
		writeDomainError(w, err, "failed to get balance")
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromMoney(balance))
}

// GetHistoricalBalance replays an account's balance at a point in time.
// Without an "at" parameter it reports the current stored balance.
func (h *AccountHandler) GetHistoricalBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	at, err := parseTimeQuery(r, "at")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid at parameter", err.Error())
		return
	}

	if at.IsZero() {
		account, err := h.accountUC.GetAccount(r.Context(), id)
		if err != nil {
			writeDomainError(w, err, "failed to get balance")
			return
		}
		writeJSON(w, http.StatusOK, dto.BalanceFromMoney(account.Money()))
		return
	}

	balance, err := h.accountUC.GetHistoricalBalance(r.Context(), id, at)
	if err != nil {
		writeDomainError(w, err, "failed to get balance")
		return
	}

	resp := dto.BalanceFromMoney(balance)
	resp.At = &at
	writeJSON(w, http.StatusOK, resp)
}

// ListEntries lists an account's ledger entries, newest first.
func (h *AccountHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.accountUC.GetEntriesByAccount(r.Context(), usecase.GetEntriesByAccountInput{
		AccountID: id,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeDomainError(w, err, "failed to list entries")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}

// SetStatus locks or unlocks an account.
func (h *AccountHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.SetAccountStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.SetAccountStatus(r.Context(), usecase.SetAccountStatusInput{
		AccountID: id,
		Status:    domain.AccountStatus(req.Status),
	})
	if err != nil {
		writeDomainError(w, err, "failed to update account status")
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}
