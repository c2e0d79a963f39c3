package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/AlHudnitskii/walletledger/internal/adapter/http/dto"
	"github.com/AlHudnitskii/walletledger/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/accounts?limit=50", nil)
	if got := parseIntQuery(req, "limit", 10); got != 50 {
		t.Fatalf("expected limit=50, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/accounts?limit=invalid", nil)
	if got := parseIntQuery(req, "limit", 10); got != 10 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "limit", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestParseTimeQuery(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	req := httptest.NewRequest(http.MethodGet, "/balance?at="+url.QueryEscape(at.Format(time.RFC3339)), nil)

	got, err := parseTimeQuery(req, "at")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(at) {
		t.Fatalf("expected %v, got %v", at, got)
	}

	req = httptest.NewRequest(http.MethodGet, "/balance", nil)
	got, err = parseTimeQuery(req, "at")
	if err != nil || !got.IsZero() {
		t.Fatalf("expected zero time when missing, got %v, %v", got, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/balance?at=yesterday", nil)
	if _, err := parseTimeQuery(req, "at"); err == nil {
		t.Fatal("expected error for malformed timestamp")
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"transaction not found", domain.ErrTransactionNotFound, http.StatusNotFound},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"amount too large", domain.ErrAmountTooLarge, http.StatusBadRequest},
		{"currency mismatch", domain.ErrCurrencyMismatch, http.StatusBadRequest},
		{"unknown currency", domain.ErrUnknownCurrency, http.StatusBadRequest},
		{"invalid user name", domain.ErrInvalidUserName, http.StatusBadRequest},
		{"metadata too large", domain.ErrMetadataTooLarge, http.StatusBadRequest},
		{"user blocked", domain.ErrUserBlocked, http.StatusForbidden},
		{"not transaction owner", domain.ErrNotTransactionOwner, http.StatusForbidden},
		{"system user", domain.ErrSystemUser, http.StatusForbidden},
		{"already rolled back", domain.ErrAlreadyRolledBack, http.StatusConflict},
		{"not applied", domain.ErrTransactionNotApplied, http.StatusConflict},
		{"rollback of rollback", domain.ErrRollbackNotReversible, http.StatusConflict},
		{"account exists", domain.ErrAccountExists, http.StatusConflict},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"account locked", domain.ErrAccountLocked, http.StatusConflict},
		{"lock timeout", domain.ErrLockTimeout, http.StatusConflict},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{"wrapped sentinel", fmt.Errorf("deposit: %w", domain.ErrInsufficientFunds), http.StatusUnprocessableEntity},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad request", "detail")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "bad request" {
		t.Fatalf("expected error message to propagate, got %+v", resp)
	}
}

func TestWriteDomainError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeDomainError(rr, domain.ErrLockTimeout, "failed to withdraw")

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header on lock timeout")
	}

	rr = httptest.NewRecorder()
	writeDomainError(rr, domain.ErrInsufficientFunds, "failed to withdraw")

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if rr.Header().Get("Retry-After") != "" {
		t.Fatal("unexpected Retry-After header")
	}
}
