package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/AlHudnitskii/walletledger/internal/adapter/http/dto"
	"github.com/AlHudnitskii/walletledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error)
	ReconcileAll(ctx context.Context) ([]*usecase.ReconciliationResult, error)
}

// LedgerHandler handles ledger-wide integrity checks. The checks only
// report; nothing here mutates balances or entries.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// CheckConsistency verifies the closed-system invariants and returns
// the full report. An inconsistent ledger is still a successful check,
// so the report comes back with 200 and consistent=false.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil && !errors.Is(err, usecase.ErrInconsistentLedger) {
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyReportFromUseCase(report))
}

// Reconcile compares every stored balance against its entry projection.
func (h *LedgerHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	results, err := h.ledgerUC.ReconcileAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to reconcile", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationResultsFromUseCase(results))
}
