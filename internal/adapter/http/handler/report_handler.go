package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/AlHudnitskii/walletledger/internal/adapter/http/dto"
	"github.com/AlHudnitskii/walletledger/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	WeeklyReport(ctx context.Context, weeksBack int) ([]*usecase.WeeklyReportEntry, error)
}

// ReportHandler handles reporting HTTP requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Weekly returns per-week activity aggregates, most recent week first.
// The weeks parameter selects how many weeks back to cover.
func (h *ReportHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	weeks := parseIntQuery(r, "weeks", usecase.DefaultReportWeeks)

	entries, err := h.reportUC.WeeklyReport(r.Context(), weeks)
	if err != nil {
		writeDomainError(w, err, "failed to build report")
		return
	}

	writeJSON(w, http.StatusOK, dto.WeeklyReportResponse{
		Weeks:       entries,
		GeneratedAt: time.Now().UTC(),
	})
}
