package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AlHudnitskii/walletledger/internal/adapter/http/dto"
	"github.com/AlHudnitskii/walletledger/internal/domain"
)

// lockTimeoutRetryAfter is the hint sent with lock-timeout responses.
// The operation was not applied, so the client may simply retry.
const lockTimeoutRetryAfter = "1"

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError maps err to an HTTP status and writes it. Lock
// timeouts additionally carry a Retry-After header.
func writeDomainError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, domain.ErrLockTimeout) {
		w.Header().Set("Retry-After", lockTimeoutRetryAfter)
	}
	writeError(w, mapDomainError(err), message, err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrCurrencyMismatch),
		errors.Is(err, domain.ErrUnknownCurrency),
		errors.Is(err, domain.ErrInvalidUserName),
		errors.Is(err, domain.ErrMetadataTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUserBlocked),
		errors.Is(err, domain.ErrNotTransactionOwner),
		errors.Is(err, domain.ErrSystemUser):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyRolledBack),
		errors.Is(err, domain.ErrTransactionNotApplied),
		errors.Is(err, domain.ErrRollbackNotReversible),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrAccountExists),
		errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrAccountLocked),
		errors.Is(err, domain.ErrLockTimeout):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseTimeQuery parses an RFC 3339 query parameter. The zero time is
// returned when the parameter is absent.
func parseTimeQuery(r *http.Request, key string) (time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, val)
}
