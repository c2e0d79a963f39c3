package postgres

import (
	"context"
	"errors"
	"time"

	"log/slog"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AlHudnitskii/walletledger/internal/infrastructure/logging"
)

// PostgreSQL error codes for retryable errors. Lock timeouts (55P03)
// are deliberately absent: a timed-out lock wait means a user or
// clearing account is contended and the caller must decide, not loop.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
)

// Retrier implements usecase.Retrier with exponential backoff.
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          *slog.Logger
}

// NewRetrier creates a new PostgreSQL retrier with default settings.
func NewRetrier() *Retrier {
	return &Retrier{
		maxRetries:      3,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     1 * time.Second,
		maxElapsedTime:  10 * time.Second,
		logger:          logging.WithComponent(nil, "retrier"),
	}
}

// WithLogger returns the retrier logging through the given logger.
func (r *Retrier) WithLogger(logger *slog.Logger) *Retrier {
	r.logger = logging.WithComponent(logger, "retrier")
	return r
}

// Do executes fn with exponential backoff on retryable errors. The
// operation name only labels log lines; it does not affect retry
// behavior.
func (r *Retrier) Do(ctx context.Context, operation string, fn func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	retries := 0
	attempt := func() error {
		err := fn()
		switch {
		case err == nil:
			return nil
		case !isRetryableError(err):
			return backoff.Permanent(err)
		}

		retries++
		if retries > r.maxRetries {
			return backoff.Permanent(err)
		}
		return err
	}

	logRetry := func(err error, wait time.Duration) {
		r.logger.Warn("retryable database error, retrying",
			"operation", operation,
			"error", err,
			"retry", retries,
			"wait", wait,
		)
	}

	return backoff.RetryNotify(attempt, backoff.WithContext(b, ctx), logRetry)
}

// isRetryableError checks if a PostgreSQL error should trigger a retry.
func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrDeadlock, pgErrSerializationFailure:
			return true
		}
	}
	return false
}
