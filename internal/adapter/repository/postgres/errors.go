package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AlHudnitskii/walletledger/internal/domain"
)

// PostgreSQL error codes surfaced as domain errors.
const (
	pgErrUniqueViolation  = "23505"
	pgErrLockNotAvailable = "55P03"
)

const (
	constraintAccountPerCurrency = "accounts_user_currency_unique"
	constraintRollbackOnce       = "idx_transactions_reverses_once"
)

// translateConstraintError maps unique violations onto the domain error
// for the constraint that fired. Lock waits that exceed lock_timeout
// become ErrLockTimeout; the statement did not run, so callers may
// retry the whole operation.
func translateConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgErrLockNotAvailable:
		return domain.ErrLockTimeout
	case pgErrUniqueViolation:
		switch pgErr.ConstraintName {
		case constraintAccountPerCurrency:
			return domain.ErrAccountExists
		case constraintRollbackOnce:
			return domain.ErrAlreadyRolledBack
		}
	}

	return err
}

func isLockTimeout(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrLockNotAvailable
}
