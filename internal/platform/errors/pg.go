package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// sqlstates maps the SQLSTATEs the submissions store can hit onto codes
// anything else from postgres is ErrorCodeDB
var sqlstates = map[string]ErrorCode{
	pgUniqueViolation: ErrorCodeDuplicateKey,
	"23502":           ErrorCodeValidation, // not null
	"23514":           ErrorCodeValidation, // check
	"22001":           ErrorCodeInvalidArgument,
	"22P02":           ErrorCodeInvalidArgument,
	"42P01":           ErrorCodeUnavailable, // schema not migrated
	"57P01":           ErrorCodeUnavailable,
	"57P03":           ErrorCodeUnavailable,
}

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	ok := stderrs.As(err, &pgErr)
	return pgErr, ok
}

// IsSQLState reports whether a *pgconn.PgError with code sits anywhere in err's chain
func IsSQLState(err error, code string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == code
}

// IsDuplicateKey is the unique violation a racing insert of the same text hash loses with
func IsDuplicateKey(err error) bool { return IsSQLState(err, pgUniqueViolation) }

// DBErrorCode maps a postgres error onto an ErrorCode, ok is false for non postgres errors
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := pgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	if code, known := sqlstates[pgErr.Code]; known {
		return code, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err under msg with its mapped code, foreign errors become ErrorCodeDB
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}
