package storage

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors translated to API errors by the workout service.
var (
	// ErrNotFound means the referenced row does not exist, or does not
	// belong to the given parent.
	ErrNotFound = errors.New("not found")

	// ErrSessionInProgress means a workout session with no completed_at
	// already exists. Only one session may be in progress at a time.
	ErrSessionInProgress = errors.New("a workout session is already in progress")

	// ErrSessionCompleted means the session already has a completed_at.
	ErrSessionCompleted = errors.New("workout session is already completed")

	// ErrRestDay means a workout cannot be started on a rest day.
	ErrRestDay = errors.New("cannot start workout on a rest day")
)

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
