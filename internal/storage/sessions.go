package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meltforce/ironlog/internal/models"
)

// CreateSession starts a workout session for a program day, snapshotting the
// day's exercises, inside one transaction. Fails with ErrSessionInProgress
// when any session is still open, ErrNotFound for an unknown day and
// ErrRestDay for a rest day.
//
// The in-progress check runs inside the same transaction as the insert, and
// the partial unique index on workout_sessions (completed_at IS NULL) backs
// it up: a concurrent start that slips past the check surfaces as a unique
// violation and reports the same conflict.
func (db *DB) CreateSession(ctx context.Context, programDayID uuid.UUID) (uuid.UUID, error) {
	var sessionID uuid.UUID
	err := db.InTx(ctx, func(tx pgx.Tx) error {
		var existing uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT id FROM workout_sessions WHERE completed_at IS NULL LIMIT 1`).Scan(&existing)
		if err == nil {
			return ErrSessionInProgress
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("checking in-progress session: %w", err)
		}

		var (
			isRestDay bool
			dayOfWeek int
			dayLabel  string
		)
		err = tx.QueryRow(ctx,
			`SELECT is_rest_day, day_of_week, label FROM program_days WHERE id = $1`,
			programDayID).Scan(&isRestDay, &dayOfWeek, &dayLabel)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("querying program day: %w", err)
		}
		if isRestDay {
			return ErrRestDay
		}

		// Day context is snapshotted alongside the exercises: program_day_id
		// is a soft reference, so program edits cannot orphan the session.
		err = tx.QueryRow(ctx,
			`INSERT INTO workout_sessions (program_day_id, day_of_week, day_label)
			 VALUES ($1, $2, $3) RETURNING id`,
			programDayID, dayOfWeek, dayLabel).Scan(&sessionID)
		if isUniqueViolation(err) {
			return ErrSessionInProgress
		}
		if err != nil {
			return fmt.Errorf("inserting workout session: %w", err)
		}

		// Snapshot the day's exercises. Targets and resolved rest are copied
		// so later program edits cannot mutate an in-flight session.
		_, err = tx.Exec(ctx,
			`INSERT INTO session_exercises
			   (workout_session_id, program_exercise_id, exercise_id, sort_order,
			    target_sets, rest_seconds, superset_with_next)
			 SELECT $1, pe.id, pe.exercise_id, pe.sort_order,
			        pe.target_sets, COALESCE(pe.rest_seconds, e.default_rest_seconds),
			        pe.superset_with_next
			 FROM program_exercises pe
			 JOIN exercises e ON e.id = pe.exercise_id
			 WHERE pe.program_day_id = $2`,
			sessionID, programDayID)
		if err != nil {
			return fmt.Errorf("snapshotting session exercises: %w", err)
		}
		return nil
	})
	return sessionID, err
}

// CurrentSessionID returns the id of the in-progress session, or nil when
// none exists. The started_at ordering is defensive against an index being
// dropped and duplicates slipping in.
func (db *DB) CurrentSessionID(ctx context.Context) (*uuid.UUID, error) {
	var id uuid.UUID
	err := db.Pool.QueryRow(ctx,
		`SELECT id FROM workout_sessions
		 WHERE completed_at IS NULL
		 ORDER BY started_at DESC
		 LIMIT 1`).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying current session: %w", err)
	}
	return &id, nil
}

// GetSession retrieves a workout session row.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (models.SessionRow, error) {
	var s models.SessionRow
	err := db.Pool.QueryRow(ctx,
		`SELECT id, program_day_id, started_at, completed_at, notes
		 FROM workout_sessions WHERE id = $1`, id).
		Scan(&s.ID, &s.ProgramDayID, &s.StartedAt, &s.CompletedAt, &s.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.SessionRow{}, ErrNotFound
	}
	if err != nil {
		return models.SessionRow{}, fmt.Errorf("querying workout session: %w", err)
	}
	return s, nil
}

// CompleteSession marks a session complete: every still-pending exercise is
// bulk-skipped and completed_at is stamped, all in one transaction. Fails
// with ErrNotFound for an unknown session and ErrSessionCompleted when the
// session is already finished.
func (db *DB) CompleteSession(ctx context.Context, id uuid.UUID) error {
	return db.InTx(ctx, func(tx pgx.Tx) error {
		var completedAt *string
		err := tx.QueryRow(ctx,
			`SELECT completed_at::text FROM workout_sessions WHERE id = $1`, id).Scan(&completedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("querying workout session: %w", err)
		}
		if completedAt != nil {
			return ErrSessionCompleted
		}

		if _, err := tx.Exec(ctx,
			`UPDATE session_exercises
			 SET status = 'skipped', completed_at = NOW()
			 WHERE workout_session_id = $1 AND status = 'pending'`, id); err != nil {
			return fmt.Errorf("skipping pending exercises: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE workout_sessions SET completed_at = NOW() WHERE id = $1`, id); err != nil {
			return fmt.Errorf("completing workout session: %w", err)
		}
		return nil
	})
}
