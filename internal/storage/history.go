package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meltforce/ironlog/internal/models"
)

// LastSession finds the most recent completed or partial session for an
// exercise and returns its sets, or nil when the exercise has never been
// performed. excludeSessionID removes the in-progress session from
// consideration when building the "last time" preview.
func (db *DB) LastSession(ctx context.Context, exerciseID uuid.UUID, excludeSessionID *uuid.UUID) (*models.LastSession, error) {
	query := `SELECT se.id, se.completed_at, se.workout_session_id
		 FROM session_exercises se
		 WHERE se.exercise_id = $1
		   AND se.status IN ('completed', 'partial')`
	args := []any{exerciseID}
	if excludeSessionID != nil {
		query += ` AND se.workout_session_id != $2`
		args = append(args, *excludeSessionID)
	}
	query += ` ORDER BY se.completed_at DESC NULLS LAST LIMIT 1`

	return db.lastSessionFrom(ctx, query, args)
}

// PreviousSession finds the latest completed or partial session for an
// exercise strictly earlier than the given completion time. History
// progression is always relative to the session immediately before an entry,
// not to the present.
func (db *DB) PreviousSession(ctx context.Context, exerciseID uuid.UUID, before time.Time) (*models.LastSession, error) {
	query := `SELECT se.id, se.completed_at, se.workout_session_id
		 FROM session_exercises se
		 WHERE se.exercise_id = $1
		   AND se.status IN ('completed', 'partial')
		   AND se.completed_at < $2
		 ORDER BY se.completed_at DESC NULLS LAST
		 LIMIT 1`
	return db.lastSessionFrom(ctx, query, []any{exerciseID, before})
}

func (db *DB) lastSessionFrom(ctx context.Context, query string, args []any) (*models.LastSession, error) {
	var (
		sessionExerciseID uuid.UUID
		last              models.LastSession
	)
	err := db.Pool.QueryRow(ctx, query, args...).
		Scan(&sessionExerciseID, &last.Date, &last.WorkoutSessionID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying last session: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT set_number, weight_lbs, reps, rpe, rest_duration_seconds, rest_was_extended
		 FROM set_logs
		 WHERE session_exercise_id = $1
		 ORDER BY set_number`, sessionExerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying last session sets: %w", err)
	}
	defer rows.Close()

	last.Sets = []models.LastSessionSet{}
	for rows.Next() {
		var s models.LastSessionSet
		if err := rows.Scan(&s.SetNumber, &s.WeightLbs, &s.Reps, &s.RPE,
			&s.RestDurationSeconds, &s.RestWasExtended); err != nil {
			return nil, fmt.Errorf("scanning last session set: %w", err)
		}
		last.Sets = append(last.Sets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &last, nil
}

// HistoryEntryRow is one page entry of an exercise's session history.
type HistoryEntryRow struct {
	SessionExerciseID uuid.UUID
	Date              *time.Time
	Status            string
}

// ExerciseHistoryCount returns the total number of completed or partial
// sessions for an exercise.
func (db *DB) ExerciseHistoryCount(ctx context.Context, exerciseID uuid.UUID) (int, error) {
	var total int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM session_exercises
		 WHERE exercise_id = $1 AND status IN ('completed', 'partial')`,
		exerciseID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("counting exercise history: %w", err)
	}
	return total, nil
}

// ExerciseHistoryPage returns one page of an exercise's completed or partial
// sessions, newest first.
func (db *DB) ExerciseHistoryPage(ctx context.Context, exerciseID uuid.UUID, limit, offset int) ([]HistoryEntryRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, completed_at, status
		 FROM session_exercises
		 WHERE exercise_id = $1 AND status IN ('completed', 'partial')
		 ORDER BY completed_at DESC NULLS LAST
		 LIMIT $2 OFFSET $3`,
		exerciseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying exercise history: %w", err)
	}
	defer rows.Close()

	var result []HistoryEntryRow
	for rows.Next() {
		var e HistoryEntryRow
		if err := rows.Scan(&e.SessionExerciseID, &e.Date, &e.Status); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// WeekSessionRow is a workout session with its snapshotted day context, for
// the weekly history view.
type WeekSessionRow struct {
	models.SessionRow
	DayOfWeek int
	DayLabel  string
}

// SessionsInRange returns sessions started within [start, end], ordered by
// start time. Day context comes from the session snapshot, not from
// program_days: the program may have been replaced since.
func (db *DB) SessionsInRange(ctx context.Context, start, end time.Time) ([]WeekSessionRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, program_day_id, started_at, completed_at, notes,
		        day_of_week, day_label
		 FROM workout_sessions
		 WHERE started_at >= $1 AND started_at <= $2
		 ORDER BY started_at`, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying sessions in range: %w", err)
	}
	defer rows.Close()

	var result []WeekSessionRow
	for rows.Next() {
		var s WeekSessionRow
		if err := rows.Scan(&s.ID, &s.ProgramDayID, &s.StartedAt, &s.CompletedAt, &s.Notes,
			&s.DayOfWeek, &s.DayLabel); err != nil {
			return nil, fmt.Errorf("scanning week session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// CompletedSessions returns all finished sessions ordered by completion
// time, oldest first. Used by the export tool.
func (db *DB) CompletedSessions(ctx context.Context) ([]models.SessionRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, program_day_id, started_at, completed_at, notes
		 FROM workout_sessions
		 WHERE completed_at IS NOT NULL
		 ORDER BY completed_at`)
	if err != nil {
		return nil, fmt.Errorf("querying completed sessions: %w", err)
	}
	defer rows.Close()

	var result []models.SessionRow
	for rows.Next() {
		var s models.SessionRow
		if err := rows.Scan(&s.ID, &s.ProgramDayID, &s.StartedAt, &s.CompletedAt, &s.Notes); err != nil {
			return nil, fmt.Errorf("scanning completed session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
