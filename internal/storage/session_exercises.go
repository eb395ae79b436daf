package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meltforce/ironlog/internal/models"
)

const sessionExerciseColumns = `se.id, se.exercise_id, e.name, e.muscle_group,
	se.sort_order, se.target_sets, se.rest_seconds, se.superset_with_next,
	se.status, se.skip_reason, se.started_at, se.completed_at`

func scanSessionExercise(row pgx.Row) (models.SessionExerciseRow, error) {
	var se models.SessionExerciseRow
	err := row.Scan(&se.ID, &se.ExerciseID, &se.ExerciseName, &se.MuscleGroup,
		&se.SortOrder, &se.TargetSets, &se.RestSeconds, &se.SupersetWithNext,
		&se.Status, &se.SkipReason, &se.StartedAt, &se.CompletedAt)
	return se, err
}

// SessionExercises returns a session's exercises ordered by sort_order,
// joined with exercise display fields.
func (db *DB) SessionExercises(ctx context.Context, sessionID uuid.UUID) ([]models.SessionExerciseRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+sessionExerciseColumns+`
		 FROM session_exercises se
		 JOIN exercises e ON e.id = se.exercise_id
		 WHERE se.workout_session_id = $1
		 ORDER BY se.sort_order`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session exercises: %w", err)
	}
	defer rows.Close()

	var result []models.SessionExerciseRow
	for rows.Next() {
		se, err := scanSessionExercise(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session exercise: %w", err)
		}
		result = append(result, se)
	}
	return result, rows.Err()
}

// GetSessionExercise retrieves one session exercise, scoped to its session.
// An exercise belonging to a different session is ErrNotFound.
func (db *DB) GetSessionExercise(ctx context.Context, sessionID, sessionExerciseID uuid.UUID) (models.SessionExerciseRow, error) {
	se, err := scanSessionExercise(db.Pool.QueryRow(ctx,
		`SELECT `+sessionExerciseColumns+`
		 FROM session_exercises se
		 JOIN exercises e ON e.id = se.exercise_id
		 WHERE se.id = $1 AND se.workout_session_id = $2`,
		sessionExerciseID, sessionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.SessionExerciseRow{}, ErrNotFound
	}
	if err != nil {
		return models.SessionExerciseRow{}, fmt.Errorf("querying session exercise: %w", err)
	}
	return se, nil
}

// StartSessionExercise transitions a session exercise to in_progress.
func (db *DB) StartSessionExercise(ctx context.Context, id uuid.UUID) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE session_exercises
		 SET status = 'in_progress', started_at = NOW()
		 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("starting session exercise: %w", err)
	}
	return nil
}

// SkipSessionExercise transitions a session exercise to skipped with an
// optional reason.
func (db *DB) SkipSessionExercise(ctx context.Context, id uuid.UUID, reason *string) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE session_exercises
		 SET status = 'skipped', skip_reason = $1, completed_at = NOW()
		 WHERE id = $2`, reason, id)
	if err != nil {
		return fmt.Errorf("skipping session exercise: %w", err)
	}
	return nil
}

// FinishSessionExercise stamps a terminal status (completed or partial).
func (db *DB) FinishSessionExercise(ctx context.Context, id uuid.UUID, status string) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE session_exercises
		 SET status = $1, completed_at = NOW()
		 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("finishing session exercise: %w", err)
	}
	return nil
}

// CountSets returns the number of logged sets for a session exercise.
func (db *DB) CountSets(ctx context.Context, sessionExerciseID uuid.UUID) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM set_logs WHERE session_exercise_id = $1`,
		sessionExerciseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting sets: %w", err)
	}
	return count, nil
}
