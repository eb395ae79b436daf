package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meltforce/ironlog/internal/models"
)

const setColumns = `id, set_number, weight_lbs, reps, rpe,
	rest_duration_seconds, prescribed_rest_seconds, rest_was_extended, created_at`

func scanSet(row pgx.Row) (models.SetLog, error) {
	var s models.SetLog
	err := row.Scan(&s.ID, &s.SetNumber, &s.WeightLbs, &s.Reps, &s.RPE,
		&s.RestDurationSeconds, &s.PrescribedRestSeconds, &s.RestWasExtended, &s.CreatedAt)
	return s, err
}

// InsertSet logs a set against a session exercise. The rest_was_extended
// flag is derived by the caller, never client-supplied.
func (db *DB) InsertSet(ctx context.Context, sessionExerciseID uuid.UUID, set models.NewSet, restWasExtended bool) (models.SetLog, error) {
	s, err := scanSet(db.Pool.QueryRow(ctx,
		`INSERT INTO set_logs
		   (session_exercise_id, set_number, weight_lbs, reps, rpe,
		    rest_duration_seconds, prescribed_rest_seconds, rest_was_extended)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+setColumns,
		sessionExerciseID, set.SetNumber, set.WeightLbs, set.Reps, set.RPE,
		set.RestDurationSeconds, set.PrescribedRestSeconds, restWasExtended))
	if err != nil {
		return models.SetLog{}, fmt.Errorf("inserting set: %w", err)
	}
	return s, nil
}

// GetSet retrieves a single set by id.
func (db *DB) GetSet(ctx context.Context, id uuid.UUID) (models.SetLog, error) {
	s, err := scanSet(db.Pool.QueryRow(ctx,
		`SELECT `+setColumns+` FROM set_logs WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.SetLog{}, ErrNotFound
	}
	if err != nil {
		return models.SetLog{}, fmt.Errorf("querying set: %w", err)
	}
	return s, nil
}

// UpdateSet applies a typed partial update. When restWasExtended is non-nil
// the derived flag is rewritten alongside the patched fields; the caller
// recomputes it from the merged rest pair whenever either rest field moves.
func (db *DB) UpdateSet(ctx context.Context, id uuid.UUID, patch models.SetPatch, restWasExtended *bool) (models.SetLog, error) {
	sets := make([]string, 0, 7)
	args := make([]any, 0, 8)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.SetNumber != nil {
		add("set_number", *patch.SetNumber)
	}
	if patch.WeightLbs != nil {
		add("weight_lbs", *patch.WeightLbs)
	}
	if patch.Reps != nil {
		add("reps", *patch.Reps)
	}
	if patch.RPE != nil {
		add("rpe", *patch.RPE)
	}
	if patch.RestDurationSeconds != nil {
		add("rest_duration_seconds", *patch.RestDurationSeconds)
	}
	if patch.PrescribedRestSeconds != nil {
		add("prescribed_rest_seconds", *patch.PrescribedRestSeconds)
	}
	if restWasExtended != nil {
		add("rest_was_extended", *restWasExtended)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE set_logs SET %s WHERE id = $%d RETURNING "+setColumns,
		joinComma(sets), len(args))

	s, err := scanSet(db.Pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.SetLog{}, ErrNotFound
	}
	if err != nil {
		return models.SetLog{}, fmt.Errorf("updating set: %w", err)
	}
	return s, nil
}

// DeleteSet removes a set. ErrNotFound when no row matched. Deletion does
// not re-derive the owning exercise's completed/partial status.
func (db *DB) DeleteSet(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM set_logs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting set: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetsForSessionExercise returns a session exercise's sets ordered by
// set_number.
func (db *DB) SetsForSessionExercise(ctx context.Context, sessionExerciseID uuid.UUID) ([]models.SetLog, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+setColumns+`
		 FROM set_logs
		 WHERE session_exercise_id = $1
		 ORDER BY set_number`, sessionExerciseID)
	if err != nil {
		return nil, fmt.Errorf("querying sets: %w", err)
	}
	defer rows.Close()

	var result []models.SetLog
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning set: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// SetsForSession returns every set in a session in one query, grouped by
// session exercise id, set_number ascending within each group.
func (db *DB) SetsForSession(ctx context.Context, sessionID uuid.UUID) (map[uuid.UUID][]models.SetLog, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT sl.session_exercise_id, sl.id, sl.set_number, sl.weight_lbs, sl.reps, sl.rpe,
		        sl.rest_duration_seconds, sl.prescribed_rest_seconds, sl.rest_was_extended, sl.created_at
		 FROM set_logs sl
		 JOIN session_exercises se ON se.id = sl.session_exercise_id
		 WHERE se.workout_session_id = $1
		 ORDER BY sl.session_exercise_id, sl.set_number`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session sets: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]models.SetLog)
	for rows.Next() {
		var (
			seID uuid.UUID
			s    models.SetLog
		)
		if err := rows.Scan(&seID, &s.ID, &s.SetNumber, &s.WeightLbs, &s.Reps, &s.RPE,
			&s.RestDurationSeconds, &s.PrescribedRestSeconds, &s.RestWasExtended, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning session set: %w", err)
		}
		result[seID] = append(result[seID], s)
	}
	return result, rows.Err()
}
