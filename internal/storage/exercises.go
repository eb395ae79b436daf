package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meltforce/ironlog/internal/models"
)

const exerciseColumns = "id, name, muscle_group, default_rest_seconds, notes"

// ListExercises returns all exercises ordered by name.
func (db *DB) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+exerciseColumns+` FROM exercises ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.DefaultRestSeconds, &e.Notes); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// GetExercise retrieves a single exercise by id.
func (db *DB) GetExercise(ctx context.Context, id uuid.UUID) (models.Exercise, error) {
	var e models.Exercise
	err := db.Pool.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.DefaultRestSeconds, &e.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Exercise{}, ErrNotFound
	}
	if err != nil {
		return models.Exercise{}, fmt.Errorf("querying exercise: %w", err)
	}
	return e, nil
}

// CreateExercise inserts a new exercise and returns the stored row.
func (db *DB) CreateExercise(ctx context.Context, name, muscleGroup string, defaultRestSeconds int, notes *string) (models.Exercise, error) {
	var e models.Exercise
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO exercises (name, muscle_group, default_rest_seconds, notes)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+exerciseColumns,
		name, muscleGroup, defaultRestSeconds, notes).
		Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.DefaultRestSeconds, &e.Notes)
	if err != nil {
		return models.Exercise{}, fmt.Errorf("inserting exercise: %w", err)
	}
	return e, nil
}

// UpdateExercise applies a typed partial update. Each patch field maps to a
// fixed column; nothing in the SQL is derived from request input.
func (db *DB) UpdateExercise(ctx context.Context, id uuid.UUID, patch models.ExercisePatch) (models.Exercise, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.MuscleGroup != nil {
		add("muscle_group", *patch.MuscleGroup)
	}
	if patch.DefaultRestSeconds != nil {
		add("default_rest_seconds", *patch.DefaultRestSeconds)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE exercises SET %s WHERE id = $%d RETURNING "+exerciseColumns,
		joinComma(sets), len(args))

	var e models.Exercise
	err := db.Pool.QueryRow(ctx, query, args...).
		Scan(&e.ID, &e.Name, &e.MuscleGroup, &e.DefaultRestSeconds, &e.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Exercise{}, ErrNotFound
	}
	if err != nil {
		return models.Exercise{}, fmt.Errorf("updating exercise: %w", err)
	}
	return e, nil
}
