package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/meltforce/ironlog/internal/models"
)

func joinComma(parts []string) string {
	return strings.Join(parts, ", ")
}

// ActiveProgram returns the active program with its days and exercises
// nested, or ErrNotFound when no program is active.
func (db *DB) ActiveProgram(ctx context.Context) (models.ProgramView, error) {
	var id uuid.UUID
	err := db.Pool.QueryRow(ctx,
		`SELECT id FROM programs WHERE is_active = true LIMIT 1`).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ProgramView{}, ErrNotFound
	}
	if err != nil {
		return models.ProgramView{}, fmt.Errorf("querying active program: %w", err)
	}
	return db.ProgramView(ctx, id)
}

// ProgramView returns the nested view of one program. Rest seconds are
// resolved at read time: the program exercise override, falling back to the
// exercise default.
func (db *DB) ProgramView(ctx context.Context, programID uuid.UUID) (models.ProgramView, error) {
	var view models.ProgramView
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name FROM programs WHERE id = $1`, programID).
		Scan(&view.ID, &view.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ProgramView{}, ErrNotFound
	}
	if err != nil {
		return models.ProgramView{}, fmt.Errorf("querying program: %w", err)
	}

	dayRows, err := db.Pool.Query(ctx,
		`SELECT id, day_of_week, label, is_rest_day
		 FROM program_days
		 WHERE program_id = $1
		 ORDER BY day_of_week`, programID)
	if err != nil {
		return models.ProgramView{}, fmt.Errorf("querying program days: %w", err)
	}
	defer dayRows.Close()

	dayIndex := make(map[uuid.UUID]int)
	for dayRows.Next() {
		var d models.ProgramDayView
		if err := dayRows.Scan(&d.ID, &d.DayOfWeek, &d.Label, &d.IsRestDay); err != nil {
			return models.ProgramView{}, fmt.Errorf("scanning program day: %w", err)
		}
		d.Exercises = []models.ProgramExerciseView{}
		dayIndex[d.ID] = len(view.Days)
		view.Days = append(view.Days, d)
	}
	if err := dayRows.Err(); err != nil {
		return models.ProgramView{}, err
	}

	exRows, err := db.Pool.Query(ctx,
		`SELECT pe.id, pe.program_day_id, pe.exercise_id, e.name, e.muscle_group,
		        pe.sort_order, pe.target_sets,
		        COALESCE(pe.rest_seconds, e.default_rest_seconds) AS rest_seconds,
		        pe.superset_with_next
		 FROM program_exercises pe
		 JOIN exercises e ON e.id = pe.exercise_id
		 JOIN program_days pd ON pd.id = pe.program_day_id
		 WHERE pd.program_id = $1
		 ORDER BY pe.program_day_id, pe.sort_order`, programID)
	if err != nil {
		return models.ProgramView{}, fmt.Errorf("querying program exercises: %w", err)
	}
	defer exRows.Close()

	for exRows.Next() {
		var (
			ex    models.ProgramExerciseView
			dayID uuid.UUID
		)
		if err := exRows.Scan(&ex.ID, &dayID, &ex.ExerciseID, &ex.ExerciseName, &ex.MuscleGroup,
			&ex.SortOrder, &ex.TargetSets, &ex.RestSeconds, &ex.SupersetWithNext); err != nil {
			return models.ProgramView{}, fmt.Errorf("scanning program exercise: %w", err)
		}
		if i, ok := dayIndex[dayID]; ok {
			view.Days[i].Exercises = append(view.Days[i].Exercises, ex)
		}
	}
	return view, exRows.Err()
}

// UpdateProgram renames a program and/or replaces its entire day layout in
// one transaction, then returns the rebuilt view. A nil Days slice keeps the
// existing days.
func (db *DB) UpdateProgram(ctx context.Context, programID uuid.UUID, update models.ProgramUpdate) (models.ProgramView, error) {
	err := db.InTx(ctx, func(tx pgx.Tx) error {
		var exists uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT id FROM programs WHERE id = $1`, programID).Scan(&exists)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("querying program: %w", err)
		}

		if update.Name != nil {
			if _, err := tx.Exec(ctx,
				`UPDATE programs SET name = $1 WHERE id = $2`, *update.Name, programID); err != nil {
				return fmt.Errorf("updating program name: %w", err)
			}
		}

		if update.Days == nil {
			return nil
		}

		// Replace all days; program_exercises go with them via cascade.
		if _, err := tx.Exec(ctx,
			`DELETE FROM program_days WHERE program_id = $1`, programID); err != nil {
			return fmt.Errorf("deleting program days: %w", err)
		}

		for _, day := range update.Days {
			var dayID uuid.UUID
			err := tx.QueryRow(ctx,
				`INSERT INTO program_days (program_id, day_of_week, label, is_rest_day)
				 VALUES ($1, $2, $3, $4)
				 RETURNING id`,
				programID, day.DayOfWeek, day.Label, day.IsRestDay).Scan(&dayID)
			if err != nil {
				return fmt.Errorf("inserting program day: %w", err)
			}

			for _, ex := range day.Exercises {
				targetSets := ex.TargetSets
				if targetSets == 0 {
					targetSets = 4
				}
				if _, err := tx.Exec(ctx,
					`INSERT INTO program_exercises
					   (program_day_id, exercise_id, sort_order, target_sets, rest_seconds, superset_with_next)
					 VALUES ($1, $2, $3, $4, $5, $6)`,
					dayID, ex.ExerciseID, ex.SortOrder, targetSets, ex.RestSeconds, ex.SupersetWithNext); err != nil {
					return fmt.Errorf("inserting program exercise: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return models.ProgramView{}, err
	}
	return db.ProgramView(ctx, programID)
}
