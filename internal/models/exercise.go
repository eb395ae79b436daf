package models

import "github.com/google/uuid"

// Muscle groups assignable to an exercise. The column is plain text so new
// groups can be added without a migration.
const (
	MuscleLats    = "lats"
	MusclePecs    = "pecs"
	MuscleBiceps  = "biceps"
	MuscleTriceps = "triceps"
	MuscleDelts   = "delts"
	MuscleLegs    = "legs"
)

// Exercise is a movement in the exercise library.
type Exercise struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	MuscleGroup        string    `json:"muscle_group"`
	DefaultRestSeconds int       `json:"default_rest_seconds"`
	Notes              *string   `json:"notes"`
}

// ExercisePatch is a partial update for an exercise. Nil fields are left
// unchanged.
type ExercisePatch struct {
	Name               *string `json:"name"`
	MuscleGroup        *string `json:"muscle_group"`
	DefaultRestSeconds *int    `json:"default_rest_seconds"`
	Notes              *string `json:"notes"`
}

// IsZero reports whether the patch carries no fields.
func (p ExercisePatch) IsZero() bool {
	return p.Name == nil && p.MuscleGroup == nil && p.DefaultRestSeconds == nil && p.Notes == nil
}
