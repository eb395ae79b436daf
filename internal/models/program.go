package models

import "github.com/google/uuid"

// ProgramView is the fully nested active-program payload.
type ProgramView struct {
	ID   uuid.UUID        `json:"id"`
	Name string           `json:"name"`
	Days []ProgramDayView `json:"days"`
}

// ProgramDayView is one weekday of a program with its ordered exercises.
type ProgramDayView struct {
	ID        uuid.UUID             `json:"id"`
	DayOfWeek int                   `json:"day_of_week"`
	Label     string                `json:"label"`
	IsRestDay bool                  `json:"is_rest_day"`
	Exercises []ProgramExerciseView `json:"exercises"`
}

// ProgramExerciseView is a program exercise joined with its exercise display
// fields. RestSeconds is already resolved (per-exercise override, falling
// back to the exercise default).
type ProgramExerciseView struct {
	ID               uuid.UUID `json:"id"`
	ExerciseID       uuid.UUID `json:"exercise_id"`
	ExerciseName     string    `json:"exercise_name"`
	MuscleGroup      string    `json:"muscle_group"`
	SortOrder        int       `json:"sort_order"`
	TargetSets       int       `json:"target_sets"`
	RestSeconds      int       `json:"rest_seconds"`
	SupersetWithNext bool      `json:"superset_with_next"`
}

// ProgramUpdate replaces a program's name and/or its entire day layout.
// A nil Days slice leaves the existing days untouched.
type ProgramUpdate struct {
	Name *string           `json:"name"`
	Days []ProgramDayInput `json:"days"`
}

// ProgramDayInput is one weekday in a program replace request.
type ProgramDayInput struct {
	DayOfWeek int                    `json:"day_of_week"`
	Label     string                 `json:"label"`
	IsRestDay bool                   `json:"is_rest_day"`
	Exercises []ProgramExerciseInput `json:"exercises"`
}

// ProgramExerciseInput is one exercise slot in a program replace request.
type ProgramExerciseInput struct {
	ExerciseID       uuid.UUID `json:"exercise_id"`
	SortOrder        int       `json:"sort_order"`
	TargetSets       int       `json:"target_sets"`
	RestSeconds      *int      `json:"rest_seconds"`
	SupersetWithNext bool      `json:"superset_with_next"`
}
