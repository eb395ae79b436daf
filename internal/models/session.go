package models

import (
	"time"

	"github.com/google/uuid"
)

// Session exercise statuses. Transitions are one-directional:
// pending -> in_progress -> completed|partial, and pending|in_progress ->
// skipped. Completed, partial and skipped are terminal.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusPartial    = "partial"
	StatusSkipped    = "skipped"
)

// SessionRow is a workout_sessions row. CompletedAt nil means in progress.
type SessionRow struct {
	ID           uuid.UUID  `json:"id"`
	ProgramDayID uuid.UUID  `json:"program_day_id"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	Notes        *string    `json:"notes"`
}

// SessionExerciseRow is a session_exercises row joined with exercise display
// fields and the originating program exercise's targets. RestSeconds is the
// resolved value (program override falling back to the exercise default).
type SessionExerciseRow struct {
	ID               uuid.UUID  `json:"id"`
	ExerciseID       uuid.UUID  `json:"exercise_id"`
	ExerciseName     string     `json:"exercise_name"`
	MuscleGroup      string     `json:"muscle_group"`
	SortOrder        int        `json:"sort_order"`
	TargetSets       int        `json:"target_sets"`
	RestSeconds      int        `json:"rest_seconds"`
	SupersetWithNext bool       `json:"superset_with_next"`
	Status           string     `json:"status"`
	SkipReason       *string    `json:"skip_reason"`
	StartedAt        *time.Time `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at"`
}

// SessionView is the full nested snapshot of a workout session, suitable for
// direct rendering by a client with no further joins.
type SessionView struct {
	ID           uuid.UUID             `json:"id"`
	ProgramDayID uuid.UUID             `json:"program_day_id"`
	StartedAt    time.Time             `json:"started_at"`
	CompletedAt  *time.Time            `json:"completed_at"`
	Notes        *string               `json:"notes"`
	Exercises    []SessionExerciseView `json:"exercises"`
}

// SessionExerciseView is one exercise within a SessionView, including its
// logged sets and the most recent prior session for the same exercise.
type SessionExerciseView struct {
	ID               uuid.UUID    `json:"id"`
	ExerciseID       uuid.UUID    `json:"exercise_id"`
	ExerciseName     string       `json:"exercise_name"`
	MuscleGroup      string       `json:"muscle_group"`
	SortOrder        int          `json:"sort_order"`
	TargetSets       int          `json:"target_sets"`
	RestSeconds      int          `json:"rest_seconds"`
	SupersetWithNext bool         `json:"superset_with_next"`
	Status           string       `json:"status"`
	SkipReason       *string      `json:"skip_reason"`
	Sets             []SetLog     `json:"sets"`
	LastSession      *LastSession `json:"last_session"`
}

// LastSession is the snapshot of the most recent completed or partial prior
// session for an exercise.
type LastSession struct {
	Date             *time.Time       `json:"date"`
	WorkoutSessionID uuid.UUID        `json:"workout_session_id"`
	Sets             []LastSessionSet `json:"sets"`
}

// LastSessionSet is one logged set within a LastSession snapshot.
type LastSessionSet struct {
	SetNumber           int     `json:"set_number"`
	WeightLbs           float64 `json:"weight_lbs"`
	Reps                int     `json:"reps"`
	RPE                 float64 `json:"rpe"`
	RestDurationSeconds *int    `json:"rest_duration_seconds"`
	RestWasExtended     bool    `json:"rest_was_extended"`
}

// CompletedSessionView is the complete-workout response: the final session
// view plus duration and the per-exercise progression summary.
type CompletedSessionView struct {
	SessionView
	DurationMinutes int                `json:"duration_minutes"`
	Progression     ProgressionSummary `json:"progression"`
}

// ProgressionSummary tallies per-exercise progression verdicts for a
// completed session. First-time exercises count as progressed.
type ProgressionSummary struct {
	TotalExercises int                 `json:"total_exercises"`
	Progressed     int                 `json:"progressed"`
	Same           int                 `json:"same"`
	Regressed      int                 `json:"regressed"`
	Skipped        int                 `json:"skipped"`
	Details        []ProgressionDetail `json:"details"`
}

// ProgressionDetail is one exercise's verdict within a ProgressionSummary.
type ProgressionDetail struct {
	ExerciseName string  `json:"exercise_name"`
	MuscleGroup  string  `json:"muscle_group"`
	Status       string  `json:"status"`
	Reason       string  `json:"reason,omitempty"`
	SkipReason   *string `json:"skip_reason,omitempty"`
}
