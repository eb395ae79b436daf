package workout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/ironlog/internal/apierr"
	"github.com/meltforce/ironlog/internal/models"
	"github.com/meltforce/ironlog/internal/progression"
	"github.com/meltforce/ironlog/internal/week"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
)

// ExerciseHistoryView is one page of an exercise's session history.
type ExerciseHistoryView struct {
	Exercise models.Exercise        `json:"exercise"`
	Sessions []ExerciseHistoryEntry `json:"sessions"`
	Total    int                    `json:"total"`
	Limit    int                    `json:"limit"`
	Offset   int                    `json:"offset"`
}

// ExerciseHistoryEntry is one past performance of an exercise. Progression
// is judged against the session immediately before this one, not against
// the most recent overall.
type ExerciseHistoryEntry struct {
	Date              *time.Time      `json:"date"`
	Status            string          `json:"status"`
	ProgressionStatus string          `json:"progression_status"`
	Sets              []models.SetLog `json:"sets"`
}

// WeekHistoryView is every workout that started within one calendar week.
type WeekHistoryView struct {
	WeekStart time.Time     `json:"week_start"`
	WeekEnd   time.Time     `json:"week_end"`
	Workouts  []WeekWorkout `json:"workouts"`
}

// WeekWorkout is one session in a WeekHistoryView, with the distinct muscle
// groups it covered in exercise order.
type WeekWorkout struct {
	ID           uuid.UUID             `json:"id"`
	ProgramDayID uuid.UUID             `json:"program_day_id"`
	DayOfWeek    int                   `json:"day_of_week"`
	DayLabel     string                `json:"day_label"`
	StartedAt    time.Time             `json:"started_at"`
	CompletedAt  *time.Time            `json:"completed_at"`
	MuscleGroups []string              `json:"muscle_groups"`
	Exercises    []WeekWorkoutExercise `json:"exercises"`
}

// WeekWorkoutExercise is one exercise within a WeekWorkout.
type WeekWorkoutExercise struct {
	ExerciseName string          `json:"exercise_name"`
	MuscleGroup  string          `json:"muscle_group"`
	Status       string          `json:"status"`
	SkipReason   *string         `json:"skip_reason"`
	Sets         []models.SetLog `json:"sets"`
}

// LastSessionPreview returns the most recent completed or partial
// performance of an exercise, or nil when it has never been performed.
func (s *Service) LastSessionPreview(ctx context.Context, exerciseID uuid.UUID) (*models.LastSession, error) {
	if _, err := s.db.GetExercise(ctx, exerciseID); err != nil {
		return nil, mapStorageErr(err, "Exercise not found")
	}
	return s.db.LastSession(ctx, exerciseID, nil)
}

// ExerciseHistory returns a page of an exercise's past performances, newest
// first, each judged against its own previous session. Limit is clamped to
// [1, 50] with a default of 10; a negative offset becomes 0.
func (s *Service) ExerciseHistory(ctx context.Context, exerciseID uuid.UUID, limit, offset int) (*ExerciseHistoryView, error) {
	exercise, err := s.db.GetExercise(ctx, exerciseID)
	if err != nil {
		return nil, mapStorageErr(err, "Exercise not found")
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	total, err := s.db.ExerciseHistoryCount(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	page, err := s.db.ExerciseHistoryPage(ctx, exerciseID, limit, offset)
	if err != nil {
		return nil, err
	}

	view := &ExerciseHistoryView{
		Exercise: exercise,
		Sessions: make([]ExerciseHistoryEntry, 0, len(page)),
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}
	for _, entry := range page {
		sets, err := s.db.SetsForSessionExercise(ctx, entry.SessionExerciseID)
		if err != nil {
			return nil, err
		}
		if sets == nil {
			sets = []models.SetLog{}
		}

		var previous *models.LastSession
		if entry.Date != nil {
			previous, err = s.db.PreviousSession(ctx, exerciseID, *entry.Date)
			if err != nil {
				return nil, err
			}
		}
		result := progression.Compare(comparisonSets(sets), lastComparisonSets(previous))

		view.Sessions = append(view.Sessions, ExerciseHistoryEntry{
			Date:              entry.Date,
			Status:            entry.Status,
			ProgressionStatus: result.Status,
			Sets:              sets,
		})
	}
	return view, nil
}

// WeekHistory returns every session started within one Sunday-first
// calendar week. The week is selected by an ISO week token, a date within
// the week, or the current time when both are empty.
func (s *Service) WeekHistory(ctx context.Context, isoWeek, date string, now time.Time) (*WeekHistoryView, error) {
	anchor := now
	switch {
	case isoWeek != "":
		monday, err := week.ParseISOWeek(isoWeek)
		if err != nil {
			return nil, apierr.Validation("Invalid week format, expected YYYY-Wnn")
		}
		anchor = monday
	case date != "":
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, apierr.Validation("Invalid date format, expected YYYY-MM-DD")
		}
		anchor = day
	}
	start, end := week.Bounds(anchor)

	sessions, err := s.db.SessionsInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	view := &WeekHistoryView{
		WeekStart: start,
		WeekEnd:   end,
		Workouts:  make([]WeekWorkout, 0, len(sessions)),
	}
	for _, session := range sessions {
		exercises, err := s.db.SessionExercises(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		setsByExercise, err := s.db.SetsForSession(ctx, session.ID)
		if err != nil {
			return nil, err
		}

		workout := WeekWorkout{
			ID:           session.ID,
			ProgramDayID: session.ProgramDayID,
			DayOfWeek:    session.DayOfWeek,
			DayLabel:     session.DayLabel,
			StartedAt:    session.StartedAt,
			CompletedAt:  session.CompletedAt,
			MuscleGroups: []string{},
			Exercises:    make([]WeekWorkoutExercise, 0, len(exercises)),
		}
		seen := make(map[string]bool)
		for _, ex := range exercises {
			if !seen[ex.MuscleGroup] {
				seen[ex.MuscleGroup] = true
				workout.MuscleGroups = append(workout.MuscleGroups, ex.MuscleGroup)
			}
			sets := setsByExercise[ex.ID]
			if sets == nil {
				sets = []models.SetLog{}
			}
			workout.Exercises = append(workout.Exercises, WeekWorkoutExercise{
				ExerciseName: ex.ExerciseName,
				MuscleGroup:  ex.MuscleGroup,
				Status:       ex.Status,
				SkipReason:   ex.SkipReason,
				Sets:         sets,
			})
		}
		view.Workouts = append(view.Workouts, workout)
	}
	return view, nil
}
