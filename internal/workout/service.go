// Package workout owns the session lifecycle: starting and completing
// workout sessions, per-exercise state transitions, set logging and the
// progression summary computed when a session finishes.
package workout

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/meltforce/ironlog/internal/apierr"
	"github.com/meltforce/ironlog/internal/models"
	"github.com/meltforce/ironlog/internal/progression"
	"github.com/meltforce/ironlog/internal/storage"
)

// Service coordinates storage and the progression comparator.
type Service struct {
	db  Store
	log *slog.Logger
}

// New creates a workout service.
func New(db Store, log *slog.Logger) *Service {
	return &Service{db: db, log: log}
}

// mapStorageErr translates storage sentinels into API errors, with the
// caller's entity name for the not-found message. Unknown errors pass
// through and become sanitized 500s at the boundary.
func mapStorageErr(err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return apierr.NotFound(notFoundMsg)
	case errors.Is(err, storage.ErrSessionInProgress):
		return apierr.Conflict("A workout session is already in progress")
	case errors.Is(err, storage.ErrSessionCompleted):
		return apierr.Conflict("Workout session is already completed")
	case errors.Is(err, storage.ErrRestDay):
		return apierr.Validation("Cannot start workout on a rest day")
	default:
		return err
	}
}

// ListExercises returns the exercise library ordered by name.
func (s *Service) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	return s.db.ListExercises(ctx)
}

// Start begins a workout session for a program day and returns the full
// session view. Conflicts when any session is still in progress.
func (s *Service) Start(ctx context.Context, programDayID uuid.UUID) (*models.SessionView, error) {
	sessionID, err := s.db.CreateSession(ctx, programDayID)
	if err != nil {
		return nil, mapStorageErr(err, "Program day not found")
	}
	s.log.Info("workout started", "session_id", sessionID, "program_day_id", programDayID)
	return s.BuildSessionView(ctx, sessionID)
}

// Current returns the in-progress session view, or nil when no session is
// open. No session is a successful result, not an error.
func (s *Service) Current(ctx context.Context) (*models.SessionView, error) {
	id, err := s.db.CurrentSessionID(ctx)
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, nil
	}
	return s.BuildSessionView(ctx, *id)
}

// StartExercise transitions a pending session exercise to in_progress.
func (s *Service) StartExercise(ctx context.Context, sessionID, sessionExerciseID uuid.UUID) (models.SessionExerciseRow, error) {
	se, err := s.db.GetSessionExercise(ctx, sessionID, sessionExerciseID)
	if err != nil {
		return models.SessionExerciseRow{}, mapStorageErr(err, "Session exercise not found")
	}
	if se.Status != models.StatusPending {
		return models.SessionExerciseRow{}, apierr.Conflict("Exercise is already " + se.Status)
	}
	if err := s.db.StartSessionExercise(ctx, sessionExerciseID); err != nil {
		return models.SessionExerciseRow{}, err
	}
	return s.db.GetSessionExercise(ctx, sessionID, sessionExerciseID)
}

// SkipExercise transitions a pending or in-progress exercise to skipped.
// Work already logged cannot be un-finished: completed and partial conflict.
func (s *Service) SkipExercise(ctx context.Context, sessionID, sessionExerciseID uuid.UUID, reason *string) (models.SessionExerciseRow, error) {
	se, err := s.db.GetSessionExercise(ctx, sessionID, sessionExerciseID)
	if err != nil {
		return models.SessionExerciseRow{}, mapStorageErr(err, "Session exercise not found")
	}
	if se.Status == models.StatusCompleted || se.Status == models.StatusPartial {
		return models.SessionExerciseRow{}, apierr.Conflict("Cannot skip a completed exercise")
	}
	if err := s.db.SkipSessionExercise(ctx, sessionExerciseID, reason); err != nil {
		return models.SessionExerciseRow{}, err
	}
	return s.db.GetSessionExercise(ctx, sessionID, sessionExerciseID)
}

// CompleteExercise finishes an exercise. The logged-set count against the
// snapshot target is the sole determinant: count >= target is completed,
// anything less is partial. Extra sets beyond the target still count.
func (s *Service) CompleteExercise(ctx context.Context, sessionID, sessionExerciseID uuid.UUID) (models.SessionExerciseRow, error) {
	se, err := s.db.GetSessionExercise(ctx, sessionID, sessionExerciseID)
	if err != nil {
		return models.SessionExerciseRow{}, mapStorageErr(err, "Session exercise not found")
	}
	switch se.Status {
	case models.StatusCompleted, models.StatusPartial, models.StatusSkipped:
		return models.SessionExerciseRow{}, apierr.Conflict("Exercise is already " + se.Status)
	}

	count, err := s.db.CountSets(ctx, sessionExerciseID)
	if err != nil {
		return models.SessionExerciseRow{}, err
	}
	status := models.StatusPartial
	if count >= se.TargetSets {
		status = models.StatusCompleted
	}
	if err := s.db.FinishSessionExercise(ctx, sessionExerciseID, status); err != nil {
		return models.SessionExerciseRow{}, err
	}
	return s.db.GetSessionExercise(ctx, sessionID, sessionExerciseID)
}

// Complete finishes a workout session: pending exercises are bulk-skipped
// and the session stamped inside one transaction, then the progression
// summary is computed against each exercise's previous session. The summary
// reads only committed state, so it runs after the transaction.
func (s *Service) Complete(ctx context.Context, sessionID uuid.UUID) (*models.CompletedSessionView, error) {
	if err := s.db.CompleteSession(ctx, sessionID); err != nil {
		return nil, mapStorageErr(err, "Workout session not found")
	}

	session, err := s.db.GetSession(ctx, sessionID)
	if err != nil {
		return nil, mapStorageErr(err, "Workout session not found")
	}
	durationMinutes := 0
	if session.CompletedAt != nil {
		durationMinutes = int(math.Round(session.CompletedAt.Sub(session.StartedAt).Minutes()))
	}

	exercises, err := s.db.SessionExercises(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	setsByExercise, err := s.db.SetsForSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	summary := models.ProgressionSummary{
		TotalExercises: len(exercises),
		Details:        []models.ProgressionDetail{},
	}
	for _, ex := range exercises {
		if ex.Status == models.StatusSkipped {
			summary.Skipped++
			summary.Details = append(summary.Details, models.ProgressionDetail{
				ExerciseName: ex.ExerciseName,
				MuscleGroup:  ex.MuscleGroup,
				Status:       models.StatusSkipped,
				SkipReason:   ex.SkipReason,
			})
			continue
		}

		last, err := s.db.LastSession(ctx, ex.ExerciseID, &sessionID)
		if err != nil {
			return nil, err
		}
		result := progression.Compare(
			comparisonSets(setsByExercise[ex.ID]),
			lastComparisonSets(last),
		)

		switch result.Status {
		case progression.StatusProgressed, progression.StatusFirstTime:
			summary.Progressed++
		case progression.StatusSame:
			summary.Same++
		default:
			summary.Regressed++
		}
		summary.Details = append(summary.Details, models.ProgressionDetail{
			ExerciseName: ex.ExerciseName,
			MuscleGroup:  ex.MuscleGroup,
			Status:       result.Status,
			Reason:       result.Reason,
		})
	}

	view, err := s.BuildSessionView(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.log.Info("workout completed", "session_id", sessionID,
		"duration_minutes", durationMinutes, "exercises", len(exercises))

	return &models.CompletedSessionView{
		SessionView:     *view,
		DurationMinutes: durationMinutes,
		Progression:     summary,
	}, nil
}

func comparisonSets(sets []models.SetLog) []progression.Set {
	result := make([]progression.Set, len(sets))
	for i, s := range sets {
		result[i] = progression.Set{SetNumber: s.SetNumber, WeightLbs: s.WeightLbs, Reps: s.Reps}
	}
	return result
}

func lastComparisonSets(last *models.LastSession) []progression.Set {
	if last == nil {
		return nil
	}
	result := make([]progression.Set, len(last.Sets))
	for i, s := range last.Sets {
		result[i] = progression.Set{SetNumber: s.SetNumber, WeightLbs: s.WeightLbs, Reps: s.Reps}
	}
	return result
}
