package workout

import (
	"context"

	"github.com/google/uuid"
	"github.com/meltforce/ironlog/internal/models"
)

// BuildSessionView assembles the full nested session payload: the session
// row, its exercises in order, every logged set (one batched query) and
// each exercise's most recent prior session. The current session is
// excluded from the prior-session lookup so an in-flight workout never
// compares against itself.
func (s *Service) BuildSessionView(ctx context.Context, sessionID uuid.UUID) (*models.SessionView, error) {
	session, err := s.db.GetSession(ctx, sessionID)
	if err != nil {
		return nil, mapStorageErr(err, "Workout session not found")
	}
	exercises, err := s.db.SessionExercises(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	setsByExercise, err := s.db.SetsForSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view := &models.SessionView{
		ID:           session.ID,
		ProgramDayID: session.ProgramDayID,
		StartedAt:    session.StartedAt,
		CompletedAt:  session.CompletedAt,
		Notes:        session.Notes,
		Exercises:    make([]models.SessionExerciseView, 0, len(exercises)),
	}
	for _, ex := range exercises {
		last, err := s.db.LastSession(ctx, ex.ExerciseID, &sessionID)
		if err != nil {
			return nil, err
		}
		sets := setsByExercise[ex.ID]
		if sets == nil {
			sets = []models.SetLog{}
		}
		view.Exercises = append(view.Exercises, models.SessionExerciseView{
			ID:               ex.ID,
			ExerciseID:       ex.ExerciseID,
			ExerciseName:     ex.ExerciseName,
			MuscleGroup:      ex.MuscleGroup,
			SortOrder:        ex.SortOrder,
			TargetSets:       ex.TargetSets,
			RestSeconds:      ex.RestSeconds,
			SupersetWithNext: ex.SupersetWithNext,
			Status:           ex.Status,
			SkipReason:       ex.SkipReason,
			Sets:             sets,
			LastSession:      last,
		})
	}
	return view, nil
}
