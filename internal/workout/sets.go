package workout

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/meltforce/ironlog/internal/apierr"
	"github.com/meltforce/ironlog/internal/models"
)

// restExtendedSlackSeconds is the grace added to the prescribed rest before
// a rest period counts as extended.
const restExtendedSlackSeconds = 10

// validRPE is the allowed set of RPE values, whole and half steps from 7
// through 10.
var validRPE = map[float64]bool{
	7: true, 7.5: true, 8: true, 8.5: true, 9: true, 9.5: true, 10: true,
}

// restExtended reports whether an actual rest exceeded the prescribed rest
// by more than the slack. Either value missing means the flag is false.
func restExtended(restDuration, prescribedRest *int) bool {
	if restDuration == nil || prescribedRest == nil {
		return false
	}
	return *restDuration > *prescribedRest+restExtendedSlackSeconds
}

func validateSetValues(setNumber *int, weightLbs *float64, reps *int, rpe *float64) []string {
	var problems []string
	if setNumber != nil && *setNumber < 1 {
		problems = append(problems, "set_number must be a positive integer")
	}
	if weightLbs != nil && *weightLbs < 0 {
		problems = append(problems, "weight_lbs must be non-negative")
	}
	if reps != nil && *reps < 0 {
		problems = append(problems, "reps must be a non-negative integer")
	}
	if rpe != nil && !validRPE[*rpe] {
		problems = append(problems, "rpe must be between 7 and 10 in 0.5 increments")
	}
	return problems
}

// LogSet records a set against an exercise in the given session. The
// rest_was_extended flag is derived server-side from the submitted rest
// pair; any value the client sends for it is ignored.
func (s *Service) LogSet(ctx context.Context, sessionID, sessionExerciseID uuid.UUID, set models.NewSet) (models.SetLog, error) {
	if problems := validateSetValues(&set.SetNumber, &set.WeightLbs, &set.Reps, &set.RPE); len(problems) > 0 {
		return models.SetLog{}, apierr.Validation(strings.Join(problems, "; "))
	}

	if _, err := s.db.GetSessionExercise(ctx, sessionID, sessionExerciseID); err != nil {
		return models.SetLog{}, mapStorageErr(err, "Session exercise not found")
	}

	extended := restExtended(set.RestDurationSeconds, set.PrescribedRestSeconds)
	logged, err := s.db.InsertSet(ctx, sessionExerciseID, set, extended)
	if err != nil {
		return models.SetLog{}, err
	}
	s.log.Debug("set logged", "session_exercise_id", sessionExerciseID,
		"set_number", logged.SetNumber, "weight_lbs", logged.WeightLbs, "reps", logged.Reps)
	return logged, nil
}

// EditSet applies a partial update to a logged set. When either rest field
// moves, rest_was_extended is recomputed from the merged pair of stored and
// patched values.
func (s *Service) EditSet(ctx context.Context, setID uuid.UUID, patch models.SetPatch) (models.SetLog, error) {
	if patch.IsZero() {
		return models.SetLog{}, apierr.Validation("No fields to update")
	}
	if problems := validateSetValues(patch.SetNumber, patch.WeightLbs, patch.Reps, patch.RPE); len(problems) > 0 {
		return models.SetLog{}, apierr.Validation(strings.Join(problems, "; "))
	}

	var recomputed *bool
	if patch.TouchesRest() {
		current, err := s.db.GetSet(ctx, setID)
		if err != nil {
			return models.SetLog{}, mapStorageErr(err, "Set not found")
		}
		restDuration := current.RestDurationSeconds
		if patch.RestDurationSeconds != nil {
			restDuration = patch.RestDurationSeconds
		}
		prescribedRest := current.PrescribedRestSeconds
		if patch.PrescribedRestSeconds != nil {
			prescribedRest = patch.PrescribedRestSeconds
		}
		extended := restExtended(restDuration, prescribedRest)
		recomputed = &extended
	}

	updated, err := s.db.UpdateSet(ctx, setID, patch, recomputed)
	if err != nil {
		return models.SetLog{}, mapStorageErr(err, "Set not found")
	}
	return updated, nil
}

// DeleteSet removes a logged set. The owning exercise's status is not
// re-derived; a completed exercise stays completed.
func (s *Service) DeleteSet(ctx context.Context, setID uuid.UUID) error {
	if err := s.db.DeleteSet(ctx, setID); err != nil {
		return mapStorageErr(err, "Set not found")
	}
	return nil
}
