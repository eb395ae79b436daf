package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meltforce/ironlog/internal/apierr"
	"github.com/meltforce/ironlog/internal/models"
)

// parseUUID validates a UUID-shaped string from a body field.
func parseUUID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apierr.Validation("Invalid " + field)
	}
	return id, nil
}

// sessionExerciseIDs parses the workout and session-exercise ids from the
// nested exercise routes.
func sessionExerciseIDs(r *http.Request) (sessionID, exerciseID uuid.UUID, err error) {
	sessionID, err = parseUUID(chi.URLParam(r, "workoutId"), "workoutId parameter")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	exerciseID, err = parseUUID(chi.URLParam(r, "id"), "id parameter")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return sessionID, exerciseID, nil
}

func (s *Server) handleLogSet(w http.ResponseWriter, r *http.Request) {
	sessionID, exerciseID, err := sessionExerciseIDs(r)
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}

	var body struct {
		SetNumber             *int     `json:"set_number"`
		WeightLbs             *float64 `json:"weight_lbs"`
		Reps                  *int     `json:"reps"`
		RPE                   *float64 `json:"rpe"`
		RestDurationSeconds   *int     `json:"rest_duration_seconds"`
		PrescribedRestSeconds *int     `json:"prescribed_rest_seconds"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, s.log, r, err)
		return
	}

	var missing []string
	if body.SetNumber == nil {
		missing = append(missing, "set_number")
	}
	if body.WeightLbs == nil {
		missing = append(missing, "weight_lbs")
	}
	if body.Reps == nil {
		missing = append(missing, "reps")
	}
	if body.RPE == nil {
		missing = append(missing, "rpe")
	}
	if len(missing) > 0 {
		writeError(w, s.log, r, apierr.Validation(
			"Missing required fields: "+strings.Join(missing, ", ")))
		return
	}

	set := models.NewSet{
		SetNumber:             *body.SetNumber,
		WeightLbs:             *body.WeightLbs,
		Reps:                  *body.Reps,
		RPE:                   *body.RPE,
		RestDurationSeconds:   body.RestDurationSeconds,
		PrescribedRestSeconds: body.PrescribedRestSeconds,
	}
	logged, err := s.workout.LogSet(r.Context(), sessionID, exerciseID, set)
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}
	writeData(w, http.StatusCreated, logged)
}

func (s *Server) handleEditSet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}

	var patch models.SetPatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, s.log, r, err)
		return
	}

	updated, err := s.workout.EditSet(r.Context(), id, patch)
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}

	if err := s.workout.DeleteSet(r.Context(), id); err != nil {
		writeError(w, s.log, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
