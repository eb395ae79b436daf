package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meltforce/ironlog/internal/apierr"
	"github.com/meltforce/ironlog/internal/models"
)

// defaultRestSeconds applies when an exercise is created without one.
const defaultRestSeconds = 120

// pathUUID parses a UUID path parameter, short-circuiting with a validation
// error before any storage access.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apierr.Validation("Invalid " + name + " parameter")
	}
	return id, nil
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.db.ListExercises(r.Context())
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}
	writeData(w, http.StatusOK, exercises)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name               *string `json:"name"`
		MuscleGroup        *string `json:"muscle_group"`
		DefaultRestSeconds *int    `json:"default_rest_seconds"`
		Notes              *string `json:"notes"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, s.log, r, err)
		return
	}

	var missing []string
	if body.Name == nil || *body.Name == "" {
		missing = append(missing, "name")
	}
	if body.MuscleGroup == nil || *body.MuscleGroup == "" {
		missing = append(missing, "muscle_group")
	}
	if len(missing) > 0 {
		writeError(w, s.log, r, apierr.Validation(
			"Missing required fields: "+strings.Join(missing, ", ")))
		return
	}

	rest := defaultRestSeconds
	if body.DefaultRestSeconds != nil {
		if *body.DefaultRestSeconds <= 0 {
			writeError(w, s.log, r, apierr.Validation(
				"default_rest_seconds must be a positive integer"))
			return
		}
		rest = *body.DefaultRestSeconds
	}

	exercise, err := s.db.CreateExercise(r.Context(), *body.Name, *body.MuscleGroup, rest, body.Notes)
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}
	writeData(w, http.StatusCreated, exercise)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}

	var patch models.ExercisePatch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, s.log, r, err)
		return
	}
	if patch.IsZero() {
		writeError(w, s.log, r, apierr.Validation("No fields to update"))
		return
	}
	if patch.DefaultRestSeconds != nil && *patch.DefaultRestSeconds <= 0 {
		writeError(w, s.log, r, apierr.Validation(
			"default_rest_seconds must be a positive integer"))
		return
	}

	exercise, err := s.db.UpdateExercise(r.Context(), id, patch)
	if err != nil {
		writeError(w, s.log, r, translateNotFound(err, "Exercise not found"))
		return
	}
	writeData(w, http.StatusOK, exercise)
}

func (s *Server) handleLastSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}

	last, err := s.workout.LastSessionPreview(r.Context(), id)
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}
	writeData(w, http.StatusOK, last)
}

func (s *Server) handleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}

	history, err := s.workout.ExerciseHistory(r.Context(), id, limit, offset)
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}
	writeData(w, http.StatusOK, history)
}

// queryInt parses an integer query parameter. Missing values take the
// fallback; malformed values are a validation error.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierr.Validation(name + " must be an integer")
	}
	return v, nil
}
