package server

import (
	"net/http"
	"time"

	"github.com/meltforce/ironlog/internal/apierr"
)

func (s *Server) handleStartWorkout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProgramDayID *string `json:"program_day_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, s.log, r, err)
		return
	}
	if body.ProgramDayID == nil || *body.ProgramDayID == "" {
		writeError(w, s.log, r, apierr.Validation("Missing required fields: program_day_id"))
		return
	}
	dayID, err := parseUUID(*body.ProgramDayID, "program_day_id")
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}

	session, err := s.workout.Start(r.Context(), dayID)
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}
	writeData(w, http.StatusCreated, session)
}

func (s *Server) handleCurrentWorkout(w http.ResponseWriter, r *http.Request) {
	session, err := s.workout.Current(r.Context())
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}
	// A nil session encodes as data: null, a valid "nothing in progress".
	writeData(w, http.StatusOK, session)
}

func (s *Server) handleCompleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}

	completed, err := s.workout.Complete(r.Context(), id)
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}
	writeData(w, http.StatusOK, completed)
}

func (s *Server) handleWeekHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := s.workout.WeekHistory(r.Context(), q.Get("week"), q.Get("date"), time.Now().UTC())
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}
	writeData(w, http.StatusOK, view)
}

func (s *Server) handleStartExercise(w http.ResponseWriter, r *http.Request) {
	sessionID, exerciseID, err := sessionExerciseIDs(r)
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}

	se, err := s.workout.StartExercise(r.Context(), sessionID, exerciseID)
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}
	writeData(w, http.StatusOK, se)
}

func (s *Server) handleSkipExercise(w http.ResponseWriter, r *http.Request) {
	sessionID, exerciseID, err := sessionExerciseIDs(r)
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}

	// The body is optional; skipping without a reason is fine.
	var body struct {
		Reason *string `json:"reason"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeBody(r, &body); err != nil {
			writeError(w, s.log, r, err)
			return
		}
	}

	se, err := s.workout.SkipExercise(r.Context(), sessionID, exerciseID, body.Reason)
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}
	writeData(w, http.StatusOK, se)
}

func (s *Server) handleCompleteExercise(w http.ResponseWriter, r *http.Request) {
	sessionID, exerciseID, err := sessionExerciseIDs(r)
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}

	se, err := s.workout.CompleteExercise(r.Context(), sessionID, exerciseID)
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}
	writeData(w, http.StatusOK, se)
}
