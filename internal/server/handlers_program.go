package server

import (
	"net/http"

	"github.com/meltforce/ironlog/internal/apierr"
	"github.com/meltforce/ironlog/internal/models"
)

func (s *Server) handleActiveProgram(w http.ResponseWriter, r *http.Request) {
	program, err := s.db.ActiveProgram(r.Context())
	if err != nil {
		writeError(w, s.log, r, translateNotFound(err, "No active program found"))
		return
	}
	writeData(w, http.StatusOK, program)
}

func (s *Server) handleUpdateProgram(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, s.log, r, err)
		return
	}

	var update models.ProgramUpdate
	if err := decodeBody(r, &update); err != nil {
		writeError(w, s.log, r, err)
		return
	}
	if update.Days == nil {
		writeError(w, s.log, r, apierr.Validation("Missing required fields: days"))
		return
	}
	for _, day := range update.Days {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			writeError(w, s.log, r, apierr.Validation("day_of_week must be between 0 and 6"))
			return
		}
	}

	program, err := s.db.UpdateProgram(r.Context(), id, update)
	if err != nil {
		writeError(w, s.log, r, translateNotFound(err, "Program not found"))
		return
	}
	writeData(w, http.StatusOK, program)
}
