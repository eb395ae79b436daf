// Package server exposes the workout API over HTTP. Handlers do transport
// work only: path id parsing, body decoding, required-field checks. State
// machine rules live in the workout service.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/ironlog/internal/storage"
	"github.com/meltforce/ironlog/internal/workout"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db      *storage.DB
	workout *workout.Service
	log     *slog.Logger
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, svc *workout.Service, log *slog.Logger) *Server {
	s := &Server{
		db:      db,
		workout: svc,
		log:     log,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/exercises", s.handleListExercises)
		r.Post("/exercises", s.handleCreateExercise)
		r.Put("/exercises/{id}", s.handleUpdateExercise)
		r.Get("/exercises/{id}/last-session", s.handleLastSession)
		r.Get("/exercises/{id}/history", s.handleExerciseHistory)

		r.Get("/program/active", s.handleActiveProgram)
		r.Put("/program/{id}", s.handleUpdateProgram)

		r.Post("/workouts", s.handleStartWorkout)
		r.Get("/workouts/current", s.handleCurrentWorkout)
		r.Get("/workouts/history", s.handleWeekHistory)
		r.Put("/workouts/{id}/complete", s.handleCompleteWorkout)
		r.Put("/workouts/{workoutId}/exercises/{id}/start", s.handleStartExercise)
		r.Put("/workouts/{workoutId}/exercises/{id}/skip", s.handleSkipExercise)
		r.Put("/workouts/{workoutId}/exercises/{id}/complete", s.handleCompleteExercise)
		r.Post("/workouts/{workoutId}/exercises/{id}/sets", s.handleLogSet)

		r.Put("/sets/{id}", s.handleEditSet)
		r.Delete("/sets/{id}", s.handleDeleteSet)
	})
}
