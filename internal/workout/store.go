package workout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/ironlog/internal/models"
	"github.com/meltforce/ironlog/internal/storage"
)

// Store is the storage surface the workout service depends on. *storage.DB
// implements it; tests substitute in-memory fakes to exercise the state
// machine without a database.
type Store interface {
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	GetExercise(ctx context.Context, id uuid.UUID) (models.Exercise, error)

	CreateSession(ctx context.Context, programDayID uuid.UUID) (uuid.UUID, error)
	CurrentSessionID(ctx context.Context) (*uuid.UUID, error)
	GetSession(ctx context.Context, id uuid.UUID) (models.SessionRow, error)
	CompleteSession(ctx context.Context, id uuid.UUID) error

	SessionExercises(ctx context.Context, sessionID uuid.UUID) ([]models.SessionExerciseRow, error)
	GetSessionExercise(ctx context.Context, sessionID, sessionExerciseID uuid.UUID) (models.SessionExerciseRow, error)
	StartSessionExercise(ctx context.Context, id uuid.UUID) error
	SkipSessionExercise(ctx context.Context, id uuid.UUID, reason *string) error
	FinishSessionExercise(ctx context.Context, id uuid.UUID, status string) error
	CountSets(ctx context.Context, sessionExerciseID uuid.UUID) (int, error)

	InsertSet(ctx context.Context, sessionExerciseID uuid.UUID, set models.NewSet, restWasExtended bool) (models.SetLog, error)
	GetSet(ctx context.Context, id uuid.UUID) (models.SetLog, error)
	UpdateSet(ctx context.Context, id uuid.UUID, patch models.SetPatch, restWasExtended *bool) (models.SetLog, error)
	DeleteSet(ctx context.Context, id uuid.UUID) error
	SetsForSessionExercise(ctx context.Context, sessionExerciseID uuid.UUID) ([]models.SetLog, error)
	SetsForSession(ctx context.Context, sessionID uuid.UUID) (map[uuid.UUID][]models.SetLog, error)

	LastSession(ctx context.Context, exerciseID uuid.UUID, excludeSessionID *uuid.UUID) (*models.LastSession, error)
	PreviousSession(ctx context.Context, exerciseID uuid.UUID, before time.Time) (*models.LastSession, error)
	ExerciseHistoryCount(ctx context.Context, exerciseID uuid.UUID) (int, error)
	ExerciseHistoryPage(ctx context.Context, exerciseID uuid.UUID, limit, offset int) ([]storage.HistoryEntryRow, error)
	SessionsInRange(ctx context.Context, start, end time.Time) ([]storage.WeekSessionRow, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)
