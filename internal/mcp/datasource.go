package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/ironlog/internal/models"
	"github.com/meltforce/ironlog/internal/workout"
)

// DataSource abstracts the data layer for MCP tools. Both *workout.Service
// (local) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	Current(ctx context.Context) (*models.SessionView, error)
	LastSessionPreview(ctx context.Context, exerciseID uuid.UUID) (*models.LastSession, error)
	ExerciseHistory(ctx context.Context, exerciseID uuid.UUID, limit, offset int) (*workout.ExerciseHistoryView, error)
	WeekHistory(ctx context.Context, isoWeek, date string, now time.Time) (*workout.WeekHistoryView, error)
}

// Compile-time check: *workout.Service satisfies DataSource.
var _ DataSource = (*workout.Service)(nil)
