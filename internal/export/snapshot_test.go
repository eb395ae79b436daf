package export

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/ironlog/internal/models"
)

func TestWriteAndHas(t *testing.T) {
	snap, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer snap.Close()

	sessionID := uuid.New()
	exerciseID := uuid.New()
	completed := time.Date(2026, 1, 26, 18, 30, 0, 0, time.UTC)
	session := models.SessionRow{
		ID:          sessionID,
		StartedAt:   completed.Add(-45 * time.Minute),
		CompletedAt: &completed,
	}
	exercises := []models.SessionExerciseRow{
		{ID: exerciseID, ExerciseName: "Bench Press", MuscleGroup: "pecs", Status: "completed"},
	}
	sets := map[string][]models.SetLog{
		exerciseID.String(): {
			{SetNumber: 1, WeightLbs: 185, Reps: 8, RPE: 8},
			{SetNumber: 2, WeightLbs: 185, Reps: 7, RPE: 9},
		},
	}

	has, err := snap.Has(sessionID.String())
	if err != nil {
		t.Fatal(err)
	}
	if has {
		t.Error("Has before Write = true, want false")
	}

	if err := snap.Write(context.Background(), session, exercises, sets); err != nil {
		t.Fatal(err)
	}

	has, err = snap.Has(sessionID.String())
	if err != nil {
		t.Fatal(err)
	}
	if !has {
		t.Error("Has after Write = false, want true")
	}

	var count int
	if err := snap.db.QueryRow(
		`SELECT COUNT(*) FROM session_sets WHERE session_id = ?`, sessionID.String()).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("set rows = %d, want 2", count)
	}
}

func TestWriteIsIdempotent(t *testing.T) {
	snap, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer snap.Close()

	sessionID := uuid.New()
	exerciseID := uuid.New()
	completed := time.Now().UTC()
	session := models.SessionRow{ID: sessionID, StartedAt: completed.Add(-time.Hour), CompletedAt: &completed}
	exercises := []models.SessionExerciseRow{
		{ID: exerciseID, ExerciseName: "Squat", MuscleGroup: "legs", Status: "partial"},
	}
	sets := map[string][]models.SetLog{
		exerciseID.String(): {{SetNumber: 1, WeightLbs: 225, Reps: 5, RPE: 9}},
	}

	for i := 0; i < 2; i++ {
		if err := snap.Write(context.Background(), session, exercises, sets); err != nil {
			t.Fatal(err)
		}
	}

	var count int
	if err := snap.db.QueryRow(
		`SELECT COUNT(*) FROM session_sets WHERE session_id = ?`, sessionID.String()).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("set rows after double write = %d, want 1", count)
	}
}
