package workout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/ironlog/internal/apierr"
	"github.com/meltforce/ironlog/internal/models"
	"github.com/meltforce/ironlog/internal/progression"
	"github.com/meltforce/ironlog/internal/storage"
)

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is an in-memory Store holding one session, used to exercise the
// lifecycle state machine without a database.
type fakeStore struct {
	session    *models.SessionRow
	exercises  []models.SessionExerciseRow
	sets       map[uuid.UUID][]models.SetLog
	last       map[uuid.UUID]*models.LastSession
	setCounts  map[uuid.UUID]int
	inProgress bool
	completeAt time.Time
}

func (f *fakeStore) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	return nil, nil
}

func (f *fakeStore) GetExercise(ctx context.Context, id uuid.UUID) (models.Exercise, error) {
	return models.Exercise{}, storage.ErrNotFound
}

func (f *fakeStore) CreateSession(ctx context.Context, programDayID uuid.UUID) (uuid.UUID, error) {
	if f.inProgress {
		return uuid.Nil, storage.ErrSessionInProgress
	}
	id := uuid.New()
	f.session = &models.SessionRow{ID: id, ProgramDayID: programDayID, StartedAt: time.Now()}
	f.inProgress = true
	return id, nil
}

func (f *fakeStore) CurrentSessionID(ctx context.Context) (*uuid.UUID, error) {
	if f.session == nil || f.session.CompletedAt != nil {
		return nil, nil
	}
	id := f.session.ID
	return &id, nil
}

func (f *fakeStore) GetSession(ctx context.Context, id uuid.UUID) (models.SessionRow, error) {
	if f.session == nil || f.session.ID != id {
		return models.SessionRow{}, storage.ErrNotFound
	}
	return *f.session, nil
}

func (f *fakeStore) CompleteSession(ctx context.Context, id uuid.UUID) error {
	if f.session == nil || f.session.ID != id {
		return storage.ErrNotFound
	}
	if f.session.CompletedAt != nil {
		return storage.ErrSessionCompleted
	}
	at := f.completeAt
	if at.IsZero() {
		at = time.Now()
	}
	f.session.CompletedAt = &at
	for i := range f.exercises {
		if f.exercises[i].Status == models.StatusPending {
			f.exercises[i].Status = models.StatusSkipped
			f.exercises[i].CompletedAt = &at
		}
	}
	return nil
}

func (f *fakeStore) SessionExercises(ctx context.Context, sessionID uuid.UUID) ([]models.SessionExerciseRow, error) {
	return f.exercises, nil
}

func (f *fakeStore) GetSessionExercise(ctx context.Context, sessionID, sessionExerciseID uuid.UUID) (models.SessionExerciseRow, error) {
	for _, se := range f.exercises {
		if se.ID == sessionExerciseID {
			return se, nil
		}
	}
	return models.SessionExerciseRow{}, storage.ErrNotFound
}

func (f *fakeStore) StartSessionExercise(ctx context.Context, id uuid.UUID) error {
	return f.setStatus(id, models.StatusInProgress)
}

func (f *fakeStore) SkipSessionExercise(ctx context.Context, id uuid.UUID, reason *string) error {
	for i := range f.exercises {
		if f.exercises[i].ID == id {
			f.exercises[i].SkipReason = reason
		}
	}
	return f.setStatus(id, models.StatusSkipped)
}

func (f *fakeStore) FinishSessionExercise(ctx context.Context, id uuid.UUID, status string) error {
	return f.setStatus(id, status)
}

func (f *fakeStore) setStatus(id uuid.UUID, status string) error {
	for i := range f.exercises {
		if f.exercises[i].ID == id {
			f.exercises[i].Status = status
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) CountSets(ctx context.Context, sessionExerciseID uuid.UUID) (int, error) {
	return f.setCounts[sessionExerciseID], nil
}

func (f *fakeStore) InsertSet(ctx context.Context, sessionExerciseID uuid.UUID, set models.NewSet, restWasExtended bool) (models.SetLog, error) {
	return models.SetLog{}, nil
}

func (f *fakeStore) GetSet(ctx context.Context, id uuid.UUID) (models.SetLog, error) {
	return models.SetLog{}, storage.ErrNotFound
}

func (f *fakeStore) UpdateSet(ctx context.Context, id uuid.UUID, patch models.SetPatch, restWasExtended *bool) (models.SetLog, error) {
	return models.SetLog{}, storage.ErrNotFound
}

func (f *fakeStore) DeleteSet(ctx context.Context, id uuid.UUID) error {
	return storage.ErrNotFound
}

func (f *fakeStore) SetsForSessionExercise(ctx context.Context, sessionExerciseID uuid.UUID) ([]models.SetLog, error) {
	return f.sets[sessionExerciseID], nil
}

func (f *fakeStore) SetsForSession(ctx context.Context, sessionID uuid.UUID) (map[uuid.UUID][]models.SetLog, error) {
	return f.sets, nil
}

func (f *fakeStore) LastSession(ctx context.Context, exerciseID uuid.UUID, excludeSessionID *uuid.UUID) (*models.LastSession, error) {
	return f.last[exerciseID], nil
}

func (f *fakeStore) PreviousSession(ctx context.Context, exerciseID uuid.UUID, before time.Time) (*models.LastSession, error) {
	return nil, nil
}

func (f *fakeStore) ExerciseHistoryCount(ctx context.Context, exerciseID uuid.UUID) (int, error) {
	return 0, nil
}

func (f *fakeStore) ExerciseHistoryPage(ctx context.Context, exerciseID uuid.UUID, limit, offset int) ([]storage.HistoryEntryRow, error) {
	return nil, nil
}

func (f *fakeStore) SessionsInRange(ctx context.Context, start, end time.Time) ([]storage.WeekSessionRow, error) {
	return nil, nil
}

func wantAPIError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *apierr.Error", err)
	}
	if apiErr.Status != status {
		t.Errorf("status = %d, want %d", apiErr.Status, status)
	}
	if apiErr.Message != message {
		t.Errorf("message = %q, want %q", apiErr.Message, message)
	}
}

func TestStartWorkoutConflictsWhenSessionInProgress(t *testing.T) {
	store := &fakeStore{inProgress: true, sets: map[uuid.UUID][]models.SetLog{}}
	svc := New(store, discardLog())

	_, err := svc.Start(context.Background(), uuid.New())
	wantAPIError(t, err, 409, "A workout session is already in progress")
}

func TestStartExerciseConflictsWhenNotPending(t *testing.T) {
	seID := uuid.New()
	store := &fakeStore{
		exercises: []models.SessionExerciseRow{
			{ID: seID, Status: models.StatusInProgress},
		},
	}
	svc := New(store, discardLog())

	_, err := svc.StartExercise(context.Background(), uuid.New(), seID)
	wantAPIError(t, err, 409, "Exercise is already in_progress")
}

func TestSkipCompletedExerciseConflicts(t *testing.T) {
	seID := uuid.New()
	store := &fakeStore{
		exercises: []models.SessionExerciseRow{
			{ID: seID, Status: models.StatusCompleted},
		},
	}
	svc := New(store, discardLog())

	_, err := svc.SkipExercise(context.Background(), uuid.New(), seID, nil)
	wantAPIError(t, err, 409, "Cannot skip a completed exercise")
}

func TestCompleteExerciseStatusDerivation(t *testing.T) {
	cases := []struct {
		name       string
		targetSets int
		logged     int
		want       string
	}{
		{"exactly at target", 3, 3, models.StatusCompleted},
		{"below target", 3, 2, models.StatusPartial},
		{"above target", 3, 4, models.StatusCompleted},
		{"no sets", 3, 0, models.StatusPartial},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seID := uuid.New()
			store := &fakeStore{
				exercises: []models.SessionExerciseRow{
					{ID: seID, Status: models.StatusInProgress, TargetSets: tc.targetSets},
				},
				setCounts: map[uuid.UUID]int{seID: tc.logged},
			}
			svc := New(store, discardLog())

			se, err := svc.CompleteExercise(context.Background(), uuid.New(), seID)
			if err != nil {
				t.Fatalf("CompleteExercise: %v", err)
			}
			if se.Status != tc.want {
				t.Errorf("status = %q, want %q", se.Status, tc.want)
			}
		})
	}
}

func TestCompleteExerciseConflictsWhenTerminal(t *testing.T) {
	seID := uuid.New()
	store := &fakeStore{
		exercises: []models.SessionExerciseRow{
			{ID: seID, Status: models.StatusPartial},
		},
	}
	svc := New(store, discardLog())

	_, err := svc.CompleteExercise(context.Background(), uuid.New(), seID)
	wantAPIError(t, err, 409, "Exercise is already partial")
}

func TestCompleteWorkoutSkipsPendingAndSummarizes(t *testing.T) {
	sessionID := uuid.New()
	benchID, benchExercise := uuid.New(), uuid.New()
	rowID, rowExercise := uuid.New(), uuid.New()
	started := time.Date(2026, 1, 26, 17, 0, 0, 0, time.UTC)

	store := &fakeStore{
		session: &models.SessionRow{ID: sessionID, StartedAt: started},
		exercises: []models.SessionExerciseRow{
			{ID: benchID, ExerciseID: benchExercise, ExerciseName: "Bench Press",
				MuscleGroup: "pecs", Status: models.StatusCompleted, TargetSets: 3},
			{ID: rowID, ExerciseID: rowExercise, ExerciseName: "Barbell Row",
				MuscleGroup: "lats", Status: models.StatusPending, TargetSets: 3},
		},
		sets: map[uuid.UUID][]models.SetLog{
			benchID: {{SetNumber: 1, WeightLbs: 185, Reps: 8, RPE: 8}},
		},
		last:       map[uuid.UUID]*models.LastSession{},
		completeAt: started.Add(45 * time.Minute),
	}
	svc := New(store, discardLog())

	completed, err := svc.Complete(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if completed.DurationMinutes != 45 {
		t.Errorf("duration_minutes = %d, want 45", completed.DurationMinutes)
	}
	if got := completed.Progression; got.TotalExercises != 2 || got.Progressed != 1 || got.Skipped != 1 {
		t.Errorf("summary = %+v, want total 2, progressed 1, skipped 1", got)
	}

	// The never-performed bench counts as first_time, which tallies as
	// progression.
	var benchDetail, rowDetail *models.ProgressionDetail
	for i := range completed.Progression.Details {
		switch completed.Progression.Details[i].ExerciseName {
		case "Bench Press":
			benchDetail = &completed.Progression.Details[i]
		case "Barbell Row":
			rowDetail = &completed.Progression.Details[i]
		}
	}
	if benchDetail == nil || benchDetail.Status != progression.StatusFirstTime {
		t.Errorf("bench detail = %+v, want first_time", benchDetail)
	}
	if rowDetail == nil || rowDetail.Status != models.StatusSkipped {
		t.Errorf("row detail = %+v, want skipped", rowDetail)
	}

	for _, ex := range completed.Exercises {
		if ex.ExerciseName == "Barbell Row" && ex.Status != models.StatusSkipped {
			t.Errorf("pending exercise status after complete = %q, want skipped", ex.Status)
		}
	}
}

func TestCompleteWorkoutTwiceConflicts(t *testing.T) {
	sessionID := uuid.New()
	store := &fakeStore{
		session: &models.SessionRow{ID: sessionID, StartedAt: time.Now()},
		sets:    map[uuid.UUID][]models.SetLog{},
		last:    map[uuid.UUID]*models.LastSession{},
	}
	svc := New(store, discardLog())

	if _, err := svc.Complete(context.Background(), sessionID); err != nil {
		t.Fatalf("first Complete: %v", err)
	}
	_, err := svc.Complete(context.Background(), sessionID)
	wantAPIError(t, err, 409, "Workout session is already completed")
}

func TestCurrentReturnsNilWhenNoSession(t *testing.T) {
	svc := New(&fakeStore{}, discardLog())

	view, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if view != nil {
		t.Errorf("view = %+v, want nil", view)
	}
}
