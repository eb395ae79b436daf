// Package export writes completed workout sessions into a local SQLite
// snapshot, for offline analysis and backup. Exports are incremental: a
// state table records which sessions have already been written.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/meltforce/ironlog/internal/models"
	_ "modernc.org/sqlite"
)

// Snapshot is the local SQLite export target.
type Snapshot struct {
	db *sql.DB
}

// Open opens (or creates) the snapshot database at dir/ironlog.db.
func Open(dir string) (*Snapshot, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "ironlog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id            TEXT PRIMARY KEY,
			started_at    TIMESTAMP NOT NULL,
			completed_at  TIMESTAMP NOT NULL,
			notes         TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS session_sets (
			session_id    TEXT NOT NULL REFERENCES sessions(id),
			exercise_name TEXT NOT NULL,
			muscle_group  TEXT NOT NULL,
			status        TEXT NOT NULL,
			set_number    INTEGER NOT NULL,
			weight_lbs    REAL NOT NULL,
			reps          INTEGER NOT NULL,
			rpe           REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS exported_sessions (
			session_id  TEXT PRIMARY KEY,
			exported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating snapshot schema: %w", err)
		}
	}

	return &Snapshot{db: db}, nil
}

// Has reports whether a session has already been exported.
func (s *Snapshot) Has(sessionID string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM exported_sessions WHERE session_id = ?`, sessionID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Write stores one completed session with its per-exercise sets and marks
// it exported.
func (s *Snapshot) Write(ctx context.Context, session models.SessionRow, exercises []models.SessionExerciseRow, setsByExercise map[string][]models.SetLog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning snapshot tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO sessions (id, started_at, completed_at, notes)
		 VALUES (?, ?, ?, ?)`,
		session.ID.String(), session.StartedAt, session.CompletedAt, session.Notes); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM session_sets WHERE session_id = ?`, session.ID.String()); err != nil {
		return fmt.Errorf("clearing session sets: %w", err)
	}

	for _, ex := range exercises {
		for _, set := range setsByExercise[ex.ID.String()] {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO session_sets
				   (session_id, exercise_name, muscle_group, status, set_number, weight_lbs, reps, rpe)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				session.ID.String(), ex.ExerciseName, ex.MuscleGroup, ex.Status,
				set.SetNumber, set.WeightLbs, set.Reps, set.RPE); err != nil {
				return fmt.Errorf("writing set: %w", err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO exported_sessions (session_id) VALUES (?)`,
		session.ID.String()); err != nil {
		return fmt.Errorf("marking session exported: %w", err)
	}

	return tx.Commit()
}

// Close closes the snapshot database.
func (s *Snapshot) Close() error {
	return s.db.Close()
}
