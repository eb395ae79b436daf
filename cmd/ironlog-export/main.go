// ironlog-export copies completed workout sessions into a local SQLite
// snapshot. Runs are incremental: sessions already in the snapshot are
// skipped.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/meltforce/ironlog/internal/config"
	"github.com/meltforce/ironlog/internal/export"
	"github.com/meltforce/ironlog/internal/models"
	"github.com/meltforce/ironlog/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	outDir := flag.String("out", "export", "snapshot output directory")
	force := flag.Bool("force", false, "re-export sessions already in the snapshot")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	snap, err := export.Open(*outDir)
	if err != nil {
		log.Error("failed to open snapshot", "error", err)
		os.Exit(1)
	}
	defer snap.Close()

	sessions, err := db.CompletedSessions(ctx)
	if err != nil {
		log.Error("failed to list sessions", "error", err)
		os.Exit(1)
	}

	var exported, skipped int
	for _, session := range sessions {
		if !*force {
			has, err := snap.Has(session.ID.String())
			if err != nil {
				log.Error("snapshot check failed", "session_id", session.ID, "error", err)
				os.Exit(1)
			}
			if has {
				skipped++
				continue
			}
		}

		exercises, err := db.SessionExercises(ctx, session.ID)
		if err != nil {
			log.Error("failed to load exercises", "session_id", session.ID, "error", err)
			os.Exit(1)
		}
		setsByID, err := db.SetsForSession(ctx, session.ID)
		if err != nil {
			log.Error("failed to load sets", "session_id", session.ID, "error", err)
			os.Exit(1)
		}
		setsByExercise := make(map[string][]models.SetLog, len(setsByID))
		for id, sets := range setsByID {
			setsByExercise[id.String()] = sets
		}

		if err := snap.Write(ctx, session, exercises, setsByExercise); err != nil {
			log.Error("failed to write session", "session_id", session.ID, "error", err)
			os.Exit(1)
		}
		exported++
	}

	log.Info("export complete", "exported", exported, "skipped", skipped, "total", len(sessions))
}
