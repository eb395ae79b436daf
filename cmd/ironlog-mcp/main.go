// ironlog-mcp serves the workout log over the Model Context Protocol on
// stdio. Two modes: local (direct database access via -config) and remote
// (REST API access via -url, e.g. over Tailscale).
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/ironlog/internal/config"
	"github.com/meltforce/ironlog/internal/mcp"
	"github.com/meltforce/ironlog/internal/storage"
	"github.com/meltforce/ironlog/internal/workout"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (local mode)")
	baseURL := flag.String("url", "", "IronLog server base URL (remote mode)")
	flag.Parse()

	// stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	switch {
	case *baseURL != "":
		ds = mcp.NewHTTPClient(*baseURL)
		log.Info("remote mode", "url", *baseURL)
	case *configPath != "":
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		db, err := storage.New(context.Background(), cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		ds = workout.New(db, log)
		log.Info("local mode", "database", cfg.Database.Name)
	default:
		log.Error("either -config or -url is required")
		os.Exit(1)
	}

	s := mcp.New(ds, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
