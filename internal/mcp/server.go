// Package mcp exposes the workout log to LLM clients over the Model Context
// Protocol. All tools are read-only; lifecycle mutations stay behind the
// HTTP API.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("IronLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("IronLog workout tracking server. Query the exercise library, the current workout session, per-exercise history with progression verdicts, and weekly training summaries."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetCurrentWorkout, Handler: h.getCurrentWorkout},
		server.ServerTool{Tool: toolGetLastSession, Handler: h.getLastSession},
		server.ServerTool{Tool: toolGetExerciseHistory, Handler: h.getExerciseHistory},
		server.ServerTool{Tool: toolGetWeekHistory, Handler: h.getWeekHistory},
	)

	s.AddResources(
		server.ServerResource{Resource: resCurrentWorkout, Handler: h.currentWorkout},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

var resCurrentWorkout = mcp.NewResource(
	"ironlog://current_workout",
	"Current Workout",
	mcp.WithResourceDescription("The in-progress workout session with its exercises, logged sets, and each exercise's previous performance. Null when no session is in progress."),
	mcp.WithMIMEType("application/json"),
)
