package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List the exercise library: name, muscle group, default rest seconds, and notes for every exercise, ordered by name."),
)

var toolGetCurrentWorkout = mcp.NewTool("get_current_workout",
	mcp.WithDescription("Get the in-progress workout session with its exercises, statuses, logged sets, and each exercise's previous performance. Returns null when no workout is in progress."),
)

var toolGetLastSession = mcp.NewTool("get_last_session",
	mcp.WithDescription("Get the most recent completed or partial performance of an exercise: date and every logged set. Returns null when the exercise has never been performed."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise UUID (from list_exercises)")),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Get an exercise's session history, newest first, each entry annotated with a progression verdict (progressed/same/regressed/first_time) relative to the session immediately before it."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise UUID (from list_exercises)")),
	mcp.WithNumber("limit", mcp.Description("Page size, 1-50. Defaults to 10.")),
	mcp.WithNumber("offset", mcp.Description("Page offset. Defaults to 0.")),
)

var toolGetWeekHistory = mcp.NewTool("get_week_history",
	mcp.WithDescription("Get every workout in one calendar week (Sunday through Saturday) with exercises, sets, and muscle groups. Defaults to the current week."),
	mcp.WithString("week", mcp.Description("ISO week token, e.g. 2026-W04. Overrides date.")),
	mcp.WithString("date", mcp.Description("Any date within the wanted week (YYYY-MM-DD).")),
)

// --- Tool handlers ---

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.ListExercises(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(exercises)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getCurrentWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	session, err := h.ds.Current(ctx)
	if err != nil {
		h.log.Error("mcp get_current_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(session)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getLastSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}
	exerciseID, err := uuid.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError("exercise_id must be a UUID"), nil
	}

	last, err := h.ds.LastSessionPreview(ctx, exerciseID)
	if err != nil {
		h.log.Error("mcp get_last_session", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(last)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}
	exerciseID, err := uuid.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError("exercise_id must be a UUID"), nil
	}

	limit := req.GetInt("limit", 0)
	offset := req.GetInt("offset", 0)

	history, err := h.ds.ExerciseHistory(ctx, exerciseID, limit, offset)
	if err != nil {
		h.log.Error("mcp get_exercise_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(history)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeekHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	week := req.GetString("week", "")
	date := req.GetString("date", "")

	view, err := h.ds.WeekHistory(ctx, week, date, time.Now().UTC())
	if err != nil {
		h.log.Error("mcp get_week_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(view)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
