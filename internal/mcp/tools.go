package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/traincoach/internal/models"
)

// --- Tool definitions ---

var toolGetTodayContext = mcp.NewTool("get_today_context",
	mcp.WithDescription("Get the enriched training context for today: days since last session, weekly progress vs plan, adaptive volume thresholds, periodization cycle phase, recovery score, optimal training window, and the priority recommendation (what to prioritize and avoid)."),
	mcp.WithString("coach", mcp.Description("Coaching discipline perspective: strength, endurance, functional, calisthenics, or competitions. Free-form aliases (e.g. 'running', 'crossfit') are normalized. Defaults to strength."), mcp.Enum("strength", "endurance", "functional", "calisthenics", "competitions")),
)

var toolGetVolumeSummary = mcp.NewTool("get_volume_summary",
	mcp.WithDescription("Aggregate training volume over a window, judged against the coach's adaptive thresholds, with a per-discipline breakdown."),
	mcp.WithString("coach", mcp.Description("Coaching discipline whose volume rule and thresholds apply. Defaults to strength."), mcp.Enum("strength", "endurance", "functional", "calisthenics", "competitions")),
	mcp.WithNumber("days", mcp.Description("Window size in days. Defaults to 7.")),
)

var toolGetGoalsProgress = mcp.NewTool("get_goals_progress",
	mcp.WithDescription("Progress snapshot of every active training goal: percentage, remaining amount, on-track status against the deadline, and projected completion date."),
)

var toolRecalculateGoals = mcp.NewTool("recalculate_goals",
	mcp.WithDescription("Replay the activity log for every active goal and replace each goal's progress with the authoritative recomputed value. Use after bulk imports or when incremental sync may have drifted."),
)

var toolSuggestGoals = mcp.NewTool("suggest_goals",
	mcp.WithDescription("Suggest new goals from recent activity history: a weekly distance goal above the observed average and a VO2max goal above the latest estimate."),
	mcp.WithNumber("days", mcp.Description("History window in days. Defaults to 90.")),
)

// --- Tool handlers ---

func (h *handlers) getTodayContext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	coach := models.ParseDiscipline(req.GetString("coach", ""))
	uid := UserIDFromContext(ctx)

	tc, err := h.ds.TodayContext(ctx, uid, coach)
	if err != nil {
		h.log.Error("mcp get_today_context", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(tc)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getVolumeSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	coach := models.ParseDiscipline(req.GetString("coach", ""))
	days := req.GetInt("days", 7)
	uid := UserIDFromContext(ctx)

	summary, err := h.ds.VolumeSummary(ctx, uid, coach, days)
	if err != nil {
		h.log.Error("mcp get_volume_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(summary)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getGoalsProgress(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	progress, err := h.ds.GoalsProgress(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_goals_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(progress)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) recalculateGoals(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	results, err := h.ds.RecalculateAllGoals(ctx, uid)
	if err != nil {
		h.log.Error("mcp recalculate_goals", "error", err)
		return mcp.NewToolResultError("recalculation failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(results)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) suggestGoals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := req.GetInt("days", 90)
	uid := UserIDFromContext(ctx)

	suggestions, err := h.ds.SuggestGoals(ctx, uid, days)
	if err != nil {
		h.log.Error("mcp suggest_goals", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(suggestions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
