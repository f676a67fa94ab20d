// Package mcp exposes the coaching engine to LLM assistants over the Model
// Context Protocol.
package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("TrainCoach", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("TrainCoach personal training server. Query today's training context (volume, thresholds, periodization phase, recovery, priority recommendation) and long-term goal progress. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetTodayContext, Handler: h.getTodayContext},
		server.ServerTool{Tool: toolGetVolumeSummary, Handler: h.getVolumeSummary},
		server.ServerTool{Tool: toolGetGoalsProgress, Handler: h.getGoalsProgress},
		server.ServerTool{Tool: toolRecalculateGoals, Handler: h.recalculateGoals},
		server.ServerTool{Tool: toolSuggestGoals, Handler: h.suggestGoals},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resTodayContext, Handler: h.todayContextResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resTodayContext = mcp.NewResource(
	"traincoach://today_context",
	"Today's Training Context",
	mcp.WithResourceDescription("The enriched training context for today: weekly progress, volume thresholds, cycle phase, recovery score, and the priority recommendation"),
	mcp.WithMIMEType("application/json"),
)
