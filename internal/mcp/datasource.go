package mcp

import (
	"context"

	"github.com/claude/traincoach/internal/coach"
	"github.com/claude/traincoach/internal/engine"
	"github.com/claude/traincoach/internal/goals"
	"github.com/claude/traincoach/internal/models"
)

// DataSource abstracts the application core for MCP tools. Both
// *coach.Service (local mode) and HTTPClient (remote via REST API) satisfy
// this interface.
type DataSource interface {
	TodayContext(ctx context.Context, userID int, discipline models.Discipline) (*engine.TodayContext, error)
	VolumeSummary(ctx context.Context, userID int, discipline models.Discipline, days int) (*coach.VolumeSummary, error)
	GoalsProgress(ctx context.Context, userID int) ([]goals.Progress, error)
	RecalculateAllGoals(ctx context.Context, userID int) ([]goals.SyncResult, error)
	SuggestGoals(ctx context.Context, userID int, days int) ([]models.TrainingGoal, error)
}

// Compile-time check: *coach.Service satisfies DataSource.
var _ DataSource = (*coach.Service)(nil)
