package mcp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/traincoach/internal/coach"
	"github.com/claude/traincoach/internal/engine"
	"github.com/claude/traincoach/internal/goals"
	"github.com/claude/traincoach/internal/models"
)

// TestUserIDFromContextDefault verifies the default user ID (1) when no value
// is set in the context.
func TestUserIDFromContextDefault(t *testing.T) {
	ctx := context.Background()
	if id := UserIDFromContext(ctx); id != 1 {
		t.Errorf("UserIDFromContext(empty) = %d, want 1", id)
	}
}

// TestUserIDFromContextSet verifies the user ID is extracted from context
// after being set by WithUserID.
func TestUserIDFromContextSet(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)
	if id := UserIDFromContext(ctx); id != 42 {
		t.Errorf("UserIDFromContext = %d, want 42", id)
	}
}

// fakeDataSource records the arguments tools pass through and returns canned
// values, so handler tests never touch storage or the network.
type fakeDataSource struct {
	gotUserID     int
	gotDiscipline models.Discipline
	gotDays       int
	err           error
}

func (f *fakeDataSource) TodayContext(_ context.Context, userID int, discipline models.Discipline) (*engine.TodayContext, error) {
	f.gotUserID = userID
	f.gotDiscipline = discipline
	if f.err != nil {
		return nil, f.err
	}
	return &engine.TodayContext{Discipline: discipline}, nil
}

func (f *fakeDataSource) VolumeSummary(_ context.Context, userID int, discipline models.Discipline, days int) (*coach.VolumeSummary, error) {
	f.gotUserID = userID
	f.gotDiscipline = discipline
	f.gotDays = days
	if f.err != nil {
		return nil, f.err
	}
	return &coach.VolumeSummary{Days: days, Discipline: discipline}, nil
}

func (f *fakeDataSource) GoalsProgress(_ context.Context, userID int) ([]goals.Progress, error) {
	f.gotUserID = userID
	return nil, f.err
}

func (f *fakeDataSource) RecalculateAllGoals(_ context.Context, userID int) ([]goals.SyncResult, error) {
	f.gotUserID = userID
	return nil, f.err
}

func (f *fakeDataSource) SuggestGoals(_ context.Context, userID int, days int) ([]models.TrainingGoal, error) {
	f.gotUserID = userID
	f.gotDays = days
	return nil, f.err
}

func newTestHandlers(ds DataSource) *handlers {
	return &handlers{ds: ds, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func callReq(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("content is %T, want text", result.Content[0])
	}
	return tc.Text
}

func TestGetTodayContextTool(t *testing.T) {
	ds := &fakeDataSource{}
	h := newTestHandlers(ds)
	ctx := WithUserID(context.Background(), 7)

	result, err := h.getTodayContext(ctx, callReq("get_today_context", map[string]any{"coach": "running"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textContent(t, result))
	}
	if ds.gotUserID != 7 {
		t.Errorf("userID = %d, want 7", ds.gotUserID)
	}
	// "running" is an alias for the endurance coach.
	if ds.gotDiscipline != models.DisciplineEndurance {
		t.Errorf("discipline = %q, want endurance", ds.gotDiscipline)
	}
	if body := textContent(t, result); !strings.Contains(body, "endurance") {
		t.Errorf("result body %q does not mention endurance", body)
	}
}

func TestGetVolumeSummaryToolDefaults(t *testing.T) {
	ds := &fakeDataSource{}
	h := newTestHandlers(ds)

	result, err := h.getVolumeSummary(context.Background(), callReq("get_volume_summary", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textContent(t, result))
	}
	if ds.gotDiscipline != models.DisciplineStrength {
		t.Errorf("discipline = %q, want strength default", ds.gotDiscipline)
	}
	if ds.gotDays != 7 {
		t.Errorf("days = %d, want 7 default", ds.gotDays)
	}
	if ds.gotUserID != 1 {
		t.Errorf("userID = %d, want 1 default", ds.gotUserID)
	}
}

func TestGetVolumeSummaryToolParams(t *testing.T) {
	ds := &fakeDataSource{}
	h := newTestHandlers(ds)

	args := map[string]any{"coach": "calisthenics", "days": float64(30)}
	if _, err := h.getVolumeSummary(context.Background(), callReq("get_volume_summary", args)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.gotDiscipline != models.DisciplineCalisthenics {
		t.Errorf("discipline = %q, want calisthenics", ds.gotDiscipline)
	}
	if ds.gotDays != 30 {
		t.Errorf("days = %d, want 30", ds.gotDays)
	}
}

func TestToolErrorsAreToolResults(t *testing.T) {
	// Data source failures come back as tool errors, never transport errors.
	ds := &fakeDataSource{err: errors.New("db down")}
	h := newTestHandlers(ds)
	ctx := context.Background()

	calls := []func() (*mcp.CallToolResult, error){
		func() (*mcp.CallToolResult, error) {
			return h.getTodayContext(ctx, callReq("get_today_context", nil))
		},
		func() (*mcp.CallToolResult, error) {
			return h.getVolumeSummary(ctx, callReq("get_volume_summary", nil))
		},
		func() (*mcp.CallToolResult, error) {
			return h.getGoalsProgress(ctx, callReq("get_goals_progress", nil))
		},
		func() (*mcp.CallToolResult, error) {
			return h.recalculateGoals(ctx, callReq("recalculate_goals", nil))
		},
		func() (*mcp.CallToolResult, error) {
			return h.suggestGoals(ctx, callReq("suggest_goals", nil))
		},
	}
	for i, call := range calls {
		result, err := call()
		if err != nil {
			t.Errorf("call %d: transport error %v, want tool error", i, err)
			continue
		}
		if !result.IsError {
			t.Errorf("call %d: IsError = false, want true", i)
		}
	}
}

func TestSuggestGoalsToolDaysDefault(t *testing.T) {
	ds := &fakeDataSource{}
	h := newTestHandlers(ds)

	if _, err := h.suggestGoals(context.Background(), callReq("suggest_goals", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.gotDays != 90 {
		t.Errorf("days = %d, want 90 default", ds.gotDays)
	}
}
