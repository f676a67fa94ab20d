package goals

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claude/traincoach/internal/models"
)

// ActivityStore is the slice of the activity repository the sync engine
// needs. ListActivitiesSince returns records in ascending timestamp order.
type ActivityStore interface {
	GetActivity(ctx context.Context, id uuid.UUID, userID int) (*models.ActivityRecord, error)
	ListActivitiesSince(ctx context.Context, userID int, since time.Time) ([]models.ActivityRecord, error)
}

// GoalStore is the slice of the goal repository the sync engine needs.
type GoalStore interface {
	GetGoal(ctx context.Context, id uuid.UUID, userID int) (*models.TrainingGoal, error)
	ListActiveGoals(ctx context.Context, userID int) ([]models.TrainingGoal, error)
	UpdateGoalValue(ctx context.Context, id uuid.UUID, userID int, value float64) (*models.TrainingGoal, error)
	CompleteGoal(ctx context.Context, id uuid.UUID, userID int) (*models.TrainingGoal, error)
}

// SyncResult records one goal update produced by a sync or recalculation.
type SyncResult struct {
	GoalID      uuid.UUID `json:"goal_id"`
	OldValue    float64   `json:"old_value"`
	NewValue    float64   `json:"new_value"`
	ProgressPct float64   `json:"progress_percentage"`
}

// Engine applies activities to active goals. It holds no state beyond its
// stores; all progress lives in the goal rows.
type Engine struct {
	activities ActivityStore
	goals      GoalStore
	log        *slog.Logger
}

// NewEngine creates a goal sync engine.
func NewEngine(activities ActivityStore, goals GoalStore, log *slog.Logger) *Engine {
	return &Engine{activities: activities, goals: goals, log: log}
}

// SyncActivity applies one activity to every active goal of the user. A goal
// that the activity does not contribute to is skipped without a write. A
// failure on one goal is logged and does not abort the others. A missing
// activity is a warning, not an error.
func (e *Engine) SyncActivity(ctx context.Context, activityID uuid.UUID, userID int) ([]SyncResult, error) {
	activity, err := e.activities.GetActivity(ctx, activityID, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching activity: %w", err)
	}
	if activity == nil {
		e.log.Warn("activity not found for goal sync", "activity_id", activityID, "user_id", userID)
		return nil, nil
	}

	active, err := e.goals.ListActiveGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing active goals: %w", err)
	}

	var results []SyncResult
	for _, goal := range active {
		delta := extractDelta(goal, *activity)
		if delta == 0 {
			continue
		}
		updated, err := e.goals.UpdateGoalValue(ctx, goal.ID, userID, goal.CurrentValue+delta)
		if err != nil {
			e.log.Error("updating goal from activity", "goal_id", goal.ID, "error", err)
			continue
		}
		results = append(results, SyncResult{
			GoalID:      goal.ID,
			OldValue:    goal.CurrentValue,
			NewValue:    updated.CurrentValue,
			ProgressPct: CalculateProgress(*updated, time.Now()).ProgressPct,
		})
	}

	e.log.Info("activity synced with goals",
		"activity_id", activityID, "user_id", userID, "goals_updated", len(results))
	return results, nil
}

// extractDelta maps an activity onto a goal's unit of progress. Zero means
// the activity does not contribute. VO2max goals are snapshot metrics: the
// delta replaces the current value with the latest observation instead of
// accumulating.
func extractDelta(goal models.TrainingGoal, activity models.ActivityRecord) float64 {
	if goal.IsVO2MaxGoal() {
		if activity.VO2MaxEstimated != nil {
			return *activity.VO2MaxEstimated - goal.CurrentValue
		}
		return 0
	}

	switch goal.GoalType {
	case models.GoalVolume:
		switch goal.Unit {
		case "minutes", "min":
			if activity.DurationMin != nil {
				return *activity.DurationMin
			}
		case "sessions":
			return 1
		}
		return 0

	case models.GoalDistance:
		if activity.DistanceMeters == nil {
			return 0
		}
		switch goal.Unit {
		case "km", "kilometers":
			return *activity.DistanceMeters / 1000
		case "m", "meters":
			return *activity.DistanceMeters
		}
		return 0

	case models.GoalStrength:
		switch goal.Unit {
		case "sessions":
			if isStrengthActivity(activity.Type) {
				return 1
			}
		case "total_load":
			if activity.TrainingLoadScore != nil {
				return *activity.TrainingLoadScore
			}
		}
		return 0

	default:
		// frequency, weight, custom: no automatic contribution.
		return 0
	}
}

var strengthActivityKeywords = []string{
	"musculation", "force", "strength", "weightlifting", "powerlifting", "crossfit",
}

func isStrengthActivity(activityType string) bool {
	lower := strings.ToLower(activityType)
	for _, kw := range strengthActivityKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Recalculate replays every activity since the goal's creation and replaces
// the goal's current value with the replayed total. It is the authoritative
// path: running it twice in a row yields the same value. For VO2max goals
// the replay takes the latest observed estimate; with no observations the
// stored value is left untouched.
func (e *Engine) Recalculate(ctx context.Context, goalID uuid.UUID, userID int) (*SyncResult, error) {
	goal, err := e.goals.GetGoal(ctx, goalID, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching goal: %w", err)
	}
	if goal == nil {
		e.log.Warn("goal not found for recalculation", "goal_id", goalID, "user_id", userID)
		return nil, nil
	}

	activities, err := e.activities.ListActivitiesSince(ctx, userID, goal.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}

	var total float64
	if goal.IsVO2MaxGoal() {
		latest, ok := latestVO2Max(activities)
		if !ok {
			return nil, nil
		}
		total = latest
	} else {
		// Replay against a zeroed goal so snapshot-style deltas cannot
		// leak the stored value into the total.
		replay := *goal
		replay.CurrentValue = 0
		for _, a := range activities {
			total += extractDelta(replay, a)
		}
	}

	updated, err := e.goals.UpdateGoalValue(ctx, goalID, userID, total)
	if err != nil {
		return nil, fmt.Errorf("updating goal value: %w", err)
	}

	e.log.Info("goal progress recalculated", "goal_id", goalID, "user_id", userID, "value", total)
	return &SyncResult{
		GoalID:      goalID,
		OldValue:    goal.CurrentValue,
		NewValue:    updated.CurrentValue,
		ProgressPct: CalculateProgress(*updated, time.Now()).ProgressPct,
	}, nil
}

func latestVO2Max(activities []models.ActivityRecord) (float64, bool) {
	for i := len(activities) - 1; i >= 0; i-- {
		if v := activities[i].VO2MaxEstimated; v != nil {
			return *v, true
		}
	}
	return 0, false
}

// RecalculateAll recalculates every active goal of the user sequentially.
// One failing goal is logged and skipped.
func (e *Engine) RecalculateAll(ctx context.Context, userID int) ([]SyncResult, error) {
	active, err := e.goals.ListActiveGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing active goals: %w", err)
	}

	var results []SyncResult
	for _, goal := range active {
		res, err := e.Recalculate(ctx, goal.ID, userID)
		if err != nil {
			e.log.Error("recalculating goal", "goal_id", goal.ID, "error", err)
			continue
		}
		if res != nil {
			results = append(results, *res)
		}
	}

	e.log.Info("all goals recalculated", "user_id", userID, "goals_recalculated", len(results))
	return results, nil
}

// CheckAndCompleteGoals transitions every active goal whose current value
// has reached its target to the completed state.
func (e *Engine) CheckAndCompleteGoals(ctx context.Context, userID int) ([]models.TrainingGoal, error) {
	active, err := e.goals.ListActiveGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing active goals: %w", err)
	}

	var completed []models.TrainingGoal
	for _, goal := range active {
		if goal.CurrentValue < goal.TargetValue {
			continue
		}
		done, err := e.goals.CompleteGoal(ctx, goal.ID, userID)
		if err != nil {
			e.log.Error("completing goal", "goal_id", goal.ID, "error", err)
			continue
		}
		completed = append(completed, *done)
		e.log.Info("goal auto-completed", "goal_id", goal.ID, "user_id", userID)
	}
	return completed, nil
}

// GoalsProgress returns the progress snapshot of every active goal.
func (e *Engine) GoalsProgress(ctx context.Context, userID int) ([]Progress, error) {
	active, err := e.goals.ListActiveGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing active goals: %w", err)
	}

	now := time.Now()
	progress := make([]Progress, 0, len(active))
	for _, goal := range active {
		progress = append(progress, CalculateProgress(goal, now))
	}
	return progress, nil
}

// suggestionGrowth scales observed averages up for suggested targets.
const (
	suggestionGrowth       = 1.2
	vo2maxSuggestionGrowth = 1.05
	suggestionDefaultDays  = 90
)

// SuggestGoals proposes goals from recent activity history: a weekly
// distance goal at 1.2× the observed average (targeted over four weeks) and
// a VO2max goal at 1.05× the latest estimate. days <= 0 uses the default
// 90-day window. No history means no suggestions.
func (e *Engine) SuggestGoals(ctx context.Context, userID int, days int) ([]models.TrainingGoal, error) {
	if days <= 0 {
		days = suggestionDefaultDays
	}
	now := time.Now()
	since := now.AddDate(0, 0, -days)

	activities, err := e.activities.ListActivitiesSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	if len(activities) == 0 {
		return nil, nil
	}

	var suggestions []models.TrainingGoal

	var totalDistance float64
	for _, a := range activities {
		if a.DistanceMeters != nil {
			totalDistance += *a.DistanceMeters
		}
	}
	if totalDistance > 0 {
		avgWeeklyKm := totalDistance / 1000 / float64(days) * 7
		weeklyKm := int(math.Ceil(avgWeeklyKm * suggestionGrowth))
		suggestions = append(suggestions, models.TrainingGoal{
			UserID:      userID,
			Title:       fmt.Sprintf("Cover %d km per week", weeklyKm),
			GoalType:    models.GoalDistance,
			TargetValue: float64(weeklyKm * 4),
			Unit:        "km",
			Status:      models.GoalActive,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if latest, ok := latestVO2Max(activities); ok {
		target := math.Ceil(latest * vo2maxSuggestionGrowth)
		suggestions = append(suggestions, models.TrainingGoal{
			UserID:       userID,
			Title:        fmt.Sprintf("Reach a VO2max of %.0f", target),
			GoalType:     models.GoalEndurance,
			TargetValue:  target,
			CurrentValue: latest,
			Unit:         "vo2max",
			Status:       models.GoalActive,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	e.log.Info("goal suggestions generated", "user_id", userID, "count", len(suggestions))
	return suggestions, nil
}
