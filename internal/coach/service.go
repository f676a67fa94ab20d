// Package coach composes storage, the context engine, and the goal sync
// engine into the single service consumed by the HTTP handlers and the
// local MCP mode.
package coach

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claude/traincoach/internal/engine"
	"github.com/claude/traincoach/internal/goals"
	"github.com/claude/traincoach/internal/models"
	"github.com/claude/traincoach/internal/storage"
)

// Store is the persistence surface the service needs.
type Store interface {
	engine.SessionSource
	goals.ActivityStore
	goals.GoalStore

	InsertSession(ctx context.Context, s models.SessionRecord) (bool, error)
	InsertActivity(ctx context.Context, a models.ActivityRecord) (bool, error)
	CreateGoal(ctx context.Context, g models.TrainingGoal) (*models.TrainingGoal, error)
	SetGoalStatus(ctx context.Context, id uuid.UUID, userID int, status models.GoalStatus) (*models.TrainingGoal, error)
	ListGoalsNearingDeadline(ctx context.Context, userID int, within time.Duration) ([]models.TrainingGoal, error)
	ListExpiredGoals(ctx context.Context, userID int) ([]models.TrainingGoal, error)
}

var _ Store = (*storage.DB)(nil)

// Service is the application core behind the HTTP and MCP surfaces.
type Service struct {
	store    Store
	enricher *engine.Enricher
	goals    *goals.Engine
	log      *slog.Logger
}

// NewService creates a Service on top of a store.
func NewService(store Store, log *slog.Logger) *Service {
	return &Service{
		store:    store,
		enricher: engine.NewEnricher(store, log),
		goals:    goals.NewEngine(store, store, log),
		log:      log,
	}
}

// TodayContext derives the enriched training context for today.
func (s *Service) TodayContext(ctx context.Context, userID int, coach models.Discipline) (*engine.TodayContext, error) {
	return s.enricher.TodayContext(ctx, userID, coach)
}

// IngestSession normalizes and stores a training session. A zero id gets a
// fresh one. Returns false when the session was already stored.
func (s *Service) IngestSession(ctx context.Context, session models.SessionRecord) (bool, error) {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.Timestamp.IsZero() {
		session.Timestamp = time.Now()
	}
	session.Discipline = models.ParseDiscipline(string(session.Discipline))

	inserted, err := s.store.InsertSession(ctx, session)
	if err != nil {
		return false, fmt.Errorf("storing session: %w", err)
	}
	s.log.Info("session ingested", "session_id", session.ID, "user_id", session.UserID,
		"discipline", session.Discipline, "inserted", inserted)
	return inserted, nil
}

// IngestActivity stores an activity, then best-effort syncs goals and
// checks completions. Sync failures are logged, not returned: the activity
// is already durable and a later recalculation repairs goal state.
func (s *Service) IngestActivity(ctx context.Context, activity models.ActivityRecord) (bool, []goals.SyncResult, error) {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	if activity.Timestamp.IsZero() {
		activity.Timestamp = time.Now()
	}

	inserted, err := s.store.InsertActivity(ctx, activity)
	if err != nil {
		return false, nil, fmt.Errorf("storing activity: %w", err)
	}
	if !inserted {
		return false, nil, nil
	}

	results, err := s.goals.SyncActivity(ctx, activity.ID, activity.UserID)
	if err != nil {
		s.log.Error("goal sync after ingest failed", "activity_id", activity.ID, "error", err)
		return true, nil, nil
	}
	if _, err := s.goals.CheckAndCompleteGoals(ctx, activity.UserID); err != nil {
		s.log.Error("goal completion check after ingest failed", "activity_id", activity.ID, "error", err)
	}
	return true, results, nil
}

// VolumeSummary aggregates training volume over the given window.
type VolumeSummary struct {
	Days         int                                      `json:"days"`
	Discipline   models.Discipline                        `json:"discipline"`
	SessionCount int                                      `json:"session_count"`
	TotalVolume  engine.VolumeResult                      `json:"total_volume"`
	Thresholds   engine.VolumeThresholds                  `json:"thresholds"`
	Status       engine.Status                            `json:"status"`
	ByDiscipline map[models.Discipline]engine.VolumeResult `json:"by_discipline,omitempty"`
}

const summarySessionLimit = 200

// VolumeSummary computes the volume summary for the last days days, judged
// against the coach's thresholds. The per-discipline breakdown totals each
// session under its own discipline's volume rule.
func (s *Service) VolumeSummary(ctx context.Context, userID int, coach models.Discipline, days int) (*VolumeSummary, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)
	sessions, err := s.store.ListSessions(ctx, userID, since, summarySessionLimit)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	summary := &VolumeSummary{
		Days:         days,
		Discipline:   coach,
		SessionCount: len(sessions),
		TotalVolume:  engine.TotalVolume(sessions, coach),
		Thresholds:   engine.AdaptiveThresholds(sessions, coach),
	}
	summary.Status = engine.VolumeStatus(summary.TotalVolume.Value, summary.Thresholds)

	if len(sessions) > 0 {
		byDiscipline := map[models.Discipline]engine.VolumeResult{}
		for _, session := range sessions {
			vol := engine.SessionVolume(session, session.Discipline)
			agg := byDiscipline[session.Discipline]
			agg.Value += vol.Value
			agg.Unit = vol.Unit
			byDiscipline[session.Discipline] = agg
		}
		summary.ByDiscipline = byDiscipline
	}
	return summary, nil
}

// CreateGoal validates and stores a new goal. Unlike session ingest, where
// free-form disciplines from exports are coerced, an explicit goal discipline
// must be one of the five canonical values: a typo here would silently detach
// the goal from its sync rules.
func (s *Service) CreateGoal(ctx context.Context, goal models.TrainingGoal) (*models.TrainingGoal, error) {
	if goal.Title == "" {
		return nil, fmt.Errorf("goal title is required")
	}
	if goal.TargetValue <= 0 {
		return nil, fmt.Errorf("goal target_value must be positive")
	}
	if goal.Discipline != nil {
		d := models.Discipline(strings.ToLower(strings.TrimSpace(*goal.Discipline)))
		if !d.Valid() {
			return nil, fmt.Errorf("unknown discipline %q", *goal.Discipline)
		}
		goal.Discipline = (*string)(&d)
		if goal.Unit == "" && goal.GoalType == models.GoalVolume {
			goal.Unit = engine.UnitFor(d)
		}
	}
	created, err := s.store.CreateGoal(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("creating goal: %w", err)
	}
	s.log.Info("goal created", "goal_id", created.ID, "user_id", created.UserID, "type", created.GoalType)
	return created, nil
}

// GoalsProgress returns the progress snapshot of every active goal.
func (s *Service) GoalsProgress(ctx context.Context, userID int) ([]goals.Progress, error) {
	return s.goals.GoalsProgress(ctx, userID)
}

// RecalculateGoal replays the activity log for one goal.
func (s *Service) RecalculateGoal(ctx context.Context, goalID uuid.UUID, userID int) (*goals.SyncResult, error) {
	return s.goals.Recalculate(ctx, goalID, userID)
}

// RecalculateAllGoals replays the activity log for every active goal.
func (s *Service) RecalculateAllGoals(ctx context.Context, userID int) ([]goals.SyncResult, error) {
	return s.goals.RecalculateAll(ctx, userID)
}

// CheckGoalCompletions completes every active goal that reached its target.
func (s *Service) CheckGoalCompletions(ctx context.Context, userID int) ([]models.TrainingGoal, error) {
	return s.goals.CheckAndCompleteGoals(ctx, userID)
}

// SuggestGoals proposes goals from recent activity history.
func (s *Service) SuggestGoals(ctx context.Context, userID int, days int) ([]models.TrainingGoal, error) {
	return s.goals.SuggestGoals(ctx, userID, days)
}

// SetGoalStatus transitions a goal between active and abandoned. Completion
// is not settable here: goals complete only through the completion check when
// they reach their target. A missing goal is (nil, nil).
func (s *Service) SetGoalStatus(ctx context.Context, goalID uuid.UUID, userID int, status models.GoalStatus) (*models.TrainingGoal, error) {
	if status != models.GoalActive && status != models.GoalAbandoned {
		return nil, fmt.Errorf("status must be %q or %q", models.GoalActive, models.GoalAbandoned)
	}

	existing, err := s.store.GetGoal(ctx, goalID, userID)
	if err != nil {
		return nil, fmt.Errorf("loading goal: %w", err)
	}
	if existing == nil {
		return nil, nil
	}

	updated, err := s.store.SetGoalStatus(ctx, goalID, userID, status)
	if err != nil {
		return nil, fmt.Errorf("updating goal status: %w", err)
	}
	s.log.Info("goal status changed", "goal_id", goalID, "user_id", userID,
		"from", existing.Status, "to", status)
	return updated, nil
}

// GoalDeadlines groups the active goals whose deadline needs attention.
type GoalDeadlines struct {
	NearingDeadline []models.TrainingGoal `json:"nearing_deadline"`
	Expired         []models.TrainingGoal `json:"expired"`
}

// GoalDeadlines reports active goals with a deadline inside the window and
// active goals whose deadline already passed. Expired goals stay active —
// surfacing them is the user's cue to extend or abandon.
func (s *Service) GoalDeadlines(ctx context.Context, userID int, within time.Duration) (*GoalDeadlines, error) {
	nearing, err := s.store.ListGoalsNearingDeadline(ctx, userID, within)
	if err != nil {
		return nil, fmt.Errorf("listing goals nearing deadline: %w", err)
	}
	expired, err := s.store.ListExpiredGoals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing expired goals: %w", err)
	}
	if nearing == nil {
		nearing = []models.TrainingGoal{}
	}
	if expired == nil {
		expired = []models.TrainingGoal{}
	}
	return &GoalDeadlines{NearingDeadline: nearing, Expired: expired}, nil
}
