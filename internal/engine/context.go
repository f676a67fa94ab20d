package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/traincoach/internal/models"
)

// Lookback window for the enriched context.
const (
	lookbackDays    = 21
	lookbackLimit   = 20
	recentFocusSize = 5
	maxFocusNames   = 10
)

// SessionSource supplies recent session history, newest first.
type SessionSource interface {
	ListSessions(ctx context.Context, userID int, since time.Time, limit int) ([]models.SessionRecord, error)
}

// TodayContext is the enriched context returned to the caller, merging
// weekly progress, the priority recommendation, cycle phase, and recovery.
// HasHistory distinguishes the real-data path from the no-history defaults.
type TodayContext struct {
	UserID      int               `json:"user_id"`
	Discipline  models.Discipline `json:"discipline"`
	GeneratedAt time.Time         `json:"generated_at"`
	HasHistory  bool              `json:"has_history"`

	LastSessionAt         *time.Time        `json:"last_session_at,omitempty"`
	LastSessionDiscipline models.Discipline `json:"last_session_discipline,omitempty"`
	DaysSinceLastSession  int               `json:"days_since_last_session"`

	WeeklyProgress WeeklyProgress   `json:"weekly_progress"`
	Thresholds     VolumeThresholds `json:"thresholds"`
	VolumeStatus   Status           `json:"volume_status"`
	PriorityToday  PriorityToday    `json:"priority_today"`

	RecentFocus       RecentFocus `json:"recent_focus"`
	OverusedExercises []string    `json:"overused_exercises,omitempty"`

	CyclePhase    *CyclePhase    `json:"cycle_phase,omitempty"`
	RecoveryScore *int           `json:"recovery_score,omitempty"`
	OptimalWindow *OptimalWindow `json:"optimal_window,omitempty"`
}

// RecentFocus summarizes what the last few sessions worked on.
type RecentFocus struct {
	ExerciseNames []string            `json:"exercise_names,omitempty"`
	Disciplines   []models.Discipline `json:"disciplines,omitempty"`
}

// Enricher computes enriched training contexts from a session source. It
// holds no per-user state; every call is a fresh derivation.
type Enricher struct {
	sessions SessionSource
	log      *slog.Logger
}

// NewEnricher creates an Enricher.
func NewEnricher(sessions SessionSource, log *slog.Logger) *Enricher {
	return &Enricher{sessions: sessions, log: log}
}

// TodayContext fetches the last three weeks of history and derives the full
// context. Missing history is not an error: the result carries the
// first-session recommendation and default thresholds, with HasHistory
// false. Store failures propagate to the caller.
func (e *Enricher) TodayContext(ctx context.Context, userID int, coach models.Discipline) (*TodayContext, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -lookbackDays)

	sessions, err := e.sessions.ListSessions(ctx, userID, since, lookbackLimit)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	tc := &TodayContext{
		UserID:      userID,
		Discipline:  coach,
		GeneratedAt: now,
	}

	if len(sessions) == 0 {
		tc.Thresholds = AdaptiveThresholds(nil, coach)
		tc.WeeklyProgress = CalculateWeeklyProgress(nil, coach, now)
		tc.VolumeStatus = VolumeStatus(0, tc.Thresholds)
		tc.PriorityToday = DeterminePriorityToday(nil, 0, tc.WeeklyProgress, coach)
		e.log.Info("today context built without history", "user_id", userID, "coach", coach)
		return tc, nil
	}

	last := sessions[0]
	daysSince := int(now.Sub(last.Timestamp).Hours() / 24)

	tc.HasHistory = true
	tc.LastSessionAt = &last.Timestamp
	tc.LastSessionDiscipline = last.Discipline
	tc.DaysSinceLastSession = daysSince

	tc.WeeklyProgress = CalculateWeeklyProgress(sessions, coach, now)
	tc.Thresholds = AdaptiveThresholds(sessions, coach)
	tc.VolumeStatus = VolumeStatus(tc.WeeklyProgress.TotalVolumeThisWeek.Value, tc.Thresholds)
	tc.PriorityToday = DeterminePriorityToday(sessions, daysSince, tc.WeeklyProgress, coach)
	tc.RecentFocus = analyzeRecentFocus(sessions)
	tc.OverusedExercises = OverusedExercises(sessions)
	tc.CyclePhase = DetermineCyclePhase(sessions, now)

	score := RecoveryScore(last, daysSince)
	window := DetermineOptimalWindow(score, daysSince)
	tc.RecoveryScore = &score
	tc.OptimalWindow = &window

	e.log.Info("today context built",
		"user_id", userID,
		"coach", coach,
		"sessions", len(sessions),
		"volume_status", tc.VolumeStatus,
		"recovery_score", score,
	)
	return tc, nil
}

// analyzeRecentFocus collects exercise names and disciplines from the most
// recent sessions.
func analyzeRecentFocus(sessions []models.SessionRecord) RecentFocus {
	focus := RecentFocus{}
	seen := map[models.Discipline]bool{}

	n := len(sessions)
	if n > recentFocusSize {
		n = recentFocusSize
	}
	for _, s := range sessions[:n] {
		if !seen[s.Discipline] {
			seen[s.Discipline] = true
			focus.Disciplines = append(focus.Disciplines, s.Discipline)
		}
		for _, ex := range s.Prescription.Exercises {
			if ex.Name == "" || len(focus.ExerciseNames) >= maxFocusNames {
				continue
			}
			focus.ExerciseNames = append(focus.ExerciseNames, ex.Name)
		}
	}
	return focus
}
