// Package goals tracks long-term training goals: progress snapshots,
// incremental sync from incoming activities, and authoritative
// recalculation from the activity log.
package goals

import (
	"math"
	"time"

	"github.com/claude/traincoach/internal/models"
)

// Progress is a point-in-time view of a goal. EstimatedCompletion projects
// the deadline pace forward at the observed daily rate and is only set when
// the goal has a deadline and positive progress.
type Progress struct {
	Goal                models.TrainingGoal `json:"goal"`
	ProgressPct         float64             `json:"progress_percentage"`
	Remaining           float64             `json:"remaining"`
	EstimatedCompletion *time.Time          `json:"estimated_completion,omitempty"`
	OnTrack             bool                `json:"on_track"`
}

// onTrackFactor is the slack allowed against linear deadline pace: a goal
// counts as on track while actual progress is at least 80% of expected.
const onTrackFactor = 0.8

// CalculateProgress derives the progress snapshot for a goal at the given
// time. Goals without a deadline, or with no progress yet, are always on
// track and carry no completion estimate.
func CalculateProgress(goal models.TrainingGoal, now time.Time) Progress {
	p := Progress{Goal: goal, OnTrack: true}

	if goal.TargetValue > 0 {
		p.ProgressPct = math.Min(goal.CurrentValue/goal.TargetValue*100, 100)
	}
	p.Remaining = math.Max(goal.TargetValue-goal.CurrentValue, 0)

	if goal.Deadline == nil || goal.CurrentValue <= 0 {
		return p
	}

	daysElapsed := int(now.Sub(goal.CreatedAt).Hours() / 24)
	totalDays := int(goal.Deadline.Sub(goal.CreatedAt).Hours() / 24)
	if daysElapsed <= 0 || totalDays <= 0 {
		return p
	}

	expected := float64(daysElapsed) / float64(totalDays) * 100
	p.OnTrack = p.ProgressPct >= expected*onTrackFactor

	dailyRate := goal.CurrentValue / float64(daysElapsed)
	if dailyRate > 0 {
		remainingDays := p.Remaining / dailyRate
		est := now.Add(time.Duration(remainingDays * 24 * float64(time.Hour)))
		p.EstimatedCompletion = &est
	}
	return p
}
