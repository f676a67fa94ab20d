package engine

import "github.com/claude/traincoach/internal/models"

// PriorityToday is the daily recommendation: what to prioritize, what to
// avoid, and why. It is a pure function of recent history and is
// regenerated on every call, never stored.
type PriorityToday struct {
	ShouldPrioritize []string `json:"should_prioritize"`
	ShouldAvoid      []string `json:"should_avoid"`
	Reason           string   `json:"reason"`
}

// longRestDays is the rest gap that switches the advisor into ease-back-in
// mode.
const longRestDays = 3

// DeterminePriorityToday picks today's recommendation. The branch order is
// deliberate and load-bearing: absence of history, then rest gap, then
// volume ceiling, then overuse, then volume floor, then steady state. The
// first matching branch wins.
//
// Sessions are expected newest-first.
func DeterminePriorityToday(sessions []models.SessionRecord, daysSinceLast int, weekly WeeklyProgress, coach models.Discipline) PriorityToday {
	if len(sessions) == 0 {
		return PriorityToday{
			ShouldPrioritize: []string{"Technique fundamentals", "Moderate effort", "Finding your baseline"},
			Reason:           "No recorded sessions yet; start with a technique-focused session",
		}
	}

	p := profileFor(coach)

	if daysSinceLast >= longRestDays {
		return p.longRest.toPriority(nil)
	}

	thresholds := AdaptiveThresholds(sessions, coach)
	status := VolumeStatus(weekly.TotalVolumeThisWeek.Value, thresholds)

	if status == StatusHigh || weekly.SessionsThisWeek >= sessionsPlannedPerWeek {
		return p.highVolume.toPriority(nil)
	}

	if overused := OverusedExercises(sessions); len(overused) > 0 {
		if p.namesExercises {
			return p.overuse.toPriority(overused)
		}
		return p.overuse.toPriority(nil)
	}

	lastVolume := SessionVolume(sessions[0], coach)
	if status == StatusLow && !IsExploratorySession(lastVolume.Value, thresholds) {
		return p.rampUp.toPriority(nil)
	}

	return p.optimal.toPriority(nil)
}

// toPriority materializes a template, optionally overriding the avoid list
// with concrete exercise names (overuse branch for coaches that name
// exercises).
func (r recommendation) toPriority(avoidOverride []string) PriorityToday {
	avoid := r.avoid
	if avoidOverride != nil {
		avoid = avoidOverride
	}
	return PriorityToday{
		ShouldPrioritize: append([]string(nil), r.prioritize...),
		ShouldAvoid:      append([]string(nil), avoid...),
		Reason:           r.reason,
	}
}
