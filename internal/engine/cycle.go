package engine

import (
	"time"

	"github.com/claude/traincoach/internal/models"
)

// Phase is a coarse periodization emphasis within the 4-week cycle.
type Phase string

const (
	PhaseAccumulation    Phase = "accumulation"
	PhaseIntensification Phase = "intensification"
	PhaseDeload          Phase = "deload"
)

// cycleWeeks is the fixed periodization cycle length.
const cycleWeeks = 4

// CyclePhase locates the user within the 4-week periodization cycle.
type CyclePhase struct {
	CurrentWeek   int       `json:"current_week"`
	TotalWeeks    int       `json:"total_weeks"`
	Phase         Phase     `json:"phase"`
	NextPhase     Phase     `json:"next_phase"`
	NextPhaseDate time.Time `json:"next_phase_date"`
}

var nextPhase = map[Phase]Phase{
	PhaseAccumulation:    PhaseIntensification,
	PhaseIntensification: PhaseDeload,
	PhaseDeload:          PhaseAccumulation,
}

// DetermineCyclePhase maps elapsed time since the oldest session in the
// supplied window onto the cycle. The anchor is the oldest session of the
// window, not the user's true first-ever session: once the lookback window
// slides past the original anchor the apparent cycle restarts. Returns nil
// when the window is empty.
//
// Sessions are expected newest-first, as returned by the session store.
func DetermineCyclePhase(sessions []models.SessionRecord, now time.Time) *CyclePhase {
	if len(sessions) == 0 {
		return nil
	}

	oldest := sessions[len(sessions)-1].Timestamp
	weeksSinceStart := int(now.Sub(oldest).Hours() / 24 / 7)
	currentWeek := (weeksSinceStart % cycleWeeks) + 1

	var phase Phase
	switch {
	case currentWeek <= 2:
		phase = PhaseAccumulation
	case currentWeek == 3:
		phase = PhaseIntensification
	default:
		phase = PhaseDeload
	}

	weeksUntilNext := cycleWeeks - currentWeek + 1

	return &CyclePhase{
		CurrentWeek:   currentWeek,
		TotalWeeks:    cycleWeeks,
		Phase:         phase,
		NextPhase:     nextPhase[phase],
		NextPhaseDate: now.AddDate(0, 0, weeksUntilNext*7),
	}
}
