package engine

import (
	"math"

	"github.com/claude/traincoach/internal/models"
)

// ThresholdSource records whether a threshold band was derived from the
// user's own history or fell back to the per-discipline defaults. Callers
// and tests use it to distinguish the fallback path from real data.
type ThresholdSource string

const (
	ThresholdsDefault ThresholdSource = "default"
	ThresholdsHistory ThresholdSource = "history"
)

// VolumeThresholds is a personalized low/optimal/high volume band.
// When derived from history, low < optimal < high holds for any
// non-degenerate input because the band is 0.7×/1.0×/1.3× of the mean.
type VolumeThresholds struct {
	Low     int             `json:"low"`
	Optimal int             `json:"optimal"`
	High    int             `json:"high"`
	Unit    string          `json:"unit"`
	Source  ThresholdSource `json:"source"`
}

// minSessionsForAdaptive is how much history a user needs before thresholds
// are personalized instead of taken from the default table.
const minSessionsForAdaptive = 3

// AdaptiveThresholds derives a personalized volume band from recent session
// volumes, falling back to the coach's fixed defaults when history is
// insufficient.
func AdaptiveThresholds(recent []models.SessionRecord, coach models.Discipline) VolumeThresholds {
	p := profileFor(coach)
	if len(recent) < minSessionsForAdaptive {
		return p.defaults
	}

	sum := 0.0
	for _, s := range recent {
		sum += p.volume(s).Value
	}
	avg := sum / float64(len(recent))

	return VolumeThresholds{
		Low:     int(math.Round(avg * 0.7)),
		Optimal: int(math.Round(avg)),
		High:    int(math.Round(avg * 1.3)),
		Unit:    p.unit,
		Source:  ThresholdsHistory,
	}
}

// Status classifies a volume against a threshold band.
type Status string

const (
	StatusLow     Status = "low"
	StatusOptimal Status = "optimal"
	StatusHigh    Status = "high"
)

// VolumeStatus classifies the current volume: below low is "low", above
// high is "high", everything else is "optimal".
func VolumeStatus(current float64, t VolumeThresholds) Status {
	if current < float64(t.Low) {
		return StatusLow
	}
	if current > float64(t.High) {
		return StatusHigh
	}
	return StatusOptimal
}

// IsExploratorySession flags a very-low-volume session (below half the low
// threshold). A single trivial test session should not by itself trigger a
// low-volume alert.
func IsExploratorySession(volume float64, t VolumeThresholds) bool {
	return volume < float64(t.Low)*0.5
}
