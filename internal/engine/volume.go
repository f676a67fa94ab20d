package engine

import (
	"fmt"
	"math"

	"github.com/claude/traincoach/internal/models"
)

// VolumeResult is a single scalar summarizing how much training a session or
// week represents, in a discipline-specific unit.
type VolumeResult struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// String formats the volume for display, e.g. "150 reps".
func (v VolumeResult) String() string {
	return fmt.Sprintf("%d %s", int(math.Round(v.Value)), v.Unit)
}

// SessionVolume computes the volume of a single session using the coach
// type's strategy. The dispatch is on the coach, not the payload: the same
// prescription can score differently under different coaches.
func SessionVolume(s models.SessionRecord, coach models.Discipline) VolumeResult {
	return profileFor(coach).volume(s)
}

// TotalVolume sums per-session volumes. By construction it equals the sum of
// independent SessionVolume calls for the same sessions.
func TotalVolume(sessions []models.SessionRecord, coach models.Discipline) VolumeResult {
	p := profileFor(coach)
	total := 0.0
	for _, s := range sessions {
		total += p.volume(s).Value
	}
	return VolumeResult{Value: total, Unit: p.unit}
}

// strengthVolume is the sets × reps rule shared by the strength and
// calisthenics coaches. Rep ranges contribute their lower bound.
func strengthVolume(s models.SessionRecord) VolumeResult {
	total := 0
	for _, ex := range s.Prescription.Exercises {
		total += ex.Sets * ex.Reps.First()
	}
	return VolumeResult{Value: float64(total), Unit: UnitReps}
}

// enduranceVolume is the session's actual duration in minutes.
func enduranceVolume(s models.SessionRecord) VolumeResult {
	var d float64
	if s.DurationActualMin != nil {
		d = *s.DurationActualMin
	}
	return VolumeResult{Value: d, Unit: UnitMinutes}
}

// functionalVolume handles mixed-format prescriptions: timed formats score
// by duration, rounds-based formats by rounds × reps per round, anything
// else falls back to the strength rule.
func functionalVolume(s models.SessionRecord) VolumeResult {
	p := s.Prescription

	if p.Format == "AMRAP" || p.Format == "EMOM" {
		d := p.DurationMin
		if s.DurationActualMin != nil {
			d = *s.DurationActualMin
		}
		return VolumeResult{Value: d, Unit: UnitMinutes}
	}

	if p.Format == "For Time" || p.Rounds > 0 {
		rounds := p.Rounds
		if rounds == 0 {
			rounds = 1
		}
		repsPerRound := 0
		for _, ex := range p.Exercises {
			repsPerRound += ex.Reps.First()
		}
		return VolumeResult{Value: float64(rounds * repsPerRound), Unit: UnitReps}
	}

	return strengthVolume(s)
}

// competitionsVolume scores circuit prescriptions in stations × rounds and
// falls back to duration for anything without discrete stations.
func competitionsVolume(s models.SessionRecord) VolumeResult {
	p := s.Prescription

	if p.Format == "circuit" || p.Stations > 0 {
		stations := p.Stations
		if stations == 0 {
			stations = len(p.Exercises)
		}
		rounds := p.Rounds
		if rounds == 0 {
			rounds = 1
		}
		return VolumeResult{Value: float64(stations * rounds), Unit: UnitStations}
	}

	var d float64
	if s.DurationActualMin != nil {
		d = *s.DurationActualMin
	}
	return VolumeResult{Value: d, Unit: UnitMinutes}
}
