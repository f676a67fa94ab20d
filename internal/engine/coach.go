// Package engine derives the adaptive training context: discipline-aware
// volume, personalized thresholds, periodization phase, recovery, and the
// "priority today" recommendation. All computations are pure derivations
// over the session history handed to them; nothing is cached between calls.
package engine

import "github.com/claude/traincoach/internal/models"

// Volume units per discipline.
const (
	UnitReps     = "reps"
	UnitMinutes  = "min"
	UnitStations = "stations"
)

// coachProfile bundles everything that varies by discipline: the volume
// unit, the default threshold band used when history is too thin, the
// volume-computation strategy, and the recommendation templates. Profiles
// are selected once per entry point instead of re-dispatching on the
// discipline inside every helper.
type coachProfile struct {
	discipline models.Discipline
	unit       string
	defaults   VolumeThresholds
	volume     func(models.SessionRecord) VolumeResult

	// namesExercises controls whether overuse recommendations list the
	// offending exercises by name. Endurance and functional coaches speak
	// in modalities, not exercise names.
	namesExercises bool

	longRest   recommendation
	highVolume recommendation
	overuse    recommendation
	rampUp     recommendation
	optimal    recommendation
}

type recommendation struct {
	prioritize []string
	avoid      []string
	reason     string
}

var profiles = map[models.Discipline]*coachProfile{
	models.DisciplineStrength: {
		discipline:     models.DisciplineStrength,
		unit:           UnitReps,
		defaults:       VolumeThresholds{Low: 100, Optimal: 150, High: 200, Unit: UnitReps, Source: ThresholdsDefault},
		volume:         strengthVolume,
		namesExercises: true,
		longRest: recommendation{
			prioritize: []string{"Light activation work", "Mobility", "Technique on main lifts"},
			avoid:      []string{"Max-effort attempts", "High-volume accessory work"},
			reason:     "Extended rest detected; ease back in with a moderate session",
		},
		highVolume: recommendation{
			prioritize: []string{"Active recovery", "Mobility", "Light technique work"},
			avoid:      []string{"Heavy compound lifts", "Training to failure"},
			reason:     "Weekly volume is high; prioritize recovery over load",
		},
		overuse: recommendation{
			prioritize: []string{"Movement variations", "Underused muscle groups"},
			reason:     "Some lifts are recurring heavily; rotate variations to spread the load",
		},
		rampUp: recommendation{
			prioritize: []string{"Progressive volume increase", "Main compound lifts"},
			avoid:      []string{"Skipping working sets"},
			reason:     "Volume is below your usual range; room to push the working sets",
		},
		optimal: recommendation{
			prioritize: []string{"Progressive overload", "Technique refinement"},
			reason:     "Balanced week; keep progressing steadily",
		},
	},

	models.DisciplineEndurance: {
		discipline: models.DisciplineEndurance,
		unit:       UnitMinutes,
		defaults:   VolumeThresholds{Low: 30, Optimal: 45, High: 70, Unit: UnitMinutes, Source: ThresholdsDefault},
		volume:     enduranceVolume,
		longRest: recommendation{
			prioritize: []string{"Low-intensity zone 1-2 work", "Short duration"},
			avoid:      []string{"Intervals", "Tempo efforts"},
			reason:     "Extended rest detected; rebuild aerobic rhythm at low intensity",
		},
		highVolume: recommendation{
			prioritize: []string{"Easy recovery pace", "Shorter session"},
			avoid:      []string{"High-intensity intervals", "Long duration"},
			reason:     "Weekly duration is high; keep today easy",
		},
		overuse: recommendation{
			prioritize: []string{"A different modality (bike, swim, row)"},
			avoid:      []string{"Repeating the same modality again"},
			reason:     "Recent sessions repeat the same work; vary the modality",
		},
		rampUp: recommendation{
			prioritize: []string{"Extending session duration", "Steady aerobic base"},
			reason:     "Weekly duration is below your usual range; add time on feet",
		},
		optimal: recommendation{
			prioritize: []string{"Planned progression", "One quality session this week"},
			reason:     "Balanced week; keep building the aerobic base",
		},
	},

	models.DisciplineFunctional: {
		discipline: models.DisciplineFunctional,
		unit:       UnitReps,
		defaults:   VolumeThresholds{Low: 120, Optimal: 180, High: 250, Unit: UnitReps, Source: ThresholdsDefault},
		volume:     functionalVolume,
		longRest: recommendation{
			prioritize: []string{"Simple gymnastic movements", "Moderate pacing", "Skill work"},
			avoid:      []string{"Benchmark workouts", "Heavy barbell cycling"},
			reason:     "Extended rest detected; restart with simple movements at moderate pace",
		},
		highVolume: recommendation{
			prioritize: []string{"Low-intensity skill practice", "Mobility"},
			avoid:      []string{"Metcons for time", "High-rep barbell work"},
			reason:     "Weekly volume is high; take an active recovery day",
		},
		overuse: recommendation{
			prioritize: []string{"A different movement pattern mix"},
			avoid:      []string{"Repeating the same workout structure"},
			reason:     "Recent sessions repeat the same patterns; vary the stimulus",
		},
		rampUp: recommendation{
			prioritize: []string{"Adding a round or station", "Density over intensity"},
			reason:     "Volume is below your usual range; build work capacity gradually",
		},
		optimal: recommendation{
			prioritize: []string{"Steady progression", "Movement quality under fatigue"},
			reason:     "Balanced week; keep the engine building",
		},
	},

	models.DisciplineCalisthenics: {
		discipline:     models.DisciplineCalisthenics,
		unit:           UnitReps,
		defaults:       VolumeThresholds{Low: 80, Optimal: 120, High: 160, Unit: UnitReps, Source: ThresholdsDefault},
		volume:         strengthVolume,
		namesExercises: true,
		longRest: recommendation{
			prioritize: []string{"Basics at easy leverage", "Joint prep", "Holds at low intensity"},
			avoid:      []string{"Max skill attempts", "High-volume pulling"},
			reason:     "Extended rest detected; groove the basics before loading skills",
		},
		highVolume: recommendation{
			prioritize: []string{"Mobility", "Light skill play"},
			avoid:      []string{"Weighted progressions", "High-rep sets to failure"},
			reason:     "Weekly volume is high; give tendons a lighter day",
		},
		overuse: recommendation{
			prioritize: []string{"Alternate progressions", "Antagonist work"},
			reason:     "Some movements are recurring heavily; rotate progressions",
		},
		rampUp: recommendation{
			prioritize: []string{"Extra sets on the basics", "Progression volume"},
			reason:     "Volume is below your usual range; add quality sets",
		},
		optimal: recommendation{
			prioritize: []string{"Progression consistency", "Strict form"},
			reason:     "Balanced week; keep stacking clean reps",
		},
	},

	models.DisciplineCompetitions: {
		discipline:     models.DisciplineCompetitions,
		unit:           UnitStations,
		defaults:       VolumeThresholds{Low: 6, Optimal: 8, High: 12, Unit: UnitStations, Source: ThresholdsDefault},
		volume:         competitionsVolume,
		namesExercises: true,
		longRest: recommendation{
			prioritize: []string{"Reduced station count", "Race-pace feel, not race pace"},
			avoid:      []string{"Full simulations", "Sprint finishes"},
			reason:     "Extended rest detected; rebuild with a shortened circuit",
		},
		highVolume: recommendation{
			prioritize: []string{"Technique on weak stations", "Easy aerobic work"},
			avoid:      []string{"Full circuits", "Time-trial efforts"},
			reason:     "Weekly station volume is high; back off the circuits",
		},
		overuse: recommendation{
			prioritize: []string{"Neglected stations", "Transitions practice"},
			reason:     "Some stations are recurring heavily; train the ones you skip",
		},
		rampUp: recommendation{
			prioritize: []string{"Adding stations or rounds", "Pacing practice"},
			reason:     "Volume is below your usual range; extend the circuit",
		},
		optimal: recommendation{
			prioritize: []string{"Race pacing", "Station efficiency"},
			reason:     "Balanced week; sharpen the race plan",
		},
	},
}

// profileFor returns the coach profile for a discipline. Unknown or unlisted
// coach types use the strength table.
func profileFor(d models.Discipline) *coachProfile {
	if p, ok := profiles[d]; ok {
		return p
	}
	return profiles[models.DisciplineStrength]
}

// UnitFor returns the volume unit used by a discipline's coach.
func UnitFor(d models.Discipline) string {
	return profileFor(d).unit
}
