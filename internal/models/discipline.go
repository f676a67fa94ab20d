package models

import "strings"

// Discipline is one of the five training modalities the engine understands.
// Each discipline maps to a coach with its own volume unit, threshold table,
// and recommendation templates.
type Discipline string

const (
	DisciplineStrength     Discipline = "strength"
	DisciplineEndurance    Discipline = "endurance"
	DisciplineFunctional   Discipline = "functional"
	DisciplineCalisthenics Discipline = "calisthenics"
	DisciplineCompetitions Discipline = "competitions"
)

// disciplineAliases maps free-form discipline names (as stored by older
// clients and wearable exports) onto the closed enum.
var disciplineAliases = map[string]Discipline{
	"strength":     DisciplineStrength,
	"force":        DisciplineStrength,
	"power":        DisciplineStrength,
	"musculation":  DisciplineStrength,
	"weights":      DisciplineStrength,
	"powerlifting": DisciplineStrength,
	"bodybuilding": DisciplineStrength,

	"endurance": DisciplineEndurance,
	"running":   DisciplineEndurance,
	"cycling":   DisciplineEndurance,
	"swimming":  DisciplineEndurance,
	"triathlon": DisciplineEndurance,
	"cardio":    DisciplineEndurance,

	"functional": DisciplineFunctional,
	"crossfit":   DisciplineFunctional,
	"hiit":       DisciplineFunctional,
	"wod":        DisciplineFunctional,
	"circuit":    DisciplineFunctional,

	"calisthenics":   DisciplineCalisthenics,
	"street-workout": DisciplineCalisthenics,
	"streetworkout":  DisciplineCalisthenics,

	"competitions": DisciplineCompetitions,
	"competition":  DisciplineCompetitions,
	"hyrox":        DisciplineCompetitions,
	"deka":         DisciplineCompetitions,
}

// ParseDiscipline normalizes a free-form discipline name. Unknown values fall
// back to strength, matching the engine's default coach.
func ParseDiscipline(s string) Discipline {
	if d, ok := disciplineAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d
	}
	return DisciplineStrength
}

// Valid reports whether d is one of the five known disciplines.
func (d Discipline) Valid() bool {
	switch d {
	case DisciplineStrength, DisciplineEndurance, DisciplineFunctional,
		DisciplineCalisthenics, DisciplineCompetitions:
		return true
	}
	return false
}

func (d Discipline) String() string { return string(d) }
