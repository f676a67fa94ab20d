package models

import "github.com/google/uuid"

// ExportPayload is the top-level JSON structure accepted by the ingest API
// and produced by activity-export tools.
type ExportPayload struct {
	Data ExportData `json:"data"`
}

// ExportData contains the arrays of exported records.
type ExportData struct {
	Activities []ExportActivity `json:"activities"`
	Sessions   []ExportSession  `json:"sessions"`
}

// ExportActivity is one activity entry in an export file. Timestamps use
// FlexTime because export tools disagree on date formats.
type ExportActivity struct {
	ID                string   `json:"id,omitempty"`
	Timestamp         FlexTime `json:"timestamp"`
	Type              string   `json:"type"`
	DurationMin       *float64 `json:"duration_min,omitempty"`
	DistanceMeters    *float64 `json:"distance_meters,omitempty"`
	CaloriesEst       *float64 `json:"calories_est,omitempty"`
	VO2MaxEstimated   *float64 `json:"vo2max_estimated,omitempty"`
	TrainingLoadScore *float64 `json:"training_load_score,omitempty"`
	AvgPowerWatts     *float64 `json:"avg_power_watts,omitempty"`
	EfficiencyScore   *float64 `json:"efficiency_score,omitempty"`
}

// ExportSession is one logged training session in an export file.
type ExportSession struct {
	ID                string       `json:"id,omitempty"`
	Timestamp         FlexTime     `json:"timestamp"`
	Discipline        string       `json:"discipline"`
	Prescription      Prescription `json:"prescription"`
	DurationActualMin *float64     `json:"duration_actual_min,omitempty"`
	OverallRPE        *float64     `json:"overall_rpe,omitempty"`
}

// Record converts the export entry to a storable activity. An empty or
// malformed id yields a fresh one so re-exports without stable ids still
// load.
func (e ExportActivity) Record(userID int) ActivityRecord {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		id = uuid.New()
	}
	return ActivityRecord{
		ID:                id,
		UserID:            userID,
		Timestamp:         e.Timestamp.Time,
		Type:              e.Type,
		DurationMin:       e.DurationMin,
		DistanceMeters:    e.DistanceMeters,
		CaloriesEst:       e.CaloriesEst,
		VO2MaxEstimated:   e.VO2MaxEstimated,
		TrainingLoadScore: e.TrainingLoadScore,
		AvgPowerWatts:     e.AvgPowerWatts,
		EfficiencyScore:   e.EfficiencyScore,
	}
}

// Record converts the export entry to a storable session, normalizing the
// discipline.
func (e ExportSession) Record(userID int) SessionRecord {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		id = uuid.New()
	}
	return SessionRecord{
		ID:                id,
		UserID:            userID,
		Timestamp:         e.Timestamp.Time,
		Discipline:        ParseDiscipline(e.Discipline),
		Prescription:      e.Prescription,
		DurationActualMin: e.DurationActualMin,
		OverallRPE:        e.OverallRPE,
	}
}
