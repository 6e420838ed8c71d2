package visit

import "time"

// Encounter is a read-only projection of a clinical encounter.
type Encounter struct {
	ID         int       `json:"encounter_id"`
	PatientID  int       `json:"patient_id"`
	Type       int       `json:"encounter_type"`
	Datetime   time.Time `json:"encounter_datetime"`
	LocationID *int      `json:"location_id,omitempty"`
}

// Obs is a read-only projection of an observation.
type Obs struct {
	ID           int        `json:"obs_id"`
	PersonID     int        `json:"person_id"`
	ConceptID    int        `json:"concept_id"`
	EncounterID  *int       `json:"encounter_id,omitempty"`
	ObsDatetime  time.Time  `json:"obs_datetime"`
	ValueCoded   *int       `json:"value_coded,omitempty"`
	ValueNumeric *float64   `json:"value_numeric,omitempty"`
	ValueText    string     `json:"value_text,omitempty"`
	ValueDate    *time.Time `json:"value_datetime,omitempty"`
}
