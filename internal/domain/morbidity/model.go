package morbidity

import "fmt"

// Encounter type and concept codes of the clinical store. The report
// contract fixes these numerically.
const (
	EncounterRegInitial = 5  // new registration
	EncounterRegRevisit = 6  // revisit registration
	EncounterOutpatient = 9  // OPD encounter
	EncounterInpatient  = 10 // IPD encounter

	ConceptWardLocation   = 3    // OPD ward location obs
	ConceptOutreachMarker = 3763 // outreach-in-field OPD marker
)

// Diagnosis observation concepts the aggregation matches values under.
var diagnosisConcepts = []int{2304, 2978}

// Ward selects the report's operating mode. Exactly these two named modes
// exist beyond the default; anything else aggregates the fixed-site OPD.
const (
	WardIPD      = "IPD WARD"
	WardOutreach = "OUTREACH OPD"
)

// Row is one age band of the report, cross-tabulated by gender and
// visit type. The JSON keys are the report's fixed column names.
type Row struct {
	AgeGroup  string `json:"ageGroup"`
	NewMale   int    `json:"NewMale"`
	NewFemale int    `json:"NewFemale"`
	ReMale    int    `json:"ReMale"`
	ReFemale  int    `json:"ReFemale"`
}

// ValidationError reports a malformed report parameter.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid report parameter %s: %q", e.Field, e.Value)
}
