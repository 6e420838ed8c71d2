package morbidity

import "context"

// Repository runs the age-banded aggregation against the clinical store.
type Repository interface {
	// Aggregate cross-tabulates new/revisit registrations by gender and age
	// band for patients who, in the given month/year, had a diagnosis
	// observation matching valueConceptIDs in an encounter of
	// wardEncounterType. outreach selects the field-OPD arm: it flips the
	// ward-location test from excluding the outreach marker to requiring it.
	Aggregate(ctx context.Context, valueConceptIDs []int, month, year, wardEncounterType int, outreach bool) ([]Row, error)
}
