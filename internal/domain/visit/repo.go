package visit

import (
	"context"
	"time"
)

// Repository reads visit history from the clinical store.
type Repository interface {
	// LastVisitEncounter returns the patient's most recent encounter by
	// encounter_datetime, optionally restricted to the given encounter
	// types. Returns (nil, nil) when the patient has no matching encounter.
	LastVisitEncounter(ctx context.Context, patientID int, types []int) (*Encounter, error)

	// LastVisitTime returns the datetime of the patient's newest encounter
	// by insertion order (encounter_id), not wall clock: backdated entries
	// must not shadow the latest registration.
	LastVisitTime(ctx context.Context, patientID int) (*time.Time, error)

	// EncountersOn returns all encounters of the given types on the day,
	// using the whole-day window [00:00:00, 23:59:59].
	EncountersOn(ctx context.Context, day time.Time, types []int) ([]Encounter, error)

	// ListObsGroup returns a person's top-level observations (those not
	// nested under an obs group) for a concept, newest first.
	ListObsGroup(ctx context.Context, personID, conceptID, offset, limit int) ([]Obs, error)
}
