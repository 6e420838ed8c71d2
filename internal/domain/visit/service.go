package visit

import (
	"context"
	"fmt"
	"time"
)

// ValidationError reports an invalid visit query argument.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// Service exposes visit history reads.
type Service struct {
	repo Repository
}

// NewService creates a visit service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// LastVisit returns a patient's most recent encounter and the datetime of
// the newest encounter record. Either may be nil when the patient has no
// visit history.
func (s *Service) LastVisit(ctx context.Context, patientID int, types []int) (*Encounter, *time.Time, error) {
	if patientID <= 0 {
		return nil, nil, &ValidationError{Field: "patient id", Value: fmt.Sprint(patientID)}
	}
	enc, err := s.repo.LastVisitEncounter(ctx, patientID, types)
	if err != nil {
		return nil, nil, err
	}
	ts, err := s.repo.LastVisitTime(ctx, patientID)
	if err != nil {
		return nil, nil, err
	}
	return enc, ts, nil
}

// EncountersOn returns all encounters of the given types on the day.
func (s *Service) EncountersOn(ctx context.Context, day time.Time, types []int) ([]Encounter, error) {
	for _, t := range types {
		if t <= 0 {
			return nil, &ValidationError{Field: "encounter type", Value: fmt.Sprint(t)}
		}
	}
	return s.repo.EncountersOn(ctx, day, types)
}

// Observations returns a person's top-level observations for a concept,
// newest first.
func (s *Service) Observations(ctx context.Context, personID, conceptID, offset, limit int) ([]Obs, error) {
	if personID <= 0 {
		return nil, &ValidationError{Field: "person id", Value: fmt.Sprint(personID)}
	}
	if conceptID <= 0 {
		return nil, &ValidationError{Field: "concept id", Value: fmt.Sprint(conceptID)}
	}
	return s.repo.ListObsGroup(ctx, personID, conceptID, offset, limit)
}
