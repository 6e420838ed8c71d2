package patientsearch

import (
	"context"
)

// Service fronts patient search for the HTTP surface.
type Service struct {
	repo Repository
}

// NewService creates a patient search service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search returns matching patient summaries and the total match count.
// An all-empty criteria is rejected; it would return the entire patient
// population.
func (s *Service) Search(ctx context.Context, cr Criteria, limit, offset int) ([]PatientSummary, int, error) {
	if cr.Empty() {
		return nil, 0, &ValidationError{Field: "criteria", Value: "at least one filter is required"}
	}

	total, err := s.repo.Count(ctx, cr)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []PatientSummary{}, 0, nil
	}

	results, err := s.repo.Search(ctx, cr, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// Attributes returns a patient's person attributes keyed by type name.
func (s *Service) Attributes(ctx context.Context, patientID int) (map[string]string, error) {
	return s.repo.PersonAttributes(ctx, patientID)
}
